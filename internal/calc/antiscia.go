package calc

import (
	"sort"

	"github.com/asterion-dev/asterion/internal/astro"
)

// ContactType classifies mirror-point and star contacts.
type ContactType string

const (
	ContactAntiscia       ContactType = "antiscia"
	ContactContraAntiscia ContactType = "contra_antiscia"
	ContactConjunction    ContactType = "conjunction"
	ContactOpposition     ContactType = "opposition"
)

// Antiscia reflects a longitude across the solstitial axis
// (0 Cancer to 0 Capricorn).
func Antiscia(lon float64) float64 {
	return astro.NormalizeLongitude(180 - lon)
}

// ContraAntiscia reflects the antiscia point across the equinoctial
// axis (0 Aries to 0 Libra).
func ContraAntiscia(lon float64) float64 {
	return astro.NormalizeLongitude(360 - Antiscia(lon))
}

// Orb is re-exported for callers working at the calc level.
func Orb(a, b float64) float64 {
	return astro.Orb(a, b)
}

// AntisciaContact records one mirror-point contact between two chart
// points.
type AntisciaContact struct {
	Original  string      `json:"original"`
	Contacted string      `json:"contacted"`
	Type      ContactType `json:"type"`
	Orb       float64     `json:"orb"`
}

// CalculateAntisciaContacts finds antiscia and contra-antiscia contacts
// among the supplied points, tightest first.
func CalculateAntisciaContacts(points []astro.Point, orbLimit float64) []AntisciaContact {
	var contacts []AntisciaContact

	for i, a := range points {
		anti := Antiscia(a.Longitude)
		contra := ContraAntiscia(a.Longitude)
		for j, b := range points {
			if i == j {
				continue
			}
			if o := astro.Orb(anti, b.Longitude); o <= orbLimit {
				contacts = append(contacts, AntisciaContact{
					Original:  a.Name,
					Contacted: b.Name,
					Type:      ContactAntiscia,
					Orb:       o,
				})
			}
			if o := astro.Orb(contra, b.Longitude); o <= orbLimit {
				contacts = append(contacts, AntisciaContact{
					Original:  a.Name,
					Contacted: b.Name,
					Type:      ContactContraAntiscia,
					Orb:       o,
				})
			}
		}
	}

	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].Orb < contacts[j].Orb
	})
	return contacts
}
