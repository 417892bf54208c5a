package calc

import (
	"sort"

	"github.com/asterion-dev/asterion/internal/astro"
)

// StarContact records a planet's proximity to a fixed star, by
// conjunction or opposition.
type StarContact struct {
	Point string      `json:"point"`
	Star  string      `json:"star"`
	Royal bool        `json:"royal"`
	Type  ContactType `json:"type"`
	Orb   float64     `json:"orb"`
}

// CalculateStarContacts checks every point against the star catalog,
// returning contacts within the orb limit sorted tightest first.
func CalculateStarContacts(points []astro.Point, catalog []astro.FixedStar, orbLimit float64) []StarContact {
	var contacts []StarContact

	for _, pt := range points {
		for _, star := range catalog {
			if o := astro.Orb(pt.Longitude, star.Longitude); o <= orbLimit {
				contacts = append(contacts, StarContact{
					Point: pt.Name,
					Star:  star.Name,
					Royal: star.Royal,
					Type:  ContactConjunction,
					Orb:   o,
				})
			}
			opp := astro.NormalizeLongitude(star.Longitude + 180)
			if o := astro.Orb(pt.Longitude, opp); o <= orbLimit {
				contacts = append(contacts, StarContact{
					Point: pt.Name,
					Star:  star.Name,
					Royal: star.Royal,
					Type:  ContactOpposition,
					Orb:   o,
				})
			}
		}
	}

	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].Orb < contacts[j].Orb
	})
	return contacts
}
