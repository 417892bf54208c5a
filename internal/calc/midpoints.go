package calc

import (
	"sort"

	"github.com/asterion-dev/asterion/internal/astro"
)

// Midpoint returns the nearer midpoint of two longitudes on the circle.
func Midpoint(a, b float64) float64 {
	a = astro.NormalizeLongitude(a)
	b = astro.NormalizeLongitude(b)
	mid := (a + b) / 2
	if astro.Orb(mid, a) > 90 {
		mid += 180
	}
	return astro.NormalizeLongitude(mid)
}

// MidpointContact records a point conjunct a named midpoint.
type MidpointContact struct {
	Midpoint string  `json:"midpoint"`
	Point    string  `json:"point"`
	Orb      float64 `json:"orb"`
}

// CalculateSunMoonMidpointContacts finds points conjunct the Sun/Moon
// midpoint, the classical marriage and vitality axis, tightest first.
func CalculateSunMoonMidpointContacts(sunLon, moonLon float64, points []astro.Point, orbLimit float64) []MidpointContact {
	mid := Midpoint(sunLon, moonLon)

	var contacts []MidpointContact
	for _, pt := range points {
		if pt.Name == "Sun" || pt.Name == "Moon" {
			continue
		}
		if o := astro.Orb(mid, pt.Longitude); o <= orbLimit {
			contacts = append(contacts, MidpointContact{
				Midpoint: "Sun/Moon",
				Point:    pt.Name,
				Orb:      o,
			})
		}
	}

	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].Orb < contacts[j].Orb
	})
	return contacts
}
