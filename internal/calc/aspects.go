package calc

import (
	"math"
	"sort"

	"github.com/asterion-dev/asterion/internal/astro"
)

// aspectAngles are the classical Ptolemaic aspects.
var aspectAngles = []struct {
	name  string
	angle float64
}{
	{"conjunction", 0},
	{"sextile", 60},
	{"square", 90},
	{"trine", 120},
	{"opposition", 180},
}

// applyingStep is the probe interval, in days, used to decide whether
// relative motion is closing a contact.
const applyingStep = 0.1

// AspectContact records one classical aspect between two chart planets.
type AspectContact struct {
	A        astro.Planet `json:"a"`
	B        astro.Planet `json:"b"`
	Type     string       `json:"type"`
	Orb      float64      `json:"orb"`
	Applying bool         `json:"applying"`
}

// CalculateAspects finds classical aspects between each planet pair,
// tightest first. speeds give daily motion per planet; a pair is
// applying when its separation is moving toward the exact angle.
func CalculateAspects(points []astro.Point, speeds map[astro.Planet]float64, orbLimit float64) []AspectContact {
	var contacts []AspectContact

	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			a, b := points[i], points[j]
			pa, pb := astro.Planet(a.Name), astro.Planet(b.Name)
			sep := astro.Orb(a.Longitude, b.Longitude)
			for _, asp := range aspectAngles {
				dev := math.Abs(sep - asp.angle)
				if dev > orbLimit {
					continue
				}
				next := astro.Orb(
					a.Longitude+speeds[pa]*applyingStep,
					b.Longitude+speeds[pb]*applyingStep)
				contacts = append(contacts, AspectContact{
					A:        pa,
					B:        pb,
					Type:     asp.name,
					Orb:      dev,
					Applying: math.Abs(next-asp.angle) < dev,
				})
			}
		}
	}

	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].Orb < contacts[j].Orb
	})
	return contacts
}

// TransitContact records a classical aspect from a transiting planet to
// a natal point.
type TransitContact struct {
	Transiting astro.Planet `json:"transiting"`
	Natal      string       `json:"natal"`
	Type       string       `json:"type"`
	Orb        float64      `json:"orb"`
	Applying   bool         `json:"applying"`
}

// CalculateTransits aspects the transiting positions against the natal
// points, tightest first. Natal points are fixed, so applying reduces
// to the transiting planet's own motion closing the contact.
func CalculateTransits(natal, transiting []astro.Point, speeds map[astro.Planet]float64, orbLimit float64) []TransitContact {
	var contacts []TransitContact

	for _, t := range transiting {
		planet := astro.Planet(t.Name)
		for _, n := range natal {
			sep := astro.Orb(t.Longitude, n.Longitude)
			for _, asp := range aspectAngles {
				dev := math.Abs(sep - asp.angle)
				if dev > orbLimit {
					continue
				}
				next := astro.Orb(t.Longitude+speeds[planet]*applyingStep, n.Longitude)
				contacts = append(contacts, TransitContact{
					Transiting: planet,
					Natal:      n.Name,
					Type:       asp.name,
					Orb:        dev,
					Applying:   math.Abs(next-asp.angle) < dev,
				})
			}
		}
	}

	sort.Slice(contacts, func(i, j int) bool {
		return contacts[i].Orb < contacts[j].Orb
	})
	return contacts
}
