package ephemeris

import (
	"context"
	"math"
	"time"

	"github.com/asterion-dev/asterion/internal/astro"
)

// Position is one body's computed place.
type Position struct {
	LonDeg         float64 `json:"lon_deg"`
	SpeedDegPerDay float64 `json:"speed_deg_per_day"`
	House          int     `json:"house"`
}

// ChartPositions is a full position set for one moment and place.
type ChartPositions struct {
	Planets    map[astro.Planet]Position `json:"planets"`
	Ascendant  float64                   `json:"ascendant"`
	IsDay      bool                      `json:"is_day"`
	IsFallback bool                      `json:"is_fallback"`
}

// Provider supplies planetary longitudes for a moment and place.
// IsFallback on the result signals a degraded-confidence approximation
// rather than an error.
type Provider interface {
	Positions(ctx context.Context, lat, lon float64, ts time.Time) (*ChartPositions, error)
}

// j2000 is the standard epoch the mean elements are referred to.
var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// Mean ecliptic longitude at J2000 and mean daily motion per body.
// Inner planets use the Sun's geocentric mean motion.
var meanElements = map[astro.Planet]struct{ base, motion float64 }{
	astro.Sun:     {280.460, 0.9856474},
	astro.Moon:    {218.316, 13.1763966},
	astro.Mercury: {252.251, 0.9856474},
	astro.Venus:   {181.980, 0.9856474},
	astro.Mars:    {355.453, 0.5240208},
	astro.Jupiter: {34.351, 0.0830853},
	astro.Saturn:  {50.077, 0.0334443},
}

// MeanMotionProvider is the deterministic fallback ephemeris: mean
// longitudes linearly advanced from J2000. Good to a few degrees, which
// is enough for sign-level work; every result is flagged IsFallback.
type MeanMotionProvider struct{}

// NewMeanMotionProvider returns the fallback provider.
func NewMeanMotionProvider() *MeanMotionProvider {
	return &MeanMotionProvider{}
}

// Positions computes mean positions for the classical planets plus a
// sidereal-time Ascendant, with whole-sign houses.
func (p *MeanMotionProvider) Positions(_ context.Context, lat, lon float64, ts time.Time) (*ChartPositions, error) {
	days := ts.Sub(j2000).Hours() / 24

	planets := make(map[astro.Planet]Position, len(meanElements))
	for body, el := range meanElements {
		planets[body] = Position{
			LonDeg:         astro.NormalizeLongitude(el.base + el.motion*days),
			SpeedDegPerDay: el.motion,
		}
	}

	asc := meanAscendant(days, lon)
	ascSign := astro.SignFromLongitude(asc)
	for body, pos := range planets {
		offset := int(astro.SignFromLongitude(pos.LonDeg)) - int(ascSign)
		pos.House = ((offset+12)%12 + 1)
		planets[body] = pos
	}

	sunLon := planets[astro.Sun].LonDeg
	// The Sun sits above the horizon when it falls in the western
	// hemisphere of the whole-sign wheel relative to the Ascendant.
	isDay := astro.NormalizeLongitude(sunLon-asc) >= 180

	_ = lat // whole-sign houses need no geographic latitude

	return &ChartPositions{
		Planets:    planets,
		Ascendant:  asc,
		IsDay:      isDay,
		IsFallback: true,
	}, nil
}

// meanAscendant approximates the rising degree from Greenwich mean
// sidereal time plus the observer's longitude.
func meanAscendant(daysSinceJ2000, lon float64) float64 {
	gmstHours := math.Mod(18.697374558+24.06570982441908*daysSinceJ2000, 24)
	if gmstHours < 0 {
		gmstHours += 24
	}
	lstDeg := astro.NormalizeLongitude(gmstHours*15 + lon)
	return astro.NormalizeLongitude(lstDeg + 90)
}
