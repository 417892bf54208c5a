package calc

import "github.com/asterion-dev/asterion/internal/astro"

// LotOfFortune computes the Lot of Fortune from Sun, Moon, and Ascendant
// longitudes. Day formula: ASC + Moon - Sun; night reverses the luminaries.
func LotOfFortune(sunLon, moonLon, ascLon float64, isDay bool) float64 {
	if isDay {
		return astro.NormalizeLongitude(ascLon + moonLon - sunLon)
	}
	return astro.NormalizeLongitude(ascLon + sunLon - moonLon)
}

// LotOfSpirit computes the Lot of Spirit, the sect mirror of Fortune.
// Day formula: ASC + Sun - Moon; night reverses the luminaries.
func LotOfSpirit(sunLon, moonLon, ascLon float64, isDay bool) float64 {
	if isDay {
		return astro.NormalizeLongitude(ascLon + sunLon - moonLon)
	}
	return astro.NormalizeLongitude(ascLon + moonLon - sunLon)
}

// Lots bundles both lots as chart points.
type Lots struct {
	Spirit  astro.Point `json:"spirit"`
	Fortune astro.Point `json:"fortune"`
}

// ComputeLots builds both lot points for a chart.
func ComputeLots(sunLon, moonLon, ascLon float64, isDay bool) Lots {
	return Lots{
		Spirit:  astro.NewPoint("Lot of Spirit", LotOfSpirit(sunLon, moonLon, ascLon, isDay)),
		Fortune: astro.NewPoint("Lot of Fortune", LotOfFortune(sunLon, moonLon, ascLon, isDay)),
	}
}
