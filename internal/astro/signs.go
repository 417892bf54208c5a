package astro

import "math"

// Sign is one of the twelve zodiac signs in zodiacal order.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// String returns the sign's English name.
func (s Sign) String() string {
	if s < 0 || s > 11 {
		return "Unknown"
	}
	return signNames[s]
}

// Next returns the following sign in zodiacal order, wrapping Pisces to Aries.
func (s Sign) Next() Sign {
	return Sign((int(s) + 1) % 12)
}

// Advance returns the sign n positions ahead in zodiacal order.
func (s Sign) Advance(n int) Sign {
	return Sign(((int(s)+n)%12 + 12) % 12)
}

// Opposite returns the sign 180 degrees away.
func (s Sign) Opposite() Sign {
	return s.Advance(6)
}

// SignFromName resolves an English sign name; ok is false for unknown names.
func SignFromName(name string) (Sign, bool) {
	for i, n := range signNames {
		if n == name {
			return Sign(i), true
		}
	}
	return 0, false
}

// NormalizeLongitude wraps an ecliptic longitude into [0, 360).
func NormalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	return lon
}

// SignFromLongitude maps an ecliptic longitude to its zodiac sign.
func SignFromLongitude(lon float64) Sign {
	return Sign(int(NormalizeLongitude(lon)/30) % 12)
}

// DegreeInSign returns the degree within the sign, in [0, 30).
func DegreeInSign(lon float64) float64 {
	return math.Mod(NormalizeLongitude(lon), 30)
}

// Orb returns the minimum angular separation between two longitudes,
// always in [0, 180].
func Orb(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Point is a single chart position. Immutable once computed.
type Point struct {
	Name         string  `json:"name"`
	Longitude    float64 `json:"longitude"`
	Sign         Sign    `json:"sign"`
	DegreeInSign float64 `json:"degree_in_sign"`
}

// NewPoint builds a Point from a name and raw ecliptic longitude.
func NewPoint(name string, lon float64) Point {
	lon = NormalizeLongitude(lon)
	return Point{
		Name:         name,
		Longitude:    lon,
		Sign:         SignFromLongitude(lon),
		DegreeInSign: DegreeInSign(lon),
	}
}

// ZRYears holds each sign's zodiacal releasing period duration in years.
// The full cycle through all twelve signs totals 216 years.
var ZRYears = map[Sign]float64{
	Aries:       15,
	Taurus:      8,
	Gemini:      20,
	Cancer:      25,
	Leo:         19,
	Virgo:       20,
	Libra:       8,
	Scorpio:     15,
	Sagittarius: 12,
	Capricorn:   27,
	Aquarius:    30,
	Pisces:      12,
}
