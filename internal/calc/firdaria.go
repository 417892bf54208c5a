package calc

import (
	"fmt"
	"time"

	"github.com/asterion-dev/asterion/internal/astro"
)

// firdariaYears gives each lord's major period length in years.
var firdariaYears = map[astro.Planet]float64{
	astro.Sun:       10,
	astro.Venus:     8,
	astro.Mercury:   13,
	astro.Moon:      9,
	astro.Saturn:    11,
	astro.Jupiter:   12,
	astro.Mars:      7,
	astro.NorthNode: 3,
	astro.SouthNode: 2,
}

// Major lord sequences by sect. Day births start from the Sun, night
// births from the Moon; the nodes close both sequences.
var (
	firdariaDiurnal = []astro.Planet{
		astro.Sun, astro.Venus, astro.Mercury, astro.Moon,
		astro.Saturn, astro.Jupiter, astro.Mars,
		astro.NorthNode, astro.SouthNode,
	}
	firdariaNocturnal = []astro.Planet{
		astro.Moon, astro.Saturn, astro.Jupiter, astro.Mars,
		astro.Sun, astro.Venus, astro.Mercury,
		astro.NorthNode, astro.SouthNode,
	}
)

// FirdariaPeriod is a major or minor firdaria span.
type FirdariaPeriod struct {
	Lord          astro.Planet `json:"lord"`
	MajorLord     astro.Planet `json:"major_lord,omitempty"`
	Start         time.Time    `json:"start"`
	End           time.Time    `json:"end"`
	DurationYears float64      `json:"duration_years"`
}

// FirdariaResult holds the full 75-year scheme.
type FirdariaResult struct {
	IsDayBirth   bool             `json:"is_day_birth"`
	MajorPeriods []FirdariaPeriod `json:"major_periods"`
	MinorPeriods []FirdariaPeriod `json:"minor_periods"`
}

// CalculateFirdaria allocates major and minor periods from birth.
// Within each planetary major period, seven minors cycle through the
// planets starting from the major lord, weighted by their own period
// years so the minors tile the major exactly. Node periods take no
// subdivision.
func CalculateFirdaria(birth time.Time, isDayBirth bool) (*FirdariaResult, error) {
	sequence := firdariaDiurnal
	if !isDayBirth {
		sequence = firdariaNocturnal
	}
	planets := sequence[:7]

	res := &FirdariaResult{IsDayBirth: isDayBirth}
	cursor := birth

	for _, lord := range sequence {
		dur := firdariaYears[lord]
		end := addYears(cursor, dur)
		res.MajorPeriods = append(res.MajorPeriods, FirdariaPeriod{
			Lord:          lord,
			Start:         cursor,
			End:           end,
			DurationYears: dur,
		})

		if lord != astro.NorthNode && lord != astro.SouthNode {
			minors, err := subdivideFirdaria(lord, cursor, end, dur, planets)
			if err != nil {
				return nil, err
			}
			res.MinorPeriods = append(res.MinorPeriods, minors...)
		}

		cursor = end
	}
	return res, nil
}

// subdivideFirdaria cycles the seven planets from the major lord, each
// minor proportional to its own period years. The last minor absorbs
// rounding so the sum matches the major exactly.
func subdivideFirdaria(major astro.Planet, start, end time.Time, majorYears float64, planets []astro.Planet) ([]FirdariaPeriod, error) {
	offset := 0
	for i, p := range planets {
		if p == major {
			offset = i
			break
		}
	}

	totalWeight := 0.0
	for _, p := range planets {
		totalWeight += firdariaYears[p]
	}

	minors := make([]FirdariaPeriod, 0, len(planets))
	cursor := start
	remaining := majorYears
	for i := 0; i < len(planets); i++ {
		lord := planets[(offset+i)%len(planets)]
		dur := majorYears * firdariaYears[lord] / totalWeight
		minorEnd := addYears(cursor, dur)
		if i == len(planets)-1 {
			dur = remaining
			minorEnd = end
		}
		minors = append(minors, FirdariaPeriod{
			Lord:          lord,
			MajorLord:     major,
			Start:         cursor,
			End:           minorEnd,
			DurationYears: dur,
		})
		cursor = minorEnd
		remaining -= dur
	}

	sum := 0.0
	for _, m := range minors {
		sum += m.DurationYears
	}
	if diff := sum - majorYears; diff > durationTolerance || diff < -durationTolerance {
		return nil, fmt.Errorf("%w: %s minors sum %.9f years, major is %.9f",
			ErrInvariant, major, sum, majorYears)
	}
	return minors, nil
}

// MajorLordAt returns the firdaria major lord active on a date; ok is
// false past the 75-year scheme.
func (f *FirdariaResult) MajorLordAt(t time.Time) (astro.Planet, bool) {
	for _, p := range f.MajorPeriods {
		if !t.Before(p.Start) && t.Before(p.End) {
			return p.Lord, true
		}
	}
	return "", false
}

// MinorLordAt returns the minor lord active on a date; ok is false
// outside any subdivided span.
func (f *FirdariaResult) MinorLordAt(t time.Time) (astro.Planet, bool) {
	for _, p := range f.MinorPeriods {
		if !t.Before(p.Start) && t.Before(p.End) {
			return p.Lord, true
		}
	}
	return "", false
}
