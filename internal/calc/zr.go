package calc

import (
	"fmt"
	"time"

	"github.com/asterion-dev/asterion/internal/astro"
)

// yearDays converts period years to calendar time.
const yearDays = 365.25

// durationTolerance bounds acceptable rounding drift in period sums.
const durationTolerance = 1e-6

// addYears advances a date by a fractional number of years.
func addYears(t time.Time, years float64) time.Time {
	return t.Add(time.Duration(years * yearDays * 24 * float64(time.Hour)))
}

// LotName selects which lot anchors a releasing computation.
type LotName string

const (
	LotSpirit  LotName = "spirit"
	LotFortune LotName = "fortune"
)

// Tone summarizes how a releasing period reads against the rest of the
// chart's time-lords.
type Tone struct {
	Intensity string   `json:"intensity"`
	Valence   float64  `json:"valence"`
	Score     float64  `json:"score"`
	Reasons   []string `json:"reasons"`
}

// ZRPeriod is one zodiacal releasing period. Level 1 periods carry their
// level 2 subdivision.
type ZRPeriod struct {
	Level         int          `json:"level"`
	Sign          astro.Sign   `json:"sign"`
	SignName      string       `json:"sign_name"`
	Ruler         astro.Planet `json:"ruler"`
	Start         time.Time    `json:"start"`
	End           time.Time    `json:"end"`
	DurationYears float64      `json:"duration_years"`
	IsLB          bool         `json:"is_lb"`
	IsPeak        bool         `json:"is_peak"`
	Tone          *Tone        `json:"tone,omitempty"`
	SubPeriods    []ZRPeriod   `json:"sub_periods,omitempty"`
}

// ToneContext carries the chart facts tone scoring reads.
type ToneContext struct {
	Almuten       astro.Planet
	YearLord      astro.Planet
	FirdariaMajor astro.Planet
	IsDay         bool
}

// TimelineOptions tunes a releasing timeline computation.
type TimelineOptions struct {
	// FromLot anchors the timeline's starting sign. Default Spirit.
	FromLot LotName
	// PeakLot is the lot peaks are measured against. Default Spirit.
	PeakLot LotName
	// HorizonYears bounds level 1 generation. Default 120.
	HorizonYears float64
	// Tone, when set, enables tone scoring on every period.
	Tone *ToneContext
}

// ZRTimeline is a full releasing timeline from a lot.
type ZRTimeline struct {
	Lot      astro.Point `json:"lot"`
	PeakSign astro.Sign  `json:"peak_sign"`
	Periods  []ZRPeriod  `json:"periods"`
}

// nextReleasingSign applies the Loosing of the Bond rule: after Cancer
// or Capricorn the sequence jumps to the opposite solstitial sign
// instead of the next sign in zodiacal order.
func nextReleasingSign(s astro.Sign) astro.Sign {
	if s == astro.Cancer || s == astro.Capricorn {
		return s.Opposite()
	}
	return s.Next()
}

// isLBSign reports whether a sign triggers a Loosing of the Bond jump.
func isLBSign(s astro.Sign) bool {
	return s == astro.Cancer || s == astro.Capricorn
}

// BuildL1Periods generates level 1 releasing periods from a starting
// sign, covering at least horizonYears (default 120).
func BuildL1Periods(start astro.Sign, birth time.Time, horizonYears float64) []ZRPeriod {
	if horizonYears <= 0 {
		horizonYears = 120
	}

	var periods []ZRPeriod
	sign := start
	cursor := birth
	elapsed := 0.0

	for elapsed < horizonYears {
		dur := astro.ZRYears[sign]
		end := addYears(cursor, dur)
		periods = append(periods, ZRPeriod{
			Level:         1,
			Sign:          sign,
			SignName:      sign.String(),
			Ruler:         astro.Ruler(sign),
			Start:         cursor,
			End:           end,
			DurationYears: dur,
			IsLB:          isLBSign(sign),
		})
		cursor = end
		elapsed += dur
		sign = nextReleasingSign(sign)
	}
	return periods
}

// SubdivideL2 splits a level 1 period into level 2 periods. The
// subdivision walks twelve signs from the parent's own sign under the
// same Loosing of the Bond rule, each sub-period proportional to its
// sign's fixed duration; the last sub-period absorbs rounding so the
// spans tile the parent exactly.
func SubdivideL2(l1 ZRPeriod) ([]ZRPeriod, error) {
	const steps = 12

	signs := make([]astro.Sign, 0, steps)
	sign := l1.Sign
	totalWeight := 0.0
	for i := 0; i < steps; i++ {
		signs = append(signs, sign)
		totalWeight += astro.ZRYears[sign]
		sign = nextReleasingSign(sign)
	}

	subs := make([]ZRPeriod, 0, steps)
	cursor := l1.Start
	remaining := l1.DurationYears
	for i, s := range signs {
		dur := l1.DurationYears * astro.ZRYears[s] / totalWeight
		end := addYears(cursor, dur)
		if i == steps-1 {
			dur = remaining
			end = l1.End
		}
		subs = append(subs, ZRPeriod{
			Level:         2,
			Sign:          s,
			SignName:      s.String(),
			Ruler:         astro.Ruler(s),
			Start:         cursor,
			End:           end,
			DurationYears: dur,
			IsLB:          isLBSign(s),
		})
		cursor = end
		remaining -= dur
	}

	sum := 0.0
	for _, s := range subs {
		sum += s.DurationYears
	}
	if diff := sum - l1.DurationYears; diff > durationTolerance || diff < -durationTolerance {
		return nil, fmt.Errorf("%w: L2 durations sum %.9f, parent %s is %.9f years",
			ErrInvariant, sum, l1.SignName, l1.DurationYears)
	}
	return subs, nil
}

// ComputeZRTimeline builds the full releasing timeline for a chart.
func ComputeZRTimeline(sunLon, moonLon, ascLon float64, isDay bool, birth time.Time, opts TimelineOptions) (*ZRTimeline, error) {
	if opts.FromLot == "" {
		opts.FromLot = LotSpirit
	}
	if opts.PeakLot == "" {
		opts.PeakLot = LotSpirit
	}

	lots := ComputeLots(sunLon, moonLon, ascLon, isDay)
	anchor := lots.Spirit
	if opts.FromLot == LotFortune {
		anchor = lots.Fortune
	}
	peakPoint := lots.Spirit
	if opts.PeakLot == LotFortune {
		peakPoint = lots.Fortune
	}
	peakSign := peakPoint.Sign

	periods := BuildL1Periods(anchor.Sign, birth, opts.HorizonYears)
	for i := range periods {
		subs, err := SubdivideL2(periods[i])
		if err != nil {
			return nil, fmt.Errorf("subdividing %s period: %w", periods[i].SignName, err)
		}
		periods[i].SubPeriods = subs
		markPeaksAndTone(&periods[i], peakSign, opts.Tone)
		for j := range periods[i].SubPeriods {
			markPeaksAndTone(&periods[i].SubPeriods[j], peakSign, opts.Tone)
		}
	}

	return &ZRTimeline{Lot: anchor, PeakSign: peakSign, Periods: periods}, nil
}

// markPeaksAndTone flags angular periods and attaches tone scoring.
func markPeaksAndTone(p *ZRPeriod, peakSign astro.Sign, ctx *ToneContext) {
	offset := (int(p.Sign) - int(peakSign) + 12) % 12
	p.IsPeak = offset == 0 || offset == 3 || offset == 6 || offset == 9
	if ctx != nil {
		t := computeTone(p, *ctx)
		p.Tone = &t
	}
}

// computeTone rates a period by how its ruler sits with the chart's
// almuten, sect, and concurrent time-lords.
func computeTone(p *ZRPeriod, ctx ToneContext) Tone {
	score := 5.0
	valence := 0.0
	var reasons []string

	if ctx.Almuten != "" && p.Ruler == ctx.Almuten {
		score += 1.5
		valence += 1
		reasons = append(reasons, fmt.Sprintf("%s rules the period and is the chart almuten", p.Ruler))
	}
	if astro.InSect(p.Ruler, ctx.IsDay) {
		score += 1
		valence += 0.5
		reasons = append(reasons, fmt.Sprintf("%s belongs to the ruling sect", p.Ruler))
	} else if astro.PlanetSect(p.Ruler) != astro.SectCommon {
		valence -= 0.5
		reasons = append(reasons, fmt.Sprintf("%s is contrary to the sect in favor", p.Ruler))
	}
	if ctx.YearLord != "" && p.Ruler == ctx.YearLord {
		score += 1
		valence += 1
		reasons = append(reasons, fmt.Sprintf("%s is also the profection year lord", p.Ruler))
	}
	if ctx.FirdariaMajor != "" && p.Ruler == ctx.FirdariaMajor {
		score += 1
		valence += 1
		reasons = append(reasons, fmt.Sprintf("%s is also the firdaria major lord", p.Ruler))
	}
	if p.IsPeak {
		score += 1
		reasons = append(reasons, "angular to the releasing lot (peak period)")
	}
	if p.IsLB {
		valence -= 0.5
		reasons = append(reasons, "loosing of the bond transition")
	}

	intensity := "moderate"
	switch {
	case p.IsPeak:
		intensity = "high"
	case score < 5.5 && !p.IsLB:
		intensity = "low"
	}

	return Tone{Intensity: intensity, Valence: valence, Score: score, Reasons: reasons}
}
