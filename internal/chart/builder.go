package chart

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/asterion-dev/asterion/internal/astro"
	"github.com/asterion-dev/asterion/internal/calc"
	"github.com/asterion-dev/asterion/internal/ephemeris"
	"github.com/asterion-dev/asterion/internal/model"
)

// ChartData is the full deterministic output for one chart and target
// date: positions plus every calculator's result. Immutable once built.
type ChartData struct {
	Birth     model.BirthInput `json:"birth"`
	Timestamp time.Time        `json:"timestamp"`
	Target    time.Time        `json:"target"`

	Points     []astro.Point `json:"points"`
	Ascendant  astro.Point   `json:"ascendant"`
	IsDay      bool          `json:"is_day"`
	IsFallback bool          `json:"is_fallback"`

	Lots       calc.Lots                `json:"lots"`
	Almuten    calc.AlmutenResult       `json:"almuten"`
	ZR         *calc.ZRTimeline         `json:"zr"`
	Profection calc.ProfectionResult    `json:"profection"`
	Monthly    []calc.MonthlyProfection `json:"monthly_profections"`
	Firdaria   *calc.FirdariaResult     `json:"firdaria"`

	Aspects          []calc.AspectContact   `json:"aspects,omitempty"`
	AntisciaContacts []calc.AntisciaContact `json:"antiscia_contacts,omitempty"`
	StarContacts     []calc.StarContact     `json:"star_contacts,omitempty"`
	MidpointContacts []calc.MidpointContact `json:"midpoint_contacts,omitempty"`
	TransitContacts  []calc.TransitContact  `json:"transit_contacts,omitempty"`
}

// Builder orchestrates the calculators over one ephemeris position set.
type Builder struct {
	eph ephemeris.Provider
	cfg model.ChartConfig
	log *zap.Logger
}

// NewBuilder wires a chart builder. A nil logger defaults to nop.
func NewBuilder(eph ephemeris.Provider, cfg model.ChartConfig, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{eph: eph, cfg: cfg, log: log}
}

// Build validates the input, fetches positions, and runs every
// calculator. The independent calculators fan out in parallel and join
// before tone scoring, which needs the almuten, profection, and
// firdaria results.
func (b *Builder) Build(ctx context.Context, birth model.BirthInput, target time.Time) (*ChartData, error) {
	if err := birth.Validate(); err != nil {
		return nil, err
	}
	ts, err := birth.Timestamp()
	if err != nil {
		return nil, err
	}

	positions, err := b.eph.Positions(ctx, birth.Lat, birth.Lon, ts)
	if err != nil {
		return nil, fmt.Errorf("ephemeris positions: %w", err)
	}
	if positions.IsFallback {
		b.log.Debug("ephemeris fallback in use", zap.Time("timestamp", ts))
	}

	data := &ChartData{
		Birth:      birth,
		Timestamp:  ts,
		Target:     target,
		Ascendant:  astro.NewPoint("Ascendant", positions.Ascendant),
		IsDay:      positions.IsDay,
		IsFallback: positions.IsFallback,
	}

	for _, p := range []astro.Planet{astro.Sun, astro.Moon, astro.Mercury, astro.Venus, astro.Mars, astro.Jupiter, astro.Saturn} {
		pos, ok := positions.Planets[p]
		if !ok {
			return nil, fmt.Errorf("ephemeris returned no position for %s", p)
		}
		data.Points = append(data.Points, astro.NewPoint(string(p), pos.LonDeg))
	}

	speeds := make(map[astro.Planet]float64, len(positions.Planets))
	for body, pos := range positions.Planets {
		speeds[body] = pos.SpeedDegPerDay
	}

	transitPositions, err := b.eph.Positions(ctx, birth.Lat, birth.Lon, target)
	if err != nil {
		return nil, fmt.Errorf("transit positions: %w", err)
	}
	var transitPoints []astro.Point
	transitSpeeds := make(map[astro.Planet]float64, len(transitPositions.Planets))
	for body, pos := range transitPositions.Planets {
		transitPoints = append(transitPoints, astro.NewPoint(string(body), pos.LonDeg))
		transitSpeeds[body] = pos.SpeedDegPerDay
	}

	sunLon := positions.Planets[astro.Sun].LonDeg
	moonLon := positions.Planets[astro.Moon].LonDeg
	data.Lots = calc.ComputeLots(sunLon, moonLon, positions.Ascendant, positions.IsDay)

	almutenPoints := append(append([]astro.Point{}, data.Points...),
		data.Ascendant, data.Lots.Spirit, data.Lots.Fortune)

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		data.Almuten = calc.NewAlmutenCalculator(b.almutenPriority()).Compute(almutenPoints, positions.IsDay)
		return nil
	})
	g.Go(func() error {
		data.Profection = calc.CalculateProfection(ts, positions.Ascendant, target)
		data.Monthly = calc.CalculateMonthlyProfections(data.Profection)
		return nil
	})
	g.Go(func() error {
		fir, err := calc.CalculateFirdaria(ts, positions.IsDay)
		if err != nil {
			return fmt.Errorf("firdaria: %w", err)
		}
		data.Firdaria = fir
		return nil
	})
	g.Go(func() error {
		data.Aspects = calc.CalculateAspects(data.Points, speeds, b.cfg.AspectOrb)
		return nil
	})
	g.Go(func() error {
		natalTargets := append(append([]astro.Point{}, data.Points...), data.Ascendant)
		data.TransitContacts = calc.CalculateTransits(natalTargets, transitPoints, transitSpeeds, b.cfg.TransitOrb)
		return nil
	})
	g.Go(func() error {
		data.AntisciaContacts = calc.CalculateAntisciaContacts(data.Points, b.cfg.AntisciaOrb)
		return nil
	})
	g.Go(func() error {
		data.StarContacts = calc.CalculateStarContacts(data.Points, astro.StarCatalog, b.cfg.StarOrb)
		return nil
	})
	g.Go(func() error {
		data.MidpointContacts = calc.CalculateSunMoonMidpointContacts(sunLon, moonLon, almutenPoints, b.cfg.MidpointOrb)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	tone := &calc.ToneContext{
		Almuten:  data.Almuten.Winner,
		YearLord: data.Profection.YearLord,
		IsDay:    positions.IsDay,
	}
	if lord, ok := data.Firdaria.MajorLordAt(target); ok {
		tone.FirdariaMajor = lord
	}

	zr, err := calc.ComputeZRTimeline(sunLon, moonLon, positions.Ascendant, positions.IsDay, ts, calc.TimelineOptions{
		FromLot:      calc.LotName(b.cfg.ZRFromLot),
		PeakLot:      calc.LotName(b.cfg.ZRPeakLot),
		HorizonYears: b.cfg.ZRHorizonYears,
		Tone:         tone,
	})
	if err != nil {
		return nil, fmt.Errorf("zodiacal releasing: %w", err)
	}
	data.ZR = zr

	b.log.Debug("chart built",
		zap.String("almuten", string(data.Almuten.Winner)),
		zap.Int("zr_periods", len(zr.Periods)),
		zap.Bool("fallback", data.IsFallback))

	return data, nil
}

// almutenPriority maps configured planet names to the tie-break order,
// skipping unknown names.
func (b *Builder) almutenPriority() []astro.Planet {
	var out []astro.Planet
	for _, name := range b.cfg.AlmutenPriority {
		p := astro.Planet(name)
		switch p {
		case astro.Sun, astro.Moon, astro.Mercury, astro.Venus, astro.Mars, astro.Jupiter, astro.Saturn:
			out = append(out, p)
		}
	}
	return out
}

// ActiveZRPeriods returns the level 1 and level 2 periods containing
// the target date, if any.
func (c *ChartData) ActiveZRPeriods() (l1, l2 *calc.ZRPeriod) {
	if c.ZR == nil {
		return nil, nil
	}
	for i := range c.ZR.Periods {
		p := &c.ZR.Periods[i]
		if !c.Target.Before(p.Start) && c.Target.Before(p.End) {
			l1 = p
			for j := range p.SubPeriods {
				sp := &p.SubPeriods[j]
				if !c.Target.Before(sp.Start) && c.Target.Before(sp.End) {
					l2 = sp
					break
				}
			}
			break
		}
	}
	return l1, l2
}
