package calc

import (
	"fmt"

	"github.com/asterion-dev/asterion/internal/astro"
)

// Dignity point values for the Almuten tally.
const (
	pointsRulership  = 5
	pointsExaltation = 4
	pointsTriplicity = 3
	pointsTerm       = 2
	pointsFace       = 1

	penaltyDetriment = -4
	penaltyFall      = -3

	sectBonus = 1
)

// DefaultPriority is the tie-break order when sect preference does not
// resolve a shared top score: luminaries first, then the Chaldean
// descent through the remaining planets.
var DefaultPriority = []astro.Planet{
	astro.Sun, astro.Moon, astro.Mercury, astro.Venus,
	astro.Mars, astro.Jupiter, astro.Saturn,
}

// AlmutenResult reports the winning planet with the full per-planet
// tally so the outcome stays auditable.
type AlmutenResult struct {
	Winner         astro.Planet             `json:"winner,omitempty"`
	Scores         map[astro.Planet]float64 `json:"scores"`
	TieBreakReason string                   `json:"tie_break_reason,omitempty"`
	Diagnostics    map[string]interface{}   `json:"diagnostics,omitempty"`
}

// AlmutenCalculator tallies essential dignities across chart points to
// find the Almuten Figuris.
type AlmutenCalculator struct {
	priority []astro.Planet
}

// NewAlmutenCalculator builds a calculator with an optional tie-break
// priority order; nil uses DefaultPriority.
func NewAlmutenCalculator(priority []astro.Planet) *AlmutenCalculator {
	if len(priority) == 0 {
		priority = DefaultPriority
	}
	return &AlmutenCalculator{priority: priority}
}

// Compute scores every classical planet against the supplied points and
// picks the strongest. Zero points yields an empty winner, never an error.
func (a *AlmutenCalculator) Compute(points []astro.Point, isDay bool) AlmutenResult {
	scores := make(map[astro.Planet]float64, 7)
	contributions := make(map[string]interface{})

	for _, p := range []astro.Planet{astro.Sun, astro.Moon, astro.Mercury, astro.Venus, astro.Mars, astro.Jupiter, astro.Saturn} {
		scores[p] = 0
	}

	if len(points) == 0 {
		return AlmutenResult{Scores: scores}
	}

	for _, pt := range points {
		perPoint := map[string]float64{}

		add := func(p astro.Planet, pts float64, kind astro.Dignity) {
			scores[p] += pts
			perPoint[fmt.Sprintf("%s:%s", p, kind)] = pts
		}

		add(astro.Ruler(pt.Sign), pointsRulership, astro.DignityRulership)
		if ex, ok := astro.Exalted(pt.Sign); ok {
			add(ex, pointsExaltation, astro.DignityExaltation)
		}
		add(astro.TriplicityRuler(pt.Sign, isDay), pointsTriplicity, astro.DignityTriplicity)
		add(astro.TermRuler(pt.Sign, pt.DegreeInSign), pointsTerm, astro.DignityTerm)
		add(astro.FaceRuler(pt.Sign, pt.DegreeInSign), pointsFace, astro.DignityFace)

		for p := range scores {
			if astro.InDetriment(p, pt.Sign) {
				add(p, penaltyDetriment, astro.DignityDetriment)
			}
			if astro.InFall(p, pt.Sign) {
				add(p, penaltyFall, astro.DignityFall)
			}
		}

		contributions[pt.Name] = perPoint
	}

	// Sect bonus: each planet of the chart's ruling sect gets one point,
	// applied once so totals stay on the classical scale.
	for p := range scores {
		if astro.InSect(p, isDay) {
			scores[p] += sectBonus
		}
	}

	winner, reason := a.pickWinner(scores, isDay)

	return AlmutenResult{
		Winner:         winner,
		Scores:         scores,
		TieBreakReason: reason,
		Diagnostics: map[string]interface{}{
			"points_considered": len(points),
			"is_day":            isDay,
			"contributions":     contributions,
		},
	}
}

// pickWinner resolves the top score; ties fall first to the planet of
// the chart's sect, then to the configured priority order.
func (a *AlmutenCalculator) pickWinner(scores map[astro.Planet]float64, isDay bool) (astro.Planet, string) {
	best := -1e18
	var leaders []astro.Planet
	for _, p := range a.priority {
		s, ok := scores[p]
		if !ok {
			continue
		}
		switch {
		case s > best:
			best = s
			leaders = []astro.Planet{p}
		case s == best:
			leaders = append(leaders, p)
		}
	}

	if len(leaders) == 0 {
		return "", ""
	}
	if len(leaders) == 1 {
		return leaders[0], ""
	}

	var inSect []astro.Planet
	for _, p := range leaders {
		if astro.InSect(p, isDay) {
			inSect = append(inSect, p)
		}
	}
	if len(inSect) == 1 {
		return inSect[0], fmt.Sprintf("tie at %.1f broken by sect preference", best)
	}
	pool := leaders
	if len(inSect) > 1 {
		pool = inSect
	}

	// leaders preserve priority order, so the first entry wins.
	return pool[0], fmt.Sprintf("tie at %.1f broken by priority order (%v)", best, a.priority)
}
