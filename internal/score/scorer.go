package score

import (
	"fmt"
	"math"

	"github.com/asterion-dev/asterion/internal/astro"
	"github.com/asterion-dev/asterion/internal/calc"
	"github.com/asterion-dev/asterion/internal/model"
)

// Base scores per evidence kind. Almuten status outweighs everything
// else; time-lord periods sit between it and single contacts.
const (
	baseAlmuten    = 6.0
	baseZRPeriod   = 4.0
	baseProfection = 3.5
	baseFirdaria   = 3.5
	baseDignity    = 3.0
	baseAspect     = 3.0
	baseAntiscia   = 3.0
	baseMidpoint   = 3.0
)

// Multiplier constants. Each applied factor is recorded by name in the
// evidence's multiplier map so scoring stays auditable.
const (
	multRulership  = 1.3
	multExaltation = 1.15
	multTriplicity = 1.05
	multDetriment  = 0.85
	multFall       = 0.75
	multSect       = 1.2
	multApplying   = 1.1
	multL1Period   = 1.15
	multPeak       = 1.2
	multRoyalStar  = 1.15
)

// Interpretation priority thresholds on the aggregated element score.
const (
	thresholdMain       = 7.5
	thresholdStrong     = 6.0
	thresholdBackground = 4.5
)

// confirmationBonus rewards elements backed by three or more distinct
// pieces of evidence.
const (
	confirmationBonus    = 1.2
	confirmationMinCount = 3
)

// Scorer converts raw calculator output into weighted evidence.
type Scorer struct{}

// NewScorer creates a new scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// finalize computes the final score and assembles the Evidence record.
func finalize(t model.EvidenceType, element, desc string, base float64, mults map[string]float64) model.Evidence {
	final := base
	for _, m := range mults {
		final *= m
	}
	return model.Evidence{
		Type:        t,
		Element:     element,
		Description: desc,
		BaseScore:   base,
		Multipliers: mults,
		FinalScore:  final,
	}
}

// orbMultiplier rewards tight contacts: a partile contact scores a
// quarter above base, widening contacts decay toward a mild penalty.
func orbMultiplier(orb float64) float64 {
	switch {
	case orb <= 1:
		return 1.25
	case orb <= 3:
		return 1.1
	case orb <= 5:
		return 1.0
	default:
		return 0.9
	}
}

// ScoreDignity scores a planet's essential dignity standing in its sign.
func (s *Scorer) ScoreDignity(planet astro.Planet, sign astro.Sign, degreeInSign float64, isDay bool) model.Evidence {
	mults := map[string]float64{}

	for _, d := range astro.DignitiesAt(planet, sign, degreeInSign) {
		switch d {
		case astro.DignityRulership:
			mults["rulership"] = multRulership
		case astro.DignityExaltation:
			mults["exaltation"] = multExaltation
		case astro.DignityDetriment:
			mults["detriment"] = multDetriment
		case astro.DignityFall:
			mults["fall"] = multFall
		}
	}
	if astro.TriplicityRuler(sign, isDay) == planet {
		mults["triplicity"] = multTriplicity
	}
	if astro.InSect(planet, isDay) {
		mults["sect"] = multSect
	}

	desc := fmt.Sprintf("%s in %s", planet, sign)
	return finalize(model.EvidenceDignity, string(planet), desc, baseDignity, mults)
}

// ScoreAlmuten scores a planet's standing in the almuten tally. The
// winner carries full weight; others scale by their relative score.
func (s *Scorer) ScoreAlmuten(result calc.AlmutenResult, planet astro.Planet) model.Evidence {
	mults := map[string]float64{}

	if result.Winner != "" && planet != result.Winner {
		winnerScore := result.Scores[result.Winner]
		own := result.Scores[planet]
		ratio := 0.0
		if winnerScore > 0 && own > 0 {
			ratio = own / winnerScore
		}
		mults["relative_standing"] = math.Max(ratio, 0.1)
	}

	desc := fmt.Sprintf("%s almuten standing (score %.1f)", planet, result.Scores[planet])
	if planet == result.Winner {
		desc = fmt.Sprintf("%s is the almuten figuris (score %.1f)", planet, result.Scores[planet])
	}
	return finalize(model.EvidenceAlmuten, string(planet), desc, baseAlmuten, mults)
}

// ScoreZRPeriod scores an active releasing period for its ruler.
func (s *Scorer) ScoreZRPeriod(p calc.ZRPeriod, isDay bool) model.Evidence {
	mults := map[string]float64{}
	if p.Level == 1 {
		mults["l1_period"] = multL1Period
	}
	if p.IsPeak {
		mults["peak"] = multPeak
	}
	if astro.InSect(p.Ruler, isDay) {
		mults["sect"] = multSect
	}

	desc := fmt.Sprintf("L%d releasing period in %s ruled by %s", p.Level, p.SignName, p.Ruler)
	return finalize(model.EvidenceZRPeriod, string(p.Ruler), desc, baseZRPeriod, mults)
}

// ScoreProfection scores the year lord of the active profection.
func (s *Scorer) ScoreProfection(res calc.ProfectionResult, isDay bool) model.Evidence {
	mults := map[string]float64{}
	if astro.InSect(res.YearLord, isDay) {
		mults["sect"] = multSect
	}

	desc := fmt.Sprintf("age %d profection to house %d (%s), year lord %s",
		res.Age, res.ProfectedHouse, res.SignName, res.YearLord)
	return finalize(model.EvidenceProfection, string(res.YearLord), desc, baseProfection, mults)
}

// ScoreMonthlyProfection scores the lord of the active monthly
// sub-profection.
func (s *Scorer) ScoreMonthlyProfection(m calc.MonthlyProfection, isDay bool) model.Evidence {
	mults := map[string]float64{}
	if astro.InSect(m.MonthLord, isDay) {
		mults["sect"] = multSect
	}

	desc := fmt.Sprintf("month %d sub-profection to house %d (%s), month lord %s",
		m.MonthIndex, m.ProfectedHouse, m.SignName, m.MonthLord)
	return finalize(model.EvidenceProfection, string(m.MonthLord), desc, baseProfection, mults)
}

// ScoreFirdaria scores an active firdaria lord. Minor lords carry a
// reduced share of the major's weight.
func (s *Scorer) ScoreFirdaria(lord astro.Planet, isMajor, isDay bool) model.Evidence {
	mults := map[string]float64{}
	if isMajor {
		mults["major_period"] = multL1Period
	}
	if astro.InSect(lord, isDay) {
		mults["sect"] = multSect
	}

	level := "minor"
	if isMajor {
		level = "major"
	}
	desc := fmt.Sprintf("%s firdaria %s lord", lord, level)
	return finalize(model.EvidenceFirdaria, string(lord), desc, baseFirdaria, mults)
}

// ScoreAspect scores an aspect between two planets; the first-named
// planet is the element the evidence supports.
func (s *Scorer) ScoreAspect(a, b astro.Planet, aspect string, orb float64, applying bool, isDay bool) model.Evidence {
	mults := map[string]float64{
		"orb": orbMultiplier(orb),
	}
	if applying {
		mults["applying"] = multApplying
	}
	if astro.InSect(a, isDay) {
		mults["sect"] = multSect
	}

	desc := fmt.Sprintf("%s %s %s (orb %.2f)", a, aspect, b, orb)
	ev := finalize(model.EvidenceAspect, string(a), desc, baseAspect, mults)
	ev.Orb = &orb
	ev.IsApplying = &applying
	return ev
}

// ScoreTransit scores a transiting contact for the moving planet.
func (s *Scorer) ScoreTransit(c calc.TransitContact, isDay bool) model.Evidence {
	mults := map[string]float64{
		"orb": orbMultiplier(c.Orb),
	}
	if c.Applying {
		mults["applying"] = multApplying
	}
	if astro.InSect(c.Transiting, isDay) {
		mults["sect"] = multSect
	}

	desc := fmt.Sprintf("transiting %s %s natal %s (orb %.2f)", c.Transiting, c.Type, c.Natal, c.Orb)
	ev := finalize(model.EvidenceAspect, string(c.Transiting), desc, baseAspect, mults)
	orb := c.Orb
	ev.Orb = &orb
	applying := c.Applying
	ev.IsApplying = &applying
	return ev
}

// ScoreAntisciaContact scores a mirror-point contact for its original
// point.
func (s *Scorer) ScoreAntisciaContact(c calc.AntisciaContact) model.Evidence {
	mults := map[string]float64{
		"orb": orbMultiplier(c.Orb),
	}

	desc := fmt.Sprintf("%s %s contact to %s (orb %.2f)", c.Original, c.Type, c.Contacted, c.Orb)
	ev := finalize(model.EvidenceAntiscia, c.Original, desc, baseAntiscia, mults)
	orb := c.Orb
	ev.Orb = &orb
	return ev
}

// ScoreStarContact scores a fixed-star contact; royal stars weigh more.
func (s *Scorer) ScoreStarContact(c calc.StarContact) model.Evidence {
	mults := map[string]float64{
		"orb": orbMultiplier(c.Orb),
	}
	if c.Royal {
		mults["royal_star"] = multRoyalStar
	}

	desc := fmt.Sprintf("%s %s %s (orb %.2f)", c.Point, c.Type, c.Star, c.Orb)
	ev := finalize(model.EvidenceAntiscia, c.Point, desc, baseAntiscia, mults)
	orb := c.Orb
	ev.Orb = &orb
	return ev
}

// ScoreMidpointContact scores a point on the Sun/Moon midpoint axis.
func (s *Scorer) ScoreMidpointContact(c calc.MidpointContact) model.Evidence {
	mults := map[string]float64{
		"orb": orbMultiplier(c.Orb),
	}

	desc := fmt.Sprintf("%s on the %s midpoint (orb %.2f)", c.Point, c.Midpoint, c.Orb)
	ev := finalize(model.EvidenceMidpoint, c.Point, desc, baseMidpoint, mults)
	orb := c.Orb
	ev.Orb = &orb
	return ev
}

// CalculateElementScore aggregates all evidence for one element. Three
// or more distinct pieces earn the confirmation bonus; priority falls
// out of fixed thresholds on the total.
func (s *Scorer) CalculateElementScore(element string, evidence []model.Evidence) model.ElementScore {
	total := 0.0
	for _, ev := range evidence {
		total += ev.FinalScore
	}
	if len(evidence) >= confirmationMinCount {
		total *= confirmationBonus
	}

	var priority model.InterpretationPriority
	switch {
	case total >= thresholdMain:
		priority = model.PriorityMain
	case total >= thresholdStrong:
		priority = model.PriorityStrong
	case total >= thresholdBackground:
		priority = model.PriorityBackground
	default:
		priority = model.PriorityDrop
	}

	return model.ElementScore{
		Element:    element,
		TotalScore: total,
		Evidence:   evidence,
		Confidence: math.Min(total/10, 1),
		Priority:   priority,
	}
}
