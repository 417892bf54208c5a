package interpret

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/asterion-dev/asterion/internal/astro"
	"github.com/asterion-dev/asterion/internal/calc"
	"github.com/asterion-dev/asterion/internal/chart"
	"github.com/asterion-dev/asterion/internal/model"
	"github.com/asterion-dev/asterion/internal/score"
)

// fallbackConfidencePenalty discounts charts built on approximate
// ephemeris positions.
const fallbackConfidencePenalty = 0.85

// Engine turns chart data into a ranked, evidence-backed
// interpretation.
type Engine struct {
	scorer *score.Scorer
	log    *zap.Logger
}

// NewEngine wires an interpretation engine. A nil logger defaults to nop.
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{scorer: score.NewScorer(), log: log}
}

// InterpretChart extracts evidence per the output mode, scores each
// element, and composes sections ordered by interpretation priority.
func (e *Engine) InterpretChart(data *chart.ChartData, mode model.OutputMode) (*model.Interpretation, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil chart data", model.ErrInvalidInput)
	}
	if mode == "" {
		mode = model.ModeNatal
	}

	evidence := e.extractEvidence(data, mode)

	byElement := map[string][]model.Evidence{}
	for _, ev := range evidence {
		byElement[ev.Element] = append(byElement[ev.Element], ev)
	}

	var elements []model.ElementScore
	for element, list := range byElement {
		elements = append(elements, e.scorer.CalculateElementScore(element, list))
	}
	sort.Slice(elements, func(i, j int) bool {
		return elements[i].TotalScore > elements[j].TotalScore
	})

	warnings := e.conflictWarnings(elements)
	if data.IsFallback {
		warnings = append(warnings, "planetary positions are mean-motion approximations; sign-level reading only")
	}

	interp := &model.Interpretation{
		Mode:            mode,
		EvidenceSummary: map[string]int{},
		Warnings:        warnings,
		Metadata: map[string]interface{}{
			"almuten":     string(data.Almuten.Winner),
			"is_day":      data.IsDay,
			"is_fallback": data.IsFallback,
			"year_lord":   string(data.Profection.YearLord),
			"target_date": data.Target.Format("2006-01-02"),
		},
	}
	for _, ev := range evidence {
		interp.EvidenceSummary[string(ev.Type)]++
	}

	totalWeight := 0.0
	weightedConfidence := 0.0
	for _, el := range elements {
		if el.Priority == model.PriorityDrop {
			continue
		}
		interp.Sections = append(interp.Sections, model.Section{
			Element:    el.Element,
			Priority:   el.Priority,
			Text:       composeSectionText(el),
			Score:      el.TotalScore,
			Confidence: el.Confidence,
		})
		if el.Priority == model.PriorityMain || el.Priority == model.PriorityStrong {
			interp.MainThemes = append(interp.MainThemes, el.Element)
		}
		totalWeight += el.TotalScore
		weightedConfidence += el.Confidence * el.TotalScore
	}

	sortSectionsByPriority(interp.Sections)

	if totalWeight > 0 {
		interp.OverallConfidence = weightedConfidence / totalWeight
	}
	if data.IsFallback {
		interp.OverallConfidence *= fallbackConfidencePenalty
	}
	if interp.OverallConfidence > 1 {
		interp.OverallConfidence = 1
	}

	interp.Summary = e.composeSummary(data, interp)

	e.log.Debug("interpretation composed",
		zap.String("mode", string(mode)),
		zap.Int("sections", len(interp.Sections)),
		zap.Float64("confidence", interp.OverallConfidence))

	return interp, nil
}

// extractEvidence pulls typed evidence from calculator outputs. Natal
// mode reads the static chart; timing mode reads the active time-lords;
// today mode adds the monthly profection on top of timing.
func (e *Engine) extractEvidence(data *chart.ChartData, mode model.OutputMode) []model.Evidence {
	var out []model.Evidence

	if mode == model.ModeNatal {
		for _, pt := range data.Points {
			planet := astro.Planet(pt.Name)
			out = append(out, e.scorer.ScoreDignity(planet, pt.Sign, pt.DegreeInSign, data.IsDay))
		}
		if data.Almuten.Winner != "" {
			out = append(out, e.scorer.ScoreAlmuten(data.Almuten, data.Almuten.Winner))
		}
		for _, c := range data.Aspects {
			out = append(out, e.scorer.ScoreAspect(c.A, c.B, c.Type, c.Orb, c.Applying, data.IsDay))
		}
		for _, c := range data.AntisciaContacts {
			out = append(out, e.scorer.ScoreAntisciaContact(c))
		}
		for _, c := range data.StarContacts {
			out = append(out, e.scorer.ScoreStarContact(c))
		}
		for _, c := range data.MidpointContacts {
			out = append(out, e.scorer.ScoreMidpointContact(c))
		}
		return out
	}

	// Timing and today modes read the active time-lord stack.
	if data.Almuten.Winner != "" {
		out = append(out, e.scorer.ScoreAlmuten(data.Almuten, data.Almuten.Winner))
	}
	if l1, l2 := data.ActiveZRPeriods(); l1 != nil {
		out = append(out, e.scorer.ScoreZRPeriod(*l1, data.IsDay))
		if l2 != nil {
			out = append(out, e.scorer.ScoreZRPeriod(*l2, data.IsDay))
		}
	}
	out = append(out, e.scorer.ScoreProfection(data.Profection, data.IsDay))
	for _, c := range data.TransitContacts {
		out = append(out, e.scorer.ScoreTransit(c, data.IsDay))
	}
	if data.Firdaria != nil {
		if lord, ok := data.Firdaria.MajorLordAt(data.Target); ok {
			out = append(out, e.scorer.ScoreFirdaria(lord, true, data.IsDay))
		}
		if lord, ok := data.Firdaria.MinorLordAt(data.Target); ok {
			out = append(out, e.scorer.ScoreFirdaria(lord, false, data.IsDay))
		}
	}

	if mode == model.ModeToday && len(data.Monthly) > 0 {
		// Month zero opens at the birth anniversary, not the calendar
		// year.
		monthIdx := calc.MonthsIntoProfectionYear(data.Timestamp, data.Target)
		if monthIdx < len(data.Monthly) {
			out = append(out, e.scorer.ScoreMonthlyProfection(data.Monthly[monthIdx], data.IsDay))
		}
	}

	return out
}

// conflictWarnings flags elements carrying both supportive and
// challenging evidence, noting which side the score favors.
func (e *Engine) conflictWarnings(elements []model.ElementScore) []string {
	var warnings []string
	for _, el := range elements {
		supportive, challenging := 0, 0
		for _, ev := range el.Evidence {
			if ev.FinalScore >= ev.BaseScore {
				supportive++
			} else {
				challenging++
			}
		}
		if supportive > 0 && challenging > 0 {
			side := "supportive"
			if challenging > supportive {
				side = "challenging"
			}
			warnings = append(warnings, fmt.Sprintf(
				"mixed evidence for %s: %d supportive, %d challenging; weight favors the %s side",
				el.Element, supportive, challenging, side))
		}
	}
	return warnings
}

var priorityRank = map[model.InterpretationPriority]int{
	model.PriorityMain:       0,
	model.PriorityStrong:     1,
	model.PriorityBackground: 2,
}

// sortSectionsByPriority orders sections main, strong, background,
// then by score within a tier.
func sortSectionsByPriority(sections []model.Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		ri, rj := priorityRank[sections[i].Priority], priorityRank[sections[j].Priority]
		if ri != rj {
			return ri < rj
		}
		return sections[i].Score > sections[j].Score
	})
}

// composeSectionText renders one element's evidence into prose.
func composeSectionText(el model.ElementScore) string {
	var lines []string
	for _, ev := range el.Evidence {
		lines = append(lines, ev.Description)
	}
	return fmt.Sprintf("%s (score %.1f): %s.", el.Element, el.TotalScore, strings.Join(lines, "; "))
}

// composeSummary writes the headline for an interpretation.
func (e *Engine) composeSummary(data *chart.ChartData, interp *model.Interpretation) string {
	sect := "Night"
	if data.IsDay {
		sect = "Day"
	}
	parts := []string{
		fmt.Sprintf("%s chart with %s as almuten figuris", sect, data.Almuten.Winner),
		fmt.Sprintf("age %d profection activates house %d (%s) under %s",
			data.Profection.Age, data.Profection.ProfectedHouse,
			data.Profection.SignName, data.Profection.YearLord),
	}
	if l1, _ := data.ActiveZRPeriods(); l1 != nil {
		desc := fmt.Sprintf("releasing from %s in a %s period", data.ZR.Lot.Name, l1.SignName)
		if l1.IsPeak {
			desc += " (peak)"
		}
		parts = append(parts, desc)
	}
	if len(interp.MainThemes) > 0 {
		parts = append(parts, fmt.Sprintf("dominant themes: %s", strings.Join(interp.MainThemes, ", ")))
	}
	return strings.Join(parts, ". ") + "."
}
