package pipeline

import (
	"fmt"
	"strings"

	"github.com/asterion-dev/asterion/internal/model"
)

// topicKeywords maps each chart topic to the query words that imply it.
var topicKeywords = map[string][]string{
	"almuten":            {"almuten", "strongest planet", "figuris"},
	"zodiacal_releasing": {"releasing", "zodiacal", "peak", "loosing", "bond", "chapter"},
	"profection":         {"profection", "year lord", "annual", "this year"},
	"firdaria":           {"firdaria", "major lord", "minor lord"},
	"antiscia":           {"antiscia", "contra-antiscia", "mirror", "shadow point"},
	"fixed_stars":        {"star", "regulus", "aldebaran", "antares", "fomalhaut", "algol", "spica"},
	"dignity":            {"dignity", "exalt", "detriment", "fall", "domicile", "rulership"},
	"sect":               {"sect", "day chart", "night chart", "diurnal", "nocturnal"},
	"lots":               {"lot of", "fortune", "spirit"},
}

// RequiredTopics derives the chart topics a query is expected to touch.
// Nothing matching falls back to a mode default so coverage always has
// a denominator.
func RequiredTopics(query string, mode model.OutputMode) []string {
	lower := strings.ToLower(query)
	var topics []string
	for topic, words := range topicKeywords {
		for _, w := range words {
			if strings.Contains(lower, w) {
				topics = append(topics, topic)
				break
			}
		}
	}
	if len(topics) > 0 {
		return topics
	}
	if mode == model.ModeTiming || mode == model.ModeToday {
		return []string{"zodiacal_releasing", "profection", "firdaria"}
	}
	return []string{"almuten", "dignity"}
}

// EvaluateCoverage scores how well retrieved documents span the
// required topics: matched over required, with missing topics named.
func EvaluateCoverage(docs []model.RetrievedDocument, required []string, threshold float64) model.CoverageReport {
	report := model.CoverageReport{Topics: required}
	if len(required) == 0 {
		report.Score = 1
		report.Pass = true
		return report
	}

	covered := map[string]bool{}
	for _, doc := range docs {
		if topic, ok := doc.Metadata["topic"].(string); ok {
			covered[topic] = true
			continue
		}
		// Untagged documents count through keyword presence.
		lower := strings.ToLower(doc.Content)
		for topic, words := range topicKeywords {
			for _, w := range words {
				if strings.Contains(lower, w) {
					covered[topic] = true
					break
				}
			}
		}
	}

	matched := 0
	for _, topic := range required {
		if covered[topic] {
			matched++
		} else {
			report.Issues = append(report.Issues, fmt.Sprintf("missing topic: %s", topic))
		}
	}

	report.Score = float64(matched) / float64(len(required))
	report.Pass = report.Score >= threshold
	return report
}
