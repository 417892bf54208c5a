package pipeline

import (
	"fmt"
	"strings"

	"github.com/asterion-dev/asterion/internal/model"
)

// QualityFilter runs the post-generation checks: length, citations,
// and claim alignment against the retrieved evidence.
type QualityFilter struct {
	cfg model.QualityConfig
}

// NewQualityFilter builds the filter from config.
func NewQualityFilter(cfg model.QualityConfig) *QualityFilter {
	return &QualityFilter{cfg: cfg}
}

// Check returns the list of issues; an empty list means the answer
// passes. The alignment report is attached by the caller for logging.
func (q *QualityFilter) Check(payload *model.AnswerPayload, alignment model.AlignmentReport) []string {
	var issues []string

	if len(strings.TrimSpace(payload.Content)) < q.cfg.MinAnswerChars {
		issues = append(issues, fmt.Sprintf("answer too short (min %d chars)", q.cfg.MinAnswerChars))
	}
	if q.cfg.RequireCitations && len(payload.Citations) == 0 {
		issues = append(issues, "no citations")
	}
	if alignment.Reason == "no_citations" {
		// Already covered by the citation check; nothing to align.
		return issues
	}
	if alignment.SupportedRatio < q.cfg.MinSupportedRatio {
		issues = append(issues, fmt.Sprintf(
			"claim support too low (%.2f of claims supported, need %.2f)",
			alignment.SupportedRatio, q.cfg.MinSupportedRatio))
	}
	return issues
}

// BuildFallbackAnswer composes the safe templated answer from the
// deterministic interpretation alone. Clearly flagged, never silent.
func BuildFallbackAnswer(query string, interp *model.Interpretation, docs []model.RetrievedDocument, reason string) *model.AnswerPayload {
	var b strings.Builder
	b.WriteString("Based on the computed chart alone:\n\n")
	if interp != nil {
		b.WriteString(interp.Summary)
		b.WriteString("\n")
		for _, s := range interp.Sections {
			if s.Priority == model.PriorityMain || s.Priority == model.PriorityStrong {
				b.WriteString("\n- " + s.Text)
			}
		}
	} else {
		b.WriteString("The chart could not be fully interpreted for this question.")
	}
	b.WriteString("\n\nRetrieved source material was insufficient to ground a fuller answer to: " + query)

	var citations []model.Citation
	for _, d := range docs {
		citations = append(citations, model.Citation{SourceID: d.SourceID})
	}

	confidence := 0.3
	if interp != nil {
		confidence = interp.OverallConfidence * 0.5
	}

	return &model.AnswerPayload{
		Query:          query,
		Content:        b.String(),
		Citations:      citations,
		Confidence:     confidence,
		IsFallback:     true,
		FallbackReason: reason,
	}
}
