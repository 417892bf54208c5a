package model

import "time"

// Citation ties an answer sentence back to a retrieved source.
type Citation struct {
	SourceID string `json:"source_id"`
	Snippet  string `json:"snippet,omitempty"`
}

// AnswerPayload is the final product of the answer pipeline. The caller
// always receives either a fully formed payload (possibly fallback
// content, clearly flagged) or a structured error, never a partial one.
type AnswerPayload struct {
	RequestID      string     `json:"request_id"`
	Query          string     `json:"query"`
	Content        string     `json:"content"`
	Citations      []Citation `json:"citations,omitempty"`
	Confidence     float64    `json:"confidence"`
	IsFallback     bool       `json:"is_fallback"`
	FallbackReason string     `json:"fallback_reason,omitempty"`
	GuardrailNotes []string   `json:"guardrail_notes,omitempty"`
	WasRepaired    bool       `json:"was_repaired,omitempty"`
	Model          string     `json:"model,omitempty"`
	TokensUsed     int        `json:"tokens_used,omitempty"`
	Cached         bool       `json:"cached,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ClaimAlignment scores one claim sentence against cited documents.
type ClaimAlignment struct {
	Sentence  string  `json:"sentence"`
	Score     float64 `json:"score"`
	Supported bool    `json:"supported"`
}

// AlignmentReport is the claim-to-evidence verification verdict for a
// whole answer.
type AlignmentReport struct {
	Score          float64          `json:"score"`
	SupportedRatio float64          `json:"supported_ratio"`
	Reason         string           `json:"reason,omitempty"`
	Claims         []ClaimAlignment `json:"claims,omitempty"`
}
