package model

// OutputMode selects which calculator outputs dominate evidence
// extraction. Scoring formulas stay the same across modes.
type OutputMode string

const (
	ModeNatal  OutputMode = "natal"
	ModeTiming OutputMode = "timing"
	ModeToday  OutputMode = "today"
)

// Section is one composed interpretation block for a single element.
type Section struct {
	Element    string                 `json:"element"`
	Priority   InterpretationPriority `json:"priority"`
	Text       string                 `json:"text"`
	Score      float64                `json:"score"`
	Confidence float64                `json:"confidence"`
}

// Interpretation is the structured natural-language-ready output of the
// interpretation engine.
type Interpretation struct {
	Summary           string                 `json:"summary"`
	Mode              OutputMode             `json:"mode"`
	Sections          []Section              `json:"sections"`
	MainThemes        []string               `json:"main_themes,omitempty"`
	OverallConfidence float64                `json:"overall_confidence"`
	EvidenceSummary   map[string]int         `json:"evidence_summary,omitempty"`
	Warnings          []string               `json:"warnings,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
}
