package model

// EvidenceType classifies where a piece of evidence came from.
type EvidenceType string

const (
	EvidenceDignity    EvidenceType = "dignity"
	EvidenceAspect     EvidenceType = "aspect"
	EvidenceAlmuten    EvidenceType = "almuten"
	EvidenceZRPeriod   EvidenceType = "zr_period"
	EvidenceProfection EvidenceType = "profection"
	EvidenceFirdaria   EvidenceType = "firdaria"
	EvidenceAntiscia   EvidenceType = "antiscia"
	EvidenceMidpoint   EvidenceType = "midpoint"
)

// Evidence is one typed, weighted observation supporting an element.
// The multiplier map keeps the scoring transparent: final score is
// always base times the product of every recorded multiplier.
type Evidence struct {
	Type        EvidenceType       `json:"type"`
	Element     string             `json:"element"`
	Description string             `json:"description"`
	BaseScore   float64            `json:"base_score"`
	Multipliers map[string]float64 `json:"multipliers,omitempty"`
	FinalScore  float64            `json:"final_score"`
	Orb         *float64           `json:"orb,omitempty"`
	IsApplying  *bool              `json:"is_applying,omitempty"`
}

// InterpretationPriority buckets elements by aggregate score.
type InterpretationPriority string

const (
	PriorityMain       InterpretationPriority = "main"
	PriorityStrong     InterpretationPriority = "strong"
	PriorityBackground InterpretationPriority = "background"
	PriorityDrop       InterpretationPriority = "drop"
)

// ElementScore aggregates all evidence for one element (a planet or
// time-lord) into a ranked total with confidence.
type ElementScore struct {
	Element    string                 `json:"element"`
	TotalScore float64                `json:"total_score"`
	Evidence   []Evidence             `json:"evidence"`
	Confidence float64                `json:"confidence"`
	Priority   InterpretationPriority `json:"interpretation_priority"`
}
