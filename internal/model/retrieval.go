package model

// RetrievalMethod names how a document was found.
type RetrievalMethod string

const (
	MethodDense  RetrievalMethod = "dense"
	MethodSparse RetrievalMethod = "sparse"
	MethodHybrid RetrievalMethod = "hybrid"
	MethodKG     RetrievalMethod = "kg"
	MethodSQL    RetrievalMethod = "sql"
)

// RetrievedDocument is one scored retrieval hit. Ephemeral, per-query.
type RetrievedDocument struct {
	SourceID string                 `json:"source_id"`
	Content  string                 `json:"content"`
	Score    float64                `json:"score"`
	Method   RetrievalMethod        `json:"method"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// CoverageReport says whether retrieved evidence spans the chart topics
// the query touches.
type CoverageReport struct {
	Score  float64  `json:"score"`
	Pass   bool     `json:"pass"`
	Issues []string `json:"issues,omitempty"`
	Topics []string `json:"topics,omitempty"`
}

// DegradeDecision is the process-wide load-shedding verdict, recomputed
// per evaluation from the current metrics snapshot.
type DegradeDecision struct {
	Active       bool                   `json:"active"`
	Reasons      []string               `json:"reasons,omitempty"`
	RAGOverrides map[string]interface{} `json:"rag_overrides,omitempty"`
	LLMOverrides map[string]interface{} `json:"llm_overrides,omitempty"`
	CostActions  map[string]interface{} `json:"cost_actions,omitempty"`
	Flags        map[string]bool        `json:"flags,omitempty"`
}
