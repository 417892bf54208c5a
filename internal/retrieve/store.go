package retrieve

import (
	"context"

	"github.com/asterion-dev/asterion/internal/model"
)

// Document is one corpus entry before indexing.
type Document struct {
	ID       string                 `json:"id" yaml:"id"`
	Content  string                 `json:"content" yaml:"content"`
	Metadata map[string]interface{} `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// VectorStore is the dense retrieval contract. Persistence is a
// backend concern; the core depends only on this interface.
type VectorStore interface {
	Search(ctx context.Context, vector []float64, topK int, filters map[string]string) ([]model.RetrievedDocument, error)
	Upsert(ctx context.Context, docs []Document) error
}

// SparseStore is the lexical retrieval contract.
type SparseStore interface {
	Search(ctx context.Context, query string, topK int, filters map[string]string) ([]model.RetrievedDocument, error)
	Upsert(ctx context.Context, docs []Document) error
}

// matchesFilters checks a document's metadata against string filters.
func matchesFilters(meta map[string]interface{}, filters map[string]string) bool {
	for k, want := range filters {
		got, ok := meta[k]
		if !ok {
			return false
		}
		s, ok := got.(string)
		if !ok || s != want {
			return false
		}
	}
	return true
}
