package retrieve

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/asterion-dev/asterion/internal/model"
)

// MemoryVectorStore is the in-memory reference implementation of
// VectorStore: hash-projection vectors ranked by cosine similarity.
type MemoryVectorStore struct {
	mu       sync.RWMutex
	embedder Embedder
	docs     map[string]Document
	vectors  map[string][]float64
}

// NewMemoryVectorStore builds an empty store over the given embedder.
func NewMemoryVectorStore(embedder Embedder) *MemoryVectorStore {
	return &MemoryVectorStore{
		embedder: embedder,
		docs:     make(map[string]Document),
		vectors:  make(map[string][]float64),
	}
}

// Upsert indexes or replaces documents by ID.
func (s *MemoryVectorStore) Upsert(_ context.Context, docs []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range docs {
		s.docs[d.ID] = d
		s.vectors[d.ID] = s.embedder.Embed(d.Content)
	}
	return nil
}

// Search ranks all stored documents by cosine similarity to the query
// vector.
func (s *MemoryVectorStore) Search(_ context.Context, vector []float64, topK int, filters map[string]string) ([]model.RetrievedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []model.RetrievedDocument
	for id, doc := range s.docs {
		if !matchesFilters(doc.Metadata, filters) {
			continue
		}
		score := cosine(vector, s.vectors[id])
		if score <= 0 {
			continue
		}
		hits = append(hits, model.RetrievedDocument{
			SourceID: id,
			Content:  doc.Content,
			Score:    score,
			Method:   model.MethodDense,
			Metadata: doc.Metadata,
		})
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// Len reports how many documents are indexed.
func (s *MemoryVectorStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// MemorySparseStore is the in-memory reference implementation of
// SparseStore: TF-IDF scoring with length normalization.
type MemorySparseStore struct {
	mu   sync.RWMutex
	docs map[string]Document
	// term -> docID -> term frequency
	index map[string]map[string]int
	// docID -> token count
	lengths map[string]int
}

// NewMemorySparseStore builds an empty lexical store.
func NewMemorySparseStore() *MemorySparseStore {
	return &MemorySparseStore{
		docs:    make(map[string]Document),
		index:   make(map[string]map[string]int),
		lengths: make(map[string]int),
	}
}

// Upsert indexes or replaces documents by ID.
func (s *MemorySparseStore) Upsert(_ context.Context, docs []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range docs {
		// Drop stale postings when replacing.
		if _, exists := s.docs[d.ID]; exists {
			for term, postings := range s.index {
				delete(postings, d.ID)
				if len(postings) == 0 {
					delete(s.index, term)
				}
			}
		}
		s.docs[d.ID] = d
		tokens := tokenize(d.Content)
		s.lengths[d.ID] = len(tokens)
		for _, tok := range tokens {
			if s.index[tok] == nil {
				s.index[tok] = make(map[string]int)
			}
			s.index[tok][d.ID]++
		}
	}
	return nil
}

// Search scores documents by summed TF-IDF over the query terms.
func (s *MemorySparseStore) Search(_ context.Context, query string, topK int, filters map[string]string) ([]model.RetrievedDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := float64(len(s.docs))
	if n == 0 {
		return nil, nil
	}

	scores := map[string]float64{}
	for _, term := range tokenize(query) {
		postings, ok := s.index[term]
		if !ok {
			continue
		}
		idf := math.Log(1 + n/float64(len(postings)))
		for docID, tf := range postings {
			length := s.lengths[docID]
			if length == 0 {
				continue
			}
			scores[docID] += (float64(tf) / float64(length)) * idf
		}
	}

	var hits []model.RetrievedDocument
	for docID, score := range scores {
		doc := s.docs[docID]
		if !matchesFilters(doc.Metadata, filters) {
			continue
		}
		hits = append(hits, model.RetrievedDocument{
			SourceID: docID,
			Content:  doc.Content,
			Score:    score,
			Method:   model.MethodSparse,
			Metadata: doc.Metadata,
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return strings.Compare(hits[i].SourceID, hits[j].SourceID) < 0
	})
	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}
