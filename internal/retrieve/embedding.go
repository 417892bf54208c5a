package retrieve

import (
	"hash/fnv"
	"math"
	"strings"
)

// EmbeddingDim is the fixed dimensionality of the hash-projection
// embedding space.
const EmbeddingDim = 256

// Embedder turns text into a dense vector.
type Embedder interface {
	Embed(text string) []float64
}

// HashEmbedder is a deterministic local embedder: each token hashes to
// a dimension and a sign, the result is L2-normalized. No model weights
// and no network, which keeps retrieval reproducible in tests and
// standalone runs.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder builds an embedder; dim <= 0 uses EmbeddingDim.
func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = EmbeddingDim
	}
	return &HashEmbedder{dim: dim}
}

// Embed projects the text's tokens into the hash space.
func (e *HashEmbedder) Embed(text string) []float64 {
	vec := make([]float64, e.dim)
	for _, tok := range tokenize(text) {
		h := fnv.New32a()
		h.Write([]byte(tok))
		sum := h.Sum32()
		idx := int(sum) % e.dim
		if idx < 0 {
			idx += e.dim
		}
		sign := 1.0
		if sum&1 == 1 {
			sign = -1.0
		}
		vec[idx] += sign
	}

	norm := 0.0
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// cosine returns the cosine similarity of two equal-length vectors.
func cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	dot, na, nb := 0.0, 0.0, 0.0
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// tokenize lowercases and splits on non-letter, non-digit runs.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9')
	})
}
