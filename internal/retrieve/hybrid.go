package retrieve

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/asterion-dev/asterion/internal/model"
	"github.com/asterion-dev/asterion/internal/worker"
)

// HybridRetriever joins a dense and a sparse backend into one ranked
// result list. Either backend failing is recovered as an empty result
// set; only both failing yields nothing.
type HybridRetriever struct {
	vector   VectorStore
	sparse   SparseStore
	embedder Embedder
	limiter  *worker.Limiter
	cfg      model.RetrievalConfig
	log      *zap.Logger
}

// NewHybridRetriever wires the retriever. Limiter and logger may be nil.
func NewHybridRetriever(vector VectorStore, sparse SparseStore, embedder Embedder, limiter *worker.Limiter, cfg model.RetrievalConfig, log *zap.Logger) *HybridRetriever {
	if log == nil {
		log = zap.NewNop()
	}
	return &HybridRetriever{
		vector:   vector,
		sparse:   sparse,
		embedder: embedder,
		limiter:  limiter,
		cfg:      cfg,
		log:      log,
	}
}

// Retrieve runs dense and sparse search concurrently, joins them, and
// combines scores as alpha*dense + (1-alpha)*sparse over max-normalized
// per-backend scores. alphaOverride bypasses adaptive selection.
func (r *HybridRetriever) Retrieve(ctx context.Context, query string, topK int, alphaOverride *float64) ([]model.RetrievedDocument, error) {
	if topK <= 0 {
		topK = r.cfg.TopK
	}

	alpha := r.cfg.Alpha
	if alphaOverride != nil {
		alpha = *alphaOverride
	} else if r.cfg.AdaptiveAlpha {
		alpha = AdaptiveAlpha(query, r.cfg.Alpha)
	}

	var dense, sparse []model.RetrievedDocument

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := r.wait(gctx, "vector"); err != nil {
			return err
		}
		hits, err := r.vector.Search(gctx, r.embedder.Embed(query), topK*2, nil)
		if err != nil {
			// Fail open: the sparse side can still carry the query.
			r.log.Warn("dense backend failed", zap.Error(err))
			return nil
		}
		dense = hits
		return nil
	})
	g.Go(func() error {
		if err := r.wait(gctx, "sparse"); err != nil {
			return err
		}
		hits, err := r.sparse.Search(gctx, query, topK*2, nil)
		if err != nil {
			r.log.Warn("sparse backend failed", zap.Error(err))
			return nil
		}
		sparse = hits
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return combine(dense, sparse, alpha, topK), nil
}

// wait applies the per-backend rate limit when a limiter is configured.
func (r *HybridRetriever) wait(ctx context.Context, backend string) error {
	if r.limiter == nil {
		return nil
	}
	return r.limiter.Wait(ctx, backend)
}

// combine merges backend results into hybrid scores, deduplicated by
// source ID, sorted descending with dense score breaking ties.
func combine(dense, sparse []model.RetrievedDocument, alpha float64, topK int) []model.RetrievedDocument {
	denseNorm := maxScore(dense)
	sparseNorm := maxScore(sparse)

	type entry struct {
		doc        model.RetrievedDocument
		denseScore float64
	}
	merged := map[string]*entry{}

	for _, d := range dense {
		score := 0.0
		if denseNorm > 0 {
			score = d.Score / denseNorm
		}
		merged[d.SourceID] = &entry{
			doc: model.RetrievedDocument{
				SourceID: d.SourceID,
				Content:  d.Content,
				Score:    alpha * score,
				Method:   model.MethodHybrid,
				Metadata: d.Metadata,
			},
			denseScore: score,
		}
	}
	for _, s := range sparse {
		score := 0.0
		if sparseNorm > 0 {
			score = s.Score / sparseNorm
		}
		if e, ok := merged[s.SourceID]; ok {
			e.doc.Score += (1 - alpha) * score
			continue
		}
		merged[s.SourceID] = &entry{
			doc: model.RetrievedDocument{
				SourceID: s.SourceID,
				Content:  s.Content,
				Score:    (1 - alpha) * score,
				Method:   model.MethodHybrid,
				Metadata: s.Metadata,
			},
		}
	}

	entries := make([]*entry, 0, len(merged))
	for _, e := range merged {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].doc.Score != entries[j].doc.Score {
			return entries[i].doc.Score > entries[j].doc.Score
		}
		if entries[i].denseScore != entries[j].denseScore {
			return entries[i].denseScore > entries[j].denseScore
		}
		return entries[i].doc.SourceID < entries[j].doc.SourceID
	})

	out := make([]model.RetrievedDocument, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.doc)
	}
	if topK > 0 && len(out) > topK {
		out = out[:topK]
	}
	return out
}

func maxScore(docs []model.RetrievedDocument) float64 {
	max := 0.0
	for _, d := range docs {
		if d.Score > max {
			max = d.Score
		}
	}
	return max
}
