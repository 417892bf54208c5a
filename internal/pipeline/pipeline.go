package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asterion-dev/asterion/internal/cache"
	"github.com/asterion-dev/asterion/internal/chart"
	"github.com/asterion-dev/asterion/internal/ephemeris"
	"github.com/asterion-dev/asterion/internal/interpret"
	"github.com/asterion-dev/asterion/internal/llm"
	"github.com/asterion-dev/asterion/internal/metrics"
	"github.com/asterion-dev/asterion/internal/model"
	"github.com/asterion-dev/asterion/internal/retrieve"
)

// rough blended price per thousand tokens, used only as a relative
// cost signal for the degrade guardrail
const costPerThousandTokens = 0.002

// AnswerRequest is one question against one chart.
type AnswerRequest struct {
	Query  string
	Birth  model.BirthInput
	Mode   model.OutputMode
	Target time.Time
}

// Pipeline orchestrates the full answer flow:
// RETRIEVE -> COVERAGE_CHECK -> (AUGMENT, bounded) -> GENERATE ->
// QUALITY_FILTER -> RETURN, with the degrade decision consulted at
// entry and a clearly flagged fallback template when quality fails.
type Pipeline struct {
	cfg       model.Config
	builder   *chart.Builder
	engine    *interpret.Engine
	retriever *retrieve.HybridRetriever
	pool      *llm.Pool
	cache     cache.Cache
	recorder  *metrics.Recorder
	degrade   *DegradeEvaluator
	quality   *QualityFilter
	log       *zap.Logger
}

// NewPipeline wires the pipeline. Pool and cache may be nil: without a
// pool answers are composed deterministically from the interpretation,
// without a cache every request recomputes.
func NewPipeline(cfg model.Config, eph ephemeris.Provider, retriever *retrieve.HybridRetriever, pool *llm.Pool, c cache.Cache, rec *metrics.Recorder, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	if rec == nil {
		rec = metrics.NewRecorder(cfg.Degrade.WindowSize)
	}
	return &Pipeline{
		cfg:       cfg,
		builder:   chart.NewBuilder(eph, cfg.Chart, log),
		engine:    interpret.NewEngine(log),
		retriever: retriever,
		pool:      pool,
		cache:     c,
		recorder:  rec,
		degrade:   NewDegradeEvaluator(cfg.Degrade, rec),
		quality:   NewQualityFilter(cfg.Quality),
		log:       log,
	}
}

// Recorder exposes the shared metrics recorder.
func (p *Pipeline) Recorder() *metrics.Recorder {
	return p.recorder
}

// Interpret builds and interprets one chart. Satisfies the batch
// worker's Interpreter interface.
func (p *Pipeline) Interpret(ctx context.Context, birth model.BirthInput, mode model.OutputMode) (*model.Interpretation, error) {
	data, err := p.builder.Build(ctx, birth, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return p.engine.InterpretChart(data, mode)
}

// Answer runs the full evidence-backed answer flow for one request.
func (p *Pipeline) Answer(ctx context.Context, req AnswerRequest) (*model.AnswerPayload, error) {
	requestID := uuid.NewString()
	if req.Target.IsZero() {
		req.Target = time.Now().UTC()
	}
	if req.Mode == "" {
		req.Mode = model.ModeNatal
	}

	// Degrade decision at pipeline entry.
	decision := p.degrade.Evaluate()
	topK := p.cfg.Retrieval.TopK
	retrievalTimeout := p.cfg.Retrieval.Timeout
	skipRevision := false
	if decision.Active {
		p.recorder.Inc("degrade_active")
		if v, ok := decision.RAGOverrides["top_k"].(int); ok {
			topK = v
		}
		if f, ok := decision.RAGOverrides["timeout_factor"].(float64); ok && f > 0 && f < 1 {
			retrievalTimeout = time.Duration(float64(retrievalTimeout) * f)
		}
		if v, ok := decision.LLMOverrides["skip_revision"].(bool); ok {
			skipRevision = v
		}
		p.log.Info("degrade policy active",
			zap.Strings("reasons", decision.Reasons),
			zap.String("request_id", requestID))
	}

	// Cache consult.
	fingerprint := fmt.Sprintf("%s|%s|%.4f|%.4f|%s|%s",
		req.Birth.Date, req.Birth.Time, req.Birth.Lat, req.Birth.Lon,
		req.Mode, req.Target.Format("2006-01-02"))
	key := cache.Key(req.Query, fingerprint)
	if p.cache != nil && p.cfg.Cache.Enabled {
		if raw, found := p.cache.Get(key); found {
			var cached model.AnswerPayload
			if err := json.Unmarshal(raw, &cached); err == nil {
				p.recorder.Inc("cache_hit")
				cached.Cached = true
				return &cached, nil
			}
		}
		p.recorder.Inc("cache_miss")
	}

	// Deterministic chart work first; its failures are the caller's
	// problem, not the retrieval stack's.
	data, err := p.builder.Build(ctx, req.Birth, req.Target)
	if err != nil {
		return nil, fmt.Errorf("chart computation: %w", err)
	}
	interp, err := p.engine.InterpretChart(data, req.Mode)
	if err != nil {
		return nil, fmt.Errorf("interpretation: %w", err)
	}

	// RETRIEVE and COVERAGE_CHECK, with bounded augmentation.
	docs, coverage := p.retrieveWithCoverage(ctx, req, topK, retrievalTimeout, decision)

	// GENERATE.
	payload, err := p.generate(ctx, req, interp, docs, coverage, skipRevision)
	if err != nil {
		return nil, err
	}

	payload.RequestID = requestID
	payload.Confidence = combineConfidence(payload, interp, coverage)
	payload.CreatedAt = time.Now().UTC()
	if data.IsFallback {
		payload.GuardrailNotes = append(payload.GuardrailNotes, "ephemeris fallback positions in use")
	}
	if !coverage.Pass {
		payload.GuardrailNotes = append(payload.GuardrailNotes, coverage.Issues...)
	}

	if p.cache != nil && p.cfg.Cache.Enabled && !payload.IsFallback {
		if raw, err := json.Marshal(payload); err == nil {
			_ = p.cache.Set(key, raw, p.cfg.Cache.TTL)
		}
	}

	return payload, nil
}

// retrieveWithCoverage runs hybrid retrieval, evaluates coverage, and
// augments with missing-topic queries up to the configured retry
// bound. An active degrade decision short-circuits augmentation.
func (p *Pipeline) retrieveWithCoverage(ctx context.Context, req AnswerRequest, topK int, timeout time.Duration, decision model.DegradeDecision) ([]model.RetrievedDocument, model.CoverageReport) {
	required := RequiredTopics(req.Query, req.Mode)

	docs := p.timedRetrieve(ctx, req.Query, topK, timeout)
	coverage := EvaluateCoverage(docs, required, p.cfg.Retrieval.CoverageThreshold)

	augmentAllowed := !decision.Active || decision.RAGOverrides["multi_hop"] != false
	retries := p.cfg.Retrieval.MaxAugmentRetries
	for attempt := 0; !coverage.Pass && augmentAllowed && attempt < retries; attempt++ {
		extra := p.timedRetrieve(ctx, augmentQuery(req.Query, coverage.Issues), topK, timeout)
		docs = mergeDocs(docs, extra, topK*2)
		coverage = EvaluateCoverage(docs, required, p.cfg.Retrieval.CoverageThreshold)
	}

	if !coverage.Pass {
		p.recorder.Inc("coverage_failed")
		p.log.Debug("coverage gate failed",
			zap.Float64("score", coverage.Score),
			zap.Strings("issues", coverage.Issues))
	}
	return docs, coverage
}

// timedRetrieve runs one retrieval call under its own deadline,
// recording latency. Backend failure reads as zero documents.
func (p *Pipeline) timedRetrieve(ctx context.Context, query string, topK int, timeout time.Duration) []model.RetrievedDocument {
	rctx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		rctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	docs, err := p.retriever.Retrieve(rctx, query, topK, nil)
	p.recorder.ObserveLatency(MetricRAGLatency, time.Since(start))
	if err != nil {
		p.recorder.Inc("retrieval_error")
		p.log.Warn("retrieval failed", zap.Error(err))
		return nil
	}
	return docs
}

// generate produces the answer: through the provider pool when one is
// configured, deterministically from the interpretation otherwise.
// Quality failures earn one revision pass, then the fallback template.
func (p *Pipeline) generate(ctx context.Context, req AnswerRequest, interp *model.Interpretation, docs []model.RetrievedDocument, coverage model.CoverageReport, skipRevision bool) (*model.AnswerPayload, error) {
	if p.pool == nil || !p.cfg.LLM.Enabled {
		return p.composeDeterministic(req, interp, docs), nil
	}
	if len(docs) == 0 {
		p.recorder.Inc("quality_fallback")
		return BuildFallbackAnswer(req.Query, interp, docs, "no_evidence_retrieved"), nil
	}

	allowed := map[string]bool{}
	for _, d := range docs {
		allowed[d.SourceID] = true
	}

	prompt := llm.BuildAnswerPrompt(req.Query, interp, docs)
	resp, err := p.pool.Generate(ctx, llm.GenerateRequest{
		Prompt:    prompt,
		MaxTokens: p.cfg.LLM.MaxTokens,
	})
	if err != nil {
		// All providers down is a pipeline-level failure, distinct
		// from a quality fallback.
		return nil, fmt.Errorf("generation: %w", err)
	}
	p.recordCost(resp.TokensUsed)

	parsed := llm.ParseAnswer(resp.Content, allowed)
	payload := payloadFromParse(req.Query, parsed, resp)

	alignment := AlignClaims(payload, docs, p.cfg.Quality.AlignmentThreshold)
	issues := p.quality.Check(payload, alignment)
	if len(issues) == 0 {
		return payload, nil
	}

	if !skipRevision {
		revised, rerr := p.pool.Generate(ctx, llm.GenerateRequest{
			Prompt:    llm.BuildRevisionPrompt(resp.Content, issues),
			MaxTokens: p.cfg.LLM.MaxTokens,
		})
		if rerr == nil {
			p.recordCost(revised.TokensUsed)
			parsed = llm.ParseAnswer(revised.Content, allowed)
			payload = payloadFromParse(req.Query, parsed, revised)
			alignment = AlignClaims(payload, docs, p.cfg.Quality.AlignmentThreshold)
			if issues = p.quality.Check(payload, alignment); len(issues) == 0 {
				return payload, nil
			}
		}
	}

	p.recorder.Inc("quality_fallback")
	p.log.Info("quality filter failed, using fallback template",
		zap.Strings("issues", issues))
	return BuildFallbackAnswer(req.Query, interp, docs, strings.Join(issues, "; ")), nil
}

// composeDeterministic renders the interpretation directly, citing the
// retrieved documents that back it.
func (p *Pipeline) composeDeterministic(req AnswerRequest, interp *model.Interpretation, docs []model.RetrievedDocument) *model.AnswerPayload {
	var b strings.Builder
	b.WriteString(interp.Summary)
	for _, s := range interp.Sections {
		b.WriteString("\n\n" + s.Text)
	}

	var citations []model.Citation
	for _, d := range docs {
		citations = append(citations, model.Citation{SourceID: d.SourceID})
	}

	return &model.AnswerPayload{
		Query:     req.Query,
		Content:   b.String(),
		Citations: citations,
	}
}

// payloadFromParse assembles the payload from a parse result, carrying
// repair notes into the guardrail notes.
func payloadFromParse(query string, parsed llm.ParseResult, resp *llm.GenerateResponse) *model.AnswerPayload {
	payload := &model.AnswerPayload{
		Query:       query,
		Content:     parsed.Answer.Content,
		Citations:   parsed.Answer.Citations,
		WasRepaired: parsed.Repaired,
		Model:       resp.Model,
		TokensUsed:  resp.TokensUsed,
	}
	for _, note := range parsed.RepairNotes {
		payload.GuardrailNotes = append(payload.GuardrailNotes, "parser: "+note)
	}
	return payload
}

// recordCost feeds the cost guardrail window.
func (p *Pipeline) recordCost(tokens int) {
	p.recorder.Observe(MetricAnswerCost, float64(tokens)/1000*costPerThousandTokens)
}

// combineConfidence blends interpretation confidence with coverage.
func combineConfidence(payload *model.AnswerPayload, interp *model.Interpretation, coverage model.CoverageReport) float64 {
	if payload.IsFallback {
		return payload.Confidence
	}
	c := interp.OverallConfidence*0.7 + coverage.Score*0.3
	if payload.WasRepaired {
		c *= 0.9
	}
	if c > 1 {
		c = 1
	}
	return c
}

// augmentQuery extends the query with the bare topic names from the
// coverage issues; the "missing topic:" prefix is report prose, not a
// search term.
func augmentQuery(query string, issues []string) string {
	terms := []string{query}
	for _, issue := range issues {
		topic := strings.TrimPrefix(issue, "missing topic: ")
		terms = append(terms, strings.ReplaceAll(topic, "_", " "))
	}
	return strings.Join(terms, " ")
}

// mergeDocs deduplicates by source id, keeping the higher score, and
// caps the merged list.
func mergeDocs(a, b []model.RetrievedDocument, limit int) []model.RetrievedDocument {
	seen := map[string]int{}
	out := make([]model.RetrievedDocument, 0, len(a)+len(b))
	for _, d := range a {
		seen[d.SourceID] = len(out)
		out = append(out, d)
	}
	for _, d := range b {
		if idx, ok := seen[d.SourceID]; ok {
			if d.Score > out[idx].Score {
				out[idx] = d
			}
			continue
		}
		seen[d.SourceID] = len(out)
		out = append(out, d)
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
