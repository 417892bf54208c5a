package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asterion-dev/asterion/internal/cache"
	"github.com/asterion-dev/asterion/internal/ephemeris"
	"github.com/asterion-dev/asterion/internal/llm"
	"github.com/asterion-dev/asterion/internal/model"
	"github.com/asterion-dev/asterion/internal/retrieve"
)

type scriptedProvider struct {
	responses []string
	err       error
	calls     int
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) Generate(context.Context, llm.GenerateRequest) (*llm.GenerateResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	idx := s.calls - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return &llm.GenerateResponse{Content: s.responses[idx], Model: "scripted", TokensUsed: 100}, nil
}

func (s *scriptedProvider) IsAvailable(context.Context) bool { return s.err == nil }

func testBirth() model.BirthInput {
	return model.BirthInput{Date: "1990-06-15", Time: "14:30", Lat: 40.71, Lon: -74.00}
}

func testConfig() model.Config {
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	return cfg
}

func newTestPipeline(t *testing.T, cfg model.Config, pool *llm.Pool, c cache.Cache) *Pipeline {
	t.Helper()
	embedder := retrieve.NewHashEmbedder(0)
	vector := retrieve.NewMemoryVectorStore(embedder)
	sparse := retrieve.NewMemorySparseStore()
	require.NoError(t, retrieve.Ingest(context.Background(), vector, sparse, retrieve.SeedDocuments()))

	retriever := retrieve.NewHybridRetriever(vector, sparse, embedder, nil, cfg.Retrieval, nil)
	return NewPipeline(cfg, ephemeris.NewMeanMotionProvider(), retriever, pool, c, nil, nil)
}

func TestPipelineInterpret(t *testing.T) {
	p := newTestPipeline(t, testConfig(), nil, nil)

	interp, err := p.Interpret(context.Background(), testBirth(), model.ModeNatal)
	require.NoError(t, err)

	assert.NotEmpty(t, interp.Summary)
	assert.NotEmpty(t, interp.Sections)
	assert.Greater(t, interp.OverallConfidence, 0.0)
	assert.LessOrEqual(t, interp.OverallConfidence, 1.0)
	// The mean-motion ephemeris always flags approximate positions.
	assert.NotEmpty(t, interp.Warnings)
}

func TestPipelineInterpretRejectsBadInput(t *testing.T) {
	p := newTestPipeline(t, testConfig(), nil, nil)

	_, err := p.Interpret(context.Background(), model.BirthInput{Date: "not-a-date"}, model.ModeNatal)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestPipelineAnswerDeterministic(t *testing.T) {
	p := newTestPipeline(t, testConfig(), nil, nil)

	payload, err := p.Answer(context.Background(), AnswerRequest{
		Query: "what is the almuten and its dignity?",
		Birth: testBirth(),
		Mode:  model.ModeNatal,
	})
	require.NoError(t, err)

	assert.False(t, payload.IsFallback)
	assert.NotEmpty(t, payload.Content)
	assert.NotEmpty(t, payload.Citations, "deterministic answers cite the retrieved passages")
	assert.NotEmpty(t, payload.RequestID)
	assert.Greater(t, payload.Confidence, 0.0)
	assert.Contains(t, payload.GuardrailNotes, "ephemeris fallback positions in use")
}

func TestPipelineAnswerWithLLM(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.Enabled = true
	cfg.Quality.MinAnswerChars = 20
	cfg.Quality.MinSupportedRatio = 0.3

	provider := &scriptedProvider{responses: []string{
		`{"content": "The almuten figuris is the planet with the greatest essential dignity across the principal places of the chart.", "citations": [{"source_id": "almuten-overview", "snippet": "greatest essential dignity"}]}`,
	}}
	pool := llm.NewPool([]llm.Provider{provider}, time.Minute, nil)
	p := newTestPipeline(t, cfg, pool, nil)

	payload, err := p.Answer(context.Background(), AnswerRequest{
		Query: "what is my almuten figuris?",
		Birth: testBirth(),
		Mode:  model.ModeNatal,
	})
	require.NoError(t, err)

	assert.False(t, payload.IsFallback)
	assert.False(t, payload.WasRepaired)
	assert.Equal(t, "scripted", payload.Model)
	assert.Contains(t, payload.Content, "almuten figuris")
	require.NotEmpty(t, payload.Citations)
	assert.Equal(t, "almuten-overview", payload.Citations[0].SourceID)
	assert.Equal(t, 1, provider.calls, "a passing answer needs no revision")
}

func TestPipelineAnswerRevisionThenFallback(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.Enabled = true

	// Both the original and the revision are too short and uncited.
	provider := &scriptedProvider{responses: []string{"bad.", "still bad."}}
	pool := llm.NewPool([]llm.Provider{provider}, time.Minute, nil)
	p := newTestPipeline(t, cfg, pool, nil)

	payload, err := p.Answer(context.Background(), AnswerRequest{
		Query: "what is my almuten figuris?",
		Birth: testBirth(),
		Mode:  model.ModeNatal,
	})
	require.NoError(t, err)

	assert.True(t, payload.IsFallback)
	assert.NotEmpty(t, payload.FallbackReason)
	assert.Equal(t, 2, provider.calls, "one revision pass, then the template")
}

func TestPipelineAnswerProviderFailureIsAnError(t *testing.T) {
	cfg := testConfig()
	cfg.LLM.Enabled = true

	provider := &scriptedProvider{err: errors.New("backend down")}
	pool := llm.NewPool([]llm.Provider{provider}, time.Minute, nil)
	p := newTestPipeline(t, cfg, pool, nil)

	_, err := p.Answer(context.Background(), AnswerRequest{
		Query: "what is my almuten figuris?",
		Birth: testBirth(),
		Mode:  model.ModeNatal,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrAllProvidersFailed)
}

func TestPipelineAnswerCacheRoundTrip(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = true
	cfg.Cache.TTL = time.Minute

	c := cache.NewMemoryCache(time.Minute, time.Minute)
	p := newTestPipeline(t, cfg, nil, c)

	req := AnswerRequest{
		Query:  "what is the almuten and its dignity?",
		Birth:  testBirth(),
		Mode:   model.ModeNatal,
		Target: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	first, err := p.Answer(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := p.Answer(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Content, second.Content)
}

func TestPipelineAnswerRejectsBadInput(t *testing.T) {
	p := newTestPipeline(t, testConfig(), nil, nil)

	_, err := p.Answer(context.Background(), AnswerRequest{
		Query: "anything",
		Birth: model.BirthInput{Date: "1990-06-15", Lat: 200},
	})
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestAugmentQueryStripsIssueProse(t *testing.T) {
	q := augmentQuery("career outlook", []string{
		"missing topic: zodiacal_releasing",
		"missing topic: profection",
	})

	assert.Equal(t, "career outlook zodiacal releasing profection", q)
	assert.NotContains(t, q, "missing topic")
}

func TestMergeDocs(t *testing.T) {
	a := []model.RetrievedDocument{
		{SourceID: "x", Score: 0.5},
		{SourceID: "y", Score: 0.4},
	}
	b := []model.RetrievedDocument{
		{SourceID: "x", Score: 0.9},
		{SourceID: "z", Score: 0.3},
	}

	out := mergeDocs(a, b, 10)
	require.Len(t, out, 3)
	assert.Equal(t, 0.9, out[0].Score, "duplicate keeps the higher score")

	capped := mergeDocs(a, b, 2)
	assert.Len(t, capped, 2)
}

func TestCombineConfidence(t *testing.T) {
	interp := &model.Interpretation{OverallConfidence: 0.8}
	coverage := model.CoverageReport{Score: 0.5}

	clean := combineConfidence(&model.AnswerPayload{}, interp, coverage)
	assert.InDelta(t, 0.8*0.7+0.5*0.3, clean, 1e-9)

	repaired := combineConfidence(&model.AnswerPayload{WasRepaired: true}, interp, coverage)
	assert.InDelta(t, clean*0.9, repaired, 1e-9)

	fallback := combineConfidence(&model.AnswerPayload{IsFallback: true, Confidence: 0.3}, interp, coverage)
	assert.Equal(t, 0.3, fallback)
}
