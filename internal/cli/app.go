package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/asterion-dev/asterion/internal/cache"
	"github.com/asterion-dev/asterion/internal/ephemeris"
	"github.com/asterion-dev/asterion/internal/llm"
	"github.com/asterion-dev/asterion/internal/metrics"
	"github.com/asterion-dev/asterion/internal/model"
	"github.com/asterion-dev/asterion/internal/pipeline"
	"github.com/asterion-dev/asterion/internal/retrieve"
	"github.com/asterion-dev/asterion/internal/worker"
)

// loadConfig resolves defaults, the config file, and environment.
func loadConfig() model.Config {
	cfg := model.DefaultConfig()
	_ = viper.Unmarshal(&cfg)
	cfg.Output.Verbose = verbose
	return cfg
}

// buildLogger returns a zap logger matching the verbosity level.
func buildLogger(verbose bool) *zap.Logger {
	zcfg := zap.NewProductionConfig()
	if verbose {
		zcfg = zap.NewDevelopmentConfig()
	}
	log, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

// corpusPath is where ingested documents accumulate between runs.
func corpusPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".asterion", "corpus.yaml")
}

// buildPipeline wires the full answer pipeline: fallback ephemeris,
// in-memory retrieval stores seeded with the built-in corpus plus any
// ingested documents, the provider pool when enabled, and the cache.
func buildPipeline(ctx context.Context, cfg model.Config, log *zap.Logger) (*pipeline.Pipeline, error) {
	embedder := retrieve.NewHashEmbedder(retrieve.EmbeddingDim)
	vector := retrieve.NewMemoryVectorStore(embedder)
	sparse := retrieve.NewMemorySparseStore()

	docs := retrieve.SeedDocuments()
	if path := corpusPath(); path != "" {
		if extra, err := retrieve.LoadCorpusFile(path); err == nil {
			docs = append(docs, extra...)
		}
	}
	if err := retrieve.Ingest(ctx, vector, sparse, docs); err != nil {
		return nil, fmt.Errorf("seed corpus: %w", err)
	}

	limiter := worker.NewLimiter(10, 5)
	retriever := retrieve.NewHybridRetriever(vector, sparse, embedder, limiter, cfg.Retrieval, log)

	var pool *llm.Pool
	if cfg.LLM.Enabled {
		providers := make([]llm.Provider, 0, len(cfg.LLM.Providers))
		for _, pc := range cfg.LLM.Providers {
			if pc.APIKey == "" {
				pc.APIKey = os.Getenv("OPENAI_API_KEY")
			}
			providers = append(providers, llm.NewOpenAIProvider(pc, cfg.LLM.Timeout))
		}
		if len(providers) == 0 {
			return nil, fmt.Errorf("llm enabled but no providers configured")
		}
		pool = llm.NewPool(providers, cfg.LLM.Cooldown, log)
	}

	var answerCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			answerCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			answerCache = cache.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.TTL)
		}
	}

	rec := metrics.NewRecorder(cfg.Degrade.WindowSize)
	eph := ephemeris.NewMeanMotionProvider()

	return pipeline.NewPipeline(cfg, eph, retriever, pool, answerCache, rec, log), nil
}
