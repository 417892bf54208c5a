package model

import "time"

// Config holds all runtime configuration, grouped by concern.
type Config struct {
	Chart     ChartConfig     `mapstructure:"chart" yaml:"chart"`
	Retrieval RetrievalConfig `mapstructure:"retrieval" yaml:"retrieval"`
	Degrade   DegradeConfig   `mapstructure:"degrade" yaml:"degrade"`
	Quality   QualityConfig   `mapstructure:"quality" yaml:"quality"`
	LLM       LLMConfig       `mapstructure:"llm" yaml:"llm"`
	Cache     CacheConfig     `mapstructure:"cache" yaml:"cache"`
	Output    OutputConfig    `mapstructure:"output" yaml:"output"`
}

// ChartConfig tunes the deterministic calculators.
type ChartConfig struct {
	// AlmutenPriority is the tie-break order when sect preference does
	// not resolve a shared top score.
	AlmutenPriority []string `mapstructure:"almuten_priority" yaml:"almuten_priority"`
	// ZRFromLot anchors the releasing timeline: "spirit" or "fortune".
	ZRFromLot string `mapstructure:"zr_from_lot" yaml:"zr_from_lot"`
	// ZRPeakLot is the lot peaks are measured against.
	ZRPeakLot string `mapstructure:"zr_peak_lot" yaml:"zr_peak_lot"`
	// ZRHorizonYears bounds level 1 period generation.
	ZRHorizonYears float64 `mapstructure:"zr_horizon_years" yaml:"zr_horizon_years"`
	// Orb limits in degrees.
	AntisciaOrb float64 `mapstructure:"antiscia_orb" yaml:"antiscia_orb"`
	StarOrb     float64 `mapstructure:"star_orb" yaml:"star_orb"`
	MidpointOrb float64 `mapstructure:"midpoint_orb" yaml:"midpoint_orb"`
	AspectOrb   float64 `mapstructure:"aspect_orb" yaml:"aspect_orb"`
	TransitOrb  float64 `mapstructure:"transit_orb" yaml:"transit_orb"`
}

// RetrievalConfig tunes the hybrid retriever and coverage gate.
type RetrievalConfig struct {
	TopK              int           `mapstructure:"top_k" yaml:"top_k"`
	Alpha             float64       `mapstructure:"alpha" yaml:"alpha"`
	AdaptiveAlpha     bool          `mapstructure:"adaptive_alpha" yaml:"adaptive_alpha"`
	CoverageThreshold float64       `mapstructure:"coverage_threshold" yaml:"coverage_threshold"`
	MaxAugmentRetries int           `mapstructure:"max_augment_retries" yaml:"max_augment_retries"`
	Timeout           time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// DegradeConfig tunes the load-shedding policy.
type DegradeConfig struct {
	LatencyP95Threshold time.Duration `mapstructure:"latency_p95_threshold" yaml:"latency_p95_threshold"`
	MinLatencySamples   int           `mapstructure:"min_latency_samples" yaml:"min_latency_samples"`
	MeanCostThreshold   float64       `mapstructure:"mean_cost_threshold" yaml:"mean_cost_threshold"`
	WindowSize          int           `mapstructure:"window_size" yaml:"window_size"`
	DegradedTopK        int           `mapstructure:"degraded_top_k" yaml:"degraded_top_k"`
	TimeoutFactor       float64       `mapstructure:"timeout_factor" yaml:"timeout_factor"`
}

// QualityConfig tunes the post-generation answer filter.
type QualityConfig struct {
	MinAnswerChars     int     `mapstructure:"min_answer_chars" yaml:"min_answer_chars"`
	RequireCitations   bool    `mapstructure:"require_citations" yaml:"require_citations"`
	AlignmentThreshold float64 `mapstructure:"alignment_threshold" yaml:"alignment_threshold"`
	MinSupportedRatio  float64 `mapstructure:"min_supported_ratio" yaml:"min_supported_ratio"`
}

// LLMProviderConfig describes one OpenAI-compatible endpoint in the pool.
type LLMProviderConfig struct {
	Name    string `mapstructure:"name" yaml:"name"`
	Model   string `mapstructure:"model" yaml:"model"`
	APIKey  string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url,omitempty"`
}

// LLMConfig holds the provider pool settings.
type LLMConfig struct {
	Enabled   bool                `mapstructure:"enabled" yaml:"enabled"`
	Providers []LLMProviderConfig `mapstructure:"providers" yaml:"providers"`
	Timeout   time.Duration       `mapstructure:"timeout" yaml:"timeout"`
	MaxTokens int                 `mapstructure:"max_tokens" yaml:"max_tokens"`
	Cooldown  time.Duration       `mapstructure:"cooldown" yaml:"cooldown"`
}

// CacheConfig holds semantic cache settings.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Dir     string        `mapstructure:"dir" yaml:"dir,omitempty"`
}

// OutputConfig holds presentation settings.
type OutputConfig struct {
	Verbose bool   `mapstructure:"verbose" yaml:"verbose"`
	Format  string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns sensible defaults for every section.
func DefaultConfig() Config {
	return Config{
		Chart: ChartConfig{
			AlmutenPriority: []string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn"},
			ZRFromLot:       "spirit",
			ZRPeakLot:       "spirit",
			ZRHorizonYears:  120,
			AntisciaOrb:     1.5,
			StarOrb:         1.0,
			MidpointOrb:     1.0,
			AspectOrb:       3.0,
			TransitOrb:      3.0,
		},
		Retrieval: RetrievalConfig{
			TopK:              8,
			Alpha:             0.6,
			AdaptiveAlpha:     true,
			CoverageThreshold: 0.6,
			MaxAugmentRetries: 2,
			Timeout:           10 * time.Second,
		},
		Degrade: DegradeConfig{
			LatencyP95Threshold: 3 * time.Second,
			MinLatencySamples:   20,
			MeanCostThreshold:   0.05,
			WindowSize:          256,
			DegradedTopK:        4,
			TimeoutFactor:       0.5,
		},
		Quality: QualityConfig{
			MinAnswerChars:     120,
			RequireCitations:   true,
			AlignmentThreshold: 0.3,
			MinSupportedRatio:  0.5,
		},
		LLM: LLMConfig{
			Enabled:   false,
			Timeout:   30 * time.Second,
			MaxTokens: 1200,
			Cooldown:  60 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Hour,
		},
		Output: OutputConfig{
			Verbose: false,
			Format:  "json",
		},
	}
}
