package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asterion-dev/asterion/internal/model"
	"github.com/asterion-dev/asterion/internal/pipeline"
)

var (
	interpretMode  string
	interpretQuery string
	llmEnabled     bool
	llmModel       string
	llmBaseURL     string
)

// interpretCmd represents the interpret command
var interpretCmd = &cobra.Command{
	Use:   "interpret",
	Short: "Interpret a chart, optionally answering a question with cited sources",
	Long: `Interpret runs the full engine: chart computation, evidence scoring,
and interpretation. With --query it also runs hybrid retrieval, the
coverage gate, and (with --llm) citation-checked generation.

Example:
  asterion interpret --date 1990-01-01 --lat 40.71 --lon -74.00 --mode natal
  asterion interpret --date 1990-01-01 --lat 40.71 --lon -74.00 --mode timing \
    --query "what does the current releasing period emphasize?"
  asterion interpret --date 1990-01-01 --lat 40.71 --lon -74.00 \
    --query "career outlook this year" --llm --llm-model gpt-4o-mini`,
	RunE: runInterpret,
}

func init() {
	rootCmd.AddCommand(interpretCmd)

	addBirthFlags(interpretCmd)
	interpretCmd.Flags().StringVar(&interpretMode, "mode", "natal", "output mode (natal, timing, today)")
	interpretCmd.Flags().StringVar(&interpretQuery, "query", "", "question to answer with retrieved evidence")
	interpretCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")

	// LLM flags
	interpretCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM answer generation")
	interpretCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
	interpretCmd.Flags().StringVar(&llmBaseURL, "llm-base-url", "", "OpenAI-compatible base URL override")
}

func runInterpret(cmd *cobra.Command, args []string) error {
	birth, target, err := birthFromFlags()
	if err != nil {
		return err
	}

	cfg := loadConfig()
	if llmEnabled {
		cfg.LLM.Enabled = true
		if len(cfg.LLM.Providers) == 0 {
			apiKey := os.Getenv("OPENAI_API_KEY")
			if apiKey == "" && llmBaseURL == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
			cfg.LLM.Providers = []model.LLMProviderConfig{{
				Name:    "openai",
				Model:   llmModel,
				APIKey:  apiKey,
				BaseURL: llmBaseURL,
			}}
		}
	}

	log := buildLogger(verbose)
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	p, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}

	mode := model.OutputMode(interpretMode)

	if interpretQuery == "" {
		interp, err := p.Interpret(ctx, birth, mode)
		if err != nil {
			return fmt.Errorf("interpret failed: %w", err)
		}
		return writeJSON(interp, outJSON)
	}

	answer, err := p.Answer(ctx, pipeline.AnswerRequest{
		Query:  interpretQuery,
		Birth:  birth,
		Mode:   mode,
		Target: target,
	})
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Confidence: %.2f\n", answer.Confidence)
		fmt.Fprintf(os.Stderr, "✓ Citations: %d\n", len(answer.Citations))
		if answer.IsFallback {
			fmt.Fprintf(os.Stderr, "! Fallback answer: %s\n", answer.FallbackReason)
		}
	}
	return writeJSON(answer, outJSON)
}
