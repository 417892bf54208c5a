package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/asterion-dev/asterion/internal/model"
	"github.com/asterion-dev/asterion/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	batchMode    string
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Interpret multiple charts from a file in parallel",
	Long: `Batch interprets multiple charts concurrently:
- Read birth inputs from a YAML file (list of date/time/lat/lon entries)
- Interpret charts in parallel with a configurable worker count
- Write one JSON interpretation per chart

Example:
  asterion batch births.yaml
  asterion batch births.yaml --concurrency 8 --output-dir ./readings --mode timing`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./asterion-readings", "output directory for interpretations")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().StringVar(&batchMode, "mode", "natal", "output mode (natal, timing, today)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	log := buildLogger(verbose)
	defer func() { _ = log.Sync() }()

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	p, err := buildPipeline(ctx, cfg, log)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, concurrency)

	fmt.Fprintf(os.Stderr, "⚙️  Reading birth inputs from %s...\n", file)
	results, err := processor.ProcessFile(ctx, file, model.OutputMode(batchMode))
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0

	for i, result := range results {
		label := result.Birth.Name
		if label == "" {
			label = result.Birth.Date
		}

		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", label, result.Error)
			continue
		}
		successCount++

		raw, err := json.MarshalIndent(result.Interpretation, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: marshal: %v\n", label, err)
			continue
		}
		path := filepath.Join(outputDir, fmt.Sprintf("%03d-%s.json", i+1, sanitizeFilename(label)))
		if err := os.WriteFile(path, raw, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: write: %v\n", label, err)
			continue
		}
		fmt.Fprintf(os.Stderr, "✓ %s (confidence %.2f)\n", label, result.Interpretation.OverallConfidence)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d, success: %d, failures: %d, output: %s\n",
		len(results), successCount, failureCount, outputDir)

	return nil
}

// sanitizeFilename sanitizes a string for use as a filename
func sanitizeFilename(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			out = append(out, r)
		case r == ' ':
			out = append(out, '-')
		default:
			out = append(out, '_')
		}
	}
	if len(out) > 100 {
		out = out[:100]
	}
	return string(out)
}
