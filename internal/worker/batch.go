package worker

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/asterion-dev/asterion/internal/model"
)

// Interpreter defines the interface for interpreting one chart
type Interpreter interface {
	Interpret(ctx context.Context, birth model.BirthInput, mode model.OutputMode) (*model.Interpretation, error)
}

// ChartJob represents one chart interpretation job
type ChartJob struct {
	Birth       model.BirthInput
	Mode        model.OutputMode
	Interpreter Interpreter
}

// Execute executes the chart job
func (j *ChartJob) Execute(ctx context.Context) Result {
	interp, err := j.Interpreter.Interpret(ctx, j.Birth, j.Mode)
	return &ChartResult{
		Birth:          j.Birth,
		Interpretation: interp,
		Error:          err,
	}
}

// ChartResult represents the result of a chart job
type ChartResult struct {
	Birth          model.BirthInput
	Interpretation *model.Interpretation
	Error          error
}

// GetError returns the error from the chart result
func (r *ChartResult) GetError() error {
	return r.Error
}

// BatchProcessor interprets multiple charts concurrently
type BatchProcessor struct {
	interpreter Interpreter
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(interpreter Interpreter, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		interpreter: interpreter,
		concurrency: concurrency,
	}
}

// ProcessBirths interprets multiple charts concurrently
func (b *BatchProcessor) ProcessBirths(ctx context.Context, births []model.BirthInput, mode model.OutputMode) []*ChartResult {
	if len(births) == 0 {
		return []*ChartResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, birth := range births {
		pool.Submit(&ChartJob{
			Birth:       birth,
			Mode:        mode,
			Interpreter: b.interpreter,
		})
	}

	results := pool.Wait()

	chartResults := make([]*ChartResult, len(results))
	for i, result := range results {
		chartResults[i] = result.(*ChartResult)
	}

	return chartResults
}

// ProcessFile reads birth inputs from a YAML file and interprets them
// concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string, mode model.OutputMode) ([]*ChartResult, error) {
	births, err := ReadBirthsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read births: %w", err)
	}

	return b.ProcessBirths(ctx, births, mode), nil
}

// ReadBirthsFromFile reads a YAML list of birth inputs, validating each
// entry before any work is queued
func ReadBirthsFromFile(filePath string) ([]model.BirthInput, error) {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	var births []model.BirthInput
	if err := yaml.Unmarshal(raw, &births); err != nil {
		return nil, fmt.Errorf("parse file: %w", err)
	}

	for i, b := range births {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	return births, nil
}
