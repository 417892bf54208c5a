package pipeline

import (
	"github.com/asterion-dev/asterion/internal/metrics"
	"github.com/asterion-dev/asterion/internal/model"
)

// Metric names shared between recording sites and the evaluator.
const (
	MetricRAGLatency = "rag_latency_seconds"
	MetricAnswerCost = "answer_cost_usd"
)

const (
	reasonLatency = "rag_latency_p95_exceeded"
	reasonCost    = "mean_cost_exceeded"
)

// DegradeEvaluator turns the rolling metrics window into a degrade
// decision. Stateless between calls; every evaluation reads the
// current snapshot.
type DegradeEvaluator struct {
	cfg model.DegradeConfig
	rec *metrics.Recorder
}

// NewDegradeEvaluator wires the evaluator to the shared recorder.
func NewDegradeEvaluator(cfg model.DegradeConfig, rec *metrics.Recorder) *DegradeEvaluator {
	return &DegradeEvaluator{cfg: cfg, rec: rec}
}

// Evaluate composes all trigger conditions. Reasons accumulate and
// overrides merge; a later trigger never removes an earlier one. The
// latency trigger holds off below the minimum sample count so a cold
// window cannot flap the policy.
func (d *DegradeEvaluator) Evaluate() model.DegradeDecision {
	decision := model.DegradeDecision{
		RAGOverrides: map[string]interface{}{},
		LLMOverrides: map[string]interface{}{},
		CostActions:  map[string]interface{}{},
		Flags:        map[string]bool{},
	}

	if d.rec.Count(MetricRAGLatency) >= d.cfg.MinLatencySamples {
		p95 := d.rec.Percentile(MetricRAGLatency, 95)
		if p95 > d.cfg.LatencyP95Threshold.Seconds() {
			decision.Active = true
			decision.Reasons = append(decision.Reasons, reasonLatency)
			decision.RAGOverrides["top_k"] = d.cfg.DegradedTopK
			decision.RAGOverrides["rerank"] = false
			decision.RAGOverrides["multi_hop"] = false
			decision.RAGOverrides["timeout_factor"] = d.cfg.TimeoutFactor
			decision.LLMOverrides["skip_revision"] = true
			decision.Flags["latency_degraded"] = true
		}
	}

	if d.rec.Count(MetricAnswerCost) > 0 {
		mean := d.rec.Mean(MetricAnswerCost)
		if mean > d.cfg.MeanCostThreshold {
			decision.Active = true
			decision.Reasons = append(decision.Reasons, reasonCost)
			decision.CostActions["reranker_candidates"] = d.cfg.DegradedTopK
			decision.Flags["cost_guardrail"] = true
		}
	}

	return decision
}
