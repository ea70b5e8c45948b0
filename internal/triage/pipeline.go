package triage

import (
	"context"
	"strings"
)

// Pipeline orchestrates risk scoring and semantic matching. State flow:
// score the risk first; at or above the threshold escalate without any
// embedding work; otherwise embed the symptom text and search the index.
type Pipeline struct {
	index    *Index
	embedder Embedder
}

func NewPipeline(index *Index, embedder Embedder) *Pipeline {
	return &Pipeline{
		index:    index,
		embedder: embedder,
	}
}

// Evaluate runs the triage decision for one patient. It reads only the
// prebuilt index and the embedding client; it performs no other side effects,
// so concurrent calls are safe.
func (p *Pipeline) Evaluate(ctx context.Context, patient Patient) (Decision, error) {
	risk := Score(patient.Age, patient.Sex, patient.Symptoms, patient.AdditionalSymptoms)

	// Hard short-circuit for patient safety: no embedding call at or above
	// the threshold.
	if risk >= EscalationThreshold {
		return Decision{Outcome: OutcomeEscalate, Risk: risk}, nil
	}

	if p.embedder.Degraded() {
		return Decision{Outcome: OutcomeUnavailable, Risk: risk, Reason: "embedding unavailable"}, nil
	}

	query := strings.TrimSpace(patient.Symptoms + " " + patient.AdditionalSymptoms)
	vec := p.embedder.Embed(ctx, query)
	if vec == nil {
		return Decision{Outcome: OutcomeUnavailable, Risk: risk, Reason: "embedding unavailable"}, nil
	}

	match := p.index.Search(vec)
	if match.Record == nil {
		return Decision{}, ErrNoMatch
	}

	return Decision{Outcome: OutcomeRecommend, Risk: risk, Match: match}, nil
}
