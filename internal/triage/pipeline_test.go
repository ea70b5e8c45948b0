package triage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vit-healthcare/internal/knowledge"
)

// forbiddenEmbedder fails the test on any Embed call.
type forbiddenEmbedder struct {
	t *testing.T
}

func (f *forbiddenEmbedder) Embed(ctx context.Context, text string) []float64 {
	f.t.Fatal("embedding provider must not be called")
	return nil
}

func (f *forbiddenEmbedder) Degraded() bool { return false }

func testIndex() *Index {
	return NewIndex([]knowledge.Record{
		{Condition: "Common Cold", GenericName: "Phenylephrine", Embedding: []float64{1, 0}},
		{Condition: "Flu", Embedding: []float64{0, 1}},
	})
}

func TestEvaluateEscalationShortCircuits(t *testing.T) {
	p := NewPipeline(testIndex(), &forbiddenEmbedder{t: t})

	decision, err := p.Evaluate(context.Background(), Patient{
		Age:      70,
		Sex:      "male",
		Symptoms: "chest pain and bleeding",
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeEscalate, decision.Outcome)
	assert.GreaterOrEqual(t, decision.Risk, EscalationThreshold)
	assert.Nil(t, decision.Match.Record)
}

func TestEvaluateAtThresholdEscalates(t *testing.T) {
	p := NewPipeline(testIndex(), &forbiddenEmbedder{t: t})

	// bleeding(4) + male(1) = 5 -> exactly 50
	decision, err := p.Evaluate(context.Background(), Patient{
		Age:      30,
		Sex:      "male",
		Symptoms: "bleeding gums",
	})

	require.NoError(t, err)
	assert.Equal(t, 50, decision.Risk)
	assert.Equal(t, OutcomeEscalate, decision.Outcome)
}

func TestEvaluateDegradedProviderIsUnavailable(t *testing.T) {
	p := NewPipeline(testIndex(), &fakeEmbedder{degraded: true})

	decision, err := p.Evaluate(context.Background(), Patient{
		Age:      30,
		Sex:      "female",
		Symptoms: "runny nose",
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeUnavailable, decision.Outcome)
	assert.Equal(t, "embedding unavailable", decision.Reason)
}

func TestEvaluateNilEmbeddingIsUnavailable(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{}}
	p := NewPipeline(testIndex(), emb)

	decision, err := p.Evaluate(context.Background(), Patient{
		Age:      30,
		Sex:      "female",
		Symptoms: "runny nose",
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeUnavailable, decision.Outcome)
	assert.Equal(t, 1, emb.calls)
}

func TestEvaluateRecommendsBestMatch(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"runny nose and sneezing": {0.9, 0.1},
	}}
	p := NewPipeline(testIndex(), emb)

	decision, err := p.Evaluate(context.Background(), Patient{
		Age:                30,
		Sex:                "female",
		Symptoms:           "runny nose",
		AdditionalSymptoms: "and sneezing",
	})

	require.NoError(t, err)
	assert.Equal(t, OutcomeRecommend, decision.Outcome)
	require.NotNil(t, decision.Match.Record)
	assert.Equal(t, "Common Cold", decision.Match.Record.Condition)
	assert.InDelta(t, 0.994, decision.Match.Similarity, 0.001)
	assert.Equal(t, 0, decision.Risk)
}

func TestEvaluateNoMatchIsAnError(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float64{
		"runny nose": {1, 0},
	}}
	// All record embeddings nil: nothing can score above zero.
	p := NewPipeline(NewIndex([]knowledge.Record{{Condition: "Flu"}}), emb)

	_, err := p.Evaluate(context.Background(), Patient{
		Age:      30,
		Sex:      "female",
		Symptoms: "runny nose",
	})

	assert.ErrorIs(t, err, ErrNoMatch)
}
