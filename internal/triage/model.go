package triage

import (
	"github.com/pkg/errors"

	"vit-healthcare/internal/knowledge"
)

// Patient carries one request's worth of triage input. It is never persisted.
type Patient struct {
	Age                int    `json:"age"`
	Sex                string `json:"sex"`
	Symptoms           string `json:"symptoms"`
	AdditionalSymptoms string `json:"additional_symptoms"`
}

// Outcome tags the terminal state of a pipeline evaluation.
type Outcome string

const (
	// OutcomeEscalate means the risk score crossed the escalation threshold
	// and the patient should seek urgent care. This is a valid business
	// decision, not an error.
	OutcomeEscalate Outcome = "escalate"
	// OutcomeRecommend means a knowledge-base condition matched.
	OutcomeRecommend Outcome = "recommend"
	// OutcomeUnavailable means the embedding service could not produce a
	// vector; callers should fall back to a human.
	OutcomeUnavailable Outcome = "unavailable"
)

// Match is the best-scoring search result. Record is nil when nothing in the
// index produced a strictly positive similarity.
type Match struct {
	Record     *knowledge.Record
	Similarity float64
}

// Decision is the outcome of evaluating a patient.
type Decision struct {
	Outcome Outcome
	Risk    int
	Reason  string
	Match   Match
}

// ErrNoMatch is returned when a well-formed query matched nothing in a
// populated index. Distinct from OutcomeUnavailable: the symptoms genuinely
// have no OTC recommendation.
var ErrNoMatch = errors.New("no matching condition found")
