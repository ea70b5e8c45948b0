package triage

import "strings"

// EscalationThreshold is the risk score at or above which the pipeline
// short-circuits to escalation. Kept as the original heuristic; do not
// re-derive.
const EscalationThreshold = 50

// Heuristic signal weights, accumulated before the x10 scaling.
const (
	weightBreathing = 4
	weightBleeding  = 4
	weightFever     = 2
	weightRash      = 1
	weightAge       = 3
	weightMale      = 1
)

// Score computes the deterministic rule-based risk score in [0, 100]:
// case-insensitive substring signals over the concatenated symptom text,
// summed, scaled by 10 and capped at 100.
func Score(age int, sex, symptoms, additionalSymptoms string) int {
	total := 0
	txt := strings.ToLower(symptoms + " " + additionalSymptoms)

	if strings.Contains(txt, "chest pain") || strings.Contains(txt, "breath") {
		total += weightBreathing
	}
	if strings.Contains(txt, "bleeding") {
		total += weightBleeding
	}
	if strings.Contains(txt, "fever") {
		total += weightFever
	}
	if strings.Contains(txt, "rash") {
		total += weightRash
	}
	if age > 60 {
		total += weightAge
	}
	if strings.EqualFold(sex, "male") {
		total += weightMale
	}

	score := total * 10
	if score > 100 {
		return 100
	}
	return score
}
