package triage

import (
	"context"
	"fmt"
	"math"

	"vit-healthcare/internal/knowledge"
)

// Embedder is the slice of the embedding client the triage core needs.
type Embedder interface {
	Embed(ctx context.Context, text string) []float64
	Degraded() bool
}

// Index holds condition records with their embeddings and answers
// nearest-neighbor queries. It is immutable after construction, so concurrent
// searches need no locking; to hot-reload the knowledge base, build a new
// Index and swap the reference.
type Index struct {
	records []knowledge.Record
}

// NewIndex wraps pre-embedded records. Record order is preserved; ties during
// search resolve to the earlier record.
func NewIndex(records []knowledge.Record) *Index {
	recs := make([]knowledge.Record, len(records))
	copy(recs, records)
	return &Index{records: recs}
}

// BuildIndex embeds every record's condition text once and returns the
// resulting index. Records whose embedding fails keep a nil vector and can
// never win a search.
func BuildIndex(ctx context.Context, records []knowledge.Record, embedder Embedder) *Index {
	idx := NewIndex(records)
	if embedder.Degraded() {
		fmt.Println("Embedding service unavailable, skipping index embeddings.")
		return idx
	}
	for i := range idx.records {
		rec := &idx.records[i]
		if rec.Condition == "" {
			continue
		}
		rec.Embedding = embedder.Embed(ctx, rec.Condition)
		if rec.Embedding == nil {
			fmt.Printf("Embedding failed for %d/%d: %s\n", i+1, len(idx.records), rec.Condition)
			continue
		}
		fmt.Printf("Embedded %d/%d: %s\n", i+1, len(idx.records), rec.Condition)
	}
	return idx
}

// Len reports the number of indexed records.
func (idx *Index) Len() int {
	return len(idx.records)
}

// Search scans all records and returns the single best cosine match. Strict
// greater-than comparison makes the first record win ties, so results are a
// function of knowledge-base order. A nil Record means no record scored a
// strictly positive similarity.
func (idx *Index) Search(query []float64) Match {
	var best Match
	for i := range idx.records {
		sim := cosineSimilarity(query, idx.records[i].Embedding)
		if sim > best.Similarity {
			best.Record = &idx.records[i]
			best.Similarity = sim
		}
	}
	return best
}

// cosineSimilarity returns dot(a,b)/(|a|*|b|), or 0.0 when either vector is
// nil, empty, zero-norm, or the lengths differ. Degenerate inputs mean "no
// signal", not an error.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
