// Package similarity links papers whose abstracts are semantically
// close. Each paper's abstract is embedded once, every pair is compared
// with cosine similarity, and pairs above the threshold are linked in
// both directions.
package similarity

import (
	"context"
	"math"

	"github.com/matsen/citegraph/internal/embedding"
	"github.com/matsen/citegraph/internal/record"
)

const (
	// DefaultThreshold is the minimum cosine similarity for two papers
	// to be linked.
	DefaultThreshold = 0.05

	// MinAbstractLength is the minimum abstract length (in runes) worth
	// embedding. Shorter abstracts produce noise vectors.
	MinAbstractLength = 40
)

// Linker computes pairwise abstract similarity over a batch of papers.
type Linker struct {
	provider  embedding.Provider
	threshold float32
}

// Option configures a Linker.
type Option func(*Linker)

// WithThreshold overrides the similarity threshold.
func WithThreshold(threshold float32) Option {
	return func(l *Linker) {
		l.threshold = threshold
	}
}

// NewLinker creates a linker over the given embedding provider.
func NewLinker(provider embedding.Provider, opts ...Option) *Linker {
	l := &Linker{
		provider:  provider,
		threshold: DefaultThreshold,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value between -1 and 1, where 1 means identical direction.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denominator := float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB)))
	if denominator == 0 {
		return 0
	}

	return dot / denominator
}

// Link embeds every paper with a usable abstract and records a mutual
// similar-to link for each pair at or above the threshold. Papers
// without an abstract, with an abstract shorter than MinAbstractLength,
// or whose embedding fails are silently skipped. Returns the number of
// pairs linked.
func (l *Linker) Link(ctx context.Context, papers []*record.Paper) int {
	type embedded struct {
		paper  *record.Paper
		vector []float32
	}

	candidates := make([]embedded, 0, len(papers))
	for _, paper := range papers {
		if paper == nil || len([]rune(paper.Abstract)) < MinAbstractLength {
			continue
		}
		emb, err := l.provider.Embed(ctx, paper.Abstract)
		if err != nil || len(emb.Vector) == 0 {
			continue
		}
		candidates = append(candidates, embedded{paper: paper, vector: emb.Vector})
	}

	linked := 0
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			sim := CosineSimilarity(candidates[i].vector, candidates[j].vector)
			if sim < l.threshold {
				continue
			}
			candidates[i].paper.AddSimilar(candidates[j].paper)
			candidates[j].paper.AddSimilar(candidates[i].paper)
			linked++
		}
	}
	return linked
}
