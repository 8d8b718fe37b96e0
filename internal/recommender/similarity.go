package recommender

// SimilarityMatrix is the precomputed N x N cosine similarity matrix
// over a vector space. Symmetric with a unit diagonal for every
// non-degenerate document. Immutable after construction, so concurrent
// readers need no locking.
type SimilarityMatrix struct {
	n      int
	scores [][]float64
}

// NewSimilarityMatrix computes all pairwise cosine similarities.
// Quadratic in the number of courses, which is fine for the catalog
// sizes this serves; it is built once at startup and reused for every
// request.
func NewSimilarityMatrix(vs *VectorSpace) *SimilarityMatrix {
	n := vs.Len()
	scores := make([][]float64, n)
	for i := range scores {
		scores[i] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		scores[i][i] = vs.Dot(i, i)
		for j := i + 1; j < n; j++ {
			s := vs.Dot(i, j)
			scores[i][j] = s
			scores[j][i] = s
		}
	}

	return &SimilarityMatrix{n: n, scores: scores}
}

// Len returns the matrix dimension.
func (m *SimilarityMatrix) Len() int {
	return m.n
}

// At returns the similarity between rows i and j.
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.scores[i][j]
}

// Row returns row i. Callers must not mutate it.
func (m *SimilarityMatrix) Row(i int) []float64 {
	return m.scores[i]
}
