package recommender

import (
	"math"
	"testing"
)

func buildMatrix(t *testing.T, titles []string) *SimilarityMatrix {
	t.Helper()
	vs, err := NewVectorSpace(titles)
	if err != nil {
		t.Fatalf("NewVectorSpace() error = %v", err)
	}
	return NewSimilarityMatrix(vs)
}

func TestSimilarityMatrix_SymmetricUnitDiagonal(t *testing.T) {
	m := buildMatrix(t, []string{
		"Intro to Python",
		"Advanced Python",
		"Cooking Basics",
		"Python for Data Science",
		"Basics of French Cooking",
	})

	for i := 0; i < m.Len(); i++ {
		if d := m.At(i, i); math.Abs(d-1.0) > 1e-9 {
			t.Errorf("At(%d, %d) = %f, want 1.0", i, i, d)
		}
		for j := 0; j < m.Len(); j++ {
			if m.At(i, j) != m.At(j, i) {
				t.Errorf("At(%d, %d) = %f, At(%d, %d) = %f, want symmetric",
					i, j, m.At(i, j), j, i, m.At(j, i))
			}
			if m.At(i, j) < 0 || m.At(i, j) > 1+1e-9 {
				t.Errorf("At(%d, %d) = %f, want within [0, 1]", i, j, m.At(i, j))
			}
		}
	}
}

func TestSimilarityMatrix_SingleCourse(t *testing.T) {
	m := buildMatrix(t, []string{"Intro to Python"})

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	if d := m.At(0, 0); math.Abs(d-1.0) > 1e-9 {
		t.Errorf("At(0, 0) = %f, want 1.0", d)
	}
}

func TestSimilarityMatrix_RelatedScoreHigher(t *testing.T) {
	// Row 0 shares a term with row 1 but nothing with row 2.
	m := buildMatrix(t, []string{
		"Intro to Python",
		"Advanced Python",
		"Cooking Basics",
	})

	if m.At(0, 1) <= m.At(0, 2) {
		t.Errorf("At(0, 1) = %f should exceed At(0, 2) = %f", m.At(0, 1), m.At(0, 2))
	}
	if m.At(0, 2) != 0 {
		t.Errorf("At(0, 2) = %f, want 0 for disjoint titles", m.At(0, 2))
	}
}
