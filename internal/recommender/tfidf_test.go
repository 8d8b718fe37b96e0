package recommender

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on punctuation",
			text: "Intro to Python, Part-1!",
			want: []string{"intro", "python", "part"},
		},
		{
			name: "removes stop words",
			text: "The Art of War and the Craft of Peace",
			want: []string{"art", "war", "craft", "peace"},
		},
		{
			name: "drops single character tokens",
			text: "C programming",
			want: []string{"programming"},
		},
		{
			name: "empty string",
			text: "",
			want: []string{},
		},
		{
			name: "only stop words",
			text: "to be or not to be",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestNewVectorSpace_EmptyCorpus(t *testing.T) {
	_, err := NewVectorSpace(nil)
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("NewVectorSpace(nil) error = %v, want ErrEmptyCorpus", err)
	}
}

func TestNewVectorSpace_UnitNorms(t *testing.T) {
	vs, err := NewVectorSpace([]string{
		"Intro to Python",
		"Advanced Python",
		"Cooking Basics",
		"to the of and", // degenerate: all stop words
	})
	if err != nil {
		t.Fatalf("NewVectorSpace() error = %v", err)
	}

	for i := 0; i < 3; i++ {
		if norm := vs.Norm(i); math.Abs(norm-1.0) > 1e-9 {
			t.Errorf("Norm(%d) = %f, want 1.0", i, norm)
		}
	}
	if norm := vs.Norm(3); norm != 0 {
		t.Errorf("Norm(3) = %f, want 0 for all-stop-word title", norm)
	}
}

func TestNewVectorSpace_SharedVocabulary(t *testing.T) {
	vs, err := NewVectorSpace([]string{
		"Intro to Python",
		"Advanced Python",
		"Cooking Basics",
	})
	if err != nil {
		t.Fatalf("NewVectorSpace() error = %v", err)
	}

	if vs.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", vs.Len())
	}
	// intro, python, advanced, cooking, basics
	if vs.Dimensions() != 5 {
		t.Errorf("Dimensions() = %d, want 5", vs.Dimensions())
	}

	if got := vs.Dot(0, 1); got <= 0 {
		t.Errorf("Dot(0, 1) = %f, want > 0 (shared term)", got)
	}
	if got := vs.Dot(0, 2); got != 0 {
		t.Errorf("Dot(0, 2) = %f, want 0 (disjoint vocabularies)", got)
	}
}

func TestNewVectorSpace_Deterministic(t *testing.T) {
	corpus := []string{
		"Machine Learning Fundamentals",
		"Deep Learning with Go",
		"Learning to Cook",
		"Go Web Development",
	}

	a, err := NewVectorSpace(corpus)
	if err != nil {
		t.Fatalf("NewVectorSpace() error = %v", err)
	}
	b, err := NewVectorSpace(corpus)
	if err != nil {
		t.Fatalf("NewVectorSpace() error = %v", err)
	}

	for i := 0; i < len(corpus); i++ {
		for j := 0; j < len(corpus); j++ {
			if a.Dot(i, j) != b.Dot(i, j) {
				t.Fatalf("Dot(%d, %d) differs across identical builds: %v vs %v",
					i, j, a.Dot(i, j), b.Dot(i, j))
			}
		}
	}
}
