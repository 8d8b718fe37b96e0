package recommender

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

// ErrEmptyCorpus is returned when a vector space is requested for a
// catalog with no courses. No usable recommender can be built from an
// empty corpus, so callers should treat this as fatal at startup.
var ErrEmptyCorpus = errors.New("empty course corpus")

// sparseVector maps vocabulary term index to TF-IDF weight.
type sparseVector map[int]float64

// VectorSpace holds one L2-normalized TF-IDF vector per document,
// in corpus order. Immutable after construction.
type VectorSpace struct {
	vocab   map[string]int
	vectors []sparseVector
}

// Tokenize lowercases the text and splits it into word tokens,
// dropping single-character tokens and English stop words.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 || isStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// NewVectorSpace builds TF-IDF vectors for the given documents.
// The vocabulary is indexed in sorted term order so the result is
// bit-for-bit reproducible for an identical corpus.
func NewVectorSpace(documents []string) (*VectorSpace, error) {
	if len(documents) == 0 {
		return nil, ErrEmptyCorpus
	}

	tokenized := make([][]string, len(documents))
	df := make(map[string]int)
	for i, doc := range documents {
		tokens := Tokenize(doc)
		tokenized[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, t := range tokens {
			if _, ok := seen[t]; !ok {
				df[t]++
				seen[t] = struct{}{}
			}
		}
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(documents))
	for idx, t := range terms {
		vocab[t] = idx
		// Smoothed inverse document frequency: ln((1+N)/(1+df)) + 1.
		idf[idx] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	vectors := make([]sparseVector, len(documents))
	for i, tokens := range tokenized {
		tf := make(map[int]float64, len(tokens))
		for _, t := range tokens {
			tf[vocab[t]]++
		}

		vec := make(sparseVector, len(tf))
		var norm float64
		for idx, count := range tf {
			w := count * idf[idx]
			vec[idx] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for idx := range vec {
				vec[idx] /= norm
			}
		}
		vectors[i] = vec
	}

	return &VectorSpace{vocab: vocab, vectors: vectors}, nil
}

// Len returns the number of documents.
func (vs *VectorSpace) Len() int {
	return len(vs.vectors)
}

// Dimensions returns the vocabulary size.
func (vs *VectorSpace) Dimensions() int {
	return len(vs.vocab)
}

// Dot returns the dot product of documents i and j. Vectors are unit
// length, so this is their cosine similarity.
func (vs *VectorSpace) Dot(i, j int) float64 {
	a, b := vs.vectors[i], vs.vectors[j]
	if len(b) < len(a) {
		a, b = b, a
	}

	var sum float64
	for idx, w := range a {
		if v, ok := b[idx]; ok {
			sum += w * v
		}
	}
	return sum
}

// Norm returns the Euclidean norm of document i. It is 1 for every
// document with at least one in-vocabulary token and 0 for degenerate
// (empty or all-stop-word) documents.
func (vs *VectorSpace) Norm(i int) float64 {
	return math.Sqrt(vs.Dot(i, i))
}
