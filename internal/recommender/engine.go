// Package recommender implements the content-based course recommender:
// a TF-IDF vector space over course titles, a precomputed cosine
// similarity matrix, and interaction-aware ranking of similar courses.
//
// The model is built once from a catalog snapshot and is immutable
// afterwards; picking up catalog changes means building a fresh Engine
// and swapping it in atomically.
package recommender

import (
	"errors"
	"sort"
)

// ErrCourseNotFound is returned when a focal course id is absent from
// the catalog snapshot the engine was built from.
var ErrCourseNotFound = errors.New("course not found in catalog snapshot")

// CourseRecord is one entry of the catalog snapshot. The slice index at
// which a record was loaded is the canonical row index of its vector.
type CourseRecord struct {
	ID    int64
	Title string
}

// Engine holds the catalog snapshot and the derived similarity model.
// Safe for concurrent use: all state is read-only after construction.
type Engine struct {
	records []CourseRecord
	index   map[int64]int
	space   *VectorSpace
	matrix  *SimilarityMatrix
}

// NewEngine builds the vector space and similarity matrix from a
// catalog snapshot. Returns ErrEmptyCorpus for an empty snapshot.
func NewEngine(records []CourseRecord) (*Engine, error) {
	titles := make([]string, len(records))
	index := make(map[int64]int, len(records))
	for i, r := range records {
		titles[i] = r.Title
		index[r.ID] = i
	}

	space, err := NewVectorSpace(titles)
	if err != nil {
		return nil, err
	}

	return &Engine{
		records: records,
		index:   index,
		space:   space,
		matrix:  NewSimilarityMatrix(space),
	}, nil
}

// Len returns the number of courses in the snapshot.
func (e *Engine) Len() int {
	return len(e.records)
}

// Matrix exposes the precomputed similarity matrix.
func (e *Engine) Matrix() *SimilarityMatrix {
	return e.matrix
}

// neighbor pairs a snapshot row with its similarity to the focal row.
type neighbor struct {
	row   int
	score float64
}

// Similar ranks courses by cosine similarity to the focal course and
// returns up to limit course ids, most similar first. The focal course,
// courses with non-positive similarity and ids in exclude are skipped.
// Ties are broken by ascending row index so the ordering is
// reproducible regardless of sort algorithm.
func (e *Engine) Similar(focalID int64, exclude map[int64]struct{}, limit int) ([]int64, error) {
	focalRow, ok := e.index[focalID]
	if !ok {
		return nil, ErrCourseNotFound
	}

	row := e.matrix.Row(focalRow)
	neighbors := make([]neighbor, 0, len(row))
	for j, score := range row {
		if j == focalRow || score <= 0 {
			continue
		}
		neighbors = append(neighbors, neighbor{row: j, score: score})
	}

	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].score != neighbors[b].score {
			return neighbors[a].score > neighbors[b].score
		}
		return neighbors[a].row < neighbors[b].row
	})

	result := make([]int64, 0, limit)
	for _, nb := range neighbors {
		id := e.records[nb.row].ID
		if _, skip := exclude[id]; skip {
			continue
		}
		result = append(result, id)
		if len(result) >= limit {
			break
		}
	}

	return result, nil
}
