package recommender

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func pythonCatalog() []CourseRecord {
	return []CourseRecord{
		{ID: 1, Title: "Intro to Python"},
		{ID: 2, Title: "Advanced Python"},
		{ID: 3, Title: "Cooking Basics"},
	}
}

func TestNewEngine_EmptySnapshot(t *testing.T) {
	_, err := NewEngine(nil)
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("NewEngine(nil) error = %v, want ErrEmptyCorpus", err)
	}
}

func TestEngine_Similar(t *testing.T) {
	tests := []struct {
		name    string
		records []CourseRecord
		focalID int64
		exclude map[int64]struct{}
		limit   int
		want    []int64
		wantErr error
	}{
		{
			name:    "ranks shared-vocabulary course first",
			records: pythonCatalog(),
			focalID: 1,
			limit:   10,
			// Cooking Basics has zero similarity and is filtered out.
			want: []int64{2},
		},
		{
			name:    "excludes interacted course even when most similar",
			records: pythonCatalog(),
			focalID: 1,
			exclude: map[int64]struct{}{2: {}},
			limit:   10,
			want:    []int64{},
		},
		{
			name:    "unknown focal id",
			records: pythonCatalog(),
			focalID: 99,
			limit:   10,
			wantErr: ErrCourseNotFound,
		},
		{
			name:    "single course catalog yields no candidates",
			records: []CourseRecord{{ID: 42, Title: "Intro to Python"}},
			focalID: 42,
			limit:   10,
			want:    []int64{},
		},
		{
			name: "ties broken by ascending row index",
			records: []CourseRecord{
				{ID: 7, Title: "Go Programming"},
				{ID: 5, Title: "Advanced Go"},
				{ID: 3, Title: "Advanced Go"},
			},
			focalID: 7,
			limit:   10,
			// Rows 1 and 2 have identical titles, hence identical scores;
			// row order decides, not id order.
			want: []int64{5, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(tt.records)
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}

			got, err := e.Similar(tt.focalID, tt.exclude, tt.limit)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Similar() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Similar() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEngine_Similar_NeverReturnsFocal(t *testing.T) {
	e, err := NewEngine(pythonCatalog())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	for _, focal := range []int64{1, 2, 3} {
		got, err := e.Similar(focal, nil, 10)
		if err != nil {
			t.Fatalf("Similar(%d) error = %v", focal, err)
		}
		for _, id := range got {
			if id == focal {
				t.Errorf("Similar(%d) returned the focal course itself", focal)
			}
		}
	}
}

func TestEngine_Similar_RespectsLimit(t *testing.T) {
	records := make([]CourseRecord, 0, 15)
	for i := 0; i < 15; i++ {
		records = append(records, CourseRecord{
			ID:    int64(i + 1),
			Title: fmt.Sprintf("Python Lesson %d", i+1),
		})
	}

	e, err := NewEngine(records)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	got, err := e.Similar(1, nil, 10)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if len(got) > 10 {
		t.Errorf("len(Similar()) = %d, want <= 10", len(got))
	}
}

func TestEngine_Similar_Idempotent(t *testing.T) {
	e, err := NewEngine(pythonCatalog())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	first, err := e.Similar(1, map[int64]struct{}{3: {}}, 10)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	second, err := e.Similar(1, map[int64]struct{}{3: {}}, 10)
	if err != nil {
		t.Fatalf("Similar() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Similar() not idempotent: %v vs %v", first, second)
	}
}
