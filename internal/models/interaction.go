package models

import (
	"time"

	"github.com/google/uuid"
)

// Purchase records a student owning a course. Unique per (student, course).
type Purchase struct {
	ID        uuid.UUID `db:"id"`
	StudentID uuid.UUID `db:"student_id"`
	CourseID  int64     `db:"course_id"`
	CreatedAt time.Time `db:"created_at"`
}

// Rating is a 1..5 star review. Unique per (student, course).
type Rating struct {
	ID        uuid.UUID `db:"id"`
	StudentID uuid.UUID `db:"student_id"`
	CourseID  int64     `db:"course_id"`
	Rate      int       `db:"rate"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Comment struct {
	ID        uuid.UUID `db:"id"`
	StudentID uuid.UUID `db:"student_id"`
	CourseID  int64     `db:"course_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}
