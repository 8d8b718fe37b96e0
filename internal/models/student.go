package models

import (
	"time"

	"github.com/google/uuid"
)

// Student is the learner profile attached one-to-one to a user account.
// CategoryInterests is a comma-separated list of category titles the
// student declared at signup; it feeds the profile-based recommendation
// fallback.
type Student struct {
	ID                uuid.UUID `db:"id"`
	UserID            uuid.UUID `db:"user_id"`
	CategoryInterests string    `db:"category_interests"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}
