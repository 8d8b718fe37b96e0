package repository

import (
	"context"

	"eduweb/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type RatingRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRatingRepository(db *pgxpool.Pool, logger *zap.Logger) *RatingRepository {
	return &RatingRepository{
		db:     db,
		logger: logger,
	}
}

// Upsert stores a rating, replacing the student's previous rating of
// the same course if one exists.
func (r *RatingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	query := squirrel.Insert("ratings").
		Columns("id", "student_id", "course_id", "rate", "created_at", "updated_at").
		Values(rating.ID, rating.StudentID, rating.CourseID, rating.Rate, rating.CreatedAt, rating.UpdatedAt).
		Suffix("ON CONFLICT (student_id, course_id) DO UPDATE SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *RatingRepository) ListCourseIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]int64, error) {
	query := squirrel.Select("course_id").
		From("ratings").
		Where(squirrel.Eq{"student_id": studentID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return queryCourseIDs(ctx, r.db, sql, args)
}

// AverageByCourse returns the mean rating of a course, 0 when unrated.
func (r *RatingRepository) AverageByCourse(ctx context.Context, courseID int64) (float64, error) {
	query := squirrel.Select("COALESCE(AVG(rate), 0)").
		From("ratings").
		Where(squirrel.Eq{"course_id": courseID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var avg float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&avg); err != nil {
		return 0, err
	}

	return avg, nil
}
