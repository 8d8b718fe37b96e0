package repository

import (
	"context"

	"eduweb/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PurchaseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewPurchaseRepository(db *pgxpool.Pool, logger *zap.Logger) *PurchaseRepository {
	return &PurchaseRepository{
		db:     db,
		logger: logger,
	}
}

// Create records a purchase. Buying an already-owned course is a no-op.
func (r *PurchaseRepository) Create(ctx context.Context, purchase *models.Purchase) error {
	query := squirrel.Insert("purchases").
		Columns("id", "student_id", "course_id", "created_at").
		Values(purchase.ID, purchase.StudentID, purchase.CourseID, purchase.CreatedAt).
		Suffix("ON CONFLICT (student_id, course_id) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *PurchaseRepository) ListCourseIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]int64, error) {
	query := squirrel.Select("course_id").
		From("purchases").
		Where(squirrel.Eq{"student_id": studentID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return queryCourseIDs(ctx, r.db, sql, args)
}

// CountByCourse returns the number of students enrolled in a course.
func (r *PurchaseRepository) CountByCourse(ctx context.Context, courseID int64) (int64, error) {
	query := squirrel.Select("COUNT(id)").
		From("purchases").
		Where(squirrel.Eq{"course_id": courseID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func queryCourseIDs(ctx context.Context, db *pgxpool.Pool, sql string, args []interface{}) ([]int64, error) {
	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
