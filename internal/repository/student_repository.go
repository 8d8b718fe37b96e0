package repository

import (
	"context"

	"eduweb/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type StudentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewStudentRepository(db *pgxpool.Pool, logger *zap.Logger) *StudentRepository {
	return &StudentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := squirrel.Insert("students").
		Columns("id", "user_id", "category_interests", "created_at", "updated_at").
		Values(student.ID, student.UserID, student.CategoryInterests, student.CreatedAt, student.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *StudentRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	query := squirrel.Select("id", "user_id", "category_interests", "created_at", "updated_at").
		From("students").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var student models.Student
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&student.ID, &student.UserID, &student.CategoryInterests, &student.CreatedAt, &student.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &student, nil
}
