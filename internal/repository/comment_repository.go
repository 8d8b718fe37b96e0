package repository

import (
	"context"

	"eduweb/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type CommentRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCommentRepository(db *pgxpool.Pool, logger *zap.Logger) *CommentRepository {
	return &CommentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	query := squirrel.Insert("comments").
		Columns("id", "student_id", "course_id", "content", "created_at").
		Values(comment.ID, comment.StudentID, comment.CourseID, comment.Content, comment.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// ListCourseIDsByStudent returns the distinct courses the student has
// commented on.
func (r *CommentRepository) ListCourseIDsByStudent(ctx context.Context, studentID uuid.UUID) ([]int64, error) {
	query := squirrel.Select("DISTINCT course_id").
		From("comments").
		Where(squirrel.Eq{"student_id": studentID}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return queryCourseIDs(ctx, r.db, sql, args)
}

func (r *CommentRepository) ListByCourse(ctx context.Context, courseID int64, limit int) ([]*models.Comment, error) {
	query := squirrel.Select("id", "student_id", "course_id", "content", "created_at").
		From("comments").
		Where(squirrel.Eq{"course_id": courseID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(
			&comment.ID, &comment.StudentID, &comment.CourseID, &comment.Content, &comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, &comment)
	}

	return comments, rows.Err()
}
