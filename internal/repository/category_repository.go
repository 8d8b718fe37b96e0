package repository

import (
	"context"

	"eduweb/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CategoryCount pairs a category with its published course count.
type CategoryCount struct {
	Category models.Category
	Count    int64
}

type CategoryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCategoryRepository(db *pgxpool.Pool, logger *zap.Logger) *CategoryRepository {
	return &CategoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query := squirrel.Insert("categories").
		Columns("title").
		Values(category.Title).
		Suffix("ON CONFLICT (title) DO NOTHING").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CategoryRepository) GetByTitle(ctx context.Context, title string) (*models.Category, error) {
	query := squirrel.Select("id", "title").
		From("categories").
		Where(squirrel.Eq{"title": title}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var category models.Category
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&category.ID, &category.Title); err != nil {
		return nil, err
	}

	return &category, nil
}

// ListWithCounts returns all categories with their published course
// counts, most populated first.
func (r *CategoryRepository) ListWithCounts(ctx context.Context) ([]CategoryCount, error) {
	query := squirrel.Select("cat.id", "cat.title", "COUNT(c.id)").
		From("categories cat").
		LeftJoin("courses c ON c.category_id = cat.id AND c.publish = true").
		GroupBy("cat.id", "cat.title").
		OrderBy("COUNT(c.id) DESC", "cat.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []CategoryCount
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category.ID, &cc.Category.Title, &cc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, cc)
	}

	return counts, rows.Err()
}
