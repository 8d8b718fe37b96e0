package repository

import (
	"context"

	"eduweb/internal/models"
	"eduweb/internal/recommender"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CourseFilter narrows catalog listings. Zero values mean "no filter".
type CourseFilter struct {
	Keyword    string
	CategoryID int64
	Limit      int
	Offset     int
}

// TextFilter matches courses whose title or description contains any of
// the given terms (case-insensitive). Used by the profile-based
// recommendation fallback.
type TextFilter struct {
	TitleTerms       []string
	DescriptionTerms []string
}

func (f TextFilter) Empty() bool {
	return len(f.TitleTerms) == 0 && len(f.DescriptionTerms) == 0
}

type CourseRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewCourseRepository(db *pgxpool.Pool, logger *zap.Logger) *CourseRepository {
	return &CourseRepository{
		db:     db,
		logger: logger,
	}
}

// LoadCatalog returns the published catalog as an ordered snapshot for
// the recommendation engine. Row order (ascending id) is the canonical
// vector index, so the ordering here must stay stable.
func (r *CourseRepository) LoadCatalog(ctx context.Context) ([]recommender.CourseRecord, error) {
	query := squirrel.Select("id", "title").
		From("courses").
		Where(squirrel.Eq{"publish": true}).
		OrderBy("id ASC").
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

	var records []recommender.CourseRecord
	for rows.Next() {
		var rec recommender.CourseRecord
		if err := rows.Scan(&rec.ID, &rec.Title); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Upsert inserts a course under a fixed id, updating it in place when
// the id already exists. Used by the catalog seeder.
func (r *CourseRepository) Upsert(ctx context.Context, course *models.Course) error {
	query := squirrel.Insert("courses").
		Columns("id", "category_id", "title", "description", "price", "publish", "created_at", "updated_at").
		Values(course.ID, course.CategoryID, course.Title, course.Description, course.Price, course.Publish, course.CreatedAt, course.UpdatedAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET category_id = EXCLUDED.category_id, title = EXCLUDED.title, description = EXCLUDED.description, price = EXCLUDED.price, publish = EXCLUDED.publish, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := squirrel.Select("id", "category_id", "title", "description", "price", "publish", "created_at", "updated_at").
		From("courses").
		Where(squirrel.Eq{"id": id, "publish": true}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var course models.Course
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&course.ID, &course.CategoryID, &course.Title, &course.Description, &course.Price, &course.Publish, &course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *CourseRepository) List(ctx context.Context, filter CourseFilter) ([]*models.Course, error) {
	query := squirrel.Select("id", "category_id", "title", "description", "price", "publish", "created_at", "updated_at").
		From("courses").
		Where(squirrel.Eq{"publish": true}).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Keyword != "" {
		query = query.Where(squirrel.ILike{"title": "%" + filter.Keyword + "%"})
	}
	if filter.CategoryID > 0 {
		query = query.Where(squirrel.Eq{"category_id": filter.CategoryID})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
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

	var courses []*models.Course
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID, &course.CategoryID, &course.Title, &course.Description, &course.Price, &course.Publish, &course.CreatedAt, &course.UpdatedAt,
		); err != nil {
			return nil, err
		}
		courses = append(courses, &course)
	}

	return courses, rows.Err()
}

// FindIDsByProfile returns distinct published course ids matching the
// OR of a category-title filter and a free-text filter, in ascending id
// order. Returns nil without querying when both filters are empty.
func (r *CourseRepository) FindIDsByProfile(ctx context.Context, categoryTitles []string, text TextFilter, limit int) ([]int64, error) {
	or := squirrel.Or{}
	if len(categoryTitles) > 0 {
		or = append(or, squirrel.Eq{"cat.title": categoryTitles})
	}
	for _, term := range text.TitleTerms {
		or = append(or, squirrel.ILike{"c.title": "%" + term + "%"})
	}
	for _, term := range text.DescriptionTerms {
		or = append(or, squirrel.ILike{"c.description": "%" + term + "%"})
	}
	if len(or) == 0 {
		return nil, nil
	}

	query := squirrel.Select("DISTINCT c.id").
		From("courses c").
		Join("categories cat ON cat.id = c.category_id").
		Where(squirrel.Eq{"c.publish": true}).
		Where(or).
		OrderBy("c.id ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryIDs(ctx, sql, args)
}

// ListPopularIDs returns published course ids ordered by purchase
// count, most purchased first. Used when a student has neither
// interactions nor usable profile filters.
func (r *CourseRepository) ListPopularIDs(ctx context.Context, limit int) ([]int64, error) {
	query := squirrel.Select("c.id").
		From("courses c").
		Join("purchases p ON p.course_id = c.id").
		Where(squirrel.Eq{"c.publish": true}).
		GroupBy("c.id").
		OrderBy("COUNT(p.id) DESC", "c.id ASC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryIDs(ctx, sql, args)
}

// ListByIDs fetches courses preserving the order of the given ids.
func (r *CourseRepository) ListByIDs(ctx context.Context, ids []int64) ([]*models.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := squirrel.Select("id", "category_id", "title", "description", "price", "publish", "created_at", "updated_at").
		From("courses").
		Where(squirrel.Eq{"id": ids}).
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

	byID := make(map[int64]*models.Course, len(ids))
	for rows.Next() {
		var course models.Course
		if err := rows.Scan(
			&course.ID, &course.CategoryID, &course.Title, &course.Description, &course.Price, &course.Publish, &course.CreatedAt, &course.UpdatedAt,
		); err != nil {
			return nil, err
		}
		byID[course.ID] = &course
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	courses := make([]*models.Course, 0, len(ids))
	for _, id := range ids {
		if course, ok := byID[id]; ok {
			courses = append(courses, course)
		}
	}

	return courses, nil
}

func (r *CourseRepository) queryIDs(ctx context.Context, sql string, args []interface{}) ([]int64, error) {
	rows, err := r.db.Query(ctx, sql, args...)
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
