package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"eduweb/internal/models"
	"eduweb/internal/repository"
	"eduweb/pkg/config"
	"eduweb/pkg/logger"
	"eduweb/pkg/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		email TEXT UNIQUE NOT NULL,
		password TEXT NOT NULL,
		qualification TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS students (
		id UUID PRIMARY KEY,
		user_id UUID UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		category_interests TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id BIGSERIAL PRIMARY KEY,
		title TEXT UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS courses (
		id BIGSERIAL PRIMARY KEY,
		category_id BIGINT NOT NULL REFERENCES categories(id),
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price BIGINT NOT NULL DEFAULT 0,
		publish BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS purchases (
		id UUID PRIMARY KEY,
		student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		course_id BIGINT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (student_id, course_id)
	)`,
	`CREATE TABLE IF NOT EXISTS ratings (
		id UUID PRIMARY KEY,
		student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		course_id BIGINT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		rate INT NOT NULL CHECK (rate BETWEEN 1 AND 5),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (student_id, course_id)
	)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id UUID PRIMARY KEY,
		student_id UUID NOT NULL REFERENCES students(id) ON DELETE CASCADE,
		course_id BIGINT NOT NULL REFERENCES courses(id) ON DELETE CASCADE,
		content TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	// Connect to database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appLogger.Info("Starting database seeding...")

	if err := createSchema(ctx, db); err != nil {
		appLogger.Fatal("Failed to create schema", zap.Error(err))
	}

	categoryRepo := repository.NewCategoryRepository(db, appLogger)
	courseRepo := repository.NewCourseRepository(db, appLogger)

	csvPath := filepath.Join("cmd", "seed", "courses.csv")
	count, err := seedCatalogFromCSV(ctx, csvPath, categoryRepo, courseRepo, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to seed catalog", zap.Error(err))
	}

	// Fixed-id inserts leave the serial sequence behind the data.
	if _, err := db.Exec(ctx, `SELECT setval(pg_get_serial_sequence('courses', 'id'), (SELECT COALESCE(MAX(id), 1) FROM courses))`); err != nil {
		appLogger.Warn("Failed to advance course id sequence", zap.Error(err))
	}

	appLogger.Info("Database seeding completed successfully!", zap.Int("courses", count))
}

func createSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}

// seedCatalogFromCSV loads categories and courses from a CSV file with
// the columns: id, title, description, category, price. Categories are
// created on first sight; courses are upserted under their CSV ids.
func seedCatalogFromCSV(
	ctx context.Context,
	csvPath string,
	categoryRepo *repository.CategoryRepository,
	courseRepo *repository.CourseRepository,
	logger *zap.Logger,
) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 5

	// Skip header
	if _, err := reader.Read(); err != nil {
		return 0, fmt.Errorf("failed to read catalog header: %w", err)
	}

	categoryIDs := make(map[string]int64)
	now := time.Now()
	count := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("failed to read catalog row: %w", err)
		}

		id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
		if err != nil {
			logger.Warn("Skipping row with invalid course id", zap.String("id", record[0]))
			continue
		}

		title := strings.TrimSpace(record[1])
		if title == "" {
			logger.Warn("Skipping row with empty title", zap.Int64("id", id))
			continue
		}

		categoryTitle := strings.TrimSpace(record[3])
		categoryID, ok := categoryIDs[categoryTitle]
		if !ok {
			categoryID, err = ensureCategory(ctx, categoryRepo, categoryTitle)
			if err != nil {
				return count, fmt.Errorf("failed to ensure category %q: %w", categoryTitle, err)
			}
			categoryIDs[categoryTitle] = categoryID
		}

		price, err := strconv.ParseInt(strings.TrimSpace(record[4]), 10, 64)
		if err != nil {
			logger.Warn("Row has invalid price, defaulting to 0", zap.Int64("id", id), zap.String("price", record[4]))
			price = 0
		}

		course := &models.Course{
			ID:          id,
			CategoryID:  categoryID,
			Title:       title,
			Description: strings.TrimSpace(record[2]),
			Price:       price,
			Publish:     true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := courseRepo.Upsert(ctx, course); err != nil {
			return count, fmt.Errorf("failed to upsert course %d: %w", id, err)
		}
		count++
	}

	logger.Info("Catalog seeded",
		zap.Int("courses", count),
		zap.Int("categories", len(categoryIDs)),
	)

	return count, nil
}

func ensureCategory(ctx context.Context, repo *repository.CategoryRepository, title string) (int64, error) {
	if err := repo.Create(ctx, &models.Category{Title: title}); err != nil {
		return 0, err
	}
	category, err := repo.GetByTitle(ctx, title)
	if err != nil {
		return 0, err
	}
	return category.ID, nil
}
