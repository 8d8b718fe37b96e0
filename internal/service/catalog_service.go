package service

import (
	"context"
	"errors"
	"time"

	"eduweb/internal/dto"
	"eduweb/internal/models"
	"eduweb/internal/repository"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CatalogService struct {
	courseRepo   *repository.CourseRepository
	categoryRepo *repository.CategoryRepository
	ratingRepo   *repository.RatingRepository
	purchaseRepo *repository.PurchaseRepository
	commentRepo  *repository.CommentRepository
	logger       *zap.Logger
}

func NewCatalogService(
	courseRepo *repository.CourseRepository,
	categoryRepo *repository.CategoryRepository,
	ratingRepo *repository.RatingRepository,
	purchaseRepo *repository.PurchaseRepository,
	commentRepo *repository.CommentRepository,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		courseRepo:   courseRepo,
		categoryRepo: categoryRepo,
		ratingRepo:   ratingRepo,
		purchaseRepo: purchaseRepo,
		commentRepo:  commentRepo,
		logger:       logger,
	}
}

func (s *CatalogService) ListCourses(ctx context.Context, filter repository.CourseFilter) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, courseResponse(course))
	}

	return responses, nil
}

// GetCourse returns a course with its aggregate rating and enrollment
// figures.
func (s *CatalogService) GetCourse(ctx context.Context, id int64) (*dto.CourseDetailResponse, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	avgRating, err := s.ratingRepo.AverageByCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	studentCount, err := s.purchaseRepo.CountByCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.CourseDetailResponse{
		CourseResponse: courseResponse(course),
		AverageRating:  avgRating,
		StudentCount:   studentCount,
	}, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	counts, err := s.categoryRepo.ListWithCounts(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CategoryResponse, 0, len(counts))
	for _, cc := range counts {
		responses = append(responses, dto.CategoryResponse{
			ID:          cc.Category.ID,
			Title:       cc.Category.Title,
			CourseCount: cc.Count,
		})
	}

	return responses, nil
}

func (s *CatalogService) ListComments(ctx context.Context, courseID int64, limit int) ([]dto.CommentResponse, error) {
	comments, err := s.commentRepo.ListByCourse(ctx, courseID, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, dto.CommentResponse{
			ID:        comment.ID.String(),
			CourseID:  comment.CourseID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		})
	}

	return responses, nil
}

func courseResponse(course *models.Course) dto.CourseResponse {
	return dto.CourseResponse{
		ID:          course.ID,
		CategoryID:  course.CategoryID,
		Title:       course.Title,
		Description: course.Description,
		Price:       course.Price,
		CreatedAt:   course.CreatedAt.Format(time.RFC3339),
	}
}
