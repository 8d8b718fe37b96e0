package service

import (
	"context"
	"errors"
	"time"

	"eduweb/internal/dto"
	"eduweb/internal/models"
	"eduweb/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var ErrCourseNotFound = errors.New("course not found")

// InteractionService records student interactions (purchases, ratings,
// comments) and aggregates them into the set of courses a student
// already knows. The aggregate is computed fresh on every call since
// interactions change between requests.
type InteractionService struct {
	purchaseRepo *repository.PurchaseRepository
	studentRepo  *repository.StudentRepository
	ratingRepo   *repository.RatingRepository
	commentRepo  *repository.CommentRepository
	courseRepo   *repository.CourseRepository
	logger       *zap.Logger
}

func NewInteractionService(
	purchaseRepo *repository.PurchaseRepository,
	studentRepo *repository.StudentRepository,
	ratingRepo *repository.RatingRepository,
	commentRepo *repository.CommentRepository,
	courseRepo *repository.CourseRepository,
	logger *zap.Logger,
) *InteractionService {
	return &InteractionService{
		purchaseRepo: purchaseRepo,
		studentRepo:  studentRepo,
		ratingRepo:   ratingRepo,
		commentRepo:  commentRepo,
		courseRepo:   courseRepo,
		logger:       logger,
	}
}

func (s *InteractionService) PurchaseCourse(ctx context.Context, userID uuid.UUID, courseID int64) (*dto.PurchaseResponse, error) {
	studentID, err := s.studentID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCourseExists(ctx, courseID); err != nil {
		return nil, err
	}

	purchase := &models.Purchase{
		ID:        uuid.New(),
		StudentID: studentID,
		CourseID:  courseID,
		CreatedAt: time.Now(),
	}

	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, err
	}

	s.logger.Info("Course purchased",
		zap.String("student_id", studentID.String()),
		zap.Int64("course_id", courseID),
	)

	return &dto.PurchaseResponse{
		ID:        purchase.ID.String(),
		CourseID:  purchase.CourseID,
		CreatedAt: purchase.CreatedAt.Format(time.RFC3339),
	}, nil
}

func (s *InteractionService) RateCourse(ctx context.Context, userID uuid.UUID, courseID int64, rate int) error {
	studentID, err := s.studentID(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.ensureCourseExists(ctx, courseID); err != nil {
		return err
	}

	now := time.Now()
	rating := &models.Rating{
		ID:        uuid.New(),
		StudentID: studentID,
		CourseID:  courseID,
		Rate:      rate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.ratingRepo.Upsert(ctx, rating)
}

func (s *InteractionService) CommentCourse(ctx context.Context, userID uuid.UUID, courseID int64, content string) (*dto.CommentResponse, error) {
	studentID, err := s.studentID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureCourseExists(ctx, courseID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.New(),
		StudentID: studentID,
		CourseID:  courseID,
		Content:   content,
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return &dto.CommentResponse{
		ID:        comment.ID.String(),
		CourseID:  comment.CourseID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
	}, nil
}

// CourseIDsForStudent returns the union of courses the student has
// purchased, rated or commented on.
func (s *InteractionService) CourseIDsForStudent(ctx context.Context, studentID uuid.UUID) (map[int64]struct{}, error) {
	purchased, err := s.purchaseRepo.ListCourseIDsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	rated, err := s.ratingRepo.ListCourseIDsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	commented, err := s.commentRepo.ListCourseIDsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	interacted := make(map[int64]struct{}, len(purchased)+len(rated)+len(commented))
	for _, ids := range [][]int64{purchased, rated, commented} {
		for _, id := range ids {
			interacted[id] = struct{}{}
		}
	}

	return interacted, nil
}

// studentID resolves the student profile behind an authenticated user.
func (s *InteractionService) studentID(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, ErrNotStudent
	}
	if err != nil {
		return uuid.Nil, err
	}
	return student.ID, nil
}

func (s *InteractionService) ensureCourseExists(ctx context.Context, courseID int64) error {
	_, err := s.courseRepo.GetByID(ctx, courseID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrCourseNotFound
	}
	return err
}
