package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"eduweb/internal/dto"
	"eduweb/internal/models"
	"eduweb/internal/recommender"
	"eduweb/internal/repository"
	"eduweb/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var (
	// ErrInvalidRequest means the caller sent a missing or non-positive
	// focal course id.
	ErrInvalidRequest = errors.New("invalid recommendation request")
	// ErrNotStudent means the authenticated user has no student profile.
	ErrNotStudent = errors.New("user is not a student")
	// ErrRecommendation wraps unexpected internal faults so callers get
	// a stable error to match instead of implementation details.
	ErrRecommendation = errors.New("recommendation failed")
)

// Narrow collaborator contracts. The engine reads catalog and
// interaction state through these; it never mutates either.

type catalogSource interface {
	LoadCatalog(ctx context.Context) ([]recommender.CourseRecord, error)
	FindIDsByProfile(ctx context.Context, categoryTitles []string, text repository.TextFilter, limit int) ([]int64, error)
	ListPopularIDs(ctx context.Context, limit int) ([]int64, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*models.Course, error)
}

type interactionSource interface {
	CourseIDsForStudent(ctx context.Context, studentID uuid.UUID) (map[int64]struct{}, error)
}

type accountSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type profileSource interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error)
}

// RecommendationService serves course recommendations from an immutable
// in-memory model. The model is built once at startup and replaced
// wholesale by Rebuild; concurrent requests read it lock-free through
// an atomic pointer.
type RecommendationService struct {
	catalog      catalogSource
	interactions interactionSource
	users        accountSource
	students     profileSource
	maxResults   int
	engine       atomic.Pointer[recommender.Engine]
	logger       *zap.Logger
}

// NewRecommendationService builds the initial recommendation model.
// Construction fails when the catalog is empty or unreachable: the
// process must not serve traffic with a broken recommender.
func NewRecommendationService(
	ctx context.Context,
	catalog catalogSource,
	interactions interactionSource,
	users accountSource,
	students profileSource,
	cfg *config.RecommenderConfig,
	logger *zap.Logger,
) (*RecommendationService, error) {
	s := &RecommendationService{
		catalog:      catalog,
		interactions: interactions,
		users:        users,
		students:     students,
		maxResults:   cfg.MaxResults,
		logger:       logger,
	}

	if err := s.Rebuild(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Rebuild loads a fresh catalog snapshot, recomputes the vector space
// and similarity matrix from scratch and swaps the new model in
// atomically. In-flight requests keep reading the previous model.
func (s *RecommendationService) Rebuild(ctx context.Context) error {
	start := time.Now()

	records, err := s.catalog.LoadCatalog(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	engine, err := recommender.NewEngine(records)
	if err != nil {
		return err
	}

	s.engine.Store(engine)

	s.logger.Info("Recommendation model built",
		zap.Int("courses", engine.Len()),
		zap.Duration("took", time.Since(start)),
	)

	return nil
}

// Recommend produces up to maxResults course ids for the student
// behind userID. With prior interactions it ranks courses similar to
// the focal course, excluding everything the student already engaged
// with; without interactions it falls back to the student's declared
// profile.
func (s *RecommendationService) Recommend(ctx context.Context, userID uuid.UUID, req *dto.RecommendRequest) (*dto.RecommendationResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotStudent
	}
	if err != nil {
		return nil, s.internalErr(err)
	}

	student, err := s.students.GetByUserID(ctx, userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotStudent
	}
	if err != nil {
		return nil, s.internalErr(err)
	}

	interacted, err := s.interactions.CourseIDsForStudent(ctx, student.ID)
	if err != nil {
		return nil, s.internalErr(err)
	}

	var ids []int64
	if len(interacted) > 0 {
		ids, err = s.recommendBySimilarity(req, interacted)
	} else {
		ids, err = s.recommendByProfile(ctx, user, student)
	}
	if err != nil {
		return nil, err
	}

	courses, err := s.catalog.ListByIDs(ctx, ids)
	if err != nil {
		return nil, s.internalErr(err)
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, courseResponse(course))
	}

	s.logger.Debug("Recommendation served",
		zap.String("user_id", userID.String()),
		zap.Int64("focal_course_id", req.CourseID),
		zap.Int("interacted", len(interacted)),
		zap.Int("results", len(responses)),
	)

	return &dto.RecommendationResponse{Courses: responses}, nil
}

// recommendBySimilarity walks the focal course's neighbors in
// similarity order and keeps the first maxResults the student has not
// interacted with. No backfill happens if fewer remain.
func (s *RecommendationService) recommendBySimilarity(req *dto.RecommendRequest, interacted map[int64]struct{}) ([]int64, error) {
	if req.CourseID <= 0 {
		return nil, ErrInvalidRequest
	}

	ids, err := s.engine.Load().Similar(req.CourseID, interacted, s.maxResults)
	if errors.Is(err, recommender.ErrCourseNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, s.internalErr(err)
	}

	return ids, nil
}

// recommendByProfile handles students with no interaction history:
// the OR of their declared category interests and a qualification
// keyword filter, falling back to globally most-purchased courses when
// neither yields a filter.
func (s *RecommendationService) recommendByProfile(ctx context.Context, user *models.User, student *models.Student) ([]int64, error) {
	categories := splitInterests(student.CategoryInterests)
	text := qualificationFilter(user.Qualification)

	if len(categories) == 0 && text.Empty() {
		ids, err := s.catalog.ListPopularIDs(ctx, s.maxResults)
		if err != nil {
			return nil, s.internalErr(err)
		}
		return ids, nil
	}

	ids, err := s.catalog.FindIDsByProfile(ctx, categories, text, s.maxResults)
	if err != nil {
		return nil, s.internalErr(err)
	}

	return ids, nil
}

func (s *RecommendationService) internalErr(err error) error {
	s.logger.Error("Recommendation failure", zap.Error(err))
	return fmt.Errorf("%w: %v", ErrRecommendation, err)
}

// splitInterests parses the comma-separated category interests field.
func splitInterests(interests string) []string {
	parts := strings.Split(interests, ",")
	titles := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			titles = append(titles, p)
		}
	}
	return titles
}

// qualificationFilter maps the free-text qualification field to a text
// filter over course titles and descriptions. At most one rule
// applies, picked by case-insensitive substring match.
func qualificationFilter(qualification string) repository.TextFilter {
	q := strings.ToLower(qualification)
	switch {
	case strings.Contains(q, "university"):
		return repository.TextFilter{
			TitleTerms:       []string{"university"},
			DescriptionTerms: []string{"university"},
		}
	case strings.Contains(q, "high school"):
		return repository.TextFilter{
			TitleTerms:       []string{"beginner"},
			DescriptionTerms: []string{"grade"},
		}
	case strings.Contains(q, "master"):
		return repository.TextFilter{
			TitleTerms:       []string{"advanced"},
			DescriptionTerms: []string{"in-depth"},
		}
	}
	return repository.TextFilter{}
}
