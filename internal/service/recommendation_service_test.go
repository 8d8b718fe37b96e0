package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"eduweb/internal/dto"
	"eduweb/internal/models"
	"eduweb/internal/recommender"
	"eduweb/internal/repository"
	"eduweb/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type fakeCatalog struct {
	records    []recommender.CourseRecord
	profileIDs []int64
	popularIDs []int64

	profileCategories []string
	profileText       repository.TextFilter
	profileCalled     bool
	popularCalled     bool
}

func (f *fakeCatalog) LoadCatalog(ctx context.Context) ([]recommender.CourseRecord, error) {
	return f.records, nil
}

func (f *fakeCatalog) FindIDsByProfile(ctx context.Context, categoryTitles []string, text repository.TextFilter, limit int) ([]int64, error) {
	f.profileCalled = true
	f.profileCategories = categoryTitles
	f.profileText = text
	return f.profileIDs, nil
}

func (f *fakeCatalog) ListPopularIDs(ctx context.Context, limit int) ([]int64, error) {
	f.popularCalled = true
	if len(f.popularIDs) > limit {
		return f.popularIDs[:limit], nil
	}
	return f.popularIDs, nil
}

func (f *fakeCatalog) ListByIDs(ctx context.Context, ids []int64) ([]*models.Course, error) {
	titles := make(map[int64]string, len(f.records))
	for _, r := range f.records {
		titles[r.ID] = r.Title
	}
	courses := make([]*models.Course, 0, len(ids))
	for _, id := range ids {
		courses = append(courses, &models.Course{ID: id, Title: titles[id]})
	}
	return courses, nil
}

type fakeInteractions struct {
	interacted map[int64]struct{}
}

func (f *fakeInteractions) CourseIDsForStudent(ctx context.Context, studentID uuid.UUID) (map[int64]struct{}, error) {
	return f.interacted, nil
}

type fakeUsers struct {
	user *models.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if f.user == nil {
		return nil, pgx.ErrNoRows
	}
	return f.user, nil
}

type fakeStudents struct {
	student *models.Student
}

func (f *fakeStudents) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Student, error) {
	if f.student == nil {
		return nil, pgx.ErrNoRows
	}
	return f.student, nil
}

func pythonRecords() []recommender.CourseRecord {
	return []recommender.CourseRecord{
		{ID: 1, Title: "Intro to Python"},
		{ID: 2, Title: "Advanced Python"},
		{ID: 3, Title: "Cooking Basics"},
	}
}

type serviceFixture struct {
	svc     *RecommendationService
	catalog *fakeCatalog
	userID  uuid.UUID
}

func newFixture(t *testing.T, catalog *fakeCatalog, interacted map[int64]struct{}, user *models.User, student *models.Student) *serviceFixture {
	t.Helper()

	svc, err := NewRecommendationService(
		context.Background(),
		catalog,
		&fakeInteractions{interacted: interacted},
		&fakeUsers{user: user},
		&fakeStudents{student: student},
		&config.RecommenderConfig{MaxResults: 10},
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("NewRecommendationService() error = %v", err)
	}

	fx := &serviceFixture{svc: svc, catalog: catalog}
	if user != nil {
		fx.userID = user.ID
	}
	return fx
}

func testUser(qualification string) *models.User {
	return &models.User{ID: uuid.New(), Username: "alice", Qualification: qualification}
}

func testStudent(userID uuid.UUID, interests string) *models.Student {
	return &models.Student{ID: uuid.New(), UserID: userID, CategoryInterests: interests}
}

func resultIDs(resp *dto.RecommendationResponse) []int64 {
	ids := make([]int64, 0, len(resp.Courses))
	for _, c := range resp.Courses {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestNewRecommendationService_EmptyCatalog(t *testing.T) {
	_, err := NewRecommendationService(
		context.Background(),
		&fakeCatalog{},
		&fakeInteractions{},
		&fakeUsers{},
		&fakeStudents{},
		&config.RecommenderConfig{MaxResults: 10},
		zap.NewNop(),
	)
	if !errors.Is(err, recommender.ErrEmptyCorpus) {
		t.Fatalf("error = %v, want ErrEmptyCorpus", err)
	}
}

func TestRecommend_SimilarityBranch(t *testing.T) {
	user := testUser("")
	student := testStudent(user.ID, "")
	// Purchased Cooking Basics, so Branch A applies.
	fx := newFixture(t, &fakeCatalog{records: pythonRecords()},
		map[int64]struct{}{3: {}}, user, student)

	resp, err := fx.svc.Recommend(context.Background(), fx.userID, &dto.RecommendRequest{CourseID: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if got := resultIDs(resp); !reflect.DeepEqual(got, []int64{2}) {
		t.Errorf("Recommend() = %v, want [2]", got)
	}
	if fx.catalog.profileCalled || fx.catalog.popularCalled {
		t.Error("profile fallback queried despite existing interactions")
	}
}

func TestRecommend_ExcludesInteractedCourse(t *testing.T) {
	user := testUser("")
	student := testStudent(user.ID, "")
	// Purchased Advanced Python: the most similar course must be
	// excluded, and nothing with zero similarity backfills it.
	fx := newFixture(t, &fakeCatalog{records: pythonRecords()},
		map[int64]struct{}{2: {}}, user, student)

	resp, err := fx.svc.Recommend(context.Background(), fx.userID, &dto.RecommendRequest{CourseID: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if len(resp.Courses) != 0 {
		t.Errorf("Recommend() = %v, want empty", resultIDs(resp))
	}
}

func TestRecommend_InvalidFocalID(t *testing.T) {
	user := testUser("")
	student := testStudent(user.ID, "")
	fx := newFixture(t, &fakeCatalog{records: pythonRecords()},
		map[int64]struct{}{3: {}}, user, student)

	for _, courseID := range []int64{0, -5} {
		_, err := fx.svc.Recommend(context.Background(), fx.userID, &dto.RecommendRequest{CourseID: courseID})
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("Recommend(course_id=%d) error = %v, want ErrInvalidRequest", courseID, err)
		}
	}
}

func TestRecommend_FocalNotInSnapshot(t *testing.T) {
	user := testUser("")
	student := testStudent(user.ID, "")
	fx := newFixture(t, &fakeCatalog{records: pythonRecords()},
		map[int64]struct{}{3: {}}, user, student)

	_, err := fx.svc.Recommend(context.Background(), fx.userID, &dto.RecommendRequest{CourseID: 99})
	if !errors.Is(err, ErrCourseNotFound) {
		t.Fatalf("Recommend() error = %v, want ErrCourseNotFound", err)
	}
}

func TestRecommend_ProfileBranch_CategoryInterests(t *testing.T) {
	user := testUser("")
	student := testStudent(user.ID, "Cooking, Data Science")
	catalog := &fakeCatalog{records: pythonRecords(), profileIDs: []int64{3}}
	fx := newFixture(t, catalog, nil, user, student)

	resp, err := fx.svc.Recommend(context.Background(), fx.userID, &dto.RecommendRequest{})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !catalog.profileCalled {
		t.Fatal("profile query not issued for interaction-free student")
	}
	if want := []string{"Cooking", "Data Science"}; !reflect.DeepEqual(catalog.profileCategories, want) {
		t.Errorf("category filter = %v, want %v", catalog.profileCategories, want)
	}
	if !catalog.profileText.Empty() {
		t.Errorf("text filter = %+v, want empty for blank qualification", catalog.profileText)
	}
	if got := resultIDs(resp); !reflect.DeepEqual(got, []int64{3}) {
		t.Errorf("Recommend() = %v, want [3]", got)
	}
}

func TestRecommend_ProfileBranch_QualificationKeyword(t *testing.T) {
	user := testUser("University of Somewhere, 2nd year")
	student := testStudent(user.ID, "")
	catalog := &fakeCatalog{records: pythonRecords(), profileIDs: []int64{1, 2}}
	fx := newFixture(t, catalog, nil, user, student)

	if _, err := fx.svc.Recommend(context.Background(), fx.userID, &dto.RecommendRequest{}); err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !catalog.profileCalled {
		t.Fatal("profile query not issued")
	}
	if want := []string{"university"}; !reflect.DeepEqual(catalog.profileText.TitleTerms, want) {
		t.Errorf("title terms = %v, want %v", catalog.profileText.TitleTerms, want)
	}
}

func TestRecommend_ProfileBranch_PopularFallback(t *testing.T) {
	user := testUser("")
	student := testStudent(user.ID, "")
	catalog := &fakeCatalog{records: pythonRecords(), popularIDs: []int64{2, 1}}
	fx := newFixture(t, catalog, nil, user, student)

	resp, err := fx.svc.Recommend(context.Background(), fx.userID, &dto.RecommendRequest{})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if !catalog.popularCalled {
		t.Fatal("popularity fallback not queried")
	}
	if catalog.profileCalled {
		t.Error("profile query issued despite empty filters")
	}
	if got := resultIDs(resp); !reflect.DeepEqual(got, []int64{2, 1}) {
		t.Errorf("Recommend() = %v, want [2 1]", got)
	}
}

func TestRecommend_MissingStudentProfile(t *testing.T) {
	user := testUser("")
	svc, err := NewRecommendationService(
		context.Background(),
		&fakeCatalog{records: pythonRecords()},
		&fakeInteractions{},
		&fakeUsers{user: user},
		&fakeStudents{},
		&config.RecommenderConfig{MaxResults: 10},
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("NewRecommendationService() error = %v", err)
	}

	_, err = svc.Recommend(context.Background(), user.ID, &dto.RecommendRequest{CourseID: 1})
	if !errors.Is(err, ErrNotStudent) {
		t.Fatalf("Recommend() error = %v, want ErrNotStudent", err)
	}
}

func TestRecommend_Rebuild(t *testing.T) {
	user := testUser("")
	student := testStudent(user.ID, "")
	catalog := &fakeCatalog{records: pythonRecords()}
	fx := newFixture(t, catalog, map[int64]struct{}{3: {}}, user, student)

	// Catalog gains a course; results only change after Rebuild.
	catalog.records = append(catalog.records, recommender.CourseRecord{ID: 4, Title: "Python for Data Science"})

	resp, err := fx.svc.Recommend(context.Background(), fx.userID, &dto.RecommendRequest{CourseID: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if got := resultIDs(resp); !reflect.DeepEqual(got, []int64{2}) {
		t.Errorf("pre-rebuild Recommend() = %v, want [2]", got)
	}

	if err := fx.svc.Rebuild(context.Background()); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	resp, err = fx.svc.Recommend(context.Background(), fx.userID, &dto.RecommendRequest{CourseID: 1})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	got := resultIDs(resp)
	if len(got) != 2 || got[0] != 2 && got[0] != 4 {
		t.Errorf("post-rebuild Recommend() = %v, want both python neighbors", got)
	}
}

func TestQualificationFilter(t *testing.T) {
	tests := []struct {
		name          string
		qualification string
		wantTitle     []string
		wantDesc      []string
	}{
		{
			name:          "university keyword",
			qualification: "Third-year University student",
			wantTitle:     []string{"university"},
			wantDesc:      []string{"university"},
		},
		{
			name:          "high school keyword",
			qualification: "HIGH SCHOOL senior",
			wantTitle:     []string{"beginner"},
			wantDesc:      []string{"grade"},
		},
		{
			name:          "master keyword",
			qualification: "Master of Science",
			wantTitle:     []string{"advanced"},
			wantDesc:      []string{"in-depth"},
		},
		{
			name:          "no keyword",
			qualification: "self-taught",
		},
		{
			name:          "empty",
			qualification: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := qualificationFilter(tt.qualification)
			if !reflect.DeepEqual(got.TitleTerms, tt.wantTitle) {
				t.Errorf("TitleTerms = %v, want %v", got.TitleTerms, tt.wantTitle)
			}
			if !reflect.DeepEqual(got.DescriptionTerms, tt.wantDesc) {
				t.Errorf("DescriptionTerms = %v, want %v", got.DescriptionTerms, tt.wantDesc)
			}
		})
	}
}

func TestSplitInterests(t *testing.T) {
	tests := []struct {
		name      string
		interests string
		want      []string
	}{
		{name: "plain list", interests: "Cooking,Music", want: []string{"Cooking", "Music"}},
		{name: "whitespace trimmed", interests: " Cooking , Data Science ", want: []string{"Cooking", "Data Science"}},
		{name: "empty entries dropped", interests: "Cooking,,", want: []string{"Cooking"}},
		{name: "empty string", interests: "", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitInterests(tt.interests); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitInterests(%q) = %v, want %v", tt.interests, got, tt.want)
			}
		})
	}
}
