package dto

// RecommendRequest carries the course the student is currently viewing.
// CourseID is required only when the student has prior interactions;
// the profile-based fallback ignores it.
type RecommendRequest struct {
	CourseID int64 `json:"course_id"`
}

type RecommendationResponse struct {
	Courses []CourseResponse `json:"courses"`
}
