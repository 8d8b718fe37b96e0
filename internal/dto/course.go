package dto

type CourseResponse struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	CreatedAt   string `json:"created_at"`
}

type CourseDetailResponse struct {
	CourseResponse
	AverageRating float64 `json:"average_rating"`
	StudentCount  int64   `json:"student_count"`
}

type CategoryResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	CourseCount int64  `json:"course_count"`
}
