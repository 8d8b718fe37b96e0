package dto

type RateCourseRequest struct {
	Rate int `json:"rate" validate:"required,min=1,max=5"`
}

type CommentCourseRequest struct {
	Content string `json:"content" validate:"required,max=150"`
}

type CommentResponse struct {
	ID        string `json:"id"`
	CourseID  int64  `json:"course_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

type PurchaseResponse struct {
	ID        string `json:"id"`
	CourseID  int64  `json:"course_id"`
	CreatedAt string `json:"created_at"`
}
