package dto

type ChatRequest struct {
	Message  string `json:"message" validate:"required"`
	CourseID int64  `json:"course_id,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
}
