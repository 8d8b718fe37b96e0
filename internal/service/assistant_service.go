package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"eduweb/internal/dto"
	"eduweb/internal/repository"
	"eduweb/pkg/config"

	"github.com/Role1776/gigago"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// AssistantService answers student questions through the GigaChat LLM,
// optionally grounding the answer in the course the student is viewing.
type AssistantService struct {
	client     *gigago.Client
	model      *gigago.GenerativeModel
	courseRepo *repository.CourseRepository
	logger     *zap.Logger
}

func buildAssistantInstruction() string {
	return `You are a study assistant for an online course marketplace.
Students ask questions while browsing or taking courses.

Rules:
- If course context is provided and the question relates to it, answer using that context.
- Otherwise answer from general knowledge.
- Keep answers concise: 3-5 sentences.
- Never invent prices, enrollment numbers or course availability.`
}

func NewAssistantService(cfg *config.GigaChatConfig, courseRepo *repository.CourseRepository, logger *zap.Logger) (*AssistantService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = buildAssistantInstruction()
	model.Temperature = 0.3

	return &AssistantService{
		client:     client,
		model:      model,
		courseRepo: courseRepo,
		logger:     logger,
	}, nil
}

func (s *AssistantService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}

// Chat answers a student question. When the request names a course,
// its title and description are prepended as context; an unknown
// course id degrades to a context-free answer rather than failing.
func (s *AssistantService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	var courseContext string
	if req.CourseID > 0 {
		course, err := s.courseRepo.GetByID(ctx, req.CourseID)
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			// keep going without context
		case err != nil:
			return nil, err
		default:
			courseContext = fmt.Sprintf("Course: %s\nDescription: %s", course.Title, course.Description)
		}
	}

	var prompt strings.Builder
	if courseContext != "" {
		prompt.WriteString("The student is currently viewing this course:\n")
		prompt.WriteString(courseContext)
		prompt.WriteString("\n\n")
	}
	prompt.WriteString("Student question: ")
	prompt.WriteString(req.Message)

	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt.String()},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from LLM")
	}

	answer := strings.TrimSpace(resp.Choices[0].Message.Content)

	s.logger.Info("Assistant answered",
		zap.Int64("course_id", req.CourseID),
		zap.Int("answer_len", len(answer)),
	)

	return &dto.ChatResponse{Response: answer}, nil
}
