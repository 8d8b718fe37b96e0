package handlers

import (
	"errors"
	"strings"

	"eduweb/internal/dto"
	"eduweb/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxCommentLength = 150

type InteractionHandler struct {
	interactionService *service.InteractionService
	logger             *zap.Logger
}

func NewInteractionHandler(interactionService *service.InteractionService, logger *zap.Logger) *InteractionHandler {
	return &InteractionHandler{
		interactionService: interactionService,
		logger:             logger,
	}
}

// PurchaseCourse godoc
// @Summary Purchase a course
// @Description Enroll the authenticated student into a course; repeated purchases are ignored
// @Tags interactions
// @Produce json
// @Param id path int true "Course ID"
// @Security Bearer
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/courses/{id}/purchase [post]
func (h *InteractionHandler) PurchaseCourse(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := parseCourseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	purchase, err := h.interactionService.PurchaseCourse(c.Context(), userID, courseID)
	if err != nil {
		return h.interactionError(c, err, "Failed to purchase course")
	}

	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// RateCourse godoc
// @Summary Rate a course
// @Description Rate a course from 1 to 5; a repeated rating replaces the previous one
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.RateCourseRequest true "Rating request"
// @Security Bearer
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/courses/{id}/rating [post]
func (h *InteractionHandler) RateCourse(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := parseCourseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var req dto.RateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.Rate < 1 || req.Rate > 5 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Rate must be between 1 and 5",
		})
	}

	if err := h.interactionService.RateCourse(c.Context(), userID, courseID, req.Rate); err != nil {
		return h.interactionError(c, err, "Failed to rate course")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// CommentCourse godoc
// @Summary Comment on a course
// @Description Leave a comment on a course
// @Tags interactions
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.CommentCourseRequest true "Comment request"
// @Security Bearer
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/courses/{id}/comment [post]
func (h *InteractionHandler) CommentCourse(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	courseID, err := parseCourseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	var req dto.CommentCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" || len(req.Content) > maxCommentLength {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Comment must be between 1 and 150 characters",
		})
	}

	comment, err := h.interactionService.CommentCourse(c.Context(), userID, courseID, req.Content)
	if err != nil {
		return h.interactionError(c, err, "Failed to comment on course")
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *InteractionHandler) interactionError(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, service.ErrCourseNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Course not found",
		})
	case errors.Is(err, service.ErrNotStudent):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User has no student profile",
		})
	default:
		h.logger.Error(msg, zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": msg,
		})
	}
}

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("userID").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}
