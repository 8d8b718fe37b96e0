package handlers

import (
	"errors"

	"eduweb/internal/dto"
	"eduweb/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RecommendationHandler struct {
	recService *service.RecommendationService
	logger     *zap.Logger
}

func NewRecommendationHandler(recService *service.RecommendationService, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		recService: recService,
		logger:     logger,
	}
}

// Recommend godoc
// @Summary Recommend courses
// @Description Recommend courses for the authenticated student. Students with interaction history get courses similar to the focal course; new students get courses matching their declared profile.
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body dto.RecommendRequest true "Recommendation request"
// @Security Bearer
// @Success 200 {object} dto.RecommendationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/recommendations [post]
func (h *RecommendationHandler) Recommend(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	var req dto.RecommendRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	resp, err := h.recService.Recommend(c.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "A positive course_id is required",
			})
		case errors.Is(err, service.ErrCourseNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		case errors.Is(err, service.ErrNotStudent):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "User has no student profile",
			})
		default:
			h.logger.Error("Recommendation failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Recommendation failed",
			})
		}
	}

	return c.JSON(resp)
}

// Rebuild godoc
// @Summary Rebuild the recommendation model
// @Description Recompute the similarity model from the current catalog snapshot
// @Tags recommendations
// @Produce json
// @Security Bearer
// @Success 204
// @Failure 401 {object} map[string]string
// @Router /api/v1/recommendations/rebuild [post]
func (h *RecommendationHandler) Rebuild(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	if err := h.recService.Rebuild(c.Context()); err != nil {
		h.logger.Error("Model rebuild failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Model rebuild failed",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
