package handlers

import (
	"errors"
	"strconv"

	"eduweb/internal/repository"
	"eduweb/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CourseHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

func NewCourseHandler(catalogService *service.CatalogService, logger *zap.Logger) *CourseHandler {
	return &CourseHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListCourses godoc
// @Summary List published courses
// @Description List published courses, optionally filtered by a title keyword or a category
// @Tags courses
// @Produce json
// @Param kw query string false "Title keyword"
// @Param category query int false "Category ID"
// @Param limit query int false "Limit" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.CourseResponse
// @Router /api/v1/courses [get]
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	filter := repository.CourseFilter{
		Keyword:    c.Query("kw"),
		CategoryID: int64(c.QueryInt("category", 0)),
		Limit:      c.QueryInt("limit", 20),
		Offset:     c.QueryInt("offset", 0),
	}

	courses, err := h.catalogService.ListCourses(c.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list courses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list courses",
		})
	}

	return c.JSON(courses)
}

// GetCourse godoc
// @Summary Get course details
// @Description Get a single course with its average rating and enrolled student count
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.CourseDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/courses/{id} [get]
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	course, err := h.catalogService.GetCourse(c.Context(), courseID)
	if err != nil {
		if errors.Is(err, service.ErrCourseNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Course not found",
			})
		}
		h.logger.Error("Failed to get course", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get course",
		})
	}

	return c.JSON(course)
}

// ListComments godoc
// @Summary List course comments
// @Description List the most recent comments left on a course
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Param limit query int false "Limit" default(20)
// @Success 200 {array} dto.CommentResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/courses/{id}/comments [get]
func (h *CourseHandler) ListComments(c *fiber.Ctx) error {
	courseID, err := parseCourseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid course ID",
		})
	}

	comments, err := h.catalogService.ListComments(c.Context(), courseID, c.QueryInt("limit", 20))
	if err != nil {
		h.logger.Error("Failed to list comments", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list comments",
		})
	}

	return c.JSON(comments)
}

// ListCategories godoc
// @Summary List categories
// @Description List all categories with their published course counts
// @Tags courses
// @Produce json
// @Success 200 {array} dto.CategoryResponse
// @Router /api/v1/categories [get]
func (h *CourseHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalogService.ListCategories(c.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list categories",
		})
	}

	return c.JSON(categories)
}

func parseCourseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.ErrBadRequest
	}
	return id, nil
}
