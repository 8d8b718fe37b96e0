package api

import (
	"eduweb/docs"
	"eduweb/internal/api/handlers"
	"eduweb/pkg/auth"
	"eduweb/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	authHandler *handlers.AuthHandler,
	courseHandler *handlers.CourseHandler,
	interactionHandler *handlers.InteractionHandler,
	recHandler *handlers.RecommendationHandler,
	assistantHandler *handlers.AssistantHandler,
	jwtManager *auth.JWTManager,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // ensure docs package is imported and init() is called
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes (public)
	authGroup := app.Group("/user/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)

	v1 := app.Group("/api/v1")

	// Catalog routes (public)
	v1.Get("/courses", courseHandler.ListCourses)
	v1.Get("/courses/:id", courseHandler.GetCourse)
	v1.Get("/courses/:id/comments", courseHandler.ListComments)
	v1.Get("/categories", courseHandler.ListCategories)

	// Protected routes. The auth middleware is attached per route so
	// the catalog stays browsable without a token.
	authRequired := middleware.AuthMiddleware(jwtManager, appLogger)
	v1.Post("/courses/:id/purchase", authRequired, interactionHandler.PurchaseCourse)
	v1.Post("/courses/:id/rating", authRequired, interactionHandler.RateCourse)
	v1.Post("/courses/:id/comment", authRequired, interactionHandler.CommentCourse)
	v1.Post("/recommendations", authRequired, recHandler.Recommend)
	v1.Post("/recommendations/rebuild", authRequired, recHandler.Rebuild)
	v1.Post("/assistant/chat", authRequired, assistantHandler.Chat)

	return app
}
