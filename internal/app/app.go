// Package app assembles the Fiber application serving every profile kind.
package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"profilecard/internal/apperrors"
	"profilecard/internal/handlers"
	"profilecard/internal/middleware"
	"profilecard/internal/models"
	"profilecard/internal/repositories"
	"profilecard/internal/services"
	"profilecard/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// Deps are the collaborators of the application.
type Deps struct {
	Store     *repositories.Store
	Validator *validation.Validator
	// Publisher is optional; leave it nil to disable events.
	Publisher services.EventPublisher
	Clock     *services.Clock
	Logger    *zap.Logger
	BaseURL   string
	BodyLimit int
}

// New builds the Fiber app with middleware, health, metrics and the /api/v1 routes.
func New(deps Deps) *fiber.App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		BodyLimit:             deps.BodyLimit,
		ErrorHandler:          errorHandler(deps.Logger),
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(middleware.RequestMetrics())
	app.Use(middleware.RequestLogger(deps.Logger))

	app.Get("/health", healthHandler(deps.Store))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	apiV1 := app.Group("/api/v1")
	serviceDeps := services.Dependencies{
		Validator: deps.Validator,
		Publisher: deps.Publisher,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	register[models.Student](apiV1, deps.Store.Students, serviceDeps, deps)
	register[models.BioData](apiV1, deps.Store.BioData, serviceDeps, deps)
	register[models.Professional](apiV1, deps.Store.Professionals, serviceDeps, deps)
	register[models.BuyerCard](apiV1, deps.Store.BuyerCards, serviceDeps, deps)
	register[models.Seller](apiV1, deps.Store.Sellers, serviceDeps, deps)

	return app
}

func register[T any, P models.Record[T]](router fiber.Router, repo repositories.ProfileRepository[T], serviceDeps services.Dependencies, deps Deps) {
	service := services.NewProfileService[T, P](repo, serviceDeps)
	handlers.NewProfileHandler(service, deps.BaseURL, deps.Logger).RegisterRoutes(router)
}

func healthHandler(store *repositories.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		status, storeStatus, code := "healthy", "connected", fiber.StatusOK
		if err := store.Ping(ctx); err != nil {
			status, storeStatus, code = "unhealthy", "unreachable", fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
			"store":  storeStatus,
			"driver": store.Driver,
		})
	}
}

// errorHandler renders errors that escape the handlers (unknown routes,
// oversized bodies, recovered panics) in the same body shape.
func errorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(fe.Code), " ", "_"))
			return c.Status(fe.Code).JSON(fiber.Map{"message": fe.Message, "code": code})
		}
		logger.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Server error",
			"code":    apperrors.CodeInternal,
		})
	}
}
