package handlers

import (
	"fmt"

	"profilecard/internal/apperrors"
	"profilecard/internal/card"
	"profilecard/internal/metrics"
	"profilecard/internal/models"
	"profilecard/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProfileHandler handles HTTP requests for one profile kind.
type ProfileHandler[T any, P models.Record[T]] struct {
	service *services.ProfileService[T, P]
	baseURL string
	logger  *zap.Logger
}

// NewProfileHandler creates a new ProfileHandler. Card share links are rooted at baseURL.
func NewProfileHandler[T any, P models.Record[T]](service *services.ProfileService[T, P], baseURL string, logger *zap.Logger) *ProfileHandler[T, P] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandler[T, P]{
		service: service,
		baseURL: baseURL,
		logger:  logger,
	}
}

// RegisterRoutes registers the kind's collection routes on router.
func (h *ProfileHandler[T, P]) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/" + h.service.Kind().Collection())
	routes.Get("/", h.HandleList)
	routes.Post("/", h.HandleCreate)
	routes.Get("/:id", h.HandleGet)
	routes.Get("/:id/card", h.HandleCard)
	routes.Get("/:id/qr.png", h.HandleQRCode)
	routes.Get("/:id/card.png", h.HandleCardPNG)
}

// HandleList retrieves every profile of the kind, newest first.
func (h *ProfileHandler[T, P]) HandleList(c *fiber.Ctx) error {
	records, err := h.service.GetAll(c.UserContext())
	if err != nil {
		return h.respondError(c, err)
	}
	if records == nil {
		records = []T{}
	}
	return c.JSON(records)
}

// HandleGet retrieves a single profile by its id.
func (h *ProfileHandler[T, P]) HandleGet(c *fiber.Ctx) error {
	record, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(record)
}

// HandleCreate validates and stores a new profile.
func (h *ProfileHandler[T, P]) HandleCreate(c *fiber.Ctx) error {
	var input map[string]any
	if err := c.BodyParser(&input); err != nil {
		return h.respondError(c, apperrors.BadRequest(apperrors.CodeInvalidBody, "Invalid request body", err))
	}

	record, err := h.service.Create(c.UserContext(), input)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// HandleCard returns the card view of a profile.
func (h *ProfileHandler[T, P]) HandleCard(c *fiber.Ctx) error {
	view, err := h.view(c)
	if err != nil {
		return h.respondError(c, err)
	}
	return c.JSON(view)
}

// HandleQRCode returns the profile's QR code as a PNG image.
func (h *ProfileHandler[T, P]) HandleQRCode(c *fiber.Ctx) error {
	view, err := h.view(c)
	if err != nil {
		return h.respondError(c, err)
	}

	size := c.QueryInt("size", card.DefaultQRSize)
	if size < 64 || size > 1024 {
		return h.respondError(c, apperrors.BadRequest(apperrors.CodeInvalidQuery, "size must be between 64 and 1024", nil))
	}
	data, err := card.QRCode(view.QR, size)
	if err != nil {
		return h.respondError(c, err)
	}

	metrics.CardsRendered.WithLabelValues(string(view.Kind), "qr").Inc()
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(data)
}

// HandleCardPNG returns the rendered card as a downloadable PNG image.
func (h *ProfileHandler[T, P]) HandleCardPNG(c *fiber.Ctx) error {
	view, err := h.view(c)
	if err != nil {
		return h.respondError(c, err)
	}

	data, err := card.RenderPNG(view)
	if err != nil {
		return h.respondError(c, err)
	}

	metrics.CardsRendered.WithLabelValues(string(view.Kind), "png").Inc()
	c.Attachment(fmt.Sprintf("%s-%s.png", view.Kind.ShareSegment(), view.ID))
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(data)
}

// view loads the profile named by the id param and builds its card with the ?qr mode.
func (h *ProfileHandler[T, P]) view(c *fiber.Ctx) (card.View, error) {
	mode, err := card.ParseMode(c.Query("qr"))
	if err != nil {
		return card.View{}, apperrors.BadRequest(apperrors.CodeInvalidQuery, "qr must be summary or link", err)
	}
	record, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return card.View{}, err
	}
	return card.Build(P(record), h.baseURL, mode), nil
}

func (h *ProfileHandler[T, P]) respondError(c *fiber.Ctx, err error) error {
	return RespondError(c, h.service.Kind(), err, h.logger)
}
