package integrity

import (
	"inventory-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
}

// HandleIntegrityCheck checks that the configured source holds every input table.
// @Summary Check Input Tables
// @Description Reports input tables missing from the configured source, or required columns missing from database tables.
// @Tags integrity
// @Produce json
// @Success 200 {object} Report "Integrity Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Check(c.Context())
	if err != nil {
		l.Error("Integrity check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if !report.OK {
		l.Warn("Input tables incomplete", zap.Strings("missing", report.Missing))
	}
	return c.JSON(report)
}
