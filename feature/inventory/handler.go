package inventory

import (
	"errors"

	"inventory-manager/core/logger"
	"inventory-manager/core/tables"
	"inventory-manager/feature/inventory/matcher"
	"inventory-manager/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the inventory.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// QueryResponse is the JSON body of a successful query.
type QueryResponse struct {
	Lines       []string       `json:"lines"`
	Best        models.Record  `json:"best"`
	Alternative *models.Record `json:"alternative,omitempty"`
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Get("/items", h.HandleListItems)
	group.Get("/items/:id", h.HandleGetItem)
	group.Get("/reports", h.HandleListReports)
	group.Get("/reports/:name", h.HandleGetReport)
	group.Get("/query", h.HandleQuery)
	group.Post("/reload", h.HandleReload)
}

// HandleListItems returns every merged record.
// @Summary List Items
// @Description List every merged inventory record in manufacturer-table order.
// @Tags inventory
// @Produce json
// @Success 200 {array} models.Record "Records"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/items [get]
func (h *Handler) HandleListItems(c *fiber.Ctx) error {
	items, err := h.service.Items(c.Context())
	if err != nil {
		return h.internalError(c, "Listing items failed", err)
	}
	return c.JSON(items)
}

// HandleGetItem returns one merged record.
// @Summary Get Item
// @Description Get the merged record for one item id.
// @Tags inventory
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} models.Record "Record"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/items/{id} [get]
func (h *Handler) HandleGetItem(c *fiber.Ctx) error {
	item, err := h.service.Item(c.Context(), c.Params("id"))
	if errors.Is(err, ErrItemNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return h.internalError(c, "Item lookup failed", err)
	}
	return c.JSON(item)
}

// HandleListReports returns every generated report.
// @Summary List Reports
// @Description Generate every report from the current inventory.
// @Tags inventory
// @Produce json
// @Success 200 {array} report.Report "Reports"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/reports [get]
func (h *Handler) HandleListReports(c *fiber.Ctx) error {
	reports, err := h.service.Reports(c.Context())
	if err != nil {
		return h.internalError(c, "Report generation failed", err)
	}
	return c.JSON(reports)
}

// HandleGetReport returns one report as the text of its output file.
// @Summary Get Report
// @Description Get one report file, e.g. FullInventory.txt.
// @Tags inventory
// @Produce plain
// @Param name path string true "Report file name"
// @Success 200 {string} string "Report content"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/reports/{name} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	r, err := h.service.Report(c.Context(), c.Params("name"))
	if errors.Is(err, ErrReportNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return h.internalError(c, "Report generation failed", err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(tables.Render(r.Lines))
}

// HandleQuery finds the best eligible item for a manufacturer and item type.
// @Summary Query Inventory
// @Description Find the best eligible item and a closest-priced alternative.
// @Tags inventory
// @Produce json
// @Param q query string true "Manufacturer and item type, e.g. 'Apple phone'"
// @Success 200 {object} QueryResponse "Match"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "No such item in inventory"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/query [get]
func (h *Handler) HandleQuery(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "query parameter q is required"})
	}

	res, err := h.service.Query(c.Context(), q)
	if matcher.IsNoSuchItem(err) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": matcher.NoSuchItemMessage})
	}
	if err != nil {
		return h.internalError(c, "Query failed", err)
	}
	return c.JSON(QueryResponse{Lines: res.Lines(), Best: res.Best, Alternative: res.Alternative})
}

// HandleReload rebuilds the inventory from its source.
// @Summary Reload Inventory
// @Description Reload the three input tables and swap in the new inventory.
// @Tags inventory
// @Produce json
// @Success 200 {object} Summary "Reloaded"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/reload [post]
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	snap, err := h.service.Reload(c.Context())
	if err != nil {
		return h.internalError(c, "Reload failed", err)
	}
	return c.JSON(snap.Summary())
}

func (h *Handler) internalError(c *fiber.Ctx, msg string, err error) error {
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
