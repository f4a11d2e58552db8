package integrity

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"student-etl/core/logger"
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
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/counts", h.HandleCountsCheck)
	group.Get("/sources", h.HandleSourcesCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Schema, Counts, Sources).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	// Schema
	if schema, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schema
	}

	// Counts
	if counts, err := h.service.CheckCounts(ctx); err != nil {
		report["counts"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["counts"] = counts
	}

	// Sources
	report["sources"] = h.service.CheckSources()

	return c.JSON(report)
}

// HandleSchemaCheck verifies the pipeline tables against their models.
// @Summary Check Schema
// @Description Checks that the consolidated and monitoring tables carry every expected column.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleCountsCheck verifies key uniqueness and run count consistency.
// @Summary Check Counts
// @Description Checks consolidated key uniqueness and row count against the latest successful run.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.CountsReport "Counts Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/counts [get]
func (h *Handler) HandleCountsCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckCounts(c.Context())
	if err != nil {
		l.Error("Counts check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleSourcesCheck verifies the configured source files.
// @Summary Check Sources
// @Description Checks that every configured source file exists and is readable.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.SourcesReport "Sources Report"
// @Router /integrity/sources [get]
func (h *Handler) HandleSourcesCheck(c *fiber.Ctx) error {
	return c.JSON(h.service.CheckSources())
}
