package etl

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"student-etl/core/logger"
	"student-etl/core/utils"
	"student-etl/feature/etl/models"
)

// Handler handles HTTP requests for pipeline runs and consolidated data.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the pipeline routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/etl")
	group.Get("/runs", h.HandleListRuns)
	group.Get("/runs/latest", h.HandleLatestRun)
	group.Post("/runs", h.HandleTriggerRun)
	group.Get("/students", h.HandleListStudents)
	group.Get("/students/:id", h.HandleGetStudent)
}

// HandleListRuns returns the most recent monitor entries.
// @Summary List Runs
// @Description List the most recent pipeline runs, newest first.
// @Tags etl
// @Accept json
// @Produce json
// @Param limit query int false "Maximum entries to return (default 20)"
// @Success 200 {array} models.MonitorEntry "Run history"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /etl/runs [get]
func (h *Handler) HandleListRuns(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entries, err := h.service.History(c.Context(), utils.ToInt(c.Query("limit")))
	if err != nil {
		l.Error("Run history query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(entries)
}

// HandleLatestRun returns the newest monitor entry.
// @Summary Latest Run
// @Description Get the monitor entry of the most recent pipeline run.
// @Tags etl
// @Accept json
// @Produce json
// @Success 200 {object} models.MonitorEntry "Latest run"
// @Failure 404 {object} map[string]string "No runs recorded"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /etl/runs/latest [get]
func (h *Handler) HandleLatestRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entry, err := h.service.Latest(c.Context())
	if errors.Is(err, models.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Latest run query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(entry)
}

// HandleTriggerRun executes a full pipeline run synchronously.
// @Summary Trigger Run
// @Description Execute a pipeline run and return its monitor entry.
// @Tags etl
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.MonitorEntry "Successful run"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Failed run"
// @Router /etl/runs [post]
func (h *Handler) HandleTriggerRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Run triggered over HTTP")

	entry, err := h.service.Execute(c.Context())
	if err != nil {
		l.Error("Run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
			"run":   entry,
		})
	}

	return c.JSON(entry)
}

// HandleListStudents pages through the consolidated table.
// @Summary List Students
// @Description List consolidated student rows in key order.
// @Tags etl
// @Accept json
// @Produce json
// @Param limit query int false "Maximum rows to return (default 50)"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} models.StudentRecord "Consolidated rows"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /etl/students [get]
func (h *Handler) HandleListStudents(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := h.service.Students(c.Context(), utils.ToInt(c.Query("limit")), utils.ToInt(c.Query("offset")))
	if err != nil {
		l.Error("Student listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(records)
}

// HandleGetStudent returns one consolidated row.
// @Summary Get Student
// @Description Get the consolidated row for a single student key.
// @Tags etl
// @Accept json
// @Produce json
// @Param id path string true "Student key"
// @Success 200 {object} models.StudentRecord "Consolidated row"
// @Failure 404 {object} map[string]string "Unknown student"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /etl/students/{id} [get]
func (h *Handler) HandleGetStudent(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	record, err := h.service.Student(c.Context(), c.Params("id"))
	if errors.Is(err, models.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if err != nil {
		l.Error("Student lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(record)
}
