package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/buckeye-it/ticket-autopilot/internal/auth"
	"github.com/buckeye-it/ticket-autopilot/internal/observability"
	"github.com/buckeye-it/ticket-autopilot/internal/service"
	apperrors "github.com/buckeye-it/ticket-autopilot/pkg/util"
)

// RunHandler exposes the pipelines to the external scheduler. Each
// request executes one synchronous pipeline pass and returns its summary.
type RunHandler struct {
	assignment *service.AssignmentService
	automation *service.VIPAutomationService
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewRunHandler returns a new handler instance.
func NewRunHandler(assignment *service.AssignmentService, automation *service.VIPAutomationService, metrics *observability.Metrics, logger *zap.Logger) *RunHandler {
	return &RunHandler{assignment: assignment, automation: automation, metrics: metrics, logger: logger}
}

// RunAssignment triggers one assignment pipeline pass.
func (h *RunHandler) RunAssignment(c *fiber.Ctx) error {
	h.logger.Info("assignment run triggered", zap.String("caller", auth.Caller(c)))
	h.metrics.RecordRun("assignment")

	summary, err := h.assignment.Run(c.UserContext())
	if err != nil {
		return apperrors.NewUpstreamError(err)
	}
	return c.JSON(fiber.Map{"pipeline": "assignment", "summary": summary})
}

// RunVIP triggers one VIP automation pipeline pass.
func (h *RunHandler) RunVIP(c *fiber.Ctx) error {
	h.logger.Info("vip automation run triggered", zap.String("caller", auth.Caller(c)))
	h.metrics.RecordRun("vip_automation")

	summary, err := h.automation.Run(c.UserContext())
	if err != nil {
		return apperrors.NewUpstreamError(err)
	}
	return c.JSON(fiber.Map{"pipeline": "vip_automation", "summary": summary})
}
