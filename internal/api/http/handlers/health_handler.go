package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-insights/internal/org"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	org         *org.Organization
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, organization *org.Organization) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, org: organization}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness: the report must have been ingested into the
// organization model before queries can be answered.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if h.org == nil || h.org.TicketCount() == 0 {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "REPORT_NOT_LOADED",
				"message": "ticket report not loaded",
			},
		})
	}
	return c.JSON(fiber.Map{
		"status":  "ready",
		"tickets": h.org.TicketCount(),
	})
}
