package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-insights/internal/api/dto"
	"github.com/spec-kit/ticket-insights/internal/observability"
	"github.com/spec-kit/ticket-insights/internal/org"
	"github.com/spec-kit/ticket-insights/internal/report"
)

// ReportHandler exposes metadata about the loaded report and the service's
// in-memory counters.
type ReportHandler struct {
	report  *report.Report
	org     *org.Organization
	metrics *observability.Metrics
}

// NewReportHandler constructs handler.
func NewReportHandler(rep *report.Report, organization *org.Organization, metrics *observability.Metrics) *ReportHandler {
	return &ReportHandler{report: rep, org: organization, metrics: metrics}
}

// Info GET /report. Clients consult fields_present to know which queries
// are legal before invoking them.
func (h *ReportHandler) Info(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.ReportInfoResponse{
		FieldsPresent: h.report.FieldsPresent(),
		TimeFormat:    h.report.TimeFormat(),
		Tickets:       h.org.TicketCount(),
		Buildings:     h.org.BuildingCount(),
	}})
}

// Metrics GET /metrics.
func (h *ReportHandler) Metrics(c *fiber.Ctx) error {
	requests, errors, queries := h.metrics.Snapshot()
	return c.JSON(fiber.Map{"data": fiber.Map{
		"requests": requests,
		"errors":   errors,
		"queries":  queries,
	}})
}
