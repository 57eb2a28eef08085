package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-insights/internal/api/dto"
	"github.com/spec-kit/ticket-insights/internal/observability"
	"github.com/spec-kit/ticket-insights/internal/org"
	"github.com/spec-kit/ticket-insights/internal/service"
	apperrors "github.com/spec-kit/ticket-insights/pkg/util/errorutil"
)

// QueriesHandler serves the aggregation query endpoints.
type QueriesHandler struct {
	service  *service.AnalyticsService
	validate *validator.Validate
	metrics  *observability.Metrics
}

// NewQueriesHandler constructs handler.
func NewQueriesHandler(analytics *service.AnalyticsService, metrics *observability.Metrics) *QueriesHandler {
	return &QueriesHandler{
		service:  analytics,
		validate: validator.New(),
		metrics:  metrics,
	}
}

// PerWeek GET /queries/per-week.
func (h *QueriesHandler) PerWeek(c *fiber.Ctx) error {
	opts, req, err := h.parseQuery(c)
	if err != nil {
		return err
	}
	buckets, err := h.service.PerWeek(opts)
	if err != nil {
		return err
	}
	h.metrics.RecordQuery("per_week")
	weeks := make([]dto.WeekBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		weeks = append(weeks, dto.WeekBucketResponse{Week: b.Index, Start: b.Start, Count: b.Count})
	}
	return c.JSON(fiber.Map{"data": dto.AggregationResponse{
		Query: "per_week",
		Name:  req.Name,
		Color: req.Color,
		Weeks: weeks,
	}})
}

// PerBuilding GET /queries/per-building.
func (h *QueriesHandler) PerBuilding(c *fiber.Ctx) error {
	opts, req, err := h.parseQuery(c)
	if err != nil {
		return err
	}
	if req.Building != "" {
		return apperrors.NewValidationError("cannot filter to a single building in a per-building query", nil)
	}
	buckets, err := h.service.PerBuilding(opts)
	if err != nil {
		return err
	}
	h.metrics.RecordQuery("per_building")
	return c.JSON(fiber.Map{"data": dto.AggregationResponse{
		Query:   "per_building",
		Name:    req.Name,
		Color:   req.Color,
		Buckets: countBuckets(buckets),
	}})
}

// PerRoom GET /queries/buildings/:name/per-room.
func (h *QueriesHandler) PerRoom(c *fiber.Ctx) error {
	opts, req, err := h.parseQuery(c)
	if err != nil {
		return err
	}
	opts.Building = c.Params("name")
	buckets, err := h.service.PerRoom(opts)
	if err != nil {
		return err
	}
	h.metrics.RecordQuery("per_room")
	return c.JSON(fiber.Map{"data": dto.AggregationResponse{
		Query:   "per_room",
		Name:    req.Name,
		Color:   req.Color,
		Buckets: countBuckets(buckets),
	}})
}

// PerRequestor GET /queries/per-requestor.
func (h *QueriesHandler) PerRequestor(c *fiber.Ctx) error {
	opts, req, err := h.parseQuery(c)
	if err != nil {
		return err
	}
	buckets, err := h.service.PerRequestor(opts)
	if err != nil {
		return err
	}
	h.metrics.RecordQuery("per_requestor")
	return c.JSON(fiber.Map{"data": dto.AggregationResponse{
		Query:   "per_requestor",
		Name:    req.Name,
		Color:   req.Color,
		Buckets: countBuckets(buckets),
	}})
}

func (h *QueriesHandler) parseQuery(c *fiber.Ctx) (service.QueryOptions, *dto.AggregationQuery, error) {
	var req dto.AggregationQuery
	if err := c.QueryParser(&req); err != nil {
		return service.QueryOptions{}, nil, apperrors.NewValidationError("invalid query parameters", nil)
	}
	if err := h.validate.Struct(req); err != nil {
		return service.QueryOptions{}, nil, apperrors.NewValidationError(err.Error(), nil)
	}

	opts := service.QueryOptions{
		Weeks:             req.Weeks,
		Building:          req.Building,
		Requestor:         req.Requestor,
		Diagnoses:         req.Diagnoses,
		MatchAllDiagnoses: req.MatchAll,
		Name:              req.Name,
		Color:             req.Color,
	}
	if req.TermStart != "" {
		t, err := service.ParseDate(req.TermStart)
		if err != nil {
			return service.QueryOptions{}, nil, err
		}
		opts.TermStart = &t
	}
	if req.TermEnd != "" {
		t, err := service.ParseDate(req.TermEnd)
		if err != nil {
			return service.QueryOptions{}, nil, err
		}
		opts.TermEnd = &t
	}
	return opts, &req, nil
}

func countBuckets(buckets []org.CountBucket) []dto.CountBucketResponse {
	resp := make([]dto.CountBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		resp = append(resp, dto.CountBucketResponse{Label: b.Label, Count: b.Count})
	}
	return resp
}
