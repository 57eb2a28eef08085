package service

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-insights/internal/domain"
	"github.com/spec-kit/ticket-insights/internal/org"
	"github.com/spec-kit/ticket-insights/internal/report"
	"github.com/spec-kit/ticket-insights/pkg/util/errorutil"
)

// QueryOptions carries every recognized aggregation option. Each query
// consults only the options relevant to it and ignores the rest. Name and
// Color are display-only and pass through to the presentation layer.
type QueryOptions struct {
	TermStart         *time.Time
	TermEnd           *time.Time
	Weeks             int
	Building          string
	Requestor         string
	Diagnoses         []string
	MatchAllDiagnoses bool
	Name              string
	Color             string
}

// Validate rejects conflicting option combinations. Weeks and TermEnd pin
// the same end boundary differently, so combining them is ambiguous.
func (o QueryOptions) Validate() error {
	if o.Weeks < 0 {
		return errorutil.NewValidationError("weeks must be positive", nil)
	}
	if o.Weeks > 0 && o.TermEnd != nil {
		return errorutil.NewValidationError("weeks and termend are mutually exclusive", nil)
	}
	if o.TermStart != nil && o.TermEnd != nil && o.TermEnd.Before(*o.TermStart) {
		return errorutil.NewValidationError("termend precedes termstart", nil)
	}
	return nil
}

// AnalyticsService answers aggregation queries over a populated
// organization, refusing queries whose required report fields are absent.
type AnalyticsService struct {
	report *report.Report
	org    *org.Organization
	logger *zap.Logger
}

// AnalyticsDependencies bundles collaborators for the analytics service.
type AnalyticsDependencies struct {
	Report *report.Report
	Org    *org.Organization
	Logger *zap.Logger
}

// NewAnalyticsService constructs the service.
func NewAnalyticsService(deps AnalyticsDependencies) *AnalyticsService {
	return &AnalyticsService{report: deps.Report, org: deps.Org, logger: deps.Logger}
}

// PerWeek buckets tickets into 7-day slots anchored at the term start.
func (s *AnalyticsService) PerWeek(opts QueryOptions) ([]org.WeekBucket, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireFields(report.FieldCreated); err != nil {
		return nil, err
	}
	filter, err := s.buildFilter(opts)
	if err != nil {
		return nil, err
	}
	buckets := s.org.PerWeek(filter, opts.Weeks)
	if len(buckets) > 0 {
		s.logger.Info("per-week term resolved",
			zap.Time("term_start", buckets[0].Start),
			zap.Int("weeks", len(buckets)))
	}
	return buckets, nil
}

// PerBuilding counts tickets per building.
func (s *AnalyticsService) PerBuilding(opts QueryOptions) ([]org.CountBucket, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireFields(report.FieldBuilding); err != nil {
		return nil, err
	}
	filter, err := s.buildFilter(opts)
	if err != nil {
		return nil, err
	}
	return s.org.PerBuilding(filter), nil
}

// PerRoom counts tickets per room within the building named in the
// options. The building must resolve; a miss is reported as not found.
func (s *AnalyticsService) PerRoom(opts QueryOptions) ([]org.CountBucket, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireFields(report.FieldBuilding, report.FieldRoom); err != nil {
		return nil, err
	}
	if opts.Building == "" {
		return nil, errorutil.NewValidationError("per-room query requires a building", nil)
	}
	building, ok := s.org.FindBuilding(opts.Building)
	if !ok {
		return nil, errorutil.NewNotFound("building", map[string]any{"name": opts.Building})
	}
	filter, err := s.buildFilter(opts)
	if err != nil {
		return nil, err
	}
	filter.Building = building.Name
	return s.org.PerRoom(building, filter), nil
}

// PerRequestor counts tickets per requestor email.
func (s *AnalyticsService) PerRequestor(opts QueryOptions) ([]org.CountBucket, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := s.requireFields(report.FieldRequestorEmail); err != nil {
		return nil, err
	}
	filter, err := s.buildFilter(opts)
	if err != nil {
		return nil, err
	}
	return s.org.PerRequestor(filter), nil
}

func (s *AnalyticsService) requireFields(fields ...string) error {
	for _, field := range fields {
		if !s.report.Schema().Has(field) {
			return errorutil.NewValidationError(
				fmt.Sprintf("query requires the %q field, which the report does not carry", field), nil)
		}
	}
	return nil
}

func (s *AnalyticsService) buildFilter(opts QueryOptions) (org.Filter, error) {
	filter := org.Filter{
		TermStart:         opts.TermStart,
		TermEnd:           opts.TermEnd,
		Requestor:         opts.Requestor,
		MatchAllDiagnoses: opts.MatchAllDiagnoses,
	}
	for _, token := range opts.Diagnoses {
		d, err := domain.ParseDiagnosis(token)
		if err != nil {
			return org.Filter{}, errorutil.NewValidationError(err.Error(), nil)
		}
		filter.Diagnoses = append(filter.Diagnoses, d)
	}
	return filter, nil
}
