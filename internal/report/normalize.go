package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spec-kit/ticket-insights/internal/domain"
	"github.com/spec-kit/ticket-insights/pkg/util/errorutil"
)

// Normalizer converts raw report rows into typed tickets using the schema
// detected from the first data row. It is a pure transformation; feeding
// results into the organization model is the caller's job.
type Normalizer struct {
	schema Schema
}

// NewNormalizer constructs a normalizer for the given schema.
func NewNormalizer(schema Schema) *Normalizer {
	return &Normalizer{schema: schema}
}

// NormalizeRow converts one raw row. The ID field degrades to zero when
// missing or unparseable; timestamps and diagnosis tokens, by contrast,
// fail the whole load, since a parse failure after detection means the
// file's format drifted mid-stream.
func (n *Normalizer) NormalizeRow(row map[string]string) (*domain.Ticket, error) {
	ticket := &domain.Ticket{
		Title:      strings.TrimSpace(row[FieldTitle]),
		RespGroup:  strings.TrimSpace(row[FieldRespGroup]),
		Department: strings.TrimSpace(row[FieldDepartment]),
		Building:   strings.TrimSpace(row[FieldBuilding]),
		Room:       strings.TrimSpace(row[FieldRoom]),
		Status:     domain.TicketStatus(strings.TrimSpace(row[FieldStatus])),
		Requestor: domain.Requestor{
			Name:  strings.TrimSpace(row[FieldRequestor]),
			Email: strings.TrimSpace(row[FieldRequestorEmail]),
			Phone: strings.TrimSpace(row[FieldRequestorPhone]),
		},
	}

	if raw := strings.TrimSpace(row[FieldID]); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			ticket.ID = id
		}
	}

	created, err := n.parseTime(row[FieldCreated], FieldCreated)
	if err != nil {
		return nil, err
	}
	ticket.Created = created

	modified, err := n.parseTime(row[FieldModified], FieldModified)
	if err != nil {
		return nil, err
	}
	ticket.Modified = modified

	diagnoses, err := domain.ParseDiagnoses(row[FieldProblemTypes])
	if err != nil {
		return nil, errorutil.NewBadReport(err.Error(), nil)
	}
	ticket.Diagnoses = diagnoses

	return ticket, nil
}

func (n *Normalizer) parseTime(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if n.schema.TimeFormat == "" {
		return nil, errorutil.NewBadReport(
			fmt.Sprintf("%s value %q present but no time format was detected", field, value), nil)
	}
	t, err := time.Parse(n.schema.TimeFormat, value)
	if err != nil {
		return nil, errorutil.NewBadReport(
			fmt.Sprintf("%s value %q does not match detected time format %q", field, value, n.schema.TimeFormat), nil)
	}
	return &t, nil
}
