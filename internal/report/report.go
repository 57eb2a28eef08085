package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/spec-kit/ticket-insights/internal/domain"
	"github.com/spec-kit/ticket-insights/internal/org"
	"github.com/spec-kit/ticket-insights/pkg/util/errorutil"
)

// Report wraps one ticket-report CSV file. Construction reads the first
// data row to detect the schema; Populate performs the full ingestion pass.
type Report struct {
	filename string
	schema   Schema
	logger   *zap.Logger
}

// NewReport opens the file, detects the schema from the first data row, and
// closes it again. It fails on an unopenable or empty file and on a first
// row whose timestamp matches no candidate layout.
func NewReport(filename string, logger *zap.Logger) (*Report, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errorutil.NewBadReport(fmt.Sprintf("cannot open report: %v", err), nil)
	}
	defer file.Close()

	rows := newRowReader(file)
	sample, err := rows.next()
	if err != nil {
		return nil, err
	}
	if sample == nil {
		return nil, errorutil.NewBadReport("ticket report is empty", nil)
	}

	schema, err := DetectSchema(sample)
	if err != nil {
		return nil, err
	}
	if !schema.Complete() {
		logger.Warn("report does not carry all standard fields, expect limited functionality",
			zap.Strings("fields_present", schema.FieldsPresent))
	}

	return &Report{filename: filename, schema: schema, logger: logger}, nil
}

// Schema returns the detected schema.
func (r *Report) Schema() Schema {
	return r.schema
}

// FieldsPresent returns the canonical fields the report carries, in
// canonical order. Callers use it to refuse queries that depend on an
// absent field.
func (r *Report) FieldsPresent() []string {
	return r.schema.FieldsPresent
}

// TimeFormat returns the detected timestamp layout, empty when the report
// has no temporal fields.
func (r *Report) TimeFormat() string {
	return r.schema.TimeFormat
}

// Populate reads every data row, normalizes it, and inserts the results
// into the organization. The pass is atomic: any normalization failure
// aborts the load before a single ticket reaches the model, and a report
// with zero data rows is an error.
func (r *Report) Populate(o *org.Organization) error {
	file, err := os.Open(r.filename)
	if err != nil {
		return errorutil.NewBadReport(fmt.Sprintf("cannot open report: %v", err), nil)
	}
	defer file.Close()

	normalizer := NewNormalizer(r.schema)
	rows := newRowReader(file)

	var tickets []*domain.Ticket
	for {
		row, err := rows.next()
		if err != nil {
			return err
		}
		if row == nil {
			break
		}
		ticket, err := normalizer.NormalizeRow(row)
		if err != nil {
			return err
		}
		tickets = append(tickets, ticket)
	}
	if len(tickets) == 0 {
		return errorutil.NewBadReport("ticket report is empty", nil)
	}

	for _, ticket := range tickets {
		o.AddTicket(ticket)
	}
	r.logger.Info("report populated",
		zap.Int("tickets", o.TicketCount()),
		zap.Int("buildings", o.BuildingCount()))
	return nil
}

// rowReader yields CSV data rows as field-name-to-value maps, stripping a
// leading byte-order-mark and validating per-row field counts.
type rowReader struct {
	csv    *csv.Reader
	header []string
}

func newRowReader(file io.Reader) *rowReader {
	reader := csv.NewReader(transform.NewReader(file, unicode.UTF8BOM.NewDecoder()))
	return &rowReader{csv: reader}
}

// next returns the following data row, or nil at end of input.
func (rr *rowReader) next() (map[string]string, error) {
	if rr.header == nil {
		header, err := rr.csv.Read()
		if errors.Is(err, io.EOF) {
			return nil, errorutil.NewBadReport("ticket report is empty", nil)
		}
		if err != nil {
			return nil, errorutil.NewBadReport(fmt.Sprintf("malformed report header: %v", err), nil)
		}
		rr.header = header
	}

	record, err := rr.csv.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, errorutil.NewBadReport(fmt.Sprintf("malformed report row: %v", err), nil)
	}

	row := make(map[string]string, len(rr.header))
	for i, field := range rr.header {
		if i < len(record) {
			row[field] = record[i]
		}
	}
	return row, nil
}
