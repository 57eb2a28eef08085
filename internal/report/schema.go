// Package report handles the ticket-report CSV: schema detection from a
// sample row, per-row normalization into typed tickets, and the single
// ingestion pass that populates the organization model.
package report

import (
	"fmt"
	"time"

	"github.com/spec-kit/ticket-insights/pkg/util/errorutil"
)

// Canonical report column names.
const (
	FieldID             = "ID"
	FieldTitle          = "Title"
	FieldRespGroup      = "Resp Group"
	FieldRequestor      = "Requestor"
	FieldRequestorEmail = "Requestor Email"
	FieldRequestorPhone = "Requestor Phone"
	FieldDepartment     = "Acct/Dept"
	FieldBuilding       = "Class Support Building"
	FieldRoom           = "Room number"
	FieldProblemTypes   = "Classroom Problem Types"
	FieldCreated        = "Created"
	FieldModified       = "Modified"
	FieldStatus         = "Status"
)

// StandardFields lists the canonical report columns in canonical order.
var StandardFields = []string{
	FieldID, FieldTitle, FieldRespGroup, FieldRequestor, FieldRequestorEmail,
	FieldRequestorPhone, FieldDepartment, FieldBuilding, FieldRoom,
	FieldProblemTypes, FieldCreated, FieldModified, FieldStatus,
}

// TimeFormats lists the candidate timestamp layouts in detection priority
// order: 24-hour before 12-hour, ISO before US before European within each
// group. The first layout that parses the sample value wins, so this order
// is load-bearing and must stay stable.
var TimeFormats = []string{
	// 24 hour
	"2006-01-02 15:04", "01/02/2006 15:04", "01/02/06 15:04",
	"02.01.2006 15:04", "02.01.06 15:04",
	// 12 hour
	"2006-01-02 03:04 PM", "01/02/2006 03:04 PM", "01/02/06 03:04 PM",
	"02.01.2006 03:04 PM", "02.01.06 03:04 PM",
}

// Schema captures what one sample row revealed about the report: which
// canonical fields carry data and which timestamp layout the file uses.
type Schema struct {
	FieldsPresent []string
	TimeFormat    string
}

// Has reports whether the named canonical field carried data in the sample.
func (s Schema) Has(field string) bool {
	for _, f := range s.FieldsPresent {
		if f == field {
			return true
		}
	}
	return false
}

// DetectSchema inspects one sample row. Fields absent from the sample limit
// which queries are legal later; that is advisory, not fatal. A temporal
// value that matches no candidate layout is fatal, because a wrong layout
// would silently corrupt every subsequent parse.
func DetectSchema(sample map[string]string) (Schema, error) {
	schema := Schema{FieldsPresent: fieldsPresent(sample)}
	format, err := detectTimeFormat(sample)
	if err != nil {
		return Schema{}, err
	}
	schema.TimeFormat = format
	return schema, nil
}

// Complete reports whether every canonical field was present in the sample.
func (s Schema) Complete() bool {
	return len(s.FieldsPresent) == len(StandardFields)
}

func fieldsPresent(sample map[string]string) []string {
	present := make([]string, 0, len(StandardFields))
	for _, field := range StandardFields {
		if sample[field] != "" {
			present = append(present, field)
		}
	}
	return present
}

func detectTimeFormat(sample map[string]string) (string, error) {
	timeText := sample[FieldCreated]
	if timeText == "" {
		timeText = sample[FieldModified]
	}
	if timeText == "" {
		// No temporal fields at all; nothing to detect.
		return "", nil
	}
	for _, format := range TimeFormats {
		if _, err := time.Parse(format, timeText); err == nil {
			return format, nil
		}
	}
	return "", errorutil.NewBadReport(
		fmt.Sprintf("time %q in report is not a valid time format", timeText), nil)
}
