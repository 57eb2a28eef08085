package report

import (
	"testing"
	"time"

	"github.com/spec-kit/ticket-insights/pkg/util/errorutil"
)

func fullSampleRow() map[string]string {
	return map[string]string{
		FieldID:             "4501234",
		FieldTitle:          "Projector flickering",
		FieldRespGroup:      "USS-Classrooms",
		FieldRequestor:      "Eric",
		FieldRequestorEmail: "eric@example.edu",
		FieldRequestorPhone: "5415551234",
		FieldDepartment:     "Computer Science",
		FieldBuilding:       "Lawrence",
		FieldRoom:           "177",
		FieldProblemTypes:   "Projector",
		FieldCreated:        "2023-06-06 10:00",
		FieldModified:       "2023-06-07 11:30",
		FieldStatus:         "Closed",
	}
}

func TestDetectSchemaAllFields(t *testing.T) {
	schema, err := DetectSchema(fullSampleRow())
	if err != nil {
		t.Fatalf("DetectSchema: %v", err)
	}
	if !schema.Complete() {
		t.Fatalf("expected complete schema, got %v", schema.FieldsPresent)
	}
	// Canonical order must be preserved.
	for i, field := range StandardFields {
		if schema.FieldsPresent[i] != field {
			t.Errorf("field %d: got %q, want %q", i, schema.FieldsPresent[i], field)
		}
	}
}

func TestDetectSchemaMissingFields(t *testing.T) {
	sample := fullSampleRow()
	delete(sample, FieldRoom)
	sample[FieldBuilding] = ""

	schema, err := DetectSchema(sample)
	if err != nil {
		t.Fatalf("DetectSchema: %v", err)
	}
	if schema.Complete() {
		t.Error("schema should not be complete")
	}
	if schema.Has(FieldRoom) || schema.Has(FieldBuilding) {
		t.Error("absent and empty fields must not be reported present")
	}
	if !schema.Has(FieldCreated) {
		t.Error("Created should be present")
	}
}

func TestDetectTimeFormatISO24Hour(t *testing.T) {
	schema, err := DetectSchema(fullSampleRow())
	if err != nil {
		t.Fatalf("DetectSchema: %v", err)
	}
	if schema.TimeFormat != "2006-01-02 15:04" {
		t.Fatalf("got format %q, want ISO 24-hour", schema.TimeFormat)
	}
	parsed, err := time.Parse(schema.TimeFormat, "2023-06-06 10:00")
	if err != nil {
		t.Fatalf("parse back: %v", err)
	}
	if parsed.Year() != 2023 || parsed.Month() != time.June || parsed.Day() != 6 ||
		parsed.Hour() != 10 || parsed.Minute() != 0 {
		t.Errorf("parsed components wrong: %v", parsed)
	}
}

func TestDetectTimeFormatVariants(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"06/06/2023 10:00", "01/02/2006 15:04"},
		{"06/06/23 10:00", "01/02/06 15:04"},
		{"06.06.2023 10:00", "02.01.2006 15:04"},
		{"2023-06-06 10:00 AM", "2006-01-02 03:04 PM"},
	}
	for _, tt := range tests {
		sample := fullSampleRow()
		sample[FieldCreated] = tt.value
		sample[FieldModified] = tt.value
		schema, err := DetectSchema(sample)
		if err != nil {
			t.Errorf("DetectSchema(%q): %v", tt.value, err)
			continue
		}
		if schema.TimeFormat != tt.want {
			t.Errorf("value %q: got format %q, want %q", tt.value, schema.TimeFormat, tt.want)
		}
	}
}

func TestDetectTimeFormatFallsBackToModified(t *testing.T) {
	sample := fullSampleRow()
	sample[FieldCreated] = ""
	schema, err := DetectSchema(sample)
	if err != nil {
		t.Fatalf("DetectSchema: %v", err)
	}
	if schema.TimeFormat != "2006-01-02 15:04" {
		t.Errorf("got format %q, want detection from Modified", schema.TimeFormat)
	}
}

func TestDetectTimeFormatNoTemporalFields(t *testing.T) {
	sample := fullSampleRow()
	sample[FieldCreated] = ""
	sample[FieldModified] = ""
	schema, err := DetectSchema(sample)
	if err != nil {
		t.Fatalf("DetectSchema: %v", err)
	}
	if schema.TimeFormat != "" {
		t.Errorf("expected no time format, got %q", schema.TimeFormat)
	}
}

func TestDetectTimeFormatUnparseable(t *testing.T) {
	sample := fullSampleRow()
	sample[FieldCreated] = "June the sixth, ten o'clock"
	_, err := DetectSchema(sample)
	if err == nil {
		t.Fatal("expected error for unparseable timestamp")
	}
	if !errorutil.IsBadReport(err) {
		t.Errorf("expected malformed-report error, got %v", err)
	}
}
