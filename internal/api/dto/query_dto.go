package dto

import "time"

// AggregationQuery binds the recognized query-string options. Every query
// endpoint shares this shape; each consults only the options relevant to it.
type AggregationQuery struct {
	TermStart string   `query:"termstart"`
	TermEnd   string   `query:"termend"`
	Weeks     int      `query:"weeks" validate:"omitempty,min=1,max=52"`
	Building  string   `query:"building"`
	Requestor string   `query:"requestor" validate:"omitempty,email"`
	Diagnoses []string `query:"diagnoses"`
	MatchAll  bool     `query:"match_all"`
	Name      string   `query:"name"`
	Color     string   `query:"color" validate:"omitempty,oneof=white black gray yellow red blue green brown pink orange purple"`
}

// WeekBucketResponse is one per-week slot.
type WeekBucketResponse struct {
	Week  int       `json:"week"`
	Start time.Time `json:"start"`
	Count int       `json:"count"`
}

// CountBucketResponse is one (label, count) pair.
type CountBucketResponse struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AggregationResponse wraps a query result with its display options.
type AggregationResponse struct {
	Query   string                `json:"query"`
	Name    string                `json:"name,omitempty"`
	Color   string                `json:"color,omitempty"`
	Weeks   []WeekBucketResponse  `json:"weeks,omitempty"`
	Buckets []CountBucketResponse `json:"buckets,omitempty"`
}

// ReportInfoResponse describes the loaded report.
type ReportInfoResponse struct {
	FieldsPresent []string `json:"fields_present"`
	TimeFormat    string   `json:"time_format,omitempty"`
	Tickets       int      `json:"tickets"`
	Buildings     int      `json:"buildings"`
}
