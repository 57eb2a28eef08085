package service

import (
	"fmt"
	"time"

	"github.com/spec-kit/ticket-insights/pkg/util/errorutil"
)

// DateFormats lists the accepted layouts for date-valued options, tried in
// order. Covers ISO, US, and European orderings.
var DateFormats = []string{
	"2006-01-02", "01/02/2006", "01/02/06", "02.01.2006", "02.01.06",
}

// ParseDate parses a date-valued option against DateFormats.
func ParseDate(text string) (time.Time, error) {
	for _, format := range DateFormats {
		if t, err := time.Parse(format, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errorutil.NewValidationError(
		fmt.Sprintf("date %q not recognized, try yyyy-mm-dd", text), nil)
}
