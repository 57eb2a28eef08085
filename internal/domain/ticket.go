package domain

import "time"

// TicketStatus enumerates lifecycle states as they appear in the report's
// Status column. The column passes through unvalidated, so values outside
// this set are carried as-is.
type TicketStatus string

const (
	StatusNew       TicketStatus = "New"
	StatusInProcess TicketStatus = "In Process"
	StatusWaiting   TicketStatus = "Waiting"
	StatusOnHold    TicketStatus = "On Hold"
	StatusScheduled TicketStatus = "Scheduled"
	StatusClosed    TicketStatus = "Closed"
)

// Requestor identifies the person who opened a ticket.
type Requestor struct {
	Name  string
	Email string
	Phone string
}

// Ticket is one support-request record from the report.
type Ticket struct {
	ID         int
	Title      string
	RespGroup  string
	Requestor  Requestor
	Department string
	Building   string
	Room       string
	Diagnoses  []Diagnosis
	Created    *time.Time
	Modified   *time.Time
	Status     TicketStatus
}

// HasLocation reports whether the ticket references a building.
func (t *Ticket) HasLocation() bool {
	return t.Building != ""
}
