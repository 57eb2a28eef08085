package org

import (
	"sort"
	"time"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

const week = 7 * 24 * time.Hour

// Filter narrows the ticket set an aggregation considers. Zero-valued
// fields apply no restriction. TermEnd is inclusive of its whole day.
type Filter struct {
	TermStart         *time.Time
	TermEnd           *time.Time
	Building          string
	Requestor         string
	Diagnoses         []domain.Diagnosis
	MatchAllDiagnoses bool
}

// WeekBucket is one 7-day slot of the per-week aggregation.
type WeekBucket struct {
	Index int
	Start time.Time
	Count int
}

// CountBucket is one (label, count) pair of a grouped aggregation.
type CountBucket struct {
	Label string
	Count int
}

// PerWeek partitions tickets into 7-day buckets anchored at the term start.
// The term start defaults to the earliest ticket creation date; the number
// of weeks, when not given, derives from the term end or from the latest
// creation date. Buckets are contiguous and zero-filled; tickets outside
// the window are excluded rather than collected into an overflow bucket.
func (o *Organization) PerWeek(f Filter, weeks int) []WeekBucket {
	start := f.TermStart
	if start == nil {
		start = o.earliestCreated()
	}
	if start == nil {
		return nil
	}

	numWeeks := weeks
	switch {
	case numWeeks > 0:
	case f.TermEnd != nil:
		numWeeks = int(f.TermEnd.Sub(*start)/week) + 1
	default:
		latest := o.latestCreated()
		if latest == nil {
			return nil
		}
		numWeeks = int(latest.Sub(*start)/week) + 1
	}
	if numWeeks < 1 {
		return nil
	}

	buckets := make([]WeekBucket, numWeeks)
	for i := range buckets {
		buckets[i] = WeekBucket{Index: i, Start: start.Add(time.Duration(i) * week)}
	}

	// The window boundaries are handled by the bucket arithmetic below, so
	// the generic filter must not apply them a second time.
	windowless := f
	windowless.TermStart = nil
	windowless.TermEnd = nil
	for _, t := range filterTickets(o.tickets, windowless) {
		if t.Created == nil {
			continue
		}
		delta := t.Created.Sub(*start)
		if delta < 0 {
			continue
		}
		idx := int(delta / week)
		if idx >= numWeeks {
			continue
		}
		buckets[idx].Count++
	}
	return buckets
}

// PerBuilding counts tickets per building after applying the filter.
// Buildings with no matching tickets are omitted. Output order is count
// descending, ties broken by building name ascending.
func (o *Organization) PerBuilding(f Filter) []CountBucket {
	counts := make(map[string]int)
	for _, t := range filterTickets(o.tickets, f) {
		if !t.HasLocation() {
			continue
		}
		counts[t.Building]++
	}
	return sortedBuckets(counts)
}

// PerRoom counts tickets per room within the given building after applying
// the filter. Rooms with no matching tickets are omitted; ordering matches
// PerBuilding.
func (o *Organization) PerRoom(building *domain.Building, f Filter) []CountBucket {
	counts := make(map[string]int)
	for _, room := range building.Rooms {
		n := len(filterTickets(room.Tickets, f))
		if n > 0 {
			counts[room.Number] = n
		}
	}
	return sortedBuckets(counts)
}

// PerRequestor counts tickets per requestor email after applying the
// filter. Tickets without a requestor email are grouped under Undefined.
func (o *Organization) PerRequestor(f Filter) []CountBucket {
	counts := make(map[string]int)
	for _, t := range filterTickets(o.tickets, f) {
		email := t.Requestor.Email
		if email == "" {
			email = domain.Undefined
		}
		counts[email]++
	}
	return sortedBuckets(counts)
}

func (o *Organization) earliestCreated() *time.Time {
	var earliest *time.Time
	for _, t := range o.tickets {
		if t.Created == nil {
			continue
		}
		if earliest == nil || t.Created.Before(*earliest) {
			earliest = t.Created
		}
	}
	return earliest
}

func (o *Organization) latestCreated() *time.Time {
	var latest *time.Time
	for _, t := range o.tickets {
		if t.Created == nil {
			continue
		}
		if latest == nil || t.Created.After(*latest) {
			latest = t.Created
		}
	}
	return latest
}

func filterTickets(tickets []*domain.Ticket, f Filter) []*domain.Ticket {
	var termEndCutoff *time.Time
	if f.TermEnd != nil {
		cutoff := f.TermEnd.AddDate(0, 0, 1)
		termEndCutoff = &cutoff
	}

	filtered := make([]*domain.Ticket, 0, len(tickets))
	for _, t := range tickets {
		if f.Building != "" && t.Building != f.Building {
			continue
		}
		if f.Requestor != "" && t.Requestor.Email != f.Requestor {
			continue
		}
		if f.TermStart != nil && (t.Created == nil || t.Created.Before(*f.TermStart)) {
			continue
		}
		if termEndCutoff != nil && (t.Created == nil || !t.Created.Before(*termEndCutoff)) {
			continue
		}
		if len(f.Diagnoses) > 0 && !matchDiagnoses(t.Diagnoses, f.Diagnoses, f.MatchAllDiagnoses) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

func matchDiagnoses(have, want []domain.Diagnosis, all bool) bool {
	set := make(map[domain.Diagnosis]bool, len(have))
	for _, d := range have {
		set[d] = true
	}
	if all {
		for _, d := range want {
			if !set[d] {
				return false
			}
		}
		return true
	}
	for _, d := range want {
		if set[d] {
			return true
		}
	}
	return false
}

func sortedBuckets(counts map[string]int) []CountBucket {
	buckets := make([]CountBucket, 0, len(counts))
	for label, count := range counts {
		buckets = append(buckets, CountBucket{Label: label, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}
