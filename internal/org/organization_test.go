package org

import (
	"testing"
	"time"

	"github.com/spec-kit/ticket-insights/internal/domain"
)

func ts(year int, month time.Month, day, hour, min int) *time.Time {
	t := time.Date(year, month, day, hour, min, 0, 0, time.UTC)
	return &t
}

func makeTicket(id int, building, room string, created *time.Time) *domain.Ticket {
	return &domain.Ticket{
		ID:       id,
		Building: building,
		Room:     room,
		Created:  created,
	}
}

func TestAddTicketCreatesBuildingAndRoom(t *testing.T) {
	o := NewOrganization()
	o.AddTicket(makeTicket(1, "Lawrence", "177", ts(2023, time.June, 6, 10, 0)))

	building, ok := o.FindBuilding("Lawrence")
	if !ok {
		t.Fatal("building Lawrence should exist after AddTicket")
	}
	room, ok := building.Rooms["177"]
	if !ok {
		t.Fatal("room 177 should exist in Lawrence")
	}
	if room.Building != "Lawrence" {
		t.Errorf("room back-reference: got %q", room.Building)
	}
	if len(room.Tickets) != 1 || room.Tickets[0].ID != 1 {
		t.Errorf("room should hold the ticket, got %v", room.Tickets)
	}
}

func TestAddTicketPlaceholders(t *testing.T) {
	o := NewOrganization()

	// Room without building lands in the Undefined building.
	o.AddTicket(makeTicket(1, "", "104", nil))
	if _, ok := o.FindRoom(domain.Undefined, "104"); !ok {
		t.Error("room without building should be filed under Undefined building")
	}

	// Building without room lands in the Undefined room.
	o.AddTicket(makeTicket(2, "Lawrence", "", nil))
	if _, ok := o.FindRoom("Lawrence", domain.Undefined); !ok {
		t.Error("ticket without room should be filed under Undefined room")
	}

	// Neither: flat collection only, no location entities created.
	o.AddTicket(makeTicket(3, "", "", nil))
	if o.TicketCount() != 3 {
		t.Errorf("ticket count: got %d, want 3", o.TicketCount())
	}
	if o.BuildingCount() != 2 {
		t.Errorf("building count: got %d, want 2", o.BuildingCount())
	}
}

func TestAddTicketPreservesInsertionOrder(t *testing.T) {
	o := NewOrganization()
	for _, id := range []int{5, 3, 9} {
		o.AddTicket(makeTicket(id, "Lawrence", "177", nil))
	}
	got := o.Tickets()
	want := []int{5, 3, 9}
	for i, ticket := range got {
		if ticket.ID != want[i] {
			t.Errorf("ticket %d: got id %d, want %d", i, ticket.ID, want[i])
		}
	}
}

func TestAddTicketAcceptsDuplicateIDs(t *testing.T) {
	o := NewOrganization()
	o.AddTicket(makeTicket(7, "Lawrence", "177", nil))
	o.AddTicket(makeTicket(7, "Lawrence", "177", nil))
	if o.TicketCount() != 2 {
		t.Errorf("duplicate IDs must both be kept, got %d tickets", o.TicketCount())
	}
}

func TestFindBuildingMissIsNotFatal(t *testing.T) {
	o := NewOrganization()
	o.AddTicket(makeTicket(1, "Lawrence", "177", nil))

	if _, ok := o.FindBuilding("lawrence"); ok {
		t.Error("lookup must be case-sensitive exact match")
	}
	if _, ok := o.FindBuilding("Straub"); ok {
		t.Error("unknown building should report not found")
	}
}
