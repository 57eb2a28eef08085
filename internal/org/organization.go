// Package org holds the in-memory organization model built from a ticket
// report: buildings, their rooms, and the flat ticket collection that the
// aggregation queries run over.
package org

import "github.com/spec-kit/ticket-insights/internal/domain"

// Organization owns all buildings (keyed by name) and the flat ticket
// collection in report insertion order. It is populated once during the
// ingestion pass and treated as read-only afterwards.
type Organization struct {
	buildings map[string]*domain.Building
	tickets   []*domain.Ticket
}

// NewOrganization constructs an empty model.
func NewOrganization() *Organization {
	return &Organization{buildings: make(map[string]*domain.Building)}
}

// AddTicket inserts a normalized ticket, lazily creating the building and
// room it references. A ticket naming a room without a building is filed
// under the Undefined building; a ticket naming a building without a room
// is filed under the Undefined room within it. Tickets naming neither are
// kept in the flat collection only. Duplicate ticket IDs are accepted,
// since exports may contain re-exported rows.
func (o *Organization) AddTicket(ticket *domain.Ticket) {
	buildingName := ticket.Building
	roomNumber := ticket.Room
	if roomNumber != "" && buildingName == "" {
		buildingName = domain.Undefined
		ticket.Building = buildingName
	}
	if buildingName != "" {
		if roomNumber == "" {
			roomNumber = domain.Undefined
			ticket.Room = roomNumber
		}
		room := o.findOrCreateRoom(buildingName, roomNumber)
		room.Tickets = append(room.Tickets, ticket)
	}
	o.tickets = append(o.tickets, ticket)
}

// FindBuilding returns the building with the exact given name, or false if
// the report never mentioned it.
func (o *Organization) FindBuilding(name string) (*domain.Building, bool) {
	b, ok := o.buildings[name]
	return b, ok
}

// FindRoom returns the room with the given number in the named building.
func (o *Organization) FindRoom(building, number string) (*domain.Room, bool) {
	b, ok := o.buildings[building]
	if !ok {
		return nil, false
	}
	r, ok := b.Rooms[number]
	return r, ok
}

// Tickets returns the flat ticket collection in insertion order. Callers
// must not mutate it.
func (o *Organization) Tickets() []*domain.Ticket {
	return o.tickets
}

// BuildingCount reports how many buildings the report mentioned.
func (o *Organization) BuildingCount() int {
	return len(o.buildings)
}

// TicketCount reports how many tickets were ingested.
func (o *Organization) TicketCount() int {
	return len(o.tickets)
}

func (o *Organization) findOrCreateRoom(buildingName, roomNumber string) *domain.Room {
	building, ok := o.buildings[buildingName]
	if !ok {
		building = domain.NewBuilding(buildingName)
		o.buildings[buildingName] = building
	}
	room, ok := building.Rooms[roomNumber]
	if !ok {
		room = domain.NewRoom(buildingName, roomNumber)
		building.Rooms[roomNumber] = room
	}
	return room
}
