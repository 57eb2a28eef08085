package domain

// Undefined is the placeholder key for location and requestor values the
// report left blank. Using a placeholder keeps the room-to-building
// relationship total: a room always belongs to a named building.
const Undefined = "Undefined"

// Building is an on-campus building referenced by tickets. Buildings are
// created lazily the first time a ticket mentions them and never deleted.
type Building struct {
	Name  string
	Rooms map[string]*Room
}

// NewBuilding constructs an empty building.
func NewBuilding(name string) *Building {
	return &Building{Name: name, Rooms: make(map[string]*Room)}
}

// Room is a room within a building. It stores the building's name rather
// than a pointer back to the Building to avoid an ownership cycle.
type Room struct {
	Building string
	Number   string
	Tickets  []*Ticket
}

// NewRoom constructs an empty room keyed under the given building.
func NewRoom(building, number string) *Room {
	return &Room{Building: building, Number: number}
}
