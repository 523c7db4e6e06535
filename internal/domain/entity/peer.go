package entity

import "time"

// Peer is another user broadcasting position into the same room.
// Entries are upserted wholesale on every received broadcast; LastSeen
// is stamped with the local receive time, never the sender's clock.
type Peer struct {
	ID       string
	Name     string
	Color    string
	Lat      float64
	Lng      float64
	LastSeen time.Time
}
