package models

import "time"

// Note is a text note owned by exactly one user. OwnerID is set once at
// creation and never reassigned; every read or write of a note must be
// filtered by both its ID and OwnerID.
type Note struct {
	ID        int64
	OwnerID   int64
	Title     string
	Content   string
	CreatedAt time.Time
}
