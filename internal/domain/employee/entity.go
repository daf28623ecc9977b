package employee

import "time"

type Employee struct {
	ID           string
	Name         string
	LocationID   string
	Active       bool
	TerminatedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RosterEntry is the slice of an employee the report engine needs.
type RosterEntry struct {
	ID     string
	Name   string
	Active bool
}
