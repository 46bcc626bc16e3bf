package models

import "time"

// Item is a single task on an account's list. AccountID is set once on
// creation and never changes; every query touching items filters on it.
type Item struct {
	ID        string
	AccountID string
	Title     string
	Completed bool
	CreatedAt time.Time
}

// ItemPatch carries the mutable item fields for a partial update.
// Nil means "leave unchanged".
type ItemPatch struct {
	Title     *string
	Completed *bool
}
