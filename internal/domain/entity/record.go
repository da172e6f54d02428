// Package entity defines the core domain entities and validation logic for the application.
// It contains the Record shown in the scrolling list and the page request rules that every
// page provider enforces.
package entity

import "time"

// Record is a single entry of the corpus.
// Identity is ID: two records with the same ID are the same record regardless of the other fields.
type Record struct {
	ID          int64
	Title       string
	Description string
	CreatedAt   time.Time
}

// IDs returns the identifiers of records in order.
func IDs(records []Record) []int64 {
	ids := make([]int64, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids
}
