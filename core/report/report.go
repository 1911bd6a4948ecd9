// Package report defines the per-tick records produced by a simulation run
// and the stores that persist them.
package report

import (
	"context"
	"time"
)

// Line is one entity's status at the end of a tick.
type Line struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// Record holds the status of every depot and vehicle after one tick.
type Record struct {
	RunID    string    `json:"run_id"`
	Tick     int       `json:"tick"`
	Time     time.Time `json:"time"`
	Depots   []Line    `json:"depots"`
	Vehicles []Line    `json:"vehicles"`
}

// Query filters stored records. Zero fields match everything.
type Query struct {
	RunID    string
	FromTick int
	ToTick   int
	EntityID string
}

// Match reports whether r satisfies q.
func (q Query) Match(r Record) bool {
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	if q.FromTick > 0 && r.Tick < q.FromTick {
		return false
	}
	if q.ToTick > 0 && r.Tick > q.ToTick {
		return false
	}
	if q.EntityID == "" {
		return true
	}
	for _, l := range r.Depots {
		if l.ID == q.EntityID {
			return true
		}
	}
	for _, l := range r.Vehicles {
		if l.ID == q.EntityID {
			return true
		}
	}
	return false
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// NopStore discards everything.
type NopStore struct{}

func (NopStore) Append(context.Context, Record) error           { return nil }
func (NopStore) Query(context.Context, Query) ([]Record, error) { return nil, nil }
func (NopStore) Close() error                                   { return nil }
