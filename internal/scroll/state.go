package scroll

import (
	"scrollfeed/internal/domain/entity"
)

// Status is the fetch state of a feed. At most one fetch is outstanding at a time.
type Status int

const (
	StatusIdle Status = iota
	StatusLoadingMore
	StatusRefreshing
)

func (s Status) String() string {
	switch s {
	case StatusLoadingMore:
		return "loading-more"
	case StatusRefreshing:
		return "refreshing"
	default:
		return "idle"
	}
}

// State is a snapshot of a feed. Records is owned by the snapshot.
type State struct {
	Records     []entity.Record
	Cursor      int // last page successfully merged
	HasMore     bool
	TotalCount  int
	Status      Status
	AutoRefresh bool
	Err         error // last fetch failure, cleared by the next success or by Reset
}

// Loading reports whether a next page is being fetched.
func (s State) Loading() bool { return s.Status == StatusLoadingMore }

// Refreshing reports whether page 1 is being refetched.
func (s State) Refreshing() bool { return s.Status == StatusRefreshing }

// Idle reports whether a new fetch may start.
func (s State) Idle() bool { return s.Status == StatusIdle }

// CanLoadMore reports whether LoadMore would issue a fetch.
func (s State) CanLoadMore() bool { return s.Idle() && s.HasMore }

func (s State) clone() State {
	c := s
	c.Records = make([]entity.Record, len(s.Records))
	copy(c.Records, s.Records)
	return c
}
