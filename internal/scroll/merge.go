package scroll

import (
	"scrollfeed/internal/domain/entity"

	"github.com/samber/lo"
)

// Placement says where merged records go.
type Placement int

const (
	// Append adds new records after the existing ones (scrolling down).
	Append Placement = iota
	// Prepend adds new records before the existing ones (refresh).
	Prepend
)

func (p Placement) String() string {
	if p == Prepend {
		return "prepend"
	}
	return "append"
}

// Merge combines existing with the records of incoming whose IDs are not yet present.
// Incoming order is kept and an ID repeated inside incoming is taken once.
// The result is always a fresh slice.
func Merge(existing, incoming []entity.Record, placement Placement) []entity.Record {
	fresh := Unseen(existing, incoming)

	out := make([]entity.Record, 0, len(existing)+len(fresh))
	if placement == Prepend {
		out = append(out, fresh...)
		return append(out, existing...)
	}
	out = append(out, existing...)
	return append(out, fresh...)
}

// Unseen returns the records of incoming whose IDs do not occur in existing,
// first occurrence wins.
func Unseen(existing, incoming []entity.Record) []entity.Record {
	seen := lo.SliceToMap(existing, func(r entity.Record) (int64, struct{}) {
		return r.ID, struct{}{}
	})
	return lo.Filter(incoming, func(r entity.Record, _ int) bool {
		if _, dup := seen[r.ID]; dup {
			return false
		}
		seen[r.ID] = struct{}{}
		return true
	})
}
