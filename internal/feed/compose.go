package feed

import (
	"time"
)

// DefaultHighlightWindow bounds how long newly-arrived marks stay valid.
// The composer owns no timers; the caller clears the marks once the window
// elapses.
const DefaultHighlightWindow = 1200 * time.Millisecond

// Composition is a filtered view over a ranked post list together with the
// set of newly-arrived indices.
type Composition struct {
	View         []*RankedPost
	NewlyArrived map[int]struct{}
	Revision     uint64
}

// Compose applies the active category filters to the ranked list and tracks
// newly-arrived marks. An empty filter set passes every post through. A
// revision change against prev marks every index of the freshly ranked list;
// a filter-only recomposition carries prev's marks over unchanged.
func Compose(ranked []*RankedPost, filters map[string]struct{}, prev *Composition, revision uint64) *Composition {
	out := &Composition{
		View:         ranked,
		NewlyArrived: map[int]struct{}{},
		Revision:     revision,
	}

	if len(filters) > 0 {
		view := make([]*RankedPost, 0, len(ranked))
		for _, p := range ranked {
			if _, ok := filters[p.Category]; ok {
				view = append(view, p)
			}
		}
		out.View = view
	}

	if prev == nil || prev.Revision != revision {
		for i := range ranked {
			out.NewlyArrived[i] = struct{}{}
		}
		return out
	}

	for i := range prev.NewlyArrived {
		out.NewlyArrived[i] = struct{}{}
	}

	return out
}

// ClearNewlyArrived drops every mark from the composition.
func (c *Composition) ClearNewlyArrived() {
	c.NewlyArrived = map[int]struct{}{}
}
