package event

import (
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-input/internal/logger"
)

// Handler receives an event and returns true to consume it.
type Handler func(ev *Event) bool

// HandlerID identifies a registered handler.
type HandlerID uint64

type entry struct {
	id       HandlerID
	priority int
	fn       Handler
	removed  bool
}

// Router delivers events to handlers in priority order, higher first.
// Handlers of equal priority run in registration order. Delivery stops at
// the first handler that consumes the event.
//
// Handlers may register and unregister handlers while an event is being
// dispatched. A handler unregistered mid-dispatch is not called again,
// and a handler registered mid-dispatch first sees the next event.
type Router struct {
	entries []*entry
	nextID  HandlerID
	depth   int
	dirty   bool
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{nextID: 1}
}

// Register adds fn at priority and returns an id for Unregister.
func (r *Router) Register(priority int, fn Handler) HandlerID {
	id := r.nextID
	r.nextID++

	e := &entry{id: id, priority: priority, fn: fn}
	i := len(r.entries)
	for j, other := range r.entries {
		if other.priority < priority {
			i = j
			break
		}
	}

	// copy so an in-flight dispatch keeps iterating its own snapshot
	entries := make([]*entry, 0, len(r.entries)+1)
	entries = append(entries, r.entries[:i]...)
	entries = append(entries, e)
	entries = append(entries, r.entries[i:]...)
	r.entries = entries
	return id
}

// Unregister removes the handler with id.
func (r *Router) Unregister(id HandlerID) {
	for _, e := range r.entries {
		if e.id == id && !e.removed {
			e.removed = true
			r.dirty = true
			if r.depth == 0 {
				r.compact()
			}
			return
		}
	}
	logger.Named("router").Warn("unregister of unknown handler", zap.Uint64("id", uint64(id)))
}

// Dispatch delivers ev and reports whether a handler consumed it.
func (r *Router) Dispatch(ev *Event) bool {
	r.depth++
	defer func() {
		r.depth--
		if r.depth == 0 && r.dirty {
			r.compact()
		}
	}()

	for _, e := range r.entries {
		if e.removed {
			continue
		}
		if e.fn(ev) {
			return true
		}
	}
	return false
}

// Len returns the number of registered handlers.
func (r *Router) Len() int {
	n := 0
	for _, e := range r.entries {
		if !e.removed {
			n++
		}
	}
	return n
}

// Close drops every handler, warning about those still registered.
func (r *Router) Close() {
	if n := r.Len(); n > 0 {
		logger.Named("router").Warn("router closed with handlers still registered", zap.Int("count", n))
	}
	r.entries = nil
	r.dirty = false
}

func (r *Router) compact() {
	r.entries = slices.DeleteFunc(slices.Clone(r.entries), func(e *entry) bool {
		return e.removed
	})
	r.dirty = false
}
