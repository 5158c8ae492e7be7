package event

import (
	"slices"
	"testing"

	"github.com/Faultbox/midgard-input/internal/input/keys"
)

func TestStack(t *testing.T) {
	var s Stack[keys.Scancode]

	s.Push(keys.ScancodeA)
	s.Push(keys.ScancodeB)
	s.Push(keys.ScancodeA)
	s.Push(keys.ScancodeA)

	if !s.Contains(keys.ScancodeB) || s.Contains(keys.ScancodeC) {
		t.Error("Contains is wrong")
	}
	if !s.Consume(keys.ScancodeB) || s.Consume(keys.ScancodeB) {
		t.Error("Consume should remove exactly one entry")
	}
	if !s.Consume(keys.ScancodeA) {
		t.Error("Consume(A) failed")
	}
	if n := s.ConsumeAll(keys.ScancodeA); n != 2 {
		t.Errorf("ConsumeAll = %d, want 2", n)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}

	s.Push(keys.ScancodeC)
	s.Push(keys.ScancodeD)
	if !slices.Equal(s.Items(), []keys.Scancode{keys.ScancodeC, keys.ScancodeD}) {
		t.Errorf("Items = %v", s.Items())
	}
	if !s.ConsumeFunc(func(sc keys.Scancode) bool { return sc > keys.ScancodeC }) {
		t.Error("ConsumeFunc should match D")
	}
	if s.Contains(keys.ScancodeD) || !s.Contains(keys.ScancodeC) {
		t.Error("ConsumeFunc removed the wrong entry")
	}
	s.Clear()
	if s.Len() != 0 || s.Contains(keys.ScancodeC) {
		t.Error("Clear left entries behind")
	}
}

func TestRouterPriorityOrder(t *testing.T) {
	r := NewRouter()
	var order []string

	record := func(name string) Handler {
		return func(*Event) bool {
			order = append(order, name)
			return false
		}
	}
	r.Register(0, record("low"))
	r.Register(10, record("high-1"))
	r.Register(5, record("mid"))
	r.Register(10, record("high-2"))

	if r.Dispatch(&Event{Kind: KindKeyDown}) {
		t.Error("no handler consumed the event")
	}
	want := []string{"high-1", "high-2", "mid", "low"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestRouterConsumeStops(t *testing.T) {
	r := NewRouter()
	lowCalled := false

	r.Register(1, func(ev *Event) bool { return ev.Kind == KindTextInput })
	r.Register(0, func(*Event) bool {
		lowCalled = true
		return false
	})

	if !r.Dispatch(&Event{Kind: KindTextInput}) {
		t.Error("event should be consumed")
	}
	if lowCalled {
		t.Error("lower priority handler must not run after consumption")
	}

	r.Dispatch(&Event{Kind: KindKeyDown})
	if !lowCalled {
		t.Error("unconsumed event should reach lower priority")
	}
}

func TestRouterUnregisterDuringDispatch(t *testing.T) {
	r := NewRouter()
	var calls []string
	var second HandlerID

	r.Register(10, func(*Event) bool {
		calls = append(calls, "first")
		r.Unregister(second)
		return false
	})
	second = r.Register(5, func(*Event) bool {
		calls = append(calls, "second")
		return false
	})
	r.Register(0, func(*Event) bool {
		calls = append(calls, "third")
		return false
	})

	r.Dispatch(&Event{})
	if !slices.Equal(calls, []string{"first", "third"}) {
		t.Errorf("calls = %v, removed handler must not run", calls)
	}
	if r.Len() != 2 {
		t.Errorf("Len = %d, want 2", r.Len())
	}

	calls = nil
	r.Dispatch(&Event{})
	if !slices.Equal(calls, []string{"first", "third"}) {
		t.Errorf("calls = %v", calls)
	}
}

func TestRouterSelfUnregisterAndRegisterDuringDispatch(t *testing.T) {
	r := NewRouter()
	count := 0
	lateCalls := 0

	var self HandlerID
	self = r.Register(0, func(*Event) bool {
		count++
		r.Unregister(self)
		r.Register(-1, func(*Event) bool {
			lateCalls++
			return false
		})
		return false
	})

	r.Dispatch(&Event{})
	if lateCalls != 0 {
		t.Error("handler registered during dispatch should wait for the next event")
	}
	r.Dispatch(&Event{})
	if count != 1 {
		t.Errorf("self-removing handler ran %d times", count)
	}
	if lateCalls != 1 {
		t.Errorf("late handler ran %d times, want 1", lateCalls)
	}
}

func TestRouterNestedDispatch(t *testing.T) {
	r := NewRouter()
	inner := 0

	var id HandlerID
	id = r.Register(1, func(ev *Event) bool {
		if ev.Kind == KindKeyDown {
			r.Dispatch(&Event{Kind: KindKeyUp})
			r.Unregister(id)
		}
		return false
	})
	r.Register(0, func(ev *Event) bool {
		if ev.Kind == KindKeyUp {
			inner++
		}
		return false
	})

	r.Dispatch(&Event{Kind: KindKeyDown})
	if inner != 1 {
		t.Errorf("nested dispatch reached inner handler %d times", inner)
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d, want 1", r.Len())
	}
}

func TestRouterUnknownAndClose(t *testing.T) {
	r := NewRouter()
	r.Unregister(42)

	r.Register(0, func(*Event) bool { return false })
	r.Close()
	if r.Len() != 0 {
		t.Error("Close should drop handlers")
	}
	if r.Dispatch(&Event{}) {
		t.Error("closed router consumes nothing")
	}
}

func TestKindAndMod(t *testing.T) {
	if KindGamepadRemoved.String() != "gamepad-removed" {
		t.Errorf("String() = %q", KindGamepadRemoved.String())
	}
	if Kind(999).String() != "unknown" {
		t.Error("out of range kind should be unknown")
	}

	m := ModCtrl | ModShift
	if !m.Has(ModCtrl) || m.Has(ModAlt) || !m.Has(ModCtrl|ModShift) {
		t.Error("Mod.Has is wrong")
	}
}
