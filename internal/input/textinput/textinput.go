// Package textinput edits a line of text from keyboard and text events
// while pausing action input.
package textinput

import (
	"github.com/atotto/clipboard"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"github.com/Faultbox/midgard-input/internal/input/event"
	"github.com/Faultbox/midgard-input/internal/input/keys"
	"github.com/Faultbox/midgard-input/internal/logger"
)

// NoOwner is the owner id when no text input is active.
const NoOwner = -1

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard returns the clipboard of the desktop session.
func SystemClipboard() Clipboard {
	return systemClipboard{}
}

// Pauser pauses action input while text is being entered.
// *input.Context implements it.
type Pauser interface {
	Pause()
	Unpause()
}

// Platform turns the platform text events on and off. It may be nil.
type Platform interface {
	StartTextInput()
	StopTextInput()
}

// Input is a single line editor fed by routed events. Only one owner can
// edit at a time.
type Input struct {
	router    *event.Router
	handler   event.HandlerID
	pauser    Pauser
	clipboard Clipboard
	platform  Platform

	text        []rune
	cursor      int
	composition string
	owner       int
	active      bool
}

// New creates a text input that listens on router at priority. The
// priority must be above the input context recorder so consumed editing
// keys are not seen as presses.
func New(router *event.Router, priority int, p Pauser, cb Clipboard) *Input {
	t := &Input{
		router:    router,
		pauser:    p,
		clipboard: cb,
		owner:     NoOwner,
	}
	t.handler = router.Register(priority, t.handle)
	return t
}

// SetPlatform sets the platform hook called on Start and Stop.
func (t *Input) SetPlatform(p Platform) {
	t.platform = p
}

// Close unregisters the event handler.
func (t *Input) Close() {
	t.router.Unregister(t.handler)
}

// Start begins editing text for owner with the cursor at rune index
// cursor. A negative cursor puts it at the end.
func (t *Input) Start(owner int, text string, cursor int) {
	if t.active {
		t.Stop()
	}
	t.text = []rune(norm.NFC.String(text))
	t.SetCursor(cursor)
	if cursor < 0 {
		t.cursor = len(t.text)
	}
	t.composition = ""
	t.owner = owner
	t.active = true

	if t.pauser != nil {
		t.pauser.Pause()
	}
	if t.platform != nil {
		t.platform.StartTextInput()
	}
}

// Stop ends editing and returns the text.
func (t *Input) Stop() string {
	if !t.active {
		return string(t.text)
	}
	t.active = false
	t.owner = NoOwner
	t.composition = ""

	if t.pauser != nil {
		t.pauser.Unpause()
	}
	if t.platform != nil {
		t.platform.StopTextInput()
	}
	return string(t.text)
}

// Active reports whether owner is editing.
func (t *Input) Active(owner int) bool {
	return t.active && t.owner == owner
}

// Text returns the current text.
func (t *Input) Text() string {
	return string(t.text)
}

// Composition returns the uncommitted text of the current edit, if any.
func (t *Input) Composition() string {
	return t.composition
}

// Reset clears the text.
func (t *Input) Reset() {
	t.text = t.text[:0]
	t.cursor = 0
}

// Cursor returns the cursor position in runes.
func (t *Input) Cursor() int {
	return t.cursor
}

// SetCursor moves the cursor to pos, clamped to the text.
func (t *Input) SetCursor(pos int) {
	t.cursor = max(0, min(pos, len(t.text)))
}

// MoveCursor moves the cursor by delta runes if the result stays inside
// the text.
func (t *Input) MoveCursor(delta int) {
	if pos := t.cursor + delta; pos >= 0 && pos <= len(t.text) {
		t.cursor = pos
	}
}

func (t *Input) insert(s string) {
	r := []rune(norm.NFC.String(s))
	if len(r) == 0 {
		return
	}
	text := make([]rune, 0, len(t.text)+len(r))
	text = append(text, t.text[:t.cursor]...)
	text = append(text, r...)
	text = append(text, t.text[t.cursor:]...)
	t.text = text
	t.cursor += len(r)
}

func (t *Input) handle(ev *event.Event) bool {
	if !t.active {
		return false
	}

	switch ev.Kind {
	case event.KindTextInput:
		t.composition = ""
		t.insert(ev.Text)
		return true
	case event.KindTextEditing:
		t.composition = ev.Text
		return true
	case event.KindKeyDown:
		return t.key(ev)
	}
	return false
}

// key handles an editing key and reports whether it was one.
func (t *Input) key(ev *event.Event) bool {
	if ev.Mod.Has(event.ModCtrl) {
		switch ev.Key {
		case keys.ScancodeV:
			t.paste()
			return true
		case keys.ScancodeC:
			t.copy()
			return true
		case keys.ScancodeX:
			t.copy()
			t.text = t.text[:0]
			t.cursor = 0
			return true
		}
	}

	switch ev.Key {
	case keys.ScancodeBackspace:
		if t.cursor > 0 {
			t.text = append(t.text[:t.cursor-1], t.text[t.cursor:]...)
			t.cursor--
		}
	case keys.ScancodeDelete:
		if t.cursor < len(t.text) {
			t.text = append(t.text[:t.cursor], t.text[t.cursor+1:]...)
		}
	case keys.ScancodeLeft:
		t.MoveCursor(-1)
	case keys.ScancodeRight:
		t.MoveCursor(1)
	case keys.ScancodeHome:
		t.cursor = 0
	case keys.ScancodeEnd:
		t.cursor = len(t.text)
	default:
		return false
	}
	return true
}

func (t *Input) paste() {
	if t.clipboard == nil {
		return
	}
	s, err := t.clipboard.ReadAll()
	if err != nil {
		logger.Named("textinput").Warn("clipboard read failed", zap.Error(err))
		return
	}
	t.insert(s)
}

func (t *Input) copy() {
	if t.clipboard == nil {
		return
	}
	if err := t.clipboard.WriteAll(string(t.text)); err != nil {
		logger.Named("textinput").Warn("clipboard write failed", zap.Error(err))
	}
}
