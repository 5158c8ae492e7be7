package textinput

import (
	"errors"
	"testing"

	"github.com/Faultbox/midgard-input/internal/input/event"
	"github.com/Faultbox/midgard-input/internal/input/keys"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadAll() (string, error) { return c.text, c.err }
func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fakePauser struct{ paused bool }

func (p *fakePauser) Pause()   { p.paused = true }
func (p *fakePauser) Unpause() { p.paused = false }

type fakePlatform struct{ on bool }

func (p *fakePlatform) StartTextInput() { p.on = true }
func (p *fakePlatform) StopTextInput()  { p.on = false }

func setup() (*Input, *event.Router, *fakePauser, *fakeClipboard) {
	r := event.NewRouter()
	p := &fakePauser{}
	cb := &fakeClipboard{}
	return New(r, 100, p, cb), r, p, cb
}

func typeText(r *event.Router, s string) {
	r.Dispatch(&event.Event{Kind: event.KindTextInput, Text: s})
}

func key(r *event.Router, sc keys.Scancode, mod event.Mod) bool {
	return r.Dispatch(&event.Event{Kind: event.KindKeyDown, Key: sc, Mod: mod})
}

func TestStartStop(t *testing.T) {
	in, r, p, _ := setup()
	pl := &fakePlatform{}
	in.SetPlatform(pl)

	in.Start(7, "hi", -1)
	if !in.Active(7) || in.Active(8) {
		t.Error("owner 7 should be the only active owner")
	}
	if !p.paused || !pl.on {
		t.Error("Start should pause input and enable text events")
	}
	if in.Cursor() != 2 {
		t.Errorf("cursor = %d, want end", in.Cursor())
	}

	typeText(r, "!")
	if got := in.Stop(); got != "hi!" {
		t.Errorf("Stop() = %q", got)
	}
	if p.paused || pl.on || in.Active(7) {
		t.Error("Stop should undo Start")
	}

	// events are ignored while inactive
	if key(r, keys.ScancodeBackspace, 0) {
		t.Error("inactive input must not consume events")
	}
}

func TestEditing(t *testing.T) {
	in, r, _, _ := setup()
	in.Start(1, "", 0)

	typeText(r, "héllo")
	if in.Text() != "héllo" || in.Cursor() != 5 {
		t.Fatalf("text = %q cursor = %d", in.Text(), in.Cursor())
	}

	key(r, keys.ScancodeLeft, 0)
	key(r, keys.ScancodeLeft, 0)
	key(r, keys.ScancodeBackspace, 0)
	if in.Text() != "hélo" || in.Cursor() != 2 {
		t.Errorf("after backspace text = %q cursor = %d", in.Text(), in.Cursor())
	}

	key(r, keys.ScancodeDelete, 0)
	if in.Text() != "héo" {
		t.Errorf("after delete text = %q", in.Text())
	}

	key(r, keys.ScancodeHome, 0)
	key(r, keys.ScancodeBackspace, 0)
	if in.Text() != "héo" || in.Cursor() != 0 {
		t.Error("backspace at the start does nothing")
	}
	key(r, keys.ScancodeLeft, 0)
	if in.Cursor() != 0 {
		t.Error("cursor must not move before the start")
	}

	key(r, keys.ScancodeEnd, 0)
	key(r, keys.ScancodeRight, 0)
	if in.Cursor() != 3 {
		t.Errorf("cursor = %d, want 3", in.Cursor())
	}
}

func TestNormalizesToNFC(t *testing.T) {
	in, r, _, _ := setup()
	in.Start(1, "", 0)

	// e followed by a combining acute accent
	typeText(r, "e\u0301")
	if in.Text() != "\u00e9" || in.Cursor() != 1 {
		t.Errorf("text = %q cursor = %d, want composed é", in.Text(), in.Cursor())
	}
}

func TestClipboard(t *testing.T) {
	in, r, _, cb := setup()
	in.Start(1, "abc", 1)

	cb.text = "XY"
	key(r, keys.ScancodeV, event.ModCtrl)
	if in.Text() != "aXYbc" || in.Cursor() != 3 {
		t.Errorf("paste: text = %q cursor = %d", in.Text(), in.Cursor())
	}

	key(r, keys.ScancodeC, event.ModCtrl)
	if cb.text != "aXYbc" {
		t.Errorf("copy: clipboard = %q", cb.text)
	}

	key(r, keys.ScancodeX, event.ModCtrl)
	if in.Text() != "" || in.Cursor() != 0 || cb.text != "aXYbc" {
		t.Errorf("cut: text = %q clipboard = %q", in.Text(), cb.text)
	}

	// plain V is typed through a text event, not pasted
	if key(r, keys.ScancodeV, 0) {
		t.Error("V without ctrl is not an editing key")
	}

	cb.err = errors.New("no clipboard")
	key(r, keys.ScancodeV, event.ModCtrl)
	if in.Text() != "" {
		t.Error("failed paste should not change the text")
	}
}

func TestConsumesOnlyEditingKeys(t *testing.T) {
	in, r, _, _ := setup()
	in.Start(1, "", 0)

	if !key(r, keys.ScancodeBackspace, 0) {
		t.Error("backspace should be consumed")
	}
	if key(r, keys.ScancodeReturn, 0) || key(r, keys.ScancodeEscape, 0) {
		t.Error("return and escape pass through to the owner")
	}
	if !r.Dispatch(&event.Event{Kind: event.KindTextEditing, Text: "ka"}) {
		t.Error("editing events should be consumed")
	}
	if in.Composition() != "ka" {
		t.Errorf("Composition() = %q", in.Composition())
	}
	typeText(r, "か")
	if in.Composition() != "" || in.Text() != "か" {
		t.Error("commit should clear the composition")
	}
}

func TestRestartSwitchesOwner(t *testing.T) {
	in, _, p, _ := setup()

	in.Start(1, "one", -1)
	in.Start(2, "two", 1)
	if in.Active(1) || !in.Active(2) {
		t.Error("second Start should take over")
	}
	if !p.paused {
		t.Error("input should still be paused")
	}
	if in.Cursor() != 1 {
		t.Errorf("cursor = %d", in.Cursor())
	}

	in.Reset()
	if in.Text() != "" || in.Cursor() != 0 {
		t.Error("Reset should clear the text")
	}
	in.Close()
}
