package action

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/midgard-input/internal/input/binding"
	"github.com/Faultbox/midgard-input/internal/input/keys"
)

func TestAllocateReusesFreeSlots(t *testing.T) {
	r := NewRegistry("")

	gameplay := r.AllocateBindContext("gameplay")
	menu := r.AllocateBindContext("menu")
	editor := r.AllocateBindContext("editor")
	if gameplay != 0 || menu != 1 || editor != 2 {
		t.Fatalf("handles = %d %d %d, want 0 1 2", gameplay, menu, editor)
	}

	r.ReleaseBindContext(menu)
	if _, ok := r.Context(menu); ok {
		t.Error("released handle should not resolve")
	}

	chat := r.AllocateBindContext("chat")
	if chat != menu {
		t.Errorf("expected slot %d to be reused, got %d", menu, chat)
	}
	if ctx := r.MustContext(chat); ctx.Name() != "chat" {
		t.Errorf("slot holds %q, want chat", ctx.Name())
	}

	if h, ok := r.Lookup("editor"); !ok || h != editor {
		t.Errorf("Lookup(editor) = %d, %v", h, ok)
	}
	if _, ok := r.Lookup("menu"); ok {
		t.Error("released context should not be found by name")
	}
	if len(r.Handles()) != 3 {
		t.Errorf("expected 3 live handles, got %v", r.Handles())
	}
}

func TestContextBoundsChecked(t *testing.T) {
	r := NewRegistry("")
	r.AllocateBindContext("gameplay")

	for _, h := range []Handle{InvalidHandle, 1, 99} {
		if _, ok := r.Context(h); ok {
			t.Errorf("Context(%d) should fail", h)
		}
	}

	defer func() {
		if recover() == nil {
			t.Error("MustContext should panic on a dead handle")
		}
	}()
	r.MustContext(5)
}

func TestCreateAction(t *testing.T) {
	r := NewRegistry("")
	h := r.AllocateBindContext("gameplay")

	jump := r.CreateAction(h, "Jump", keys.ScancodeSpace, "Jump over things", keys.ButtonA)
	fire := r.CreateAction(h, "Fire", keys.ScancodeF, "Fire weapon", keys.ButtonInvalid)
	if jump != 0 || fire != 1 {
		t.Fatalf("ids = %d %d, want 0 1", jump, fire)
	}

	if got := r.Description(fire); got != "Fire weapon" {
		t.Errorf("Description = %q", got)
	}
	if got := r.Title(jump); got != "Jump" {
		t.Errorf("Title = %q", got)
	}
	if got := r.Owner(jump); got != h {
		t.Errorf("Owner = %d, want %d", got, h)
	}
	if m, ok := r.MustContext(h).Title("Jump"); !ok || m.Action != jump {
		t.Error("action was not forwarded to its context")
	}

	if got := r.CreateAction(42, "Nope", keys.ScancodeN, "", keys.ButtonInvalid); got != binding.InvalidAction {
		t.Errorf("dead handle should yield InvalidAction, got %v", got)
	}
	if r.Len() != 2 {
		t.Errorf("failed creation must not consume an id, Len() = %d", r.Len())
	}
	if r.Describe(7) != "" {
		t.Error("Describe must be safe for unknown actions")
	}
}

func TestDescriptionPanicsOutOfRange(t *testing.T) {
	r := NewRegistry("")

	defer func() {
		if recover() == nil {
			t.Error("Description should panic for an unknown action")
		}
	}()
	r.Description(0)
}

func TestReadAndSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.cfg")

	r := NewRegistry(path)
	gameplay := r.AllocateBindContext("gameplay")
	menu := r.AllocateBindContext("menu")
	jump := r.CreateAction(gameplay, "Jump", keys.ScancodeSpace, "Jump", keys.ButtonA)
	back := r.CreateAction(menu, "Back", keys.ScancodeEscape, "Leave the menu", keys.ButtonB)

	// both contexts may bind the same key
	r.CreateAction(menu, "Confirm", keys.ScancodeSpace, "Confirm", keys.ButtonA)

	if err := r.ReadConfig(""); err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if got := r.MustContext(gameplay).Keys().Physical(jump); got != keys.ScancodeSpace {
		t.Errorf("Jump = %v, want Space", got)
	}

	if err := r.MustContext(menu).Keys().AddMapping(keys.ScancodeBackspace, back, false, false); err != nil {
		t.Fatalf("AddMapping failed: %v", err)
	}
	if err := r.SaveConfig(""); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading saved file: %v", err)
	}
	for _, want := range []string{`menu.secondary.Back: "Backspace"`, `gameplay.gamepad.Jump: "a"`, "# Leave the menu"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("saved file missing %q:\n%s", want, data)
		}
	}

	// a fresh registry with the same actions sees the saved secondary key
	again := NewRegistry(path)
	g := again.AllocateBindContext("gameplay")
	m := again.AllocateBindContext("menu")
	again.CreateAction(g, "Jump", keys.ScancodeSpace, "Jump", keys.ButtonA)
	back2 := again.CreateAction(m, "Back", keys.ScancodeEscape, "Leave the menu", keys.ButtonB)
	again.CreateAction(m, "Confirm", keys.ScancodeSpace, "Confirm", keys.ButtonA)
	if err := again.ReadConfig(""); err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if got := again.MustContext(m).Keys().PhysicalSlot(back2, binding.Secondary); got != keys.ScancodeBackspace {
		t.Errorf("Back secondary = %v, want Backspace", got)
	}
}

func TestReloadConfigDiscardsUnsavedChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.cfg")

	r := NewRegistry(path)
	h := r.AllocateBindContext("gameplay")
	jump := r.CreateAction(h, "Jump", keys.ScancodeSpace, "Jump", keys.ButtonA)
	if err := r.ReadConfig(""); err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	keysColl := r.MustContext(h).Keys()
	if err := keysColl.AddMapping(keys.ScancodeJ, jump, true, false); err != nil {
		t.Fatalf("AddMapping failed: %v", err)
	}

	if err := r.ReloadConfig(); err != nil {
		t.Fatalf("ReloadConfig failed: %v", err)
	}
	ctx := r.MustContext(h)
	if ctx.Keys().Action(keys.ScancodeJ) != binding.InvalidAction {
		t.Error("unsaved binding should be gone after reload")
	}
	if ctx.Keys().Physical(jump) != keys.ScancodeSpace {
		t.Error("default binding should be restored after reload")
	}
}

func TestReadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybindings.cfg")
	if err := os.WriteFile(path, []byte("- not\n- a mapping\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r := NewRegistry(path)
	if err := r.ReadConfig(""); err == nil {
		t.Error("expected error for malformed keybindings file")
	}
}

func TestClearActions(t *testing.T) {
	r := NewRegistry("")
	h := r.AllocateBindContext("gameplay")
	r.CreateAction(h, "Jump", keys.ScancodeSpace, "Jump", keys.ButtonA)

	r.ClearActions()
	if r.Len() != 0 || len(r.MustContext(h).Titles()) != 0 {
		t.Error("ClearActions should forget every action")
	}
	if got := r.CreateAction(h, "Fire", keys.ScancodeF, "Fire", keys.ButtonInvalid); got != 0 {
		t.Errorf("ids restart after ClearActions, got %d", got)
	}
	if r.ConfigPath() != "keybindings.cfg" {
		t.Errorf("default config path = %q", r.ConfigPath())
	}
}
