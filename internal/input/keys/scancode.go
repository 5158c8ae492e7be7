// Package keys defines the physical input identifiers used by the input
// layer: keyboard scancodes, gamepad buttons and mouse buttons.
//
// Values match the SDL2 numbering (USB HID usage ids for scancodes) so the
// platform adapter can convert with a plain cast. Names match the strings
// SDL2 reports, which keeps keybinding files interchangeable with other
// SDL based tools.
package keys

import (
	"strconv"
	"strings"
)

// Scancode identifies a physical key position.
type Scancode int

// NumScancodes is the size of a keyboard state array.
const NumScancodes = 512

// ScancodeUnknown is the invalid scancode. It is never bound.
const ScancodeUnknown Scancode = 0

// Common scancodes.
const (
	ScancodeA Scancode = 4 + iota
	ScancodeB
	ScancodeC
	ScancodeD
	ScancodeE
	ScancodeF
	ScancodeG
	ScancodeH
	ScancodeI
	ScancodeJ
	ScancodeK
	ScancodeL
	ScancodeM
	ScancodeN
	ScancodeO
	ScancodeP
	ScancodeQ
	ScancodeR
	ScancodeS
	ScancodeT
	ScancodeU
	ScancodeV
	ScancodeW
	ScancodeX
	ScancodeY
	ScancodeZ
	Scancode1
	Scancode2
	Scancode3
	Scancode4
	Scancode5
	Scancode6
	Scancode7
	Scancode8
	Scancode9
	Scancode0
	ScancodeReturn
	ScancodeEscape
	ScancodeBackspace
	ScancodeTab
	ScancodeSpace
)

const (
	ScancodeF1        Scancode = 58
	ScancodeF12       Scancode = 69
	ScancodeHome      Scancode = 74
	ScancodeDelete    Scancode = 76
	ScancodeEnd       Scancode = 77
	ScancodeRight     Scancode = 79
	ScancodeLeft      Scancode = 80
	ScancodeDown      Scancode = 81
	ScancodeUp        Scancode = 82
	ScancodeLCtrl     Scancode = 224
	ScancodeLShift    Scancode = 225
	ScancodeLAlt      Scancode = 226
	ScancodeRCtrl     Scancode = 228
	ScancodeRShift    Scancode = 229
	ScancodeRAlt      Scancode = 230
	ScancodeKPEnter   Scancode = 88
	ScancodeGrave     Scancode = 53
	ScancodePageUp    Scancode = 75
	ScancodePageDown  Scancode = 78
	ScancodeInsert    Scancode = 73
	ScancodeCapsLock  Scancode = 57
	ScancodeLeftGUI   Scancode = 227
	ScancodeRightGUI  Scancode = 231
	ScancodeKP1       Scancode = 89
	ScancodeKP0       Scancode = 98
	ScancodeF13       Scancode = 104
	ScancodeF24       Scancode = 115
	ScancodeMinus     Scancode = 45
	ScancodeSlash     Scancode = 56
	ScancodeNumLock   Scancode = 83
	ScancodeKPDivide  Scancode = 84
	ScancodeKPPeriod  Scancode = 99
	ScancodeKPEquals  Scancode = 103
	ScancodeKPMinus   Scancode = 86
	ScancodePrintScrn Scancode = 70
)

var scancodeNames = map[Scancode]string{
	ScancodeReturn:    "Return",
	ScancodeEscape:    "Escape",
	ScancodeBackspace: "Backspace",
	ScancodeTab:       "Tab",
	ScancodeSpace:     "Space",
	ScancodeMinus:     "-",
	46:                "=",
	47:                "[",
	48:                "]",
	49:                "\\",
	50:                "#",
	51:                ";",
	52:                "'",
	ScancodeGrave:     "`",
	54:                ",",
	55:                ".",
	ScancodeSlash:     "/",
	ScancodeCapsLock:  "CapsLock",
	ScancodePrintScrn: "PrintScreen",
	71:                "ScrollLock",
	72:                "Pause",
	ScancodeInsert:    "Insert",
	ScancodeHome:      "Home",
	ScancodePageUp:    "PageUp",
	ScancodeDelete:    "Delete",
	ScancodeEnd:       "End",
	ScancodePageDown:  "PageDown",
	ScancodeRight:     "Right",
	ScancodeLeft:      "Left",
	ScancodeDown:      "Down",
	ScancodeUp:        "Up",
	ScancodeNumLock:   "Numlock",
	ScancodeKPDivide:  "Keypad /",
	85:                "Keypad *",
	ScancodeKPMinus:   "Keypad -",
	87:                "Keypad +",
	ScancodeKPEnter:   "Keypad Enter",
	ScancodeKPPeriod:  "Keypad .",
	100:               "NonUSBackslash",
	101:               "Application",
	102:               "Power",
	ScancodeKPEquals:  "Keypad =",
	ScancodeLCtrl:     "Left Ctrl",
	ScancodeLShift:    "Left Shift",
	ScancodeLAlt:      "Left Alt",
	ScancodeLeftGUI:   "Left GUI",
	ScancodeRCtrl:     "Right Ctrl",
	ScancodeRShift:    "Right Shift",
	ScancodeRAlt:      "Right Alt",
	ScancodeRightGUI:  "Right GUI",
}

var scancodeByName map[string]Scancode

func init() {
	for sc := ScancodeA; sc <= ScancodeZ; sc++ {
		scancodeNames[sc] = string(rune('A' + int(sc-ScancodeA)))
	}
	for sc := Scancode1; sc <= Scancode9; sc++ {
		scancodeNames[sc] = string(rune('1' + int(sc-Scancode1)))
	}
	scancodeNames[Scancode0] = "0"

	for i := 0; i < 12; i++ {
		scancodeNames[ScancodeF1+Scancode(i)] = "F" + strconv.Itoa(i+1)
	}
	for i := 0; i < 12; i++ {
		scancodeNames[ScancodeF13+Scancode(i)] = "F" + strconv.Itoa(i+13)
	}
	for i := 0; i < 9; i++ {
		scancodeNames[ScancodeKP1+Scancode(i)] = "Keypad " + strconv.Itoa(i+1)
	}
	scancodeNames[ScancodeKP0] = "Keypad 0"

	scancodeByName = make(map[string]Scancode, len(scancodeNames))
	for sc, name := range scancodeNames {
		scancodeByName[strings.ToLower(name)] = sc
	}
}

// Valid reports whether sc can be used as a key binding.
func (sc Scancode) Valid() bool {
	return sc > ScancodeUnknown && sc < NumScancodes
}

const rawPrefix = "scancode("

// Name returns the human readable key name. Valid keys without an SDL name
// get the raw form "Scancode(N)", which ScancodeFromName accepts. Invalid
// scancodes return "".
func (sc Scancode) Name() string {
	if name, ok := scancodeNames[sc]; ok {
		return name
	}
	if !sc.Valid() {
		return ""
	}
	return "Scancode(" + strconv.Itoa(int(sc)) + ")"
}

// String implements fmt.Stringer.
func (sc Scancode) String() string {
	if name := sc.Name(); name != "" {
		return name
	}
	return "Scancode(" + strconv.Itoa(int(sc)) + ")"
}

// ScancodeFromName looks up a key by name, ignoring case. Unknown names
// return ScancodeUnknown.
func ScancodeFromName(name string) Scancode {
	name = strings.ToLower(strings.TrimSpace(name))
	if sc, ok := scancodeByName[name]; ok {
		return sc
	}
	if raw, ok := strings.CutPrefix(name, rawPrefix); ok {
		raw, ok = strings.CutSuffix(raw, ")")
		if n, err := strconv.Atoi(raw); ok && err == nil && Scancode(n).Valid() {
			return Scancode(n)
		}
	}
	return ScancodeUnknown
}
