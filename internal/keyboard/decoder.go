// Package keyboard turns raw Wayland key events into typed hint characters.
//
// A Decoder starts without a keymap and ignores keys until the compositor
// sends one. The XKB layout sits behind the Compiler and Layout interfaces so
// the state machine can be driven without libxkbcommon.
package keyboard

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bryanchriswhite/FocusHint/internal/logger"
	"github.com/bryanchriswhite/FocusHint/internal/shm"
	"golang.org/x/sys/unix"
)

// ErrKeymap marks a keymap that could not be loaded. It is never fatal.
var ErrKeymap = errors.New("keymap unusable")

// Keysym is an X keysym value.
type Keysym uint32

const (
	KeysymBackSpace Keysym = 0xff08
	KeysymEscape    Keysym = 0xff1b
)

// evdev keycodes are offset by 8 in XKB.
const xkbKeycodeOffset = 8

// Wayland wl_keyboard values the decoder interprets.
const (
	formatXkbV1  uint32 = 1
	statePressed uint32 = 1
)

// Compiler turns XKB keymap text into a Layout.
type Compiler interface {
	Compile(text string) (Layout, error)
}

// Layout is a compiled keymap plus its modifier state.
type Layout interface {
	UpdateMask(depressed, latched, locked, group uint32)
	Sym(keycode uint32) Keysym
	Name(sym Keysym) string
	Close()
}

// State is the decoder's keymap state.
type State int

const (
	NoKeymap State = iota
	KeymapLoaded
)

func (s State) String() string {
	switch s {
	case NoKeymap:
		return "no-keymap"
	case KeymapLoaded:
		return "keymap-loaded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Decoder accumulates typed characters and a cancellation flag.
type Decoder struct {
	compiler  Compiler
	layout    Layout
	input     []byte
	cancelled bool
}

// NewDecoder returns a decoder in the NoKeymap state.
func NewDecoder(compiler Compiler) *Decoder {
	return &Decoder{compiler: compiler}
}

// State reports whether a keymap has been loaded.
func (d *Decoder) State() State {
	if d.layout == nil {
		return NoKeymap
	}
	return KeymapLoaded
}

// Input returns the characters typed so far.
func (d *Decoder) Input() string {
	return string(d.input)
}

// Cancelled reports whether Escape was pressed.
func (d *Decoder) Cancelled() bool {
	return d.cancelled
}

// HandleKeymap loads the keymap shared through fd. The decoder takes
// ownership of fd and closes it on every path. A failed load leaves the
// previous layout, if any, in place.
func (d *Decoder) HandleKeymap(format uint32, fd int, size uint32) error {
	defer unix.Close(fd)

	if format != formatXkbV1 {
		return fmt.Errorf("%w: unsupported format %d", ErrKeymap, format)
	}
	if size == 0 {
		return fmt.Errorf("%w: empty keymap", ErrKeymap)
	}

	m, err := shm.MapReadOnly(fd, int(size))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeymap, err)
	}
	text := m.CString()
	if err := m.Close(); err != nil {
		logger.WithComponent("keyboard").Debug().Err(err).Msg("Failed to unmap keymap")
	}

	layout, err := d.compiler.Compile(text)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrKeymap, err)
	}
	if d.layout != nil {
		d.layout.Close()
	}
	d.layout = layout
	logger.WithComponent("keyboard").Debug().Int("bytes", len(text)).Msg("Keymap loaded")
	return nil
}

// HandleModifiers updates the modifier masks and active group.
func (d *Decoder) HandleModifiers(depressed, latched, locked, group uint32) {
	if d.layout == nil {
		return
	}
	d.layout.UpdateMask(depressed, latched, locked, group)
}

// HandleKey applies one key event. key is the raw evdev code.
func (d *Decoder) HandleKey(key, state uint32) {
	if state != statePressed || d.layout == nil {
		return
	}

	sym := d.layout.Sym(key + xkbKeycodeOffset)
	switch sym {
	case KeysymEscape:
		d.cancelled = true
	case KeysymBackSpace:
		if len(d.input) > 0 {
			d.input = d.input[:len(d.input)-1]
		}
	default:
		name := d.layout.Name(sym)
		if utf8.RuneCountInString(name) == 1 {
			d.input = append(d.input, strings.ToLower(name)...)
		}
	}
}

// Close releases the compiled layout.
func (d *Decoder) Close() {
	if d.layout != nil {
		d.layout.Close()
		d.layout = nil
	}
}
