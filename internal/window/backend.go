package window

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"

	"github.com/bryanchriswhite/FocusHint/internal/config"
)

var (
	// ErrNotFound is returned by Focus when no live window has the target's geometry.
	ErrNotFound = errors.New("window not found")

	// ErrIPC wraps every failure talking to the window manager.
	ErrIPC = errors.New("window manager ipc failed")
)

// Backend defines the interface for window sources (Hyprland, Sway)
type Backend interface {
	// ListWindows returns the windows on every monitor's active workspace,
	// in the order the window manager reports them.
	ListWindows() ([]*config.DesktopWindow, error)

	// Focus asks the window manager to focus the live window whose geometry
	// matches w. See ResolveByGeometry for the tie-break.
	Focus(w *config.DesktopWindow) error

	// Close releases the connection to the window manager
	Close() error

	// Name returns the backend name (e.g., "hyprland", "sway")
	Name() string
}

// ScreenSizer is implemented by backends that can report the extent of the
// whole monitor layout.
type ScreenSizer interface {
	ScreenSize() (width, height int, err error)
}

// New returns the backend named by name. "auto" picks the running compositor
// from its environment variables.
func New(name string) (Backend, error) {
	if name == "auto" || name == "" {
		name = Detect()
		if name == "" {
			return nil, fmt.Errorf("no supported window manager detected (HYPRLAND_INSTANCE_SIGNATURE and SWAYSOCK are unset)")
		}
	}

	switch name {
	case "hyprland":
		return NewHyprlandBackend()
	case "sway":
		return NewSwayBackend()
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// Detect returns the backend name for the current session or "".
func Detect() string {
	if os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
		return "hyprland"
	}
	if os.Getenv("SWAYSOCK") != "" {
		return "sway"
	}
	return ""
}

// ResolveByGeometry returns the index of the first candidate whose position
// and size exactly match target, or ErrNotFound.
//
// Window managers give us no identifier that survives between the listing
// and the focus request, so geometry is the identity. Two windows stacked
// with identical geometry (e.g. a tabbed group) always resolve to the one
// reported first.
func ResolveByGeometry(candidates []config.Geometry, target config.Geometry) (int, error) {
	for i, g := range candidates {
		if g.SameAs(target) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w at %dx%d+%d+%d", ErrNotFound, target.Width, target.Height, target.X, target.Y)
}

// syntheticID derives a numeric id from a backend handle.
func syntheticID(handle string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(handle))
	return h.Sum64()
}
