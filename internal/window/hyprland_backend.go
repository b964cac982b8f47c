package window

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bryanchriswhite/FocusHint/internal/config"
	"github.com/bryanchriswhite/FocusHint/internal/logger"
	"github.com/thiagokokada/hyprland-go"
	"github.com/thiagokokada/hyprland-go/helpers"
)

// hyprClient is the part of hyprland.RequestClient the backend uses.
type hyprClient interface {
	Clients() ([]hyprland.Client, error)
	Monitors() ([]hyprland.Monitor, error)
	ActiveWindow() (hyprland.Window, error)
	Dispatch(params ...string) ([]hyprland.Response, error)
}

// hyprGeometry reads a client's position and size. Hyprland reports both as
// two-element arrays.
func hyprGeometry(c *hyprland.Client) config.Geometry {
	var g config.Geometry
	if len(c.At) >= 2 {
		g.X, g.Y = c.At[0], c.At[1]
	}
	if len(c.Size) >= 2 {
		g.Width, g.Height = c.Size[0], c.Size[1]
	}
	return g
}

// HyprlandBackend implements the Backend interface using Hyprland's IPC socket
type HyprlandBackend struct {
	client hyprClient
}

// NewHyprlandBackend connects to the Hyprland instance of the current session
func NewHyprlandBackend() (*HyprlandBackend, error) {
	path, err := hyprSocketPath()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIPC, err)
	}
	logger.WithComponent("hyprland-backend").Debug().Str("socket", path).Msg("Using Hyprland IPC socket")
	return &HyprlandBackend{client: hyprland.NewClient(path)}, nil
}

// hyprSocketPath locates the request socket for the running instance.
// Hyprland >= 0.40 lives under $XDG_RUNTIME_DIR/hypr, older builds under /tmp/hypr.
func hyprSocketPath() (string, error) {
	path, err := helpers.GetSocket(helpers.RequestSocket)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	legacy := filepath.Join("/tmp", "hypr", os.Getenv("HYPRLAND_INSTANCE_SIGNATURE"), string(helpers.RequestSocket))
	if _, err := os.Stat(legacy); err != nil {
		return "", fmt.Errorf("hyprland socket not found at %s or %s", path, legacy)
	}
	return legacy, nil
}

// Name returns the backend name
func (b *HyprlandBackend) Name() string {
	return "hyprland"
}

// Close is a no-op; every request uses its own connection.
func (b *HyprlandBackend) Close() error {
	return nil
}

func (b *HyprlandBackend) clients() ([]hyprland.Client, error) {
	clients, err := b.client.Clients()
	if err != nil {
		return nil, fmt.Errorf("%w: clients: %w", ErrIPC, err)
	}
	return clients, nil
}

func (b *HyprlandBackend) monitors() ([]hyprland.Monitor, error) {
	monitors, err := b.client.Monitors()
	if err != nil {
		return nil, fmt.Errorf("%w: monitors: %w", ErrIPC, err)
	}
	return monitors, nil
}

// activeAddress returns the focused client's address, or "" if nothing is
// focused or the lookup fails. A failed lookup only costs the focus highlight.
func (b *HyprlandBackend) activeAddress() string {
	active, err := b.client.ActiveWindow()
	if err != nil {
		logger.WithComponent("hyprland-backend").Debug().Err(err).Msg("Active window lookup failed")
		return ""
	}
	return active.Address
}

// ListWindows returns all clients on the active workspace of any monitor
func (b *HyprlandBackend) ListWindows() ([]*config.DesktopWindow, error) {
	log := logger.WithComponent("hyprland-backend")

	clients, err := b.clients()
	if err != nil {
		return nil, err
	}
	monitors, err := b.monitors()
	if err != nil {
		return nil, err
	}

	visible := make(map[int]bool, len(monitors))
	for _, m := range monitors {
		visible[m.ActiveWorkspace.Id] = true
	}
	log.Debug().Interface("workspaces", visible).Msg("Visible workspaces")

	active := b.activeAddress()

	windows := make([]*config.DesktopWindow, 0, len(clients))
	for i := range clients {
		c := &clients[i]
		if !visible[c.Workspace.Id] {
			continue
		}
		w := &config.DesktopWindow{
			ID:            syntheticID(c.Address),
			Title:         c.Title,
			Class:         c.Class,
			Workspace:     c.Workspace.Id,
			WorkspaceName: c.Workspace.Name,
			Focused:       active != "" && c.Address == active,
			Geometry:      hyprGeometry(c),
		}
		log.Debug().
			Str("address", c.Address).
			Str("class", c.Class).
			Interface("geometry", w.Geometry).
			Bool("focused", w.Focused).
			Msg("Found window")
		windows = append(windows, w)
	}

	log.Debug().Int("count", len(windows)).Msg("ListWindows")
	return windows, nil
}

// Focus re-resolves w against a fresh client list and focuses the match
func (b *HyprlandBackend) Focus(w *config.DesktopWindow) error {
	clients, err := b.clients()
	if err != nil {
		return err
	}

	geoms := make([]config.Geometry, len(clients))
	for i := range clients {
		geoms[i] = hyprGeometry(&clients[i])
	}
	idx, err := ResolveByGeometry(geoms, w.Geometry)
	if err != nil {
		return err
	}
	target := clients[idx]

	logger.WithComponent("hyprland-backend").Info().
		Str("address", target.Address).
		Int("x", w.Geometry.X).
		Int("y", w.Geometry.Y).
		Msg("Focusing window")

	cmd := "focuswindow address:" + target.Address
	if _, err := b.client.Dispatch(cmd); err != nil {
		return fmt.Errorf("%w: dispatch %s: %w", ErrIPC, cmd, err)
	}
	return nil
}

// ScreenSize returns the bounding box of all monitors, defaulting to 1920x1080
func (b *HyprlandBackend) ScreenSize() (int, int, error) {
	monitors, err := b.monitors()
	if err != nil {
		return 0, 0, err
	}
	if len(monitors) == 0 {
		return 1920, 1080, nil
	}
	width, height := 0, 0
	for _, m := range monitors {
		width = max(width, m.X+m.Width)
		height = max(height, m.Y+m.Height)
	}
	return width, height, nil
}

var _ hyprClient = (*hyprland.RequestClient)(nil)
