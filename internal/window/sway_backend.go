package window

import (
	"context"
	"fmt"
	"strconv"

	"github.com/bryanchriswhite/FocusHint/internal/config"
	"github.com/bryanchriswhite/FocusHint/internal/logger"
	sway "github.com/joshuarubin/go-sway"
)

// swayClient is the subset of sway.Client the backend uses.
type swayClient interface {
	GetTree(ctx context.Context) (*sway.Node, error)
	GetWorkspaces(ctx context.Context) ([]sway.Workspace, error)
	RunCommand(ctx context.Context, command string) ([]sway.RunCommandReply, error)
}

// SwayBackend implements the Backend interface using sway's IPC
type SwayBackend struct {
	client swayClient
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSwayBackend connects to the sway instance named by $SWAYSOCK
func NewSwayBackend() (*SwayBackend, error) {
	ctx, cancel := context.WithCancel(context.Background())
	client, err := sway.New(ctx)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("%w: failed to connect to sway: %v", ErrIPC, err)
	}
	return &SwayBackend{client: client, ctx: ctx, cancel: cancel}, nil
}

// Name returns the backend name
func (b *SwayBackend) Name() string {
	return "sway"
}

// Close releases the IPC connection
func (b *SwayBackend) Close() error {
	if b.cancel != nil {
		b.cancel()
	}
	return nil
}

type swayLeaf struct {
	node      *sway.Node
	workspace string
}

func (l swayLeaf) geometry() config.Geometry {
	r := l.node.Rect
	return config.Geometry{X: int(r.X), Y: int(r.Y), Width: int(r.Width), Height: int(r.Height)}
}

// class is the Wayland app_id, or the X11 class for Xwayland windows.
func (l swayLeaf) class() string {
	if l.node.AppID != nil && *l.node.AppID != "" {
		return *l.node.AppID
	}
	if l.node.WindowProperties != nil {
		return l.node.WindowProperties.Class
	}
	return ""
}

// leaves returns every window container in tree order, tagged with the name
// of the workspace that holds it.
func leaves(root *sway.Node) []swayLeaf {
	var out []swayLeaf
	var walk func(n *sway.Node, workspace string)
	walk = func(n *sway.Node, workspace string) {
		if n == nil {
			return
		}
		switch string(n.Type) {
		case "workspace":
			workspace = n.Name
		case "con", "floating_con":
			if len(n.Nodes) == 0 && len(n.FloatingNodes) == 0 {
				out = append(out, swayLeaf{node: n, workspace: workspace})
				return
			}
		}
		for _, child := range n.Nodes {
			walk(child, workspace)
		}
		for _, child := range n.FloatingNodes {
			walk(child, workspace)
		}
	}
	walk(root, "")
	return out
}

// ListWindows returns the window containers of every visible workspace
func (b *SwayBackend) ListWindows() ([]*config.DesktopWindow, error) {
	log := logger.WithComponent("sway-backend")

	tree, err := b.client.GetTree(b.ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: get_tree: %v", ErrIPC, err)
	}
	workspaces, err := b.client.GetWorkspaces(b.ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: get_workspaces: %v", ErrIPC, err)
	}

	// Each output shows exactly one workspace; those are the visible ones.
	visible := make(map[string]int64, len(workspaces))
	for _, ws := range workspaces {
		if ws.Visible {
			visible[ws.Name] = ws.Num
		}
	}

	windows := make([]*config.DesktopWindow, 0)
	for _, leaf := range leaves(tree) {
		num, ok := visible[leaf.workspace]
		if !ok {
			continue
		}
		windows = append(windows, &config.DesktopWindow{
			ID:            syntheticID(strconv.FormatInt(leaf.node.ID, 10)),
			Title:         leaf.node.Name,
			Class:         leaf.class(),
			Workspace:     int(num),
			WorkspaceName: leaf.workspace,
			Focused:       leaf.node.Focused,
			Geometry:      leaf.geometry(),
		})
	}

	log.Debug().Int("count", len(windows)).Msg("ListWindows")
	return windows, nil
}

// Focus re-resolves w against the current tree and focuses the match
func (b *SwayBackend) Focus(w *config.DesktopWindow) error {
	tree, err := b.client.GetTree(b.ctx)
	if err != nil {
		return fmt.Errorf("%w: get_tree: %v", ErrIPC, err)
	}

	all := leaves(tree)
	geoms := make([]config.Geometry, len(all))
	for i, leaf := range all {
		geoms[i] = leaf.geometry()
	}
	idx, err := ResolveByGeometry(geoms, w.Geometry)
	if err != nil {
		return err
	}

	cmd := fmt.Sprintf("[con_id=%d] focus", all[idx].node.ID)
	logger.WithComponent("sway-backend").Info().Str("command", cmd).Msg("Focusing window")

	replies, err := b.client.RunCommand(b.ctx, cmd)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrIPC, cmd, err)
	}
	for _, r := range replies {
		if !r.Success {
			return fmt.Errorf("%w: %s: %s", ErrIPC, cmd, r.Error)
		}
	}
	return nil
}
