package window

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bryanchriswhite/FocusHint/internal/config"
	"github.com/thiagokokada/hyprland-go"
)

// fakeHypr answers from canned Hyprland JSON and records every call.
type fakeHypr struct {
	clients  string
	monitors string
	active   string
	failures map[string]error
	dispatch func(cmd string) error
	calls    []string
}

func (f *fakeHypr) fail(call string) error {
	f.calls = append(f.calls, call)
	return f.failures[call]
}

func (f *fakeHypr) Clients() ([]hyprland.Client, error) {
	if err := f.fail("clients"); err != nil {
		return nil, err
	}
	var v []hyprland.Client
	return v, json.Unmarshal([]byte(f.clients), &v)
}

func (f *fakeHypr) Monitors() ([]hyprland.Monitor, error) {
	if err := f.fail("monitors"); err != nil {
		return nil, err
	}
	var v []hyprland.Monitor
	return v, json.Unmarshal([]byte(f.monitors), &v)
}

func (f *fakeHypr) ActiveWindow() (hyprland.Window, error) {
	var v hyprland.Window
	if err := f.fail("activewindow"); err != nil {
		return v, err
	}
	return v, json.Unmarshal([]byte(f.active), &v)
}

func (f *fakeHypr) Dispatch(params ...string) ([]hyprland.Response, error) {
	call := "dispatch " + strings.Join(params, ";")
	f.calls = append(f.calls, call)
	if f.dispatch != nil {
		if err := f.dispatch(call); err != nil {
			return nil, err
		}
	}
	return []hyprland.Response{"ok"}, nil
}

func (f *fakeHypr) count(call string) int {
	n := 0
	for _, c := range f.calls {
		if c == call {
			n++
		}
	}
	return n
}

const hyprClients = `[
 {"address":"0xa","at":[0,0],"size":[800,600],"workspace":{"id":1,"name":"1"},"class":"kitty","title":"A"},
 {"address":"0xb","at":[800,0],"size":[800,600],"workspace":{"id":1,"name":"1"},"class":"firefox","title":"B"},
 {"address":"0xc","at":[0,0],"size":[1920,1080],"workspace":{"id":3,"name":"3"},"class":"mpv","title":"C"},
 {"address":"0xd","at":[1920,0],"size":[1280,1024],"workspace":{"id":5,"name":"5"},"class":"foot","title":"D"}
]`

const hyprMonitors = `[
 {"id":0,"name":"DP-1","x":0,"y":0,"width":1920,"height":1080,"activeWorkspace":{"id":1,"name":"1"}},
 {"id":1,"name":"DP-2","x":1920,"y":0,"width":1280,"height":1024,"activeWorkspace":{"id":5,"name":"5"}}
]`

func newFakeHypr() *fakeHypr {
	return &fakeHypr{
		clients:  hyprClients,
		monitors: hyprMonitors,
		active:   `{"address":"0xb","at":[800,0],"size":[800,600],"workspace":{"id":1,"name":"1"}}`,
		failures: map[string]error{},
	}
}

func TestHyprlandListWindowsFiltersToVisibleWorkspaces(t *testing.T) {
	fake := newFakeHypr()
	b := &HyprlandBackend{client: fake}

	windows, err := b.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}

	var titles []string
	for _, w := range windows {
		titles = append(titles, w.Title)
		if w.Workspace != 1 && w.Workspace != 5 {
			t.Errorf("window %q on hidden workspace %d", w.Title, w.Workspace)
		}
	}
	if got := strings.Join(titles, ","); got != "A,B,D" {
		t.Fatalf("titles = %s, want A,B,D (client order)", got)
	}

	if windows[0].Focused || !windows[1].Focused || windows[2].Focused {
		t.Errorf("focus flags wrong: %v %v %v", windows[0].Focused, windows[1].Focused, windows[2].Focused)
	}
	if windows[0].Geometry != (config.Geometry{X: 0, Y: 0, Width: 800, Height: 600}) {
		t.Errorf("geometry = %+v", windows[0].Geometry)
	}
	if windows[2].WorkspaceName != "5" || windows[2].Class != "foot" {
		t.Errorf("window D = %+v", windows[2])
	}
	if windows[0].ID == windows[1].ID {
		t.Error("synthetic ids should differ")
	}
}

func TestHyprlandListWindowsNoActiveWindow(t *testing.T) {
	fake := newFakeHypr()
	fake.active = `{}`
	b := &HyprlandBackend{client: fake}

	windows, err := b.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	for _, w := range windows {
		if w.Focused {
			t.Errorf("window %q should not be focused", w.Title)
		}
	}
}

func TestHyprlandListWindowsActiveLookupFailureIsIgnored(t *testing.T) {
	fake := newFakeHypr()
	// hyprland-go reports an empty activewindow reply as a validation error.
	fake.failures["activewindow"] = fmt.Errorf("%w: empty response", hyprland.ErrorValidation)
	b := &HyprlandBackend{client: fake}

	windows, err := b.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows should tolerate active window failure: %v", err)
	}
	if len(windows) != 3 {
		t.Fatalf("got %d windows, want 3", len(windows))
	}
}

func TestHyprlandListWindowsIPCError(t *testing.T) {
	fake := newFakeHypr()
	refused := errors.New("connection refused")
	fake.failures["monitors"] = refused
	b := &HyprlandBackend{client: fake}

	_, err := b.ListWindows()
	if !errors.Is(err, ErrIPC) {
		t.Fatalf("expected ErrIPC, got %v", err)
	}
	if !errors.Is(err, refused) {
		t.Fatalf("cause lost: %v", err)
	}
	// No retry.
	if n := fake.count("monitors"); n != 1 {
		t.Fatalf("monitors requested %d times", n)
	}
}

func TestHyprlandListWindowsClientsError(t *testing.T) {
	fake := newFakeHypr()
	fake.failures["clients"] = errors.New("invalid character 'n' looking for beginning of value")
	b := &HyprlandBackend{client: fake}

	if _, err := b.ListWindows(); !errors.Is(err, ErrIPC) {
		t.Fatalf("expected ErrIPC, got %v", err)
	}
	if fake.count("monitors") != 0 {
		t.Fatal("monitors requested after clients failed")
	}
}

func TestHyprlandListWindowsShortGeometry(t *testing.T) {
	fake := newFakeHypr()
	fake.clients = `[{"address":"0xe","at":[5],"workspace":{"id":1},"title":"E"}]`
	b := &HyprlandBackend{client: fake}

	windows, err := b.ListWindows()
	if err != nil {
		t.Fatalf("ListWindows: %v", err)
	}
	if len(windows) != 1 || windows[0].Geometry != (config.Geometry{}) {
		t.Fatalf("windows = %+v", windows)
	}
}

func TestHyprlandFocusDispatchesMatchingAddress(t *testing.T) {
	fake := newFakeHypr()
	b := &HyprlandBackend{client: fake}

	target := &config.DesktopWindow{Geometry: config.Geometry{X: 800, Y: 0, Width: 800, Height: 600}}
	if err := b.Focus(target); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	last := fake.calls[len(fake.calls)-1]
	if last != "dispatch focuswindow address:0xb" {
		t.Fatalf("last call = %q", last)
	}
}

func TestHyprlandFocusFirstMatchWins(t *testing.T) {
	fake := newFakeHypr()
	b := &HyprlandBackend{client: fake}

	// Two clients with identical geometry, e.g. a tabbed group.
	fake.clients = `[
 {"address":"0x1","at":[0,0],"size":[800,600],"workspace":{"id":1}},
 {"address":"0x2","at":[0,0],"size":[800,600],"workspace":{"id":1}}
]`
	target := &config.DesktopWindow{Geometry: config.Geometry{X: 0, Y: 0, Width: 800, Height: 600}}
	if err := b.Focus(target); err != nil {
		t.Fatalf("Focus: %v", err)
	}
	if last := fake.calls[len(fake.calls)-1]; last != "dispatch focuswindow address:0x1" {
		t.Fatalf("last call = %q", last)
	}
}

func TestHyprlandFocusNotFound(t *testing.T) {
	fake := newFakeHypr()
	b := &HyprlandBackend{client: fake}

	target := &config.DesktopWindow{Geometry: config.Geometry{X: 1, Y: 2, Width: 3, Height: 4}}
	if err := b.Focus(target); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if fake.count("dispatch focuswindow address:0xa") != 0 {
		t.Fatal("dispatched without a match")
	}
}

func TestHyprlandFocusRejectedDispatch(t *testing.T) {
	fake := newFakeHypr()
	fake.dispatch = func(string) error {
		return fmt.Errorf("%w: non-ok response from param: focuswindow address:0xa, response: No such window", hyprland.ErrorValidation)
	}
	b := &HyprlandBackend{client: fake}

	target := &config.DesktopWindow{Geometry: config.Geometry{X: 0, Y: 0, Width: 800, Height: 600}}
	err := b.Focus(target)
	if !errors.Is(err, ErrIPC) {
		t.Fatalf("expected ErrIPC, got %v", err)
	}
	if !errors.Is(err, hyprland.ErrorValidation) {
		t.Fatalf("validation cause lost: %v", err)
	}
}

func TestHyprlandScreenSize(t *testing.T) {
	b := &HyprlandBackend{client: newFakeHypr()}
	w, h, err := b.ScreenSize()
	if err != nil {
		t.Fatal(err)
	}
	if w != 3200 || h != 1080 {
		t.Fatalf("ScreenSize = %dx%d, want 3200x1080", w, h)
	}

	empty := newFakeHypr()
	empty.monitors = `[]`
	b = &HyprlandBackend{client: empty}
	if w, h, _ := b.ScreenSize(); w != 1920 || h != 1080 {
		t.Fatalf("default ScreenSize = %dx%d", w, h)
	}
}
