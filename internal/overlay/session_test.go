package overlay

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/bryanchriswhite/FocusHint/internal/hint"
	"github.com/bryanchriswhite/FocusHint/internal/keyboard"
	"github.com/bryanchriswhite/FocusHint/internal/shm"
	"github.com/bryanchriswhite/FocusHint/internal/wayland"
	"github.com/bryanchriswhite/FocusHint/internal/wayland/wltest"
)

const (
	frameWidth  = 800
	frameHeight = 600

	evdevEsc = 1
	evdevA   = 30
	evdevS   = 31
)

var sessionGlobals = []wltest.Global{
	{Name: 1, Interface: "wl_compositor", Version: 6},
	{Name: 2, Interface: "wl_shm", Version: 1},
	{Name: 3, Interface: "zwlr_layer_shell_v1", Version: 4},
	{Name: 4, Interface: "wl_seat", Version: 7},
}

// letterLayout types a, s and Escape.
type letterLayout struct{}

func (letterLayout) UpdateMask(_, _, _, _ uint32) {}

func (letterLayout) Sym(keycode uint32) keyboard.Keysym {
	switch keycode - 8 {
	case evdevEsc:
		return keyboard.KeysymEscape
	case evdevA:
		return 'a'
	case evdevS:
		return 's'
	}
	return 0
}

func (letterLayout) Name(sym keyboard.Keysym) string {
	if sym >= 'a' && sym <= 'z' {
		return string(rune(sym))
	}
	return ""
}

func (letterLayout) Close() {}

type letterCompiler struct {
	keymaps []string
}

func (c *letterCompiler) Compile(text string) (keyboard.Layout, error) {
	c.keymaps = append(c.keymaps, text)
	return letterLayout{}, nil
}

// compositor configures the layer surface on its first commit and sends a
// keymap when the keyboard is created. It runs on the server goroutine.
type compositor struct {
	keymap *shm.Region

	surface      uint32
	layerSurface uint32
	configured   bool
}

const testKeymap = "xkb_keymap { fake };"

func newCompositor(t *testing.T) *compositor {
	t.Helper()
	region, err := shm.Create("keymap", len(testKeymap)+1)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { region.Close() })
	copy(region.Bytes(), testKeymap)
	return &compositor{keymap: region}
}

func (c *compositor) handle(s *wltest.Server, r wltest.Request) {
	switch {
	case r.ID == s.Bound("wl_compositor") && r.Opcode == 0:
		c.surface = r.Args().Uint()
	case r.ID == s.Bound("zwlr_layer_shell_v1") && r.Opcode == 0:
		c.layerSurface = r.Args().Uint()
	case r.ID == c.surface && r.Opcode == 6 && !c.configured:
		c.configured = true
		s.Event(c.layerSurface, 0, nil, uint32(7), uint32(frameWidth), uint32(frameHeight))
	case r.ID == s.Bound("wl_seat") && r.Opcode == 1:
		kbd := r.Args().Uint()
		s.Event(kbd, 0, []int{c.keymap.Fd()}, uint32(1), uint32(c.keymap.Size()))
	}
}

func openSession(t *testing.T, globals []wltest.Global) (*Session, *wltest.Server, *letterCompiler, error) {
	t.Helper()
	srv := wltest.NewServer(t, wltest.Core(globals, newCompositor(t).handle))
	conn, err := wayland.Dial(srv.Path())
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	compiler := &letterCompiler{}
	s := newSession(conn, Options{Compiler: compiler})
	t.Cleanup(func() { s.Close() })
	return s, srv, compiler, s.setup()
}

var requestNames = map[string][]string{
	"wl_display":            {"sync", "get_registry"},
	"wl_registry":           {"bind"},
	"wl_compositor":         {"create_surface", "create_region"},
	"wl_surface":            {"destroy", "attach", "damage", "frame", "set_opaque_region", "set_input_region", "commit", "set_buffer_transform", "set_buffer_scale", "damage_buffer"},
	"wl_shm":                {"create_pool"},
	"wl_shm_pool":           {"create_buffer", "destroy", "resize"},
	"wl_buffer":             {"destroy"},
	"wl_seat":               {"get_pointer", "get_keyboard", "get_touch", "release"},
	"wl_keyboard":           {"release"},
	"zwlr_layer_shell_v1":   {"get_layer_surface", "destroy"},
	"zwlr_layer_surface_v1": {"set_size", "set_anchor", "set_exclusive_zone", "set_margin", "set_keyboard_interactivity", "get_popup", "ack_configure", "destroy", "set_layer"},
}

// describe names every request "interface.request".
func describe(s *Session, srv *wltest.Server, reqs []wltest.Request) []string {
	ifaces := map[uint32]string{
		1:                   "wl_display",
		srv.Registry():      "wl_registry",
		s.compositor.ID():   "wl_compositor",
		s.shm.ID():          "wl_shm",
		s.layerShell.ID():   "zwlr_layer_shell_v1",
		s.seat.ID():         "wl_seat",
		s.surface.ID():      "wl_surface",
		s.layerSurface.ID(): "zwlr_layer_surface_v1",
	}
	if s.keyboard != nil {
		ifaces[s.keyboard.ID()] = "wl_keyboard"
	}

	var seq []string
	for _, r := range reqs {
		iface, ok := ifaces[r.ID]
		if !ok {
			seq = append(seq, fmt.Sprintf("unknown@%d.%d", r.ID, r.Opcode))
			continue
		}
		name := fmt.Sprintf("%s.%d", iface, r.Opcode)
		if names := requestNames[iface]; int(r.Opcode) < len(names) {
			name = iface + "." + names[r.Opcode]
		}
		seq = append(seq, name)

		switch name {
		case "wl_shm.create_pool":
			ifaces[r.Args().Uint()] = "wl_shm_pool"
		case "wl_shm_pool.create_buffer":
			ifaces[r.Args().Uint()] = "wl_buffer"
		}
	}
	return seq
}

func findRequest(t *testing.T, reqs []wltest.Request, id uint32, opcode uint16) wltest.Request {
	t.Helper()
	for _, r := range reqs {
		if r.ID == id && r.Opcode == opcode {
			return r
		}
	}
	t.Fatalf("no request %d/%d", id, opcode)
	return wltest.Request{}
}

func TestSessionShowsHintsAndSelectsTypedWindow(t *testing.T) {
	s, srv, compiler, err := openSession(t, sessionGlobals)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if w, h := s.Size(); w != frameWidth || h != frameHeight {
		t.Errorf("Size() = %dx%d, want configured %dx%d", w, h, frameWidth, frameHeight)
	}

	a, b := win(0, 0, true), win(400, 300, false)
	hints := hint.Map{"a": a, "s": b}
	if err := s.Show(hints, testStyle()); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if s.decoder.State() != keyboard.KeymapLoaded {
		t.Fatalf("decoder state = %v after Show", s.decoder.State())
	}
	if len(compiler.keymaps) != 1 || compiler.keymaps[0] != testKeymap {
		t.Errorf("compiled keymaps = %q", compiler.keymaps)
	}

	srv.Event(s.keyboard.ID(), 3, nil, uint32(20), uint32(1000), uint32(evdevA), uint32(1))
	got, err := selectLoop(s, hints)
	if err != nil {
		t.Fatalf("selectLoop: %v", err)
	}
	if got != a {
		t.Errorf("selected %v, want window A", got)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	srv.Close()
	reqs := srv.Requests()
	seq := describe(s, srv, reqs)

	commit := slices.Index(seq, "wl_surface.commit")
	ack := slices.Index(seq, "zwlr_layer_surface_v1.ack_configure")
	pool := slices.Index(seq, "wl_shm.create_pool")
	if commit < 0 || ack < 0 || pool < 0 {
		t.Fatalf("missing requests in %q", seq)
	}
	for _, setter := range []string{"set_anchor", "set_keyboard_interactivity", "set_exclusive_zone"} {
		if i := slices.Index(seq, "zwlr_layer_surface_v1."+setter); i < 0 || i > commit {
			t.Errorf("%s at %d, want before the initial commit at %d", setter, i, commit)
		}
	}
	if !(commit < ack && ack < pool) {
		t.Errorf("initial commit %d, ack %d, create_pool %d: want that order", commit, ack, pool)
	}

	publish := []string{
		"wl_shm.create_pool",
		"wl_shm_pool.create_buffer",
		"wl_shm_pool.destroy",
		"wl_surface.attach",
		"wl_surface.damage_buffer",
		"wl_surface.commit",
		"wl_display.sync",
	}
	if pool+len(publish) > len(seq) || !slices.Equal(seq[pool:pool+len(publish)], publish) {
		t.Errorf("publish sequence = %q, want %q", seq[pool:min(pool+len(publish), len(seq))], publish)
	}

	teardown := []string{
		"wl_buffer.destroy",
		"wl_keyboard.release",
		"zwlr_layer_surface_v1.destroy",
		"wl_surface.destroy",
		"wl_seat.release",
		"zwlr_layer_shell_v1.destroy",
	}
	if len(seq) < len(teardown) || !slices.Equal(seq[len(seq)-len(teardown):], teardown) {
		t.Errorf("teardown = %q, want %q", seq[max(0, len(seq)-len(teardown)):], teardown)
	}
	if n := countOf(seq, "wl_shm_pool.destroy"); n != 1 {
		t.Errorf("pool destroyed %d times, want once", n)
	}

	createPool := findRequest(t, reqs, s.shm.ID(), 0)
	if len(createPool.FDs) != 1 {
		t.Errorf("create_pool carried %d descriptors, want 1", len(createPool.FDs))
	}
	poolArgs := createPool.Args()
	poolID, poolSize := poolArgs.Uint(), poolArgs.Int()
	if poolSize != frameWidth*frameHeight*4 {
		t.Errorf("pool size = %d", poolSize)
	}
	bufArgs := findRequest(t, reqs, poolID, 0).Args()
	bufArgs.Uint()
	offset, width, height, stride, format := bufArgs.Int(), bufArgs.Int(), bufArgs.Int(), bufArgs.Int(), bufArgs.Uint()
	if offset != 0 || width != frameWidth || height != frameHeight || stride != frameWidth*4 || format != 0 {
		t.Errorf("create_buffer = %d %dx%d stride %d format %d", offset, width, height, stride, format)
	}

	layerArgs := findRequest(t, reqs, s.layerShell.ID(), 0).Args()
	layerArgs.Uint()
	layerArgs.Uint()
	output, layer, namespace := layerArgs.Uint(), layerArgs.Uint(), layerArgs.String()
	if output != 0 || layer != 3 || namespace != Namespace {
		t.Errorf("get_layer_surface output %d layer %d namespace %q", output, layer, namespace)
	}
	if anchor := findRequest(t, reqs, s.layerSurface.ID(), 1).Args().Uint(); anchor != 15 {
		t.Errorf("anchor = %d, want all edges", anchor)
	}
	if zone := findRequest(t, reqs, s.layerSurface.ID(), 2).Args().Int(); zone != -1 {
		t.Errorf("exclusive zone = %d, want -1", zone)
	}
	if mode := findRequest(t, reqs, s.layerSurface.ID(), 4).Args().Uint(); mode != 1 {
		t.Errorf("keyboard interactivity = %d, want exclusive", mode)
	}
	if serial := findRequest(t, reqs, s.layerSurface.ID(), 6).Args().Uint(); serial != 7 {
		t.Errorf("acked serial %d, want 7", serial)
	}
}

func countOf(seq []string, name string) int {
	n := 0
	for _, s := range seq {
		if s == name {
			n++
		}
	}
	return n
}

func TestSessionEscapeCancels(t *testing.T) {
	s, srv, _, err := openSession(t, sessionGlobals)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	hints := hint.Map{"a": win(0, 0, false)}
	if err := s.Show(hints, testStyle()); err != nil {
		t.Fatal(err)
	}

	srv.Event(s.keyboard.ID(), 3, nil, uint32(20), uint32(1000), uint32(evdevEsc), uint32(1))
	got, err := selectLoop(s, hints)
	if err != nil || got != nil {
		t.Errorf("got %v, %v; want cancellation", got, err)
	}
}

func TestSessionClosedByCompositorCancels(t *testing.T) {
	s, srv, _, err := openSession(t, sessionGlobals)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	hints := hint.Map{"a": win(0, 0, false)}
	if err := s.Show(hints, testStyle()); err != nil {
		t.Fatal(err)
	}

	srv.Event(s.layerSurface.ID(), 1, nil)
	got, err := selectLoop(s, hints)
	if err != nil || got != nil {
		t.Errorf("got %v, %v; want cancellation", got, err)
	}
}

func TestSessionMissingLayerShell(t *testing.T) {
	var globals []wltest.Global
	for _, g := range sessionGlobals {
		if g.Interface != "zwlr_layer_shell_v1" {
			globals = append(globals, g)
		}
	}
	s, srv, _, err := openSession(t, globals)

	var pe *PhaseError
	if !errors.As(err, &pe) || pe.Phase != PhaseBind {
		t.Fatalf("setup err = %v, want a bind-phase PhaseError", err)
	}
	if !errors.Is(err, wayland.ErrMissingGlobal) {
		t.Errorf("err = %v, want ErrMissingGlobal", err)
	}

	s.Close()
	srv.Close()
	for _, r := range srv.Requests() {
		if r.ID == srv.Registry() {
			t.Errorf("bound a global despite the missing layer shell: %+v", r)
		}
	}
}

func TestSessionCloseDestroysUnpublishedPool(t *testing.T) {
	s, srv, _, err := openSession(t, sessionGlobals)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	region, err := shm.Create("pool", 4096)
	if err != nil {
		t.Fatal(err)
	}
	defer region.Close()

	// A pool whose buffer was never created still has to go.
	pool, err := s.createPool(region)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	srv.Close()

	n := 0
	for _, r := range srv.Requests() {
		if r.ID == pool.ID() && r.Opcode == 1 {
			n++
		}
	}
	if n != 1 {
		t.Errorf("pool destroyed %d times, want once", n)
	}
}
