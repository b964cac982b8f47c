// Package overlay shows the hint overlay on a Wayland compositor and waits
// for the user to pick a window.
//
// A Session owns one wlr-layer-shell surface on the overlay layer with
// exclusive keyboard focus. It is single-threaded: every handler runs inside
// Dispatch on the calling goroutine.
package overlay

import (
	"errors"
	"fmt"

	"github.com/bryanchriswhite/FocusHint/internal/config"
	"github.com/bryanchriswhite/FocusHint/internal/hint"
	"github.com/bryanchriswhite/FocusHint/internal/keyboard"
	"github.com/bryanchriswhite/FocusHint/internal/logger"
	"github.com/bryanchriswhite/FocusHint/internal/shm"
	"github.com/bryanchriswhite/FocusHint/internal/wayland"
	wlr_layer_shell "github.com/bryanchriswhite/FocusHint/internal/wayland/wlr-layer-shell"
	"github.com/rajveermalviya/go-wayland/wayland/client"
	"github.com/rs/zerolog"
)

// Namespace is the layer-shell namespace compositors can match rules on.
const Namespace = "focushint"

const (
	defaultWidth  = 1920
	defaultHeight = 1080
)

const anchorAll = wlr_layer_shell.LayerSurfaceAnchorTop |
	wlr_layer_shell.LayerSurfaceAnchorBottom |
	wlr_layer_shell.LayerSurfaceAnchorLeft |
	wlr_layer_shell.LayerSurfaceAnchorRight

// Options configures a session.
type Options struct {
	// Compiler builds keymaps; nil uses keyboard.NewCompiler.
	Compiler keyboard.Compiler

	// FallbackWidth and FallbackHeight size the frame when the compositor
	// leaves the size up to the client (configure 0x0).
	FallbackWidth  int
	FallbackHeight int
}

// Session is one overlay invocation.
type Session struct {
	conn     *wayland.Conn
	registry *wayland.Registry

	compositor   *client.Compositor
	shm          *client.Shm
	layerShell   *wlr_layer_shell.LayerShell
	seat         *client.Seat
	surface      *client.Surface
	layerSurface *wlr_layer_shell.LayerSurface
	keyboard     *client.Keyboard

	// bound versions, for requests added in later versions
	shellVersion uint32
	seatVersion  uint32

	decoder *keyboard.Decoder
	opts    Options
	log     *zerolog.Logger

	configured bool
	serial     uint32
	width      uint32
	height     uint32
	closed     bool

	teardown []func() error
	done     bool
}

// Open connects to the compositor, maps the overlay surface and waits for
// its first configure. The returned session must be closed.
func Open(opts Options) (*Session, error) {
	conn, err := wayland.Connect()
	if err != nil {
		return nil, phaseErr(PhaseConnect, err)
	}
	s := newSession(conn, opts)
	if err := s.setup(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func newSession(conn *wayland.Conn, opts Options) *Session {
	if opts.Compiler == nil {
		opts.Compiler = keyboard.NewCompiler()
	}
	s := &Session{
		conn:    conn,
		decoder: keyboard.NewDecoder(opts.Compiler),
		opts:    opts,
		log:     logger.WithComponent("overlay"),
	}
	s.onClose(func() error {
		s.decoder.Close()
		return nil
	})
	return s
}

// onClose registers cleanup to run in reverse order on Close.
func (s *Session) onClose(fn func() error) {
	s.teardown = append(s.teardown, fn)
}

func (s *Session) setup() error {
	if err := s.bindGlobals(); err != nil {
		return err
	}
	if err := s.createSurface(); err != nil {
		return err
	}
	if err := s.waitConfigure(); err != nil {
		return err
	}

	kbd, err := s.seat.GetKeyboard()
	if err != nil {
		return phaseErr(PhaseConfigure, err)
	}
	s.keyboard = kbd
	if s.seatVersion >= 3 {
		s.onClose(kbd.Release)
	}
	kbd.SetKeymapHandler(func(e client.KeyboardKeymapEvent) {
		if err := s.decoder.HandleKeymap(e.Format, e.Fd, e.Size); err != nil {
			s.log.Warn().Err(err).Msg("Ignoring keymap")
		}
	})
	kbd.SetModifiersHandler(func(e client.KeyboardModifiersEvent) {
		s.decoder.HandleModifiers(e.ModsDepressed, e.ModsLatched, e.ModsLocked, e.Group)
	})
	kbd.SetKeyHandler(func(e client.KeyboardKeyEvent) {
		s.decoder.HandleKey(e.Key, e.State)
	})
	return nil
}

func (s *Session) bindGlobals() error {
	registry, err := s.conn.Registry()
	if err != nil {
		return phaseErr(PhaseBind, err)
	}
	s.registry = registry

	// Look everything up before binding so a missing global allocates
	// nothing.
	for _, iface := range []string{"wl_compositor", "wl_shm", "zwlr_layer_shell_v1", "wl_seat"} {
		if _, ok := registry.Lookup(iface); !ok {
			return phaseErr(PhaseBind, fmt.Errorf("%w: %s", wayland.ErrMissingGlobal, iface))
		}
	}

	var compositorVersion uint32
	if s.compositor, compositorVersion, err = wayland.Bind(registry, "wl_compositor", 4, 6, client.NewCompositor); err != nil {
		return phaseErr(PhaseBind, err)
	}
	if s.shm, _, err = wayland.Bind(registry, "wl_shm", 1, 1, client.NewShm); err != nil {
		return phaseErr(PhaseBind, err)
	}
	if s.layerShell, s.shellVersion, err = wayland.Bind(registry, "zwlr_layer_shell_v1", 1, 4, wlr_layer_shell.NewLayerShell); err != nil {
		return phaseErr(PhaseBind, err)
	}
	if s.seat, s.seatVersion, err = wayland.Bind(registry, "wl_seat", 1, 7, client.NewSeat); err != nil {
		return phaseErr(PhaseBind, err)
	}
	if s.shellVersion >= 3 {
		s.onClose(s.layerShell.Destroy)
	}
	if s.seatVersion >= 5 {
		s.onClose(s.seat.Release)
	}

	s.log.Debug().
		Uint32("compositor", compositorVersion).
		Uint32("layer_shell", s.shellVersion).
		Uint32("seat", s.seatVersion).
		Msg("Bound globals")
	return nil
}

func (s *Session) createSurface() error {
	surface, err := s.compositor.CreateSurface()
	if err != nil {
		return phaseErr(PhaseSurface, err)
	}
	s.surface = surface
	s.onClose(surface.Destroy)

	ls, err := s.layerShell.GetLayerSurface(surface, nil, uint32(wlr_layer_shell.LayerShellLayerOverlay), Namespace)
	if err != nil {
		return phaseErr(PhaseSurface, err)
	}
	s.layerSurface = ls
	s.onClose(ls.Destroy)

	ls.SetConfigureHandler(func(e wlr_layer_shell.LayerSurfaceConfigureEvent) {
		if err := ls.AckConfigure(e.Serial); err != nil {
			s.log.Error().Err(err).Uint32("serial", e.Serial).Msg("Failed to ack configure")
			return
		}
		s.serial, s.width, s.height = e.Serial, e.Width, e.Height
		s.configured = true
		s.log.Debug().Uint32("serial", e.Serial).Uint32("width", e.Width).Uint32("height", e.Height).Msg("Configured")
	})
	ls.SetClosedHandler(func(wlr_layer_shell.LayerSurfaceClosedEvent) {
		s.log.Info().Msg("Compositor closed the overlay")
		s.closed = true
	})

	requests := []func() error{
		func() error { return ls.SetAnchor(uint32(anchorAll)) },
		func() error {
			return ls.SetKeyboardInteractivity(uint32(wlr_layer_shell.LayerSurfaceKeyboardInteractivityExclusive))
		},
		func() error { return ls.SetExclusiveZone(-1) },
		surface.Commit,
	}
	for _, req := range requests {
		if err := req(); err != nil {
			return phaseErr(PhaseSurface, err)
		}
	}
	return nil
}

func (s *Session) waitConfigure() error {
	for !s.configured {
		if s.closed {
			return phaseErr(PhaseConfigure, errors.New("surface closed before configure"))
		}
		if err := s.conn.Dispatch(); err != nil {
			return phaseErr(PhaseConfigure, err)
		}
	}
	return nil
}

// Size returns the frame size: the configured size, or the fallback on an
// axis the compositor left to the client.
func (s *Session) Size() (width, height int) {
	width, height = int(s.width), int(s.height)
	if width == 0 {
		width = s.opts.FallbackWidth
	}
	if height == 0 {
		height = s.opts.FallbackHeight
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}

// Show renders hints and publishes the frame. It is called once; the frame
// is never redrawn.
func (s *Session) Show(hints hint.Map, style config.StyleConfig) error {
	width, height := s.Size()
	pixels, err := Render(width, height, hints, style)
	if err != nil {
		return phaseErr(PhaseBuffer, err)
	}
	if err := s.publish(pixels, width, height); err != nil {
		return phaseErr(PhaseBuffer, err)
	}
	if err := s.conn.Roundtrip(); err != nil {
		return phaseErr(PhaseDispatch, err)
	}
	s.log.Info().Int("hints", len(hints)).Int("width", width).Int("height", height).Msg("Overlay displayed")
	return nil
}

func (s *Session) publish(pixels []byte, width, height int) error {
	region, err := shm.Create(Namespace, len(pixels))
	if err != nil {
		return err
	}
	s.onClose(region.Close)
	copy(region.Bytes(), pixels)

	pool, err := s.createPool(region)
	if err != nil {
		return err
	}
	buffer, err := pool.CreateBuffer(0, int32(width), int32(height), int32(width*4), uint32(client.ShmFormatArgb8888))
	if err != nil {
		return err
	}
	s.onClose(buffer.Destroy)
	if err := pool.Destroy(); err != nil {
		return err
	}

	if err := s.surface.Attach(buffer, 0, 0); err != nil {
		return err
	}
	if err := s.surface.DamageBuffer(0, 0, int32(width), int32(height)); err != nil {
		return err
	}
	return s.surface.Commit()
}

// createPool shares region with the compositor. Close destroys the pool
// unless publish already has.
func (s *Session) createPool(region *shm.Region) (*client.ShmPool, error) {
	pool, err := s.shm.CreatePool(region.Fd(), int32(region.Size()))
	if err != nil {
		return nil, err
	}
	s.onClose(func() error {
		if !wayland.Alive(pool) {
			return nil
		}
		return pool.Destroy()
	})
	return pool, nil
}

// Dispatch handles the next compositor event.
func (s *Session) Dispatch() error {
	return phaseErr(PhaseDispatch, s.conn.Dispatch())
}

// Input returns the characters typed so far.
func (s *Session) Input() string {
	return s.decoder.Input()
}

// Cancelled reports whether the user pressed Escape or the compositor
// closed the surface.
func (s *Session) Cancelled() bool {
	return s.decoder.Cancelled() || s.closed
}

// Close destroys every protocol object and mapping in reverse creation order
// and disconnects. It is safe to call more than once.
func (s *Session) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	for i := len(s.teardown) - 1; i >= 0; i-- {
		if err := s.teardown[i](); err != nil {
			s.log.Debug().Err(err).Msg("Teardown step failed")
		}
	}
	s.teardown = nil
	return s.conn.Close()
}

// Select shows hints and blocks until the user types a label, returning its
// window, or cancels, returning nil.
func Select(hints hint.Map, style config.StyleConfig, opts Options) (*config.DesktopWindow, error) {
	s, err := Open(opts)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	if err := s.Show(hints, style); err != nil {
		return nil, err
	}
	return selectLoop(s, hints)
}
