// Package wayland wraps a go-wayland client connection with what the overlay
// needs on top of the generated protocol code: socket resolution, registry
// globals with version negotiation, fatal protocol errors, and a dispatch
// step that survives events addressed to objects already destroyed.
//
// The connection is single-threaded. Event handlers run synchronously inside
// Dispatch and Roundtrip; nothing else reads the socket.
package wayland

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bryanchriswhite/FocusHint/internal/logger"
	"github.com/rajveermalviya/go-wayland/wayland/client"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// Conn is a connection to a Wayland compositor.
type Conn struct {
	display *client.Display
	ctx     *client.Context
	log     *zerolog.Logger

	// err is the first wl_display.error received; every later call fails
	// with it.
	err error
}

// SocketPath resolves $WAYLAND_DISPLAY against $XDG_RUNTIME_DIR. An absolute
// $WAYLAND_DISPLAY is used as is.
func SocketPath() (string, error) {
	name := os.Getenv("WAYLAND_DISPLAY")
	if name == "" {
		name = "wayland-0"
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		return "", errors.New("XDG_RUNTIME_DIR is not set")
	}
	return filepath.Join(dir, name), nil
}

// Connect opens the compositor socket of the current session.
func Connect() (*Conn, error) {
	path, err := SocketPath()
	if err != nil {
		return nil, err
	}
	return Dial(path)
}

// Dial connects to the compositor listening on path.
func Dial(path string) (*Conn, error) {
	display, err := client.Connect(path)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", path, err)
	}
	c := &Conn{
		display: display,
		ctx:     display.Context(),
		log:     logger.WithComponent("wayland"),
	}
	display.SetErrorHandler(c.handleError)
	c.log.Debug().Str("socket", path).Msg("Connected to compositor")
	return c, nil
}

// Display returns the wl_display singleton.
func (c *Conn) Display() *client.Display {
	return c.display
}

// Context returns the object table new proxies are registered on.
func (c *Conn) Context() *client.Context {
	return c.ctx
}

func (c *Conn) handleError(e client.DisplayErrorEvent) {
	if c.err != nil {
		return
	}
	perr := &ProtocolError{Code: e.Code, Message: e.Message}
	if e.ObjectId != nil {
		perr.ObjectID = e.ObjectId.ID()
		perr.Interface = interfaceName(e.ObjectId)
	}
	c.err = perr
}

// Dispatch reads and handles one event, blocking until it arrives. It is the
// only call that waits on the compositor.
//
// An event for an object no longer in the table is dropped and any
// descriptor it carried is closed; the compositor keeps sending to an object
// until it has processed the destructor.
func (c *Conn) Dispatch() error {
	if c.err != nil {
		return c.err
	}
	sender, opcode, fd, data, err := c.ctx.ReadMsg()
	if err != nil {
		closeFD(fd)
		return fmt.Errorf("failed to read event: %w", err)
	}

	obj, ok := c.ctx.GetProxy(sender).(client.Dispatcher)
	if !ok {
		closeFD(fd)
		c.log.Trace().Uint32("object", sender).Uint32("opcode", opcode).Bool("fd", fd >= 0).Msg("Event for unknown object dropped")
		return nil
	}
	obj.Dispatch(opcode, fd, data)
	return c.err
}

// Roundtrip blocks until the compositor has processed every request sent so
// far, dispatching events as they arrive.
func (c *Conn) Roundtrip() error {
	if c.err != nil {
		return c.err
	}
	cb, err := c.display.Sync()
	if err != nil {
		return fmt.Errorf("failed to send sync: %w", err)
	}
	defer cb.Destroy()

	done := false
	cb.SetDoneHandler(func(client.CallbackDoneEvent) { done = true })
	for !done {
		if err := c.Dispatch(); err != nil {
			return err
		}
	}
	return nil
}

// Close disconnects.
func (c *Conn) Close() error {
	return c.ctx.Close()
}

// Alive reports whether p is still in its connection's object table, i.e.
// its destructor has not been sent.
func Alive(p client.Proxy) bool {
	ctx := p.Context()
	return ctx != nil && ctx.GetProxy(p.ID()) == p
}

func closeFD(fd int) {
	if fd >= 0 {
		unix.Close(fd)
	}
}
