// Package wltest runs an in-process fake compositor for Wayland client
// tests, in the manner of net/http/httptest.
//
// A Server listens on a socket under t.TempDir, accepts one client, records
// every request it sends and hands each one to a Handler that may answer
// with events.
package wltest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/sys/unix"
)

const (
	headerSize = 8
	maxFDs     = 28
)

var order = binary.NativeEndian

// Request is one request read from the client.
type Request struct {
	ID     uint32
	Opcode uint16
	Body   []byte
	FDs    []int
}

// Args decodes the request arguments in order.
func (r Request) Args() *Args {
	return &Args{data: r.Body}
}

// Args reads wire arguments. A short body yields zero values and a sticky
// error.
type Args struct {
	data []byte
	err  error
}

// Uint reads a uint, object or new_id argument.
func (a *Args) Uint() uint32 {
	if a.err != nil || len(a.data) < 4 {
		a.err = errors.New("short request body")
		return 0
	}
	v := order.Uint32(a.data)
	a.data = a.data[4:]
	return v
}

// Int reads an int argument.
func (a *Args) Int() int32 {
	return int32(a.Uint())
}

// String reads a string argument up to its terminating NUL.
func (a *Args) String() string {
	n := int(a.Uint())
	padded := (n + 3) &^ 3
	if a.err != nil || len(a.data) < padded {
		a.err = errors.New("short request body")
		return ""
	}
	s := a.data[:n]
	a.data = a.data[padded:]
	for i, b := range s {
		if b == 0 {
			return string(s[:i])
		}
	}
	return string(s)
}

// Err returns the first decoding error.
func (a *Args) Err() error {
	return a.err
}

// Handler reacts to one request. It runs on the server goroutine.
type Handler func(s *Server, r Request)

// Server is a fake compositor.
type Server struct {
	t       testing.TB
	path    string
	ln      *net.UnixListener
	handler Handler

	accepted chan struct{}
	done     chan struct{}
	writeMu  sync.Mutex
	conn     *net.UnixConn

	mu       sync.Mutex
	closed   bool
	requests []Request
	registry uint32
	bound    map[string]uint32
}

// NewServer starts a server. It is closed by t.Cleanup.
func NewServer(t testing.TB, handler Handler) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wayland-0")
	ln, err := net.ListenUnix("unix", &net.UnixAddr{Name: path, Net: "unix"})
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &Server{
		t:        t,
		path:     path,
		ln:       ln,
		handler:  handler,
		accepted: make(chan struct{}),
		done:     make(chan struct{}),
		bound:    make(map[string]uint32),
	}
	go s.serve()
	t.Cleanup(s.Close)
	return s
}

// Path returns the socket path to dial.
func (s *Server) Path() string {
	return s.path
}

func (s *Server) serve() {
	defer close(s.done)
	conn, err := s.ln.AcceptUnix()
	if err != nil {
		return
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.conn = conn
	s.mu.Unlock()
	close(s.accepted)

	for {
		r, err := readRequest(conn)
		if err != nil {
			return
		}
		s.record(r)
		if s.handler != nil {
			s.handler(s, r)
		}
	}
}

func (s *Server) record(r Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r)
	switch {
	case r.ID == 1 && r.Opcode == 1:
		s.registry = r.Args().Uint()
	case r.ID == s.registry && r.Opcode == 0:
		a := r.Args()
		a.Uint()
		iface := a.String()
		a.Uint()
		s.bound[iface] = a.Uint()
	}
}

func readRequest(conn *net.UnixConn) (Request, error) {
	header := make([]byte, headerSize)
	oob := make([]byte, unix.CmsgSpace(maxFDs*4))
	n, oobn, _, _, err := conn.ReadMsgUnix(header, oob)
	if err != nil {
		return Request{}, err
	}
	if n == 0 {
		return Request{}, io.EOF
	}
	if n < headerSize {
		if _, err := io.ReadFull(conn, header[n:]); err != nil {
			return Request{}, err
		}
	}

	var r Request
	if oobn > 0 {
		scms, err := unix.ParseSocketControlMessage(oob[:oobn])
		if err != nil {
			return Request{}, err
		}
		for i := range scms {
			fds, err := unix.ParseUnixRights(&scms[i])
			if err != nil {
				continue
			}
			r.FDs = append(r.FDs, fds...)
		}
	}

	r.ID = order.Uint32(header)
	word := order.Uint32(header[4:])
	r.Opcode = uint16(word & 0xffff)
	size := int(word >> 16)
	if size < headerSize {
		return Request{}, fmt.Errorf("bad request size %d", size)
	}
	r.Body = make([]byte, size-headerSize)
	if len(r.Body) > 0 {
		if _, err := io.ReadFull(conn, r.Body); err != nil {
			return Request{}, err
		}
	}
	return r, nil
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Registry returns the id the client gave its wl_registry, 0 before
// get_registry.
func (s *Server) Registry() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry
}

// Bound returns the id the client bound iface to, 0 if it did not.
func (s *Server) Bound(iface string) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound[iface]
}

// Event sends one event. args are uint32, int32, string or []byte; fds
// travel with the message and stay owned by the caller.
func (s *Server) Event(id uint32, opcode uint16, fds []int, args ...any) {
	msg := make([]byte, headerSize, 64)
	for _, a := range args {
		switch v := a.(type) {
		case uint32:
			msg = order.AppendUint32(msg, v)
		case int32:
			msg = order.AppendUint32(msg, uint32(v))
		case string:
			msg = appendBytes(msg, append([]byte(v), 0))
		case []byte:
			msg = appendBytes(msg, v)
		default:
			s.t.Errorf("wltest: unsupported event argument %T", a)
			return
		}
	}
	order.PutUint32(msg, id)
	order.PutUint32(msg[4:], uint32(len(msg))<<16|uint32(opcode))

	var oob []byte
	if len(fds) > 0 {
		oob = unix.UnixRights(fds...)
	}
	<-s.accepted
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, _, err := s.conn.WriteMsgUnix(msg, oob, nil); err != nil {
		s.t.Errorf("wltest: write event: %v", err)
	}
}

func appendBytes(msg, b []byte) []byte {
	msg = order.AppendUint32(msg, uint32(len(b)))
	msg = append(msg, b...)
	for len(msg)%4 != 0 {
		msg = append(msg, 0)
	}
	return msg
}

// Close stops the server, disconnects the client and closes every
// descriptor received.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	conn := s.conn
	s.mu.Unlock()

	s.ln.Close()
	if conn != nil {
		conn.Close()
	}
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		for _, fd := range s.requests[i].FDs {
			unix.Close(fd)
		}
		s.requests[i].FDs = nil
	}
}
