// Package shm provides scoped shared-memory mappings: anonymous regions handed
// to the compositor for pixel buffers, and read-only views of file
// descriptors received from it (keymaps).
//
// Every mapping must be released with Close; Close is idempotent so it can be
// both deferred and called early.
package shm

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Region is a writable, shareable memory region backed by an anonymous file.
type Region struct {
	fd   int
	data []byte
}

// Create allocates an anonymous region of exactly size bytes. It prefers
// memfd_create and falls back to an unlinked file in $XDG_RUNTIME_DIR.
func Create(name string, size int) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid shm size %d", size)
	}

	fd, err := unix.MemfdCreate(name, unix.MFD_CLOEXEC)
	if err != nil {
		if fd, err = tempFile(name); err != nil {
			return nil, err
		}
	}

	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to size shm region: %w", err)
	}

	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("failed to map shm region: %w", err)
	}

	return &Region{fd: fd, data: data}, nil
}

func tempFile(name string) (int, error) {
	dir := os.Getenv("XDG_RUNTIME_DIR")
	if dir == "" {
		dir = os.TempDir()
	}
	f, err := os.CreateTemp(dir, name+"-*")
	if err != nil {
		return -1, fmt.Errorf("failed to create shm file: %w", err)
	}
	defer f.Close()
	os.Remove(f.Name())

	fd, err := unix.Dup(int(f.Fd()))
	if err != nil {
		return -1, fmt.Errorf("failed to dup shm file: %w", err)
	}
	unix.CloseOnExec(fd)
	return fd, nil
}

// Fd returns the file descriptor to share with the compositor.
func (r *Region) Fd() int {
	return r.fd
}

// Bytes returns the mapped memory. It is invalid after Close.
func (r *Region) Bytes() []byte {
	return r.data
}

// Size returns the region size in bytes.
func (r *Region) Size() int {
	return len(r.data)
}

// Close unmaps the region and closes its descriptor.
func (r *Region) Close() error {
	var errs []error
	if r.data != nil {
		errs = append(errs, unix.Munmap(r.data))
		r.data = nil
	}
	if r.fd >= 0 {
		errs = append(errs, unix.Close(r.fd))
		r.fd = -1
	}
	return errors.Join(errs...)
}

// Mapping is a read-only view of a received file descriptor.
type Mapping struct {
	data []byte
}

// MapReadOnly maps size bytes of fd privately and read-only. The caller keeps
// ownership of fd.
func MapReadOnly(fd int, size int) (*Mapping, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid mapping size %d", size)
	}
	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap failed: %w", err)
	}
	return &Mapping{data: data}, nil
}

// Bytes returns the mapped memory. It is invalid after Close.
func (m *Mapping) Bytes() []byte {
	return m.data
}

// CString returns the contents up to the first NUL byte as a Go string. The
// string is copied, so it stays valid after Close.
func (m *Mapping) CString() string {
	for i, b := range m.data {
		if b == 0 {
			return string(m.data[:i])
		}
	}
	return string(m.data)
}

// Close unmaps the view.
func (m *Mapping) Close() error {
	if m.data == nil {
		return nil
	}
	err := unix.Munmap(m.data)
	m.data = nil
	return err
}
