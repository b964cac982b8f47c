package shm

import (
	"bytes"
	"testing"

	"golang.org/x/sys/unix"
)

func TestRegionIsExactlySizedAndShared(t *testing.T) {
	r, err := Create("focushint-test", 4096)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer r.Close()

	if r.Size() != 4096 || len(r.Bytes()) != 4096 {
		t.Fatalf("size = %d", r.Size())
	}

	var st unix.Stat_t
	if err := unix.Fstat(r.Fd(), &st); err != nil {
		t.Fatal(err)
	}
	if st.Size != 4096 {
		t.Fatalf("backing file size = %d", st.Size)
	}

	copy(r.Bytes(), "hello")
	view, err := MapReadOnly(r.Fd(), 4096)
	if err != nil {
		t.Fatalf("MapReadOnly: %v", err)
	}
	defer view.Close()
	if !bytes.HasPrefix(view.Bytes(), []byte("hello")) {
		t.Fatal("write through region not visible through fd")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	r, err := Create("focushint-test", 64)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if r.Bytes() != nil {
		t.Fatal("Bytes should be nil after Close")
	}
}

func TestMappingCString(t *testing.T) {
	r, err := Create("focushint-test", 32)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	copy(r.Bytes(), "xkb_keymap {}\x00garbage")

	m, err := MapReadOnly(r.Fd(), 32)
	if err != nil {
		t.Fatal(err)
	}
	text := m.CString()
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if text != "xkb_keymap {}" {
		t.Fatalf("CString = %q", text)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestInvalidSizes(t *testing.T) {
	if _, err := Create("x", 0); err == nil {
		t.Fatal("expected error for zero-sized region")
	}
	if _, err := MapReadOnly(0, 0); err == nil {
		t.Fatal("expected error for zero-sized mapping")
	}
}
