//go:build linux && cgo

package keyboard

/*
#cgo pkg-config: xkbcommon

#include <stdlib.h>
#include <xkbcommon/xkbcommon.h>
*/
import "C"

import (
	"errors"
	"unsafe"
)

// XKB compiles keymaps with libxkbcommon.
type XKB struct{}

// NewCompiler returns the libxkbcommon compiler.
func NewCompiler() Compiler {
	return XKB{}
}

func (XKB) Compile(text string) (Layout, error) {
	ctx := C.xkb_context_new(C.XKB_CONTEXT_NO_FLAGS)
	if ctx == nil {
		return nil, errors.New("xkb_context_new failed")
	}

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))

	keymap := C.xkb_keymap_new_from_string(ctx, ctext, C.XKB_KEYMAP_FORMAT_TEXT_V1, C.XKB_KEYMAP_COMPILE_NO_FLAGS)
	if keymap == nil {
		C.xkb_context_unref(ctx)
		return nil, errors.New("xkb_keymap_new_from_string failed")
	}

	state := C.xkb_state_new(keymap)
	if state == nil {
		C.xkb_keymap_unref(keymap)
		C.xkb_context_unref(ctx)
		return nil, errors.New("xkb_state_new failed")
	}
	return &xkbLayout{ctx: ctx, keymap: keymap, state: state}, nil
}

type xkbLayout struct {
	ctx    *C.struct_xkb_context
	keymap *C.struct_xkb_keymap
	state  *C.struct_xkb_state
}

func (l *xkbLayout) UpdateMask(depressed, latched, locked, group uint32) {
	C.xkb_state_update_mask(l.state,
		C.xkb_mod_mask_t(depressed), C.xkb_mod_mask_t(latched), C.xkb_mod_mask_t(locked),
		0, 0, C.xkb_layout_index_t(group))
}

func (l *xkbLayout) Sym(keycode uint32) Keysym {
	return Keysym(C.xkb_state_key_get_one_sym(l.state, C.xkb_keycode_t(keycode)))
}

func (l *xkbLayout) Name(sym Keysym) string {
	var buf [64]C.char
	n := C.xkb_keysym_get_name(C.xkb_keysym_t(sym), &buf[0], C.size_t(len(buf)))
	if n < 0 {
		return ""
	}
	return C.GoString(&buf[0])
}

func (l *xkbLayout) Close() {
	if l.state != nil {
		C.xkb_state_unref(l.state)
		C.xkb_keymap_unref(l.keymap)
		C.xkb_context_unref(l.ctx)
		l.state, l.keymap, l.ctx = nil, nil, nil
	}
}
