//go:build !(linux && cgo)

package keyboard

import "errors"

type noXKB struct{}

// NewCompiler returns a compiler that rejects every keymap; this build has no
// libxkbcommon.
func NewCompiler() Compiler {
	return noXKB{}
}

func (noXKB) Compile(string) (Layout, error) {
	return nil, errors.New("built without libxkbcommon (cgo disabled)")
}
