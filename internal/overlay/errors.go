package overlay

import (
	"errors"
	"fmt"
)

// ErrRender marks a frame that could not be painted.
var ErrRender = errors.New("render failed")

// Phase names the step of an overlay session that failed.
type Phase string

const (
	PhaseConnect   Phase = "connect"
	PhaseBind      Phase = "bind"
	PhaseSurface   Phase = "surface"
	PhaseConfigure Phase = "configure"
	PhaseBuffer    Phase = "buffer"
	PhaseDispatch  Phase = "dispatch"
)

// PhaseError is a fatal session error tagged with where it happened. The
// whole session is torn down when one is returned.
type PhaseError struct {
	Phase Phase
	Err   error
}

func (e *PhaseError) Error() string {
	return fmt.Sprintf("overlay %s failed: %v", e.Phase, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

func phaseErr(phase Phase, err error) error {
	if err == nil {
		return nil
	}
	return &PhaseError{Phase: phase, Err: err}
}
