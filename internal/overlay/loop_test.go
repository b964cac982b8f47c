package overlay

import (
	"errors"
	"testing"

	"github.com/bryanchriswhite/FocusHint/internal/config"
	"github.com/bryanchriswhite/FocusHint/internal/hint"
)

// scriptedSource replays key batches. In a batch, '\x1b' is Escape and '\b'
// is BackSpace.
type scriptedSource struct {
	batches    []string
	input      []byte
	cancelled  bool
	dispatched int
}

var errScriptDone = errors.New("script exhausted")

func (s *scriptedSource) Dispatch() error {
	if s.dispatched == len(s.batches) {
		return errScriptDone
	}
	for _, c := range []byte(s.batches[s.dispatched]) {
		switch c {
		case '\x1b':
			s.cancelled = true
		case '\b':
			if len(s.input) > 0 {
				s.input = s.input[:len(s.input)-1]
			}
		default:
			s.input = append(s.input, c)
		}
	}
	s.dispatched++
	return nil
}

func (s *scriptedSource) Input() string   { return string(s.input) }
func (s *scriptedSource) Cancelled() bool { return s.cancelled }

func loopHints() (hint.Map, *config.DesktopWindow, *config.DesktopWindow) {
	a := &config.DesktopWindow{Title: "A"}
	b := &config.DesktopWindow{Title: "B"}
	return hint.Map{"a": a, "s": b}, a, b
}

func TestSelectLoop(t *testing.T) {
	hints, a, b := loopHints()

	tests := []struct {
		name       string
		batches    []string
		want       *config.DesktopWindow
		dispatched int
	}{
		{"first label", []string{"a"}, a, 1},
		{"second label", []string{"", "s"}, b, 2},
		{"escape", []string{"\x1b"}, nil, 1},
		{"unmatched then escape", []string{"x", "\x1b"}, nil, 2},
		{"backspace recovers", []string{"x", "\b", "s"}, b, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &scriptedSource{batches: tt.batches}
			got, err := selectLoop(src, hints)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if src.dispatched != tt.dispatched {
				t.Errorf("dispatched %d batches, want %d", src.dispatched, tt.dispatched)
			}
		})
	}
}

func TestSelectLoopChecksOnlyAfterBatch(t *testing.T) {
	hints, _, b := loopHints()
	// "a" is typed and replaced within one batch, so it never matches.
	src := &scriptedSource{batches: []string{"a\bs"}}
	got, err := selectLoop(src, hints)
	if err != nil {
		t.Fatal(err)
	}
	if got != b {
		t.Errorf("got %v, want window B", got)
	}
}

func TestSelectLoopKeepsUnmatchedInput(t *testing.T) {
	hints, _, _ := loopHints()
	src := &scriptedSource{batches: []string{"x", "y", "z"}}
	_, err := selectLoop(src, hints)
	if !errors.Is(err, errScriptDone) {
		t.Fatalf("err = %v, want loop to keep dispatching until the source fails", err)
	}
	if src.Input() != "xyz" {
		t.Errorf("input = %q, want xyz", src.Input())
	}
}

func TestSelectLoopEscapeWinsInSameBatch(t *testing.T) {
	hints, _, _ := loopHints()
	src := &scriptedSource{batches: []string{"a\x1b"}}
	got, err := selectLoop(src, hints)
	if err != nil || got != nil {
		t.Errorf("got %v, %v; want cancellation", got, err)
	}
}

func TestSelectLoopPropagatesDispatchError(t *testing.T) {
	hints, _, _ := loopHints()
	src := &scriptedSource{}
	if _, err := selectLoop(src, hints); !errors.Is(err, errScriptDone) {
		t.Errorf("err = %v", err)
	}
}

func TestPhaseErrorUnwraps(t *testing.T) {
	err := phaseErr(PhaseBuffer, ErrRender)
	var pe *PhaseError
	if !errors.As(err, &pe) || pe.Phase != PhaseBuffer {
		t.Fatalf("err = %v", err)
	}
	if !errors.Is(err, ErrRender) {
		t.Error("PhaseError does not unwrap")
	}
	if phaseErr(PhaseDispatch, nil) != nil {
		t.Error("phaseErr(nil) != nil")
	}
}

func TestSessionSizeFallback(t *testing.T) {
	tests := []struct {
		name          string
		width, height uint32
		opts          Options
		wantW, wantH  int
	}{
		{"configured", 2560, 1440, Options{FallbackWidth: 800, FallbackHeight: 600}, 2560, 1440},
		{"fallback", 0, 0, Options{FallbackWidth: 800, FallbackHeight: 600}, 800, 600},
		{"mixed", 3000, 0, Options{FallbackWidth: 800, FallbackHeight: 600}, 3000, 600},
		{"default", 0, 0, Options{}, defaultWidth, defaultHeight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Session{width: tt.width, height: tt.height, opts: tt.opts}
			if w, h := s.Size(); w != tt.wantW || h != tt.wantH {
				t.Errorf("Size() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}
