package overlay

import (
	"github.com/bryanchriswhite/FocusHint/internal/config"
	"github.com/bryanchriswhite/FocusHint/internal/hint"
	"github.com/bryanchriswhite/FocusHint/internal/logger"
)

// eventSource is the part of a Session the selection loop drives.
type eventSource interface {
	Dispatch() error
	Input() string
	Cancelled() bool
}

// selectLoop dispatches events until the typed input equals a label or the
// user cancels. The input is checked only after each Dispatch call returns,
// never while one is handling events. There is no timeout, and input
// matching no label is kept until edited or cancelled.
func selectLoop(src eventSource, hints hint.Map) (*config.DesktopWindow, error) {
	log := logger.WithComponent("overlay")
	for {
		if err := src.Dispatch(); err != nil {
			return nil, err
		}
		if src.Cancelled() {
			log.Info().Msg("Selection cancelled")
			return nil, nil
		}
		if w, ok := hints[src.Input()]; ok {
			log.Info().Str("hint", src.Input()).Str("title", w.Title).Msg("Hint selected")
			return w, nil
		}
	}
}
