package wayland

import (
	"errors"
	"fmt"

	wlr_layer_shell "github.com/bryanchriswhite/FocusHint/internal/wayland/wlr-layer-shell"
	"github.com/rajveermalviya/go-wayland/wayland/client"
)

// ErrMissingGlobal is returned when the compositor does not advertise a
// required global, or advertises it below the required version.
var ErrMissingGlobal = errors.New("required global not advertised")

// ProtocolError is a fatal wl_display.error sent by the compositor.
type ProtocolError struct {
	ObjectID  uint32
	Interface string
	Code      uint32
	Message   string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error on %s@%d (code %d): %s", e.Interface, e.ObjectID, e.Code, e.Message)
}

// interfaceName names the protocol interface of the proxies this client
// creates.
func interfaceName(p client.Proxy) string {
	switch p.(type) {
	case *client.Display:
		return "wl_display"
	case *client.Registry:
		return "wl_registry"
	case *client.Callback:
		return "wl_callback"
	case *client.Compositor:
		return "wl_compositor"
	case *client.Surface:
		return "wl_surface"
	case *client.Shm:
		return "wl_shm"
	case *client.ShmPool:
		return "wl_shm_pool"
	case *client.Buffer:
		return "wl_buffer"
	case *client.Seat:
		return "wl_seat"
	case *client.Keyboard:
		return "wl_keyboard"
	case *wlr_layer_shell.LayerShell:
		return "zwlr_layer_shell_v1"
	case *wlr_layer_shell.LayerSurface:
		return "zwlr_layer_surface_v1"
	default:
		return fmt.Sprintf("%T", p)
	}
}
