package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Geometry represents window geometry in global compositor coordinates
type Geometry struct {
	X      int `json:"x" mapstructure:"x"`
	Y      int `json:"y" mapstructure:"y"`
	Width  int `json:"width" mapstructure:"width"`
	Height int `json:"height" mapstructure:"height"`
}

// SameAs reports whether both position and size match exactly.
func (g Geometry) SameAs(o Geometry) bool {
	return g.X == o.X && g.Y == o.Y && g.Width == o.Width && g.Height == o.Height
}

// DesktopWindow is one visible window as reported by a window backend.
//
// ID is synthesized from the backend's handle and is only stable within one
// enumeration. Backends re-resolve windows by Geometry when focusing.
type DesktopWindow struct {
	ID            uint64   `json:"id" mapstructure:"id"`
	Title         string   `json:"title" mapstructure:"title"`
	Class         string   `json:"class" mapstructure:"class"`
	Workspace     int      `json:"workspace" mapstructure:"workspace"`
	WorkspaceName string   `json:"workspace_name" mapstructure:"workspace_name"`
	Focused       bool     `json:"focused" mapstructure:"focused"`
	Geometry      Geometry `json:"geometry" mapstructure:"geometry"`
}

// Color is a straight-alpha RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float64
}

// ParseColor accepts "#rgb", "#rrggbb", "#rrggbbaa", "rgba(r, g, b, a)" with
// 0-255 channels and a 0-1 alpha, or "r,g,b,a" with every component in [0,1].
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		return parseHexColor(s[1:])
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		parts := strings.Split(s[len("rgba("):len(s)-1], ",")
		if len(parts) != 4 {
			return Color{}, fmt.Errorf("invalid color %q: rgba() takes 4 components", s)
		}
		var ch [4]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
			}
			if i < 3 {
				if v < 0 || v > 255 {
					return Color{}, fmt.Errorf("invalid color %q: channel out of range", s)
				}
				v /= 255
			}
			ch[i] = v
		}
		return newColor(s, ch)
	default:
		parts := strings.Split(s, ",")
		if len(parts) != 4 {
			return Color{}, fmt.Errorf("invalid color %q", s)
		}
		var ch [4]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
			}
			ch[i] = v
		}
		return newColor(s, ch)
	}
}

func parseHexColor(h string) (Color, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return Color{}, fmt.Errorf("invalid color #%s", h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color #%s: %w", h, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

func newColor(src string, ch [4]float64) (Color, error) {
	for _, v := range ch {
		if v < 0 || v > 1 {
			return Color{}, fmt.Errorf("invalid color %q: component out of [0,1]", src)
		}
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// MustParseColor is ParseColor for compile-time constants.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String formats the color as "#rrggbbaa".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", to8(c.R), to8(c.G), to8(c.B), to8(c.A))
}

// MarshalText implements encoding.TextMarshaler (used by both yaml and json).
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// NRGBA converts to an 8-bit straight-alpha color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// StyleConfig controls how hint boxes are drawn. It is read once per overlay
// session and never mutated while the overlay is shown.
type StyleConfig struct {
	FontFamily       string  `json:"font_family" yaml:"font_family"`
	FontSize         float64 `json:"font_size" yaml:"font_size"`
	Margin           float64 `json:"margin" yaml:"margin"`
	BgColor          Color   `json:"bg_color" yaml:"bg_color"`
	BgColorFocused   Color   `json:"bg_color_focused" yaml:"bg_color_focused"`
	TextColor        Color   `json:"text_color" yaml:"text_color"`
	TextColorFocused Color   `json:"text_color_focused" yaml:"text_color_focused"`
}

// Background returns the box color for a window.
func (s StyleConfig) Background(focused bool) Color {
	if focused {
		return s.BgColorFocused
	}
	return s.BgColor
}

// Foreground returns the label color for a window.
func (s StyleConfig) Foreground(focused bool) Color {
	if focused {
		return s.TextColorFocused
	}
	return s.TextColor
}

// ParseFont splits a "Family:Size" font spec. A missing size returns 0.
func ParseFont(spec string) (string, float64, error) {
	idx := strings.LastIndex(spec, ":")
	if idx < 0 {
		return spec, 0, nil
	}
	size, err := strconv.ParseFloat(spec[idx+1:], 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid font %q: %w", spec, err)
	}
	return spec[:idx], size, nil
}

// Config represents the application configuration
type Config struct {
	Backend  string      `json:"backend" yaml:"backend"`
	Chars    string      `json:"chars" yaml:"chars"`
	LogLevel string      `json:"log_level" yaml:"log_level"`
	Style    StyleConfig `json:"style" yaml:"style"`
}

// IsHintChar reports whether r can label a hint: a lowercase ASCII letter or
// a digit, the keys the overlay reads from the keyboard.
func IsHintChar(r rune) bool {
	return ('a' <= r && r <= 'z') || ('0' <= r && r <= '9')
}

// Validate checks the values the overlay depends on. Hint characters are
// compared case-insensitively.
func (c *Config) Validate() error {
	switch c.Backend {
	case "auto", "hyprland", "sway":
	default:
		return fmt.Errorf("invalid backend %q (use auto, hyprland or sway)", c.Backend)
	}
	seen := make(map[rune]bool)
	for _, r := range strings.ToLower(c.Chars) {
		if !IsHintChar(r) {
			return fmt.Errorf("invalid hint character %q (use letters and digits)", r)
		}
		if seen[r] {
			return fmt.Errorf("duplicate hint character %q", r)
		}
		seen[r] = true
	}
	if len(seen) < 2 {
		return fmt.Errorf("need at least 2 hint characters, got %q", c.Chars)
	}
	if c.Style.FontFamily == "" {
		return fmt.Errorf("font family must not be empty")
	}
	if c.Style.FontSize <= 0 {
		return fmt.Errorf("font size must be positive, got %v", c.Style.FontSize)
	}
	if c.Style.Margin <= 0 {
		return fmt.Errorf("margin must be positive, got %v", c.Style.Margin)
	}
	return nil
}
