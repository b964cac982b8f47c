package commands

import (
	"fmt"
	"os"

	"github.com/bryanchriswhite/FocusHint/internal/config"
	"github.com/bryanchriswhite/FocusHint/internal/hint"
	"github.com/bryanchriswhite/FocusHint/internal/logger"
	"github.com/bryanchriswhite/FocusHint/internal/overlay"
	"github.com/bryanchriswhite/FocusHint/internal/window"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	printOnly bool
	rootCmd   = &cobra.Command{
		Use:   "focushint",
		Short: "FocusHint - Focus Wayland windows by typing a hint",
		Long: `FocusHint draws a short label over every visible window and focuses the
window whose label you type. Escape cancels.

Supported window managers:
  • Hyprland (IPC socket)
  • Sway (i3 IPC)

The overlay is a wlr-layer-shell surface with exclusive keyboard input, so
the compositor must support zwlr_layer_shell_v1.`,
		Example: `  # Show hints and focus the chosen window
  focushint

  # Print the chosen window instead of focusing it
  focushint --print-only

  # Use a different font and hint alphabet
  focushint --font "DejaVu Sans Mono:48" --chars asdfghjkl`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE:              runSelect,
	}
)

// overrides maps flag names to the config keys they override.
var overrides = map[string]string{
	"backend":            config.KeyBackend,
	"log-level":          config.KeyLogLevel,
	"chars":              config.KeyChars,
	"font":               config.KeyFont,
	"font-size":          config.KeyFontSize,
	"margin":             config.KeyMargin,
	"bg-color":           config.KeyBgColor,
	"bg-color-focused":   config.KeyBgColorFocused,
	"text-color":         config.KeyTextColor,
	"text-color-focused": config.KeyTextColorFocused,
}

func init() {
	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/focushint/config.yaml)")
	pf.String("log-level", "", "log level (trace, debug, info, warn, error)")
	pf.String("backend", "", "window manager backend (auto, hyprland, sway)")

	f := rootCmd.Flags()
	f.BoolVarP(&printOnly, "print-only", "p", false, "print the selected window instead of focusing it")
	f.StringP("chars", "c", "", "characters used to build hints")
	f.StringP("font", "f", "", `font as "Family:Size", or a path to a font file`)
	f.Float64("font-size", 0, "font size in pixels")
	f.Float64P("margin", "m", 0, "box margin as a fraction of the font size")
	f.String("bg-color", "", "hint background color (#rrggbb[aa], rgba(r,g,b,a) or r,g,b,a)")
	f.String("bg-color-focused", "", "hint background color of the focused window")
	f.String("text-color", "", "hint text color")
	f.String("text-color-focused", "", "hint text color of the focused window")

	// Bind flags to viper
	for name, key := range overrides {
		flag := pf.Lookup(name)
		if flag == nil {
			flag = f.Lookup(name)
		}
		viper.BindPFlag(key, flag)
	}
	viper.SetEnvPrefix("FOCUSHINT")
	viper.AutomaticEnv()
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// setup initializes logging from the flag, environment or default level so
// config loading itself can log.
func setup(cmd *cobra.Command, args []string) error {
	level := viper.GetString(config.KeyLogLevel)
	if level == "" {
		level = config.Defaults().LogLevel
	}
	logger.Init(level, true)
	return nil
}

// loadConfig reads the config file and applies flag and environment overrides.
func loadConfig() (*config.Config, error) {
	configMgr, err := config.NewManager(GetConfigFile())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := configMgr.ApplyOverrides(viper.GetViper()); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	cfg := configMgr.Get()
	logger.Init(cfg.LogLevel, true)
	return cfg, nil
}

func runSelect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := logger.WithComponent("cli")

	backend, err := window.New(cfg.Backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	windows, err := backend.ListWindows()
	if err != nil {
		return fmt.Errorf("failed to list windows: %w", err)
	}
	if len(windows) == 0 {
		log.Warn().Str("backend", backend.Name()).Msg("No visible windows")
		return nil
	}

	hints, err := hint.Assign(windows, cfg.Chars)
	if err != nil {
		return err
	}

	opts := overlay.Options{}
	if sizer, ok := backend.(window.ScreenSizer); ok {
		if w, h, err := sizer.ScreenSize(); err == nil {
			opts.FallbackWidth, opts.FallbackHeight = w, h
		} else {
			log.Debug().Err(err).Msg("Screen size unavailable")
		}
	}

	selected, err := overlay.Select(hints, cfg.Style, opts)
	if err != nil {
		return err
	}
	if selected == nil {
		return nil
	}

	if printOnly {
		printWindow(os.Stdout, selected)
		return nil
	}
	if err := backend.Focus(selected); err != nil {
		return fmt.Errorf("failed to focus %q: %w", selected.Title, err)
	}
	log.Info().Str("class", selected.Class).Str("title", selected.Title).Msg("Focused window")
	return nil
}
