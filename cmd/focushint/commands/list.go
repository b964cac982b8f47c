package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/bryanchriswhite/FocusHint/internal/config"
	"github.com/bryanchriswhite/FocusHint/internal/hint"
	"github.com/bryanchriswhite/FocusHint/internal/window"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible windows",
	Long: `List the windows on every monitor's active workspace together with the
hint each one would get.`,
	Example: `  # List windows in table format (default)
  focushint list

  # List windows in JSON format
  focushint list --format json`,
	RunE: runList,
}

var listFormat string

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listFormat, "format", "o", "table", "output format (table or json)")
}

// listedWindow is a window with the hint the overlay would show for it.
type listedWindow struct {
	Hint string `json:"hint"`
	*config.DesktopWindow
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	backend, err := window.New(cfg.Backend)
	if err != nil {
		return err
	}
	defer backend.Close()

	windows, err := backend.ListWindows()
	if err != nil {
		return fmt.Errorf("failed to list windows: %w", err)
	}
	hints, err := hint.Assign(windows, cfg.Chars)
	if err != nil {
		return err
	}
	listed := withHints(windows, hints)

	// Output in requested format
	switch listFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(listed)
	case "table":
		return printWindowsTable(os.Stdout, listed)
	default:
		return fmt.Errorf("unsupported format: %s (use 'table' or 'json')", listFormat)
	}
}

// withHints pairs windows with their labels, keeping the backend's order.
func withHints(windows []*config.DesktopWindow, hints hint.Map) []listedWindow {
	labels := make(map[*config.DesktopWindow]string, len(hints))
	for label, w := range hints {
		labels[w] = label
	}
	listed := make([]listedWindow, 0, len(windows))
	for _, w := range windows {
		listed = append(listed, listedWindow{Hint: labels[w], DesktopWindow: w})
	}
	return listed
}

func printWindowsTable(out io.Writer, windows []listedWindow) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "HINT\tWORKSPACE\tCLASS\tTITLE\tGEOMETRY\tFOCUSED")
	fmt.Fprintln(w, "----\t---------\t-----\t-----\t--------\t-------")

	for _, lw := range windows {
		focused := "No"
		if lw.Focused {
			focused = "Yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			lw.Hint, lw.WorkspaceName, lw.Class, lw.Title, geometry(lw.Geometry), focused)
	}

	return w.Flush()
}

// printWindow writes one selected window for --print-only.
func printWindow(out io.Writer, w *config.DesktopWindow) {
	fmt.Fprintf(out, "%s\t%s\t%s\n", w.Class, w.Title, geometry(w.Geometry))
}

func geometry(g config.Geometry) string {
	return fmt.Sprintf("%dx%d+%d+%d", g.Width, g.Height, g.X, g.Y)
}
