package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/moluxis/internal/suggest"
	"github.com/pdiddy/moluxis/internal/tui"
	"github.com/pdiddy/moluxis/internal/viewer"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Explore compounds in an interactive terminal UI",
	Long: `View opens a terminal UI with a search box, name suggestions, the
compound's details and controls for the 3D viewer. Every loaded structure is
written to the viewer page (viewer.output_path, default moluxis-viewer.html);
keep it open in a browser to follow along.`,
	RunE: runView,
}

func init() {
	viewCmd.Flags().String("html", "", "viewer page path (overrides viewer.output_path)")
	viewCmd.Flags().String("log-file", "", "write logs to this file; the terminal is used by the UI")

	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	log := zerolog.Nop()
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		level := zerolog.InfoLevel
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = zerolog.DebugLevel
		}
		log = zerolog.New(f).Level(level).With().Timestamp().Logger()
	}

	a, err := newApp(cmd, log)
	if err != nil {
		return err
	}

	htmlPath, _ := cmd.Flags().GetString("html")
	if htmlPath == "" {
		htmlPath = a.cfg.Viewer.OutputPath
	}
	style, err := viewer.ParseStyle(a.cfg.Viewer.Style)
	if err != nil {
		return err
	}

	ctrl := viewer.NewController(viewer.NewHTMLRenderer(htmlPath, "moluxis"), style, a.cfg.Viewer.Labels)
	a.orch.Subscribe(ctrl.Listener(log))

	f := suggest.New(a.client, a.orch, a.cfg.Suggest, log)
	m := tui.New(cmd.Context(), a.orch, f, ctrl, tui.Options{ViewerPath: htmlPath})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	a.orch.Subscribe(tui.Notify(p))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}
