package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/moluxis/internal/aggregate"
	"github.com/pdiddy/moluxis/internal/report"
	"github.com/pdiddy/moluxis/internal/viewer"
)

var searchCmd = &cobra.Command{
	Use:   "search <name>",
	Short: "Look up a compound by name and print its record",
	Long: `Search resolves a compound name on PubChem, fetches its 3D structure,
and merges experimental properties, GHS safety data, synonyms and a
description into one record. Optional data that cannot be fetched is left
empty; a missing compound or structure is an error.

With --html the structure is written to a standalone 3Dmol.js page.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("json", false, "output the record as JSON")
	searchCmd.Flags().Bool("yaml", false, "output the record as YAML")
	searchCmd.Flags().String("html", "", "write a 3D viewer page to this file")
	searchCmd.Flags().String("style", "", "viewer style: ballStick, stick, sphere or wireframe")
	searchCmd.Flags().Bool("labels", false, "show atom labels in the viewer page")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")
	if asJSON && asYAML {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}
	htmlPath, _ := cmd.Flags().GetString("html")

	log := newLogger(cmd)
	a, err := newApp(cmd, log)
	if err != nil {
		return err
	}

	styleName, _ := cmd.Flags().GetString("style")
	if styleName == "" {
		styleName = a.cfg.Viewer.Style
	}
	style, err := viewer.ParseStyle(styleName)
	if err != nil {
		return err
	}
	labels := a.cfg.Viewer.Labels
	if cmd.Flags().Changed("labels") {
		labels, _ = cmd.Flags().GetBool("labels")
	}

	query := strings.Join(args, " ")
	if htmlPath != "" {
		ctrl := viewer.NewController(viewer.NewHTMLRenderer(htmlPath, query), style, labels)
		a.orch.Subscribe(ctrl.Listener(log))
	}

	rec, err := a.orch.Search(cmd.Context(), query)
	if err != nil {
		if errors.Is(err, aggregate.ErrEmptyQuery) {
			return fmt.Errorf("compound name must not be empty")
		}
		return searchError(a.orch.Snapshot().Notice, err)
	}

	switch {
	case asJSON:
		err = report.FormatJSON(rec, os.Stdout)
	case asYAML:
		err = report.FormatYAML(rec, os.Stdout)
	default:
		report.FormatTable(rec, os.Stdout)
	}
	if err != nil {
		return err
	}

	if htmlPath != "" {
		fmt.Fprintf(os.Stderr, "Viewer page written to %s\n", htmlPath)
	}
	return nil
}

// searchError prefixes err with the user-facing notice, without its
// sentence-ending period.
func searchError(notice string, err error) error {
	notice = strings.TrimSuffix(notice, ".")
	if notice == "" {
		return err
	}
	return fmt.Errorf("%s: %w", notice, err)
}
