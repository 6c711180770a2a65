package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pdiddy/moluxis/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <prefix>",
	Short: "Print compound name completions for a prefix",
	Long: `Suggest asks PubChem's autocomplete service for compound names that
start with the given prefix. Prefixes shorter than suggest.min_length
(default 3) are not sent.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().Bool("json", false, "output suggestions as a JSON array")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	log := newLogger(cmd)
	a, err := newApp(cmd, log)
	if err != nil {
		return err
	}

	prefix := strings.Join(args, " ")
	if n := utf8.RuneCountInString(prefix); n < a.cfg.Suggest.MinLength {
		return fmt.Errorf("prefix %q is too short: need at least %d characters", prefix, a.cfg.Suggest.MinLength)
	}

	f := suggest.New(a.client, a.orch, a.cfg.Suggest, log)
	if err := f.TextChanged(cmd.Context(), prefix); err != nil {
		return fmt.Errorf("autocomplete: %w", err)
	}
	items := f.Snapshot().Suggestions

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	if len(items) == 0 {
		fmt.Fprintln(os.Stderr, "No suggestions.")
		return nil
	}
	for _, s := range items {
		fmt.Println(s)
	}
	return nil
}
