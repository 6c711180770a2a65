// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the moluxis CLI.
// Commands: search, suggest, view (terminal UI) and version.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/moluxis/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the moluxis CLI.
var rootCmd = &cobra.Command{
	Use:   "moluxis",
	Short: "Search PubChem compounds and view their 3D structure",
	Long: `moluxis looks up a chemical compound by name on PubChem and merges its
identity, computed and experimental properties, GHS safety classification,
synonyms and description into one record, together with a 3D structure that
can be written to an HTML viewer page.

Use search for a one-shot lookup, suggest for name completion, and view for
the interactive terminal UI.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./moluxis.yaml or ~/.config/moluxis/moluxis.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("moluxis")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "moluxis"))
		}
	}

	setDefaults(types.DefaultConfig())
	viper.SetEnvPrefix("MOLUXIS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so environment variables such as
// MOLUXIS_PUBCHEM_RATE_LIMIT are picked up.
func setDefaults(cfg types.Config) {
	viper.SetDefault("pubchem.base_url", cfg.PubChem.BaseURL)
	viper.SetDefault("pubchem.timeout", cfg.PubChem.Timeout)
	viper.SetDefault("pubchem.user_agent", cfg.PubChem.UserAgent)
	viper.SetDefault("pubchem.call_timeout", cfg.PubChem.CallTimeout)
	viper.SetDefault("pubchem.rate_limit", cfg.PubChem.RateLimit)
	viper.SetDefault("pubchem.min_structure_length", cfg.PubChem.MinStructureLength)
	viper.SetDefault("pubchem.max_synonyms", cfg.PubChem.MaxSynonyms)
	viper.SetDefault("pubchem.autocomplete_limit", cfg.PubChem.AutocompleteLimit)
	viper.SetDefault("suggest.min_length", cfg.Suggest.MinLength)
	viper.SetDefault("viewer.style", cfg.Viewer.Style)
	viper.SetDefault("viewer.labels", cfg.Viewer.Labels)
	viper.SetDefault("viewer.output_path", cfg.Viewer.OutputPath)
}

// loadConfig decodes the merged viper settings into a Config.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// newLogger returns a console logger on stderr. Only warnings and errors
// are shown unless verbose is set.
func newLogger(cmd *cobra.Command) zerolog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
