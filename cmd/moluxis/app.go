package main

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pdiddy/moluxis/internal/aggregate"
	"github.com/pdiddy/moluxis/internal/pubchem"
	"github.com/pdiddy/moluxis/pkg/types"
)

// app holds the collaborators shared by the commands.
type app struct {
	cfg    types.Config
	log    zerolog.Logger
	client *pubchem.Client
	orch   *aggregate.Orchestrator
}

func newApp(cmd *cobra.Command, log zerolog.Logger) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.PubChem.Timeout,
	}
	client := pubchem.NewClient(httpClient, cfg.PubChem)

	log.Debug().
		Str("base_url", cfg.PubChem.BaseURL).
		Float64("rate_limit", cfg.PubChem.RateLimit).
		Dur("call_timeout", cfg.PubChem.CallTimeout).
		Str("command", cmd.Name()).
		Msg("Configured PubChem client")

	return &app{
		cfg:    cfg,
		log:    log,
		client: client,
		orch:   aggregate.New(client, cfg.PubChem, log),
	}, nil
}
