package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/payrouter/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Start the HTTP server exposing /api/chat, /api/deploy, /api/agents
and /api/health. Agents are deployed lazily on the first chat request; call
/api/deploy to warm the pool up front.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	orch, cfg, logger, err := buildApp()
	if err != nil {
		return err
	}

	server := api.New(orch, func(o *api.Options) {
		o.Logger = logger
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting http server", "addr", addr)
	return server.Run(addr)
}
