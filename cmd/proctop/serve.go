package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/prabalesh/proctop/internal/collector"
	"github.com/prabalesh/proctop/internal/exporter"
)

func newServeCmd(g *globalOpts) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve snapshots as JSON and Prometheus metrics over HTTP",
		Example: `  proctop serve --listen :9100
  curl localhost:9100/metrics
  curl 'localhost:9100/api/processes?limit=10'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *g)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("listen") {
				cfg.ListenAddr = listen
			}

			log, closeLog, err := newLogger(cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			if cfg.LogLevel != "debug" {
				gin.SetMode(gin.ReleaseMode)
			}

			stats := collector.NewStatsCollector(cfg.Paths(), log)
			return exporter.NewServer(stats, log).Run(cmd.Context(), cfg.ListenAddr)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", ":9100", "address to listen on")
	return cmd
}
