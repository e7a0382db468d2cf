package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/prabalesh/proctop/internal/collector"
	"github.com/prabalesh/proctop/internal/config"
	"github.com/prabalesh/proctop/internal/logger"
	"github.com/prabalesh/proctop/internal/ui"
)

type globalOpts struct {
	configPath string
	procDir    string
	logLevel   string
	logFile    string
}

func main() {
	var g globalOpts
	var interval time.Duration
	var maxProcesses int

	root := &cobra.Command{
		Use:   "proctop",
		Short: "Interactive Linux system and process monitor",
		Long: `proctop reads /proc to show operating system and kernel identity,
CPU and memory utilization, uptime and a per-process table with CPU usage,
resident memory, owner, age and command line.

Run without a subcommand for the interactive view, "snapshot" for a one-shot
report or "serve" for an HTTP exporter with Prometheus metrics.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, g)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("interval") {
				cfg.RefreshInterval = interval
			}
			if cmd.Flags().Changed("max-processes") {
				cfg.MaxProcesses = maxProcesses
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if !term.IsTerminal(int(os.Stdout.Fd())) {
				// not interactive; print one report instead of drawing
				return runSnapshot(cmd.Context(), cfg, cmd.OutOrStdout(), snapshotOpts{output: "text", interval: cfg.RefreshInterval})
			}
			return runTUI(cfg, g)
		},
	}

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&g.procDir, "proc-dir", "", "procfs mount point (default /proc)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&g.logFile, "log-file", "", "append logs to this file")

	root.Flags().DurationVarP(&interval, "interval", "i", time.Second, "refresh interval")
	root.Flags().IntVarP(&maxProcesses, "max-processes", "n", 0, "rows in the process table (0 = all)")

	root.AddCommand(newSnapshotCmd(&g), newServeCmd(&g))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error(err.Error())
		stop()
		os.Exit(1)
	}
}

// loadConfig applies flags on top of the file and environment layers.
func loadConfig(cmd *cobra.Command, g globalOpts) (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("proc-dir") {
		cfg.ProcDir = g.procDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = g.logFile
	}
	return cfg, cfg.Validate()
}

// newLogger returns a logger writing to cfg.LogFile, or to fallback when no
// file is configured. A nil fallback discards.
func newLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return logger.New(cfg.LogLevel, f), func() { f.Close() }, nil
	}
	if fallback == nil {
		fallback = io.Discard
	}
	return logger.New(cfg.LogLevel, fallback), func() {}, nil
}

func runTUI(cfg *config.Config, g globalOpts) error {
	// the alt screen owns the terminal, so logs only go to a file
	log, closeLog, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	stats := collector.NewStatsCollector(cfg.Paths(), log)
	app := ui.NewApp(stats, cfg.RefreshInterval, cfg.MaxProcesses)

	log.Info("starting display", "interval", cfg.RefreshInterval, "proc_dir", cfg.ProcDir)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running display: %w", err)
	}
	return nil
}
