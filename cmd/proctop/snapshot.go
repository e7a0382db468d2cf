package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/prabalesh/proctop/internal/collector"
	"github.com/prabalesh/proctop/internal/config"
	"github.com/prabalesh/proctop/internal/exporter"
	"github.com/prabalesh/proctop/internal/format"
	"github.com/prabalesh/proctop/internal/models"
)

type snapshotOpts struct {
	output   string
	interval time.Duration
	limit    int
}

type snapshot struct {
	System    models.SystemStats `json:"system"`
	Processes models.ProcessList `json:"processes"`
}

func newSnapshotCmd(g *globalOpts) *cobra.Command {
	var o snapshotOpts

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print one report and exit",
		Long: `snapshot samples twice, --interval apart, so CPU figures cover that window.
With --interval 0 a single sample is taken and CPU figures are averages since boot.`,
		Example: `  proctop snapshot
  proctop snapshot -o json --limit 10
  proctop snapshot -o prom > proctop.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *g)
			if err != nil {
				return err
			}
			return runSnapshot(cmd.Context(), cfg, cmd.OutOrStdout(), o)
		},
	}

	cmd.Flags().StringVarP(&o.output, "output", "o", "text", "output format: text, json, prom")
	cmd.Flags().DurationVarP(&o.interval, "interval", "i", time.Second, "time between the two samples")
	cmd.Flags().IntVar(&o.limit, "limit", 0, "processes to print (0 = max_processes from config, or all)")
	return cmd
}

func runSnapshot(ctx context.Context, cfg *config.Config, w io.Writer, o snapshotOpts) error {
	if o.limit < 0 {
		return fmt.Errorf("limit must be >= 0")
	}

	log, closeLog, err := newLogger(cfg, os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	stats := collector.NewStatsCollector(cfg.Paths(), log)
	snap, err := sample(ctx, stats, o.interval)
	if err != nil {
		return err
	}

	limit := o.limit
	if limit == 0 {
		limit = cfg.MaxProcesses
	}
	snap.Processes = snap.Processes.Top(limit)

	switch o.output {
	case "text":
		return writeText(w, snap)
	case "json":
		return writeJSON(w, snap)
	case "prom":
		return exporter.WriteText(w, exporter.Families(snap.System, snap.Processes))
	default:
		return fmt.Errorf("unknown output %q (want text, json or prom)", o.output)
	}
}

// sample primes src, waits interval, and returns the second reading.
func sample(ctx context.Context, src exporter.Source, interval time.Duration) (snapshot, error) {
	if interval > 0 {
		src.GetSystemStats()
		src.GetProcessList()

		timer := time.NewTimer(interval)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return snapshot{}, ctx.Err()
		case <-timer.C:
		}
	}
	return snapshot{
		System:    src.GetSystemStats(),
		Processes: src.GetProcessList(),
	}, nil
}

func writeJSON(w io.Writer, snap snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return nil
}

func writeText(w io.Writer, snap snapshot) error {
	s := snap.System
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "OS:\t%s\n", s.OS)
	fmt.Fprintf(tw, "Kernel:\t%s\n", s.Kernel)
	fmt.Fprintf(tw, "Uptime:\t%s\n", s.UptimeText)
	fmt.Fprintf(tw, "CPU:\t%s\n", format.Percent(s.CPU.Utilization))
	fmt.Fprintf(tw, "Memory:\t%s\n", format.Percent(s.Memory.Utilization))
	fmt.Fprintf(tw, "Processes:\t%d total, %d running\n", s.TotalProcesses, s.RunningProcesses)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PID\tUSER\tCPU%\tRAM[MB]\tTIME+\tCOMMAND")
	for _, p := range snap.Processes.Processes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.PID, p.User, format.Percent(p.CPUUtilization), p.Ram, p.UpTimeText, format.Truncate(p.Command, 60))
	}
	return tw.Flush()
}
