// Package exporter publishes collector snapshots in Prometheus text
// exposition format and over HTTP.
package exporter

import (
	"fmt"
	"io"
	"strconv"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/prabalesh/proctop/internal/collector"
	"github.com/prabalesh/proctop/internal/models"
)

const namespace = "proctop"

// ContentType is the media type of WriteText output.
const ContentType = "text/plain; version=0.0.4; charset=utf-8"

func ptr[T any](v T) *T { return &v }

func label(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: ptr(name), Value: ptr(value)}
}

func gauge(value float64, labels ...*dto.LabelPair) *dto.Metric {
	return &dto.Metric{Label: labels, Gauge: &dto.Gauge{Value: ptr(value)}}
}

func counter(value float64, labels ...*dto.LabelPair) *dto.Metric {
	return &dto.Metric{Label: labels, Counter: &dto.Counter{Value: ptr(value)}}
}

func family(name, help string, typ dto.MetricType, metrics ...*dto.Metric) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   ptr(namespace + "_" + name),
		Help:   ptr(help),
		Type:   typ.Enum(),
		Metric: metrics,
	}
}

// Families converts one snapshot into metric families.
func Families(stats models.SystemStats, procs models.ProcessList) []*dto.MetricFamily {
	ticks := make([]*dto.Metric, 0, len(stats.CPU.Ticks))
	for i, v := range stats.CPU.Ticks {
		if i >= len(collector.CPUModes) {
			break
		}
		ticks = append(ticks, counter(float64(v), label("mode", collector.CPUModes[i])))
	}

	procCPU := make([]*dto.Metric, 0, len(procs.Processes))
	procAge := make([]*dto.Metric, 0, len(procs.Processes))
	for _, p := range procs.Processes {
		pid := label("pid", strconv.Itoa(p.PID))
		user := label("user", p.User)
		procCPU = append(procCPU, gauge(p.CPUUtilization, pid, user))
		procAge = append(procAge, gauge(float64(p.UpTime), pid, user))
	}

	families := []*dto.MetricFamily{
		family("uptime_seconds", "Seconds since boot.", dto.MetricType_GAUGE,
			gauge(float64(stats.Uptime))),
		family("cpu_utilization_ratio", "Busy fraction of all CPUs since the previous sample.", dto.MetricType_GAUGE,
			gauge(stats.CPU.Utilization)),
		family("memory_utilization_ratio", "(MemTotal - MemAvailable) / MemTotal.", dto.MetricType_GAUGE,
			gauge(stats.Memory.Utilization)),
		family("cpu_ticks_total", "Aggregate jiffies per CPU mode from /proc/stat.", dto.MetricType_COUNTER,
			ticks...),
		family("processes_total", "Processes created since boot.", dto.MetricType_COUNTER,
			counter(float64(stats.TotalProcesses))),
		family("processes_running", "Processes currently runnable.", dto.MetricType_GAUGE,
			gauge(float64(stats.RunningProcesses))),
		family("process_cpu_utilization_ratio", "Fraction of machine CPU time used by the process since the previous sample.", dto.MetricType_GAUGE,
			procCPU...),
		family("process_age_seconds", "Seconds since the process started.", dto.MetricType_GAUGE,
			procAge...),
	}

	out := families[:0]
	for _, mf := range families {
		if len(mf.Metric) > 0 {
			out = append(out, mf)
		}
	}
	return out
}

// WriteText writes families in the Prometheus text format.
func WriteText(w io.Writer, families []*dto.MetricFamily) error {
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
