package collector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemReader(t *testing.T) {
	r := NewSystemReader(sampleTree(t))

	assert.Equal(t, "Ubuntu 22.04.3 LTS", r.OperatingSystem())
	assert.Equal(t, "6.5.0-14-generic", r.Kernel())
	assert.Equal(t, int64(12345), r.UpTime())
	assert.Equal(t, 4321, r.TotalProcesses())
	assert.Equal(t, 3, r.RunningProcesses())
	assert.Equal(t, []int{1, 42}, r.Pids())

	util, err := r.MemoryUtilization()
	require.NoError(t, err)
	assert.Equal(t, 0.6, util)
}

func TestSystemReaderTicks(t *testing.T) {
	r := NewSystemReader(sampleTree(t))

	ticks := r.CPUUtilization()
	assert.Equal(t, TickCounters{100, 50, 200, 1000, 10, 5, 2, 0, 0, 0}, ticks)
	assert.Equal(t, uint64(357), r.ActiveJiffies())
	assert.Equal(t, uint64(1010), r.IdleJiffies())
	assert.Equal(t, uint64(1367), r.Jiffies())
}

func TestSystemReaderMissingFiles(t *testing.T) {
	r := NewSystemReader(writeTree(t, map[string]string{"proc/.keep": ""}))

	assert.Equal(t, "", r.OperatingSystem())
	assert.Equal(t, "", r.Kernel())
	assert.Equal(t, int64(0), r.UpTime())
	assert.Equal(t, 0, r.TotalProcesses())
	assert.Equal(t, 0, r.RunningProcesses())
	assert.Empty(t, r.Pids())
	assert.Empty(t, r.CPUUtilization())
	assert.Equal(t, uint64(0), r.Jiffies())

	_, err := r.MemoryUtilization()
	assert.True(t, errors.Is(err, ErrUndefinedRatio))
}

func TestOperatingSystem(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"quoted_multi_word", `PRETTY_NAME="Debian GNU/Linux 12 (bookworm)"`, "Debian GNU/Linux 12 (bookworm)"},
		{"unquoted", "NAME=Alpine\nPRETTY_NAME=Alpine\n", "Alpine"},
		{"absent", "NAME=\"Arch Linux\"\nID=arch\n", ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewSystemReader(writeTree(t, map[string]string{"etc/os-release": tc.content}))
			assert.Equal(t, tc.want, r.OperatingSystem())
		})
	}
}

func TestKernelShortLine(t *testing.T) {
	r := NewSystemReader(writeTree(t, map[string]string{"proc/version": "Linux version\n"}))
	assert.Equal(t, "", r.Kernel())
}

func TestPidsIgnoresNonNumeric(t *testing.T) {
	r := NewSystemReader(writeTree(t, map[string]string{
		"proc/7/stat":      "",
		"proc/123/stat":    "",
		"proc/self/stat":   "",
		"proc/12a/stat":    "",
		"proc/99":          "a regular file named like a pid",
		"proc/acpi/wakeup": "",
	}))
	assert.Equal(t, []int{7, 123}, r.Pids())
}

func TestMemoryUtilization(t *testing.T) {
	cases := []struct {
		name    string
		sample  MemorySample
		want    float64
		wantErr error
	}{
		{"typical", MemorySample{TotalKB: 1000, AvailableKB: 400}, 0.6, nil},
		{"all_free", MemorySample{TotalKB: 1000, AvailableKB: 1000}, 0, nil},
		{"all_used", MemorySample{TotalKB: 1000}, 1, nil},
		{"available_exceeds_total", MemorySample{TotalKB: 10, AvailableKB: 20}, 0, nil},
		{"zero_total", MemorySample{AvailableKB: 5}, 0, ErrUndefinedRatio},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.sample.Utilization()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUpTimeTruncatesFraction(t *testing.T) {
	r := NewSystemReader(writeTree(t, map[string]string{"proc/uptime": "99.99 1.00\n"}))
	assert.Equal(t, int64(99), r.UpTime())
}

func TestTickCounters(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		ticks := parseCPULine("cpu 100 50 200 1000 10 5 2 0 0 0")
		assert.Equal(t, TickCounters{100, 50, 200, 1000, 10, 5, 2, 0, 0, 0}, ticks)
		assert.Equal(t, uint64(357), ticks.Active())
		assert.Equal(t, uint64(1010), ticks.Idle())
		assert.Equal(t, uint64(1367), ticks.Total())
	})
	t.Run("stops_at_non_number", func(t *testing.T) {
		assert.Equal(t, TickCounters{1, 2}, parseCPULine("cpu 1 2 x 4"))
	})
	t.Run("short_line", func(t *testing.T) {
		ticks := parseCPULine("cpu 1 2 3 4")
		assert.Equal(t, uint64(6), ticks.Active())
		assert.Equal(t, uint64(4), ticks.Idle())
	})
	t.Run("label_only", func(t *testing.T) {
		assert.Nil(t, parseCPULine("cpu"))
	})
	t.Run("modes_match_order", func(t *testing.T) {
		assert.Len(t, CPUModes, CPUGuestNice+1)
		assert.Equal(t, "steal", CPUModes[CPUSteal])
	})
}

func TestSystemReaderIdempotent(t *testing.T) {
	r := NewSystemReader(sampleTree(t))

	assert.Equal(t, r.OperatingSystem(), r.OperatingSystem())
	assert.Equal(t, r.CPUUtilization(), r.CPUUtilization())
	assert.Equal(t, r.Pids(), r.Pids())
	a, _ := r.MemoryUtilization()
	b, _ := r.MemoryUtilization()
	assert.Equal(t, a, b)
}

func TestSystemReaderCPUCount(t *testing.T) {
	cases := []struct {
		name string
		stat string
		want int
	}{
		{"single", sampleStat, 1},
		{"four", "cpu  1 2 3 4\ncpu0 1 0 0 1\ncpu1 0 1 0 1\ncpu2 0 0 1 1\ncpu3 0 0 0 1\nprocesses 9\n", 4},
		{"aggregate_only", "cpu  1 2 3 4\n", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewSystemReader(writeTree(t, map[string]string{"proc/stat": tc.stat}))
			assert.Equal(t, tc.want, r.CPUCount())
		})
	}

	r := NewSystemReader(writeTree(t, map[string]string{"proc/.keep": ""}))
	assert.Equal(t, 1, r.CPUCount())
}
