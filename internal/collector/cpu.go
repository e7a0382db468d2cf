package collector

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// Positions of the aggregate "cpu" buckets in /proc/stat, see proc(5).
const (
	CPUUser = iota
	CPUNice
	CPUSystem
	CPUIdle
	CPUIOWait
	CPUIRQ
	CPUSoftIRQ
	CPUSteal
	CPUGuest
	CPUGuestNice
)

// CPUModes names each bucket of TickCounters in order.
var CPUModes = []string{"user", "nice", "system", "idle", "iowait", "irq", "softirq", "steal", "guest", "guest_nice"}

// TickCounters holds the aggregate jiffy buckets from the first line of /proc/stat.
// guest and guest_nice are already folded into user and nice by the kernel and
// are not counted again.
type TickCounters []uint64

func (t TickCounters) at(i int) uint64 {
	if i < len(t) {
		return t[i]
	}
	return 0
}

// Active returns user+nice+system+irq+softirq+steal.
func (t TickCounters) Active() uint64 {
	return t.at(CPUUser) + t.at(CPUNice) + t.at(CPUSystem) +
		t.at(CPUIRQ) + t.at(CPUSoftIRQ) + t.at(CPUSteal)
}

// Idle returns idle+iowait.
func (t TickCounters) Idle() uint64 {
	return t.at(CPUIdle) + t.at(CPUIOWait)
}

func (t TickCounters) Total() uint64 {
	return t.Active() + t.Idle()
}

// parseCPULine discards the label and parses the remaining tokens in order,
// stopping at the first token that is not a number.
func parseCPULine(line string) TickCounters {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil
	}

	times := make(TickCounters, 0, len(fields)-1)
	for _, f := range fields[1:] {
		v, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			break
		}
		times = append(times, v)
	}
	return times
}

// CPUUtilization reads the aggregate tick counters from <proc>/stat.
func (r *SystemReader) CPUUtilization() TickCounters {
	return parseCPULine(firstLine(r.paths.proc("stat")))
}

// Jiffies returns ActiveJiffies + IdleJiffies from a single read of <proc>/stat.
func (r *SystemReader) Jiffies() uint64 {
	return r.CPUUtilization().Total()
}

// CPUCount returns the number of per-CPU "cpuN" lines in <proc>/stat, at least 1.
func (r *SystemReader) CPUCount() int {
	f, err := os.Open(r.paths.proc("stat"))
	if err != nil {
		return 1
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if len(line) > 3 && strings.HasPrefix(line, "cpu") && line[3] >= '0' && line[3] <= '9' {
			n++
		}
	}
	return max(n, 1)
}

func (r *SystemReader) ActiveJiffies() uint64 {
	return r.CPUUtilization().Active()
}

func (r *SystemReader) IdleJiffies() uint64 {
	return r.CPUUtilization().Idle()
}
