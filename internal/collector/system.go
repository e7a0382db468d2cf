package collector

import (
	"os"
	"sort"
	"strconv"
	"strings"
)

// SystemReader reads machine-wide identity and load. Every method opens its
// own file and returns the zero value when that file is unreadable.
type SystemReader struct {
	paths Paths
}

func NewSystemReader(paths Paths) *SystemReader {
	return &SystemReader{paths: paths}
}

// OperatingSystem returns PRETTY_NAME from the os-release file.
func (r *SystemReader) OperatingSystem() string {
	content, err := os.ReadFile(r.paths.OSRelease)
	if err != nil {
		return ""
	}

	for _, line := range strings.Split(string(content), "\n") {
		// keep multi-word values as one token until the key is matched
		line = strings.ReplaceAll(line, " ", "_")
		line = strings.NewReplacer("=", " ", `"`, " ").Replace(line)
		fields := strings.Fields(line)
		for i := 0; i+1 < len(fields); i += 2 {
			if fields[i] == "PRETTY_NAME" {
				return strings.ReplaceAll(fields[i+1], "_", " ")
			}
		}
	}
	return ""
}

// Kernel returns the third token of <proc>/version.
func (r *SystemReader) Kernel() string {
	fields := strings.Fields(firstLine(r.paths.proc("version")))
	if len(fields) < 3 {
		return ""
	}
	return fields[2]
}

// Pids lists the numeric-named directories under <proc> in ascending order.
func (r *SystemReader) Pids() []int {
	entries, err := os.ReadDir(r.paths.ProcDir)
	if err != nil {
		return nil
	}

	var pids []int
	for _, entry := range entries {
		if !entry.IsDir() || !isDigits(entry.Name()) {
			continue
		}
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		pids = append(pids, pid)
	}
	sort.Ints(pids)
	return pids
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// UpTime returns whole seconds since boot from <proc>/uptime.
func (r *SystemReader) UpTime() int64 {
	fields := strings.Fields(firstLine(r.paths.proc("uptime")))
	if len(fields) == 0 {
		return 0
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}
	return int64(secs)
}

func (r *SystemReader) TotalProcesses() int {
	return valueByKey[int](r.paths.proc("stat"), "processes")
}

func (r *SystemReader) RunningProcesses() int {
	return valueByKey[int](r.paths.proc("stat"), "procs_running")
}
