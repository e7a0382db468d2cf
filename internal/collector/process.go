package collector

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

// Field numbers in <pid>/stat, 0-indexed as in proc(5) (pid is field 0).
// They are fixed by the kernel ABI and are not discovered at runtime.
const (
	statFieldState     = 2
	statFieldUTime     = 13
	statFieldSTime     = 14
	statFieldCUTime    = 15
	statFieldCSTime    = 16
	statFieldStartTime = 21
)

// ProcessTicks are the jiffies a process spent in user and kernel mode,
// including those of its waited-for children.
type ProcessTicks struct {
	UTime  uint64 `json:"utime"`
	STime  uint64 `json:"stime"`
	CUTime uint64 `json:"cutime"`
	CSTime uint64 `json:"cstime"`
}

func (t ProcessTicks) Total() uint64 {
	return t.UTime + t.STime + t.CUTime + t.CSTime
}

// ProcessReader reads per-process identity and load from <proc>/<pid>.
// Like SystemReader it is stateless; a file that cannot be read yields zero values.
type ProcessReader struct {
	paths  Paths
	system *SystemReader
}

func NewProcessReader(paths Paths, system *SystemReader) *ProcessReader {
	return &ProcessReader{paths: paths, system: system}
}

// Command returns the raw contents of <pid>/cmdline, NUL separators included.
func (r *ProcessReader) Command(pid int) string {
	content, err := os.ReadFile(r.paths.pid(pid, "cmdline"))
	if err != nil {
		return ""
	}
	return string(content)
}

// Ram returns VmRSS divided by 1000 as a decimal string. The divisor is 1000,
// not 1024, so the figure is an approximate megabyte count.
func (r *ProcessReader) Ram(pid int) string {
	kb := valueByKey[uint64](r.paths.pid(pid, "status"), "VmRSS:")
	return strconv.FormatUint(kb/1000, 10)
}

// Uid returns the real uid listed in <pid>/status.
func (r *ProcessReader) Uid(pid int) string {
	return valueByKey[string](r.paths.pid(pid, "status"), "Uid:")
}

// User resolves Uid against the passwd file.
func (r *ProcessReader) User(pid int) string {
	return r.userFor(r.Uid(pid))
}

func (r *ProcessReader) userFor(uid string) string {
	return lookupUser(r.paths.Passwd, uid)
}

func lookupUser(passwd, uid string) string {
	if uid == "" {
		return ""
	}
	f, err := os.Open(passwd)
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		// name:password:uid:gid:gecos:home:shell
		record := strings.Split(sc.Text(), ":")
		if len(record) < 3 {
			continue
		}
		if record[2] == uid {
			return record[0]
		}
	}
	return ""
}

// statFields returns the fields of <pid>/stat indexed like proc(5).
// The comm field (1) may contain spaces and parentheses, so everything up to
// the last ')' is collapsed into fields 0 and 1. A missing file returns
// (nil, nil).
func (r *ProcessReader) statFields(pid int) ([]string, error) {
	path := r.paths.pid(pid, "stat")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil
	}

	line := strings.TrimSpace(string(content))
	open := strings.IndexByte(line, '(')
	end := strings.LastIndexByte(line, ')')
	if open < 0 || end < open {
		return nil, &ParseError{Path: path, Field: 1, Err: ErrNoStat}
	}

	fields := []string{strings.TrimSpace(line[:open]), line[open+1 : end]}
	return append(fields, strings.Fields(line[end+1:])...), nil
}

func statUint(path string, fields []string, idx int) (uint64, error) {
	if idx >= len(fields) {
		return 0, &ParseError{Path: path, Field: idx, Err: ErrShortStat}
	}
	v, err := strconv.ParseUint(fields[idx], 10, 64)
	if err != nil {
		return 0, &ParseError{Path: path, Field: idx, Err: err}
	}
	return v, nil
}

// ActiveJiffies returns utime, stime, cutime and cstime (fields 13-16).
func (r *ProcessReader) ActiveJiffies(pid int) (ProcessTicks, error) {
	fields, err := r.statFields(pid)
	if err != nil || fields == nil {
		return ProcessTicks{}, err
	}
	return statTicks(r.paths.pid(pid, "stat"), fields)
}

func statTicks(path string, fields []string) (ProcessTicks, error) {
	var vals [4]uint64
	for i := range vals {
		v, err := statUint(path, fields, statFieldUTime+i)
		if err != nil {
			return ProcessTicks{}, err
		}
		vals[i] = v
	}
	return ProcessTicks{UTime: vals[0], STime: vals[1], CUTime: vals[2], CSTime: vals[3]}, nil
}

// StartTime returns field 21, the jiffies after boot at which the process started.
func (r *ProcessReader) StartTime(pid int) (uint64, error) {
	fields, err := r.statFields(pid)
	if err != nil || fields == nil {
		return 0, err
	}
	return statUint(r.paths.pid(pid, "stat"), fields, statFieldStartTime)
}

// State returns the single-letter scheduler state (field 2), or "" if unknown.
func (r *ProcessReader) State(pid int) string {
	fields, _ := r.statFields(pid)
	if len(fields) <= statFieldState {
		return ""
	}
	return fields[statFieldState]
}

// ProcessStat is the subset of <pid>/stat consumed from a single read.
type ProcessStat struct {
	State     string
	Ticks     ProcessTicks
	StartTime uint64
}

// Stat reads <pid>/stat once. A process that has gone away yields a zero
// ProcessStat and a nil error.
func (r *ProcessReader) Stat(pid int) (ProcessStat, error) {
	fields, err := r.statFields(pid)
	if err != nil || fields == nil {
		return ProcessStat{}, err
	}

	path := r.paths.pid(pid, "stat")
	ticks, err := statTicks(path, fields)
	if err != nil {
		return ProcessStat{}, err
	}
	start, err := statUint(path, fields, statFieldStartTime)
	if err != nil {
		return ProcessStat{}, err
	}

	return ProcessStat{
		State:     fields[statFieldState],
		Ticks:     ticks,
		StartTime: start,
	}, nil
}

// UpTime returns the age of the process in seconds: system uptime minus the
// start time converted from jiffies.
// A process whose stat file is gone has age 0.
func (r *ProcessReader) UpTime(pid int) (int64, error) {
	fields, err := r.statFields(pid)
	if err != nil || fields == nil {
		return 0, err
	}
	start, err := statUint(r.paths.pid(pid, "stat"), fields, statFieldStartTime)
	if err != nil {
		return 0, err
	}
	return r.age(start), nil
}

// age converts a start time in jiffies after boot into seconds alive.
func (r *ProcessReader) age(start uint64) int64 {
	return r.system.UpTime() - int64(start)/ClockTicks()
}
