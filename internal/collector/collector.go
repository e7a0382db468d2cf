package collector

import (
	"errors"
	"log/slog"
	"sort"

	"github.com/prabalesh/proctop/internal/format"
	"github.com/prabalesh/proctop/internal/models"
)

// StatsCollector composes the readers and a Sampler into display-ready snapshots.
type StatsCollector struct {
	system  *SystemReader
	process *ProcessReader
	sampler *Sampler
	logger  *slog.Logger
}

func NewStatsCollector(paths Paths, logger *slog.Logger) *StatsCollector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	system := NewSystemReader(paths)
	return &StatsCollector{
		system:  system,
		process: NewProcessReader(paths, system),
		sampler: NewSampler(),
		logger:  logger,
	}
}

func (s *StatsCollector) GetSystemStats() models.SystemStats {
	ticks := s.system.CPUUtilization()
	mem := s.system.Memory()
	memUtil, err := mem.Utilization()
	if errors.Is(err, ErrUndefinedRatio) {
		s.logger.Debug("memory utilization undefined", "total_kb", mem.TotalKB)
	}
	uptime := s.system.UpTime()
	cpuUtil := s.sampler.SystemUtilization(ticks)
	s.logger.Debug("sampled system", "cpu", cpuUtil)

	return models.SystemStats{
		OS:         s.system.OperatingSystem(),
		Kernel:     s.system.Kernel(),
		Uptime:     uptime,
		UptimeText: format.ElapsedTime(uptime),
		CPU: models.CPUStats{
			Utilization: cpuUtil,
			Ticks:       ticks,
			Active:      ticks.Active(),
			Idle:        ticks.Idle(),
			Total:       ticks.Total(),
		},
		Memory: models.MemoryStats{
			TotalKB:     mem.TotalKB,
			AvailableKB: mem.AvailableKB,
			Utilization: memUtil,
		},
		TotalProcesses:   s.system.TotalProcesses(),
		RunningProcesses: s.system.RunningProcesses(),
	}
}

// GetProcessList samples every live pid, sorted by CPU utilization descending.
func (s *StatsCollector) GetProcessList() models.ProcessList {
	systemTotal := s.system.Jiffies()
	cpus := s.system.CPUCount()
	seen := make(map[ProcessKey]struct{})

	var processes []models.Process
	var running, sleeping, zombie int
	for _, pid := range s.system.Pids() {
		proc, key, ok := s.getProcessInfo(pid, systemTotal, cpus)
		if !ok {
			continue
		}
		seen[key] = struct{}{}
		processes = append(processes, proc)

		switch proc.Status {
		case "R":
			running++
		case "S", "D":
			sleeping++
		case "Z":
			zombie++
		}
	}
	s.sampler.Prune(seen)

	sort.SliceStable(processes, func(i, j int) bool {
		return processes[i].CPUUtilization > processes[j].CPUUtilization
	})

	return models.ProcessList{
		Processes: processes,
		Total:     len(processes),
		Running:   running,
		Sleeping:  sleeping,
		Zombie:    zombie,
	}
}

func (s *StatsCollector) getProcessInfo(pid int, systemTotal uint64, cpus int) (models.Process, ProcessKey, bool) {
	stat, err := s.process.Stat(pid)
	if err != nil {
		s.logger.Debug("skipping process", "pid", pid, "error", err)
		return models.Process{}, ProcessKey{}, false
	}
	if stat.State == "" {
		// exited between the directory listing and the read
		return models.Process{}, ProcessKey{}, false
	}

	age := s.process.age(stat.StartTime)
	key := ProcessKey{PID: pid, StartTime: stat.StartTime}
	uid := s.process.Uid(pid)

	return models.Process{
		PID:            pid,
		User:           s.process.userFor(uid),
		UID:            uid,
		Command:        format.Command(s.process.Command(pid)),
		CPUUtilization: s.sampler.ProcessUtilization(key, stat.Ticks, systemTotal, age, cpus),
		Ram:            s.process.Ram(pid),
		Status:         stat.State,
		StartTime:      stat.StartTime,
		UpTime:         age,
		UpTimeText:     format.ElapsedTime(age),
	}, key, true
}

// Reset drops all retained samples.
func (s *StatsCollector) Reset() {
	s.sampler.Clear()
}
