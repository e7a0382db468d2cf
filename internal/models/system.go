package models

type SystemStats struct {
	OS               string      `json:"os"`
	Kernel           string      `json:"kernel"`
	Uptime           int64       `json:"uptime_seconds"`
	UptimeText       string      `json:"uptime"`
	CPU              CPUStats    `json:"cpu"`
	Memory           MemoryStats `json:"memory"`
	TotalProcesses   int         `json:"total_processes"`
	RunningProcesses int         `json:"running_processes"`
}

type CPUStats struct {
	Utilization float64  `json:"utilization"`
	Ticks       []uint64 `json:"ticks"`
	Active      uint64   `json:"active_ticks"`
	Idle        uint64   `json:"idle_ticks"`
	Total       uint64   `json:"total_ticks"`
}

type MemoryStats struct {
	TotalKB     uint64  `json:"total_kb"`
	AvailableKB uint64  `json:"available_kb"`
	Utilization float64 `json:"utilization"`
}
