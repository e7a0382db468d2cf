package models

type Process struct {
	PID            int     `json:"pid"`
	User           string  `json:"user"`
	UID            string  `json:"uid"`
	Command        string  `json:"command"`
	CPUUtilization float64 `json:"cpu_utilization"`
	Ram            string  `json:"ram"`
	Status         string  `json:"status"`
	StartTime      uint64  `json:"start_time_ticks"`
	UpTime         int64   `json:"uptime_seconds"`
	UpTimeText     string  `json:"uptime"`
}

type ProcessList struct {
	Processes []Process `json:"processes"`
	Total     int       `json:"total"`
	Running   int       `json:"running"`
	Sleeping  int       `json:"sleeping"`
	Zombie    int       `json:"zombie"`
}

// Top returns a copy of the list holding at most n processes; n <= 0 keeps all.
// The counters still describe the whole list.
func (l ProcessList) Top(n int) ProcessList {
	if n <= 0 || n >= len(l.Processes) {
		return l
	}
	top := l
	top.Processes = append([]Process(nil), l.Processes[:n]...)
	return top
}
