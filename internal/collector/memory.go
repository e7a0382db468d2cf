package collector

// MemorySample is the MemTotal/MemAvailable pair from meminfo, in kB.
type MemorySample struct {
	TotalKB     uint64 `json:"total_kb"`
	AvailableKB uint64 `json:"available_kb"`
}

// Utilization returns (total - available) / total.
func (m MemorySample) Utilization() (float64, error) {
	if m.TotalKB == 0 {
		return 0, ErrUndefinedRatio
	}
	if m.AvailableKB >= m.TotalKB {
		return 0, nil
	}
	return float64(m.TotalKB-m.AvailableKB) / float64(m.TotalKB), nil
}

// Memory reads MemTotal and MemAvailable from <proc>/meminfo.
func (r *SystemReader) Memory() MemorySample {
	path := r.paths.proc("meminfo")
	return MemorySample{
		TotalKB:     valueByKey[uint64](path, "MemTotal:"),
		AvailableKB: valueByKey[uint64](path, "MemAvailable:"),
	}
}

// MemoryUtilization returns the used fraction of physical memory. It fails
// with ErrUndefinedRatio when MemTotal is missing or zero.
func (r *SystemReader) MemoryUtilization() (float64, error) {
	return r.Memory().Utilization()
}
