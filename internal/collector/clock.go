package collector

import (
	"os"
	"strconv"
)

// ClockTicks returns the number of jiffies per second (USER_HZ).
// CLK_TCK in the environment overrides it; otherwise it is 100, the value
// the kernel exports to userspace on every Linux ABI. sysconf(_SC_CLK_TCK)
// needs cgo, so it is not consulted.
func ClockTicks() int64 {
	v, _ := strconv.ParseInt(os.Getenv("CLK_TCK"), 10, 64)
	if v > 0 {
		return v
	}
	return 100
}
