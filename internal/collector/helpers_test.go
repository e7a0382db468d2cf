package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	sampleOSRelease = `NAME="Ubuntu"
VERSION="22.04.3 LTS (Jammy Jellyfish)"
ID=ubuntu
PRETTY_NAME="Ubuntu 22.04.3 LTS"
VERSION_ID="22.04"
`
	sampleVersion = "Linux version 6.5.0-14-generic (buildd@lcy02-amd64-031) (gcc-12) #14~22.04.1-Ubuntu SMP\n"
	sampleMeminfo = `MemTotal:        1000 kB
MemFree:          100 kB
MemAvailable:     400 kB
Buffers:           20 kB
`
	sampleStat = `cpu  100 50 200 1000 10 5 2 0 0 0
cpu0 50 25 100 500 5 3 1 0 0 0
intr 12345 0 0
ctxt 98765
btime 1700000000
processes 4321
procs_running 3
procs_blocked 0
`
	samplePasswd = `root:x:0:0:root:/root:/bin/bash
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
alice:x:1000:1000:Alice,,,:/home/alice:/bin/bash
`
)

// pidStat builds a <pid>/stat line with utime..cstime at fields 13-16 and
// starttime at field 21.
func pidStat(pid int, comm, state string, utime, stime, cutime, cstime, start uint64) string {
	fields := []string{
		fmt.Sprint(pid), "(" + comm + ")", state,
		"1", "1", "1", "0", "-1", "4194560", // ppid pgrp session tty_nr tpgid flags
		"100", "0", "5", "0", // minflt cminflt majflt cmajflt
		fmt.Sprint(utime), fmt.Sprint(stime), fmt.Sprint(cutime), fmt.Sprint(cstime),
		"20", "0", "1", "0", // priority nice num_threads itrealvalue
		fmt.Sprint(start),
		"171798691840", "3000", // vsize rss
	}
	return strings.Join(fields, " ") + "\n"
}

func writeTree(t *testing.T, files map[string]string) Paths {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return Paths{
		ProcDir:   filepath.Join(root, "proc"),
		OSRelease: filepath.Join(root, "etc", "os-release"),
		Passwd:    filepath.Join(root, "etc", "passwd"),
	}
}

func sampleTree(t *testing.T) Paths {
	return writeTree(t, map[string]string{
		"etc/os-release":    sampleOSRelease,
		"etc/passwd":        samplePasswd,
		"proc/version":      sampleVersion,
		"proc/meminfo":      sampleMeminfo,
		"proc/uptime":       "12345.67 54321.00\n",
		"proc/stat":         sampleStat,
		"proc/1/stat":       pidStat(1, "systemd", "S", 10, 20, 30, 40, 100),
		"proc/1/status":     "Name:\tsystemd\nUid:\t0\t0\t0\t0\nVmRSS:\t   12345 kB\n",
		"proc/1/cmdline":    "/sbin/init\x00splash\x00",
		"proc/42/stat":      pidStat(42, "tmux: server", "R", 500, 100, 0, 0, 600000),
		"proc/42/status":    "Name:\ttmux\nUid:\t1000\t1000\t1000\t1000\nVmRSS:\t    2048 kB\n",
		"proc/42/cmdline":   "tmux\x00",
		"proc/self/stat":    pidStat(42, "tmux", "R", 0, 0, 0, 0, 0),
		"proc/sys/kernel/x": "",
	})
}
