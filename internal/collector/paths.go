package collector

import (
	"path/filepath"
	"strconv"
)

// Paths locates the files the readers consume. Tests point it at a fixture tree.
type Paths struct {
	ProcDir   string
	OSRelease string
	Passwd    string
}

func DefaultPaths() Paths {
	return Paths{
		ProcDir:   "/proc",
		OSRelease: "/etc/os-release",
		Passwd:    "/etc/passwd",
	}
}

func (p Paths) proc(name string) string {
	return filepath.Join(p.ProcDir, name)
}

func (p Paths) pid(pid int, name string) string {
	return filepath.Join(p.ProcDir, strconv.Itoa(pid), name)
}
