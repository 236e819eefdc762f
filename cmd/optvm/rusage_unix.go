//go:build unix

package main

import (
	"time"

	"golang.org/x/sys/unix"
)

// usage is the processor time consumed by this process.
type usage struct {
	ok   bool
	user time.Duration
	sys  time.Duration
}

func cpuUsage() (u usage) {
	var ru unix.Rusage
	err := unix.Getrusage(unix.RUSAGE_SELF, &ru)
	if err != nil {
		return
	}

	u.user = time.Duration(ru.Utime.Nano())
	u.sys = time.Duration(ru.Stime.Nano())
	u.ok = true

	return
}
