//go:build !unix

package main

import (
	"time"
)

// usage is the processor time consumed by this process.
type usage struct {
	ok   bool
	user time.Duration
	sys  time.Duration
}

func cpuUsage() (u usage) {
	return
}
