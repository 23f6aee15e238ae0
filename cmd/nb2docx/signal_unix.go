//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals stop a run: Ctrl-C, kill, and a closed terminal.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
