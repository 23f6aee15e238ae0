// Package process terminates browser process trees left behind by the PDF renderer.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID is returned for PIDs that would address the caller's own
// process group or every process.
var ErrInvalidPID = errors.New("invalid pid")

// KillTree kills pid and all of its descendants.
// Returns an error when the process does not exist or cannot be signalled.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killTree(pid)
}
