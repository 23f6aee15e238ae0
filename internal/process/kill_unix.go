//go:build !windows

package process

import (
	"fmt"
	"syscall"
)

// killTree signals the whole process group; Chrome is launched as a group leader.
func killTree(pid int) error {
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
		return fmt.Errorf("kill group %d: %w", pid, err)
	}
	return nil
}
