//go:build windows

package process

import (
	"fmt"
	"os/exec"
	"strconv"
)

// killTree runs taskkill with /T so child renderers die with the browser.
func killTree(pid int) error {
	out, err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).CombinedOutput() // #nosec G204 -- pid is an int
	if err != nil {
		return fmt.Errorf("taskkill %d: %w: %s", pid, err, out)
	}
	return nil
}
