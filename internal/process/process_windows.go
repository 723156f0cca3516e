//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// killTree force-kills pid and its child processes (/F force, /T tree).
func killTree(pid int) {
	// Best-effort; the launcher's own Kill is the fallback.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is an integer
}
