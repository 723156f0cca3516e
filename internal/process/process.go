// Package process terminates the headless browser's process tree.
package process

// KillTree kills pid and its children. Non-positive pids are ignored:
// on Unix they would address the caller's own process group.
func KillTree(pid int) {
	if pid <= 0 {
		return
	}
	killTree(pid)
}
