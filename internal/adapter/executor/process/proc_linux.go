//go:build linux

package process

import (
	"os"
	"os/exec"
	"syscall"
)

// isolateProcess puts the child in its own process group so a timeout kills
// everything it spawned.
func isolateProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}

// peakMemoryMb is the child's peak resident set size. Linux reports Maxrss
// in kilobytes.
func peakMemoryMb(state *os.ProcessState) float64 {
	if state == nil {
		return 0
	}
	usage, ok := state.SysUsage().(*syscall.Rusage)
	if !ok {
		return 0
	}
	return float64(usage.Maxrss) / 1024
}
