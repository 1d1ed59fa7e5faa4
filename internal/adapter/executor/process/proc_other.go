//go:build !linux

package process

import (
	"os"
	"os/exec"
)

func isolateProcess(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Kill()
	}
}

// memory accounting is only implemented on linux
func peakMemoryMb(*os.ProcessState) float64 {
	return 0
}
