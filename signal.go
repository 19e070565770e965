//go:build linux

package featmatrix

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// signalName reports the name of the signal that killed the process, if any.
func signalName(ee *exec.ExitError) (string, bool) {
	ws, ok := ee.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return "", false
	}
	name := unix.SignalName(ws.Signal())
	if name == "" {
		return ws.Signal().String(), true
	}
	return name, true
}
