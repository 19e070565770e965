//go:build !linux

package featmatrix

import "os/exec"

// signalName reports the name of the signal that killed the process, if any.
// On non-Linux platforms the exit status text is used instead.
func signalName(_ *exec.ExitError) (string, bool) {
	return "", false
}
