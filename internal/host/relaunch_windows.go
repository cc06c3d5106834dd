//go:build windows

package host

import (
	"os"
	"os/exec"
)

// relaunch starts a fresh copy attached to the same console. The caller
// exits once this returns.
func relaunch(exe string, args, env []string) error {
	cmd := exec.Command(exe, args[1:]...)
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Start()
}
