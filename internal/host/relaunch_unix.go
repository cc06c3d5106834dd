//go:build !windows

package host

import "syscall"

func relaunch(exe string, args, env []string) error {
	return syscall.Exec(exe, args, env)
}
