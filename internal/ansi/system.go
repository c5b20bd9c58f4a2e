package ansi

import (
	"errors"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/syserr"
)

const (
	shellPath        = "/bin/sh"
	shellUnavailable = "shell unavailable"
	childFailed      = "child failed"
)

// System runs command through /bin/sh and returns its raw wait status.
//
// An empty command only asks whether a shell is available. A shell that
// cannot be started fails with its errno; a child that exits non-zero or
// dies from a signal fails with "child failed" and the status is still
// returned.
func System(command string) (int, error) {
	if command == "" {
		if err := unix.Access(shellPath, unix.X_OK); err != nil {
			return 0, syserr.NewLiteral(syserr.System, shellUnavailable)
		}
		return 1, nil
	}

	cmd := exec.Command(shellPath, "-c", command)
	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0, nil
	case errors.As(err, &exitErr):
		status := 0
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok {
			status = int(ws)
		}
		return status, syserr.NewLiteral(syserr.System, childFailed)
	default:
		return -1, syserr.FromErrno(syserr.System, err)
	}
}
