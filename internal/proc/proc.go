// Package proc wraps process spawning, waiting and CPU affinity. Spawning
// and affinity calls hand their error number back directly; it is taken as
// the code without looking at any other error state.
package proc

import (
	"errors"
	"syscall"

	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/syserr"
)

// Spawn starts argv0 with argv and env in a new process and returns its pid.
// The child reports a failed exec back through the returned error number.
func Spawn(argv0 string, argv, env []string) (int, error) {
	pid, err := syscall.ForkExec(argv0, argv, &syscall.ProcAttr{
		Env:   env,
		Files: []uintptr{0, 1, 2},
	})
	if err != nil {
		return -1, fromDirect(syserr.Spawn, err)
	}

	return pid, nil
}

// Waitid waits for a state change of the selected children.
func Waitid(idtype, id, options int) (*unix.Siginfo, error) {
	var info unix.Siginfo
	if err := unix.Waitid(idtype, id, &info, options, nil); err != nil {
		return nil, syserr.FromErrno(syserr.Waitid, err)
	}

	return &info, nil
}

// SchedSetaffinity pins pid (0 is the calling thread) to set.
func SchedSetaffinity(pid int, set *unix.CPUSet) error {
	return fromDirect(syserr.SchedSetaffinity, unix.SchedSetaffinity(pid, set))
}

// SchedGetaffinity returns the CPU set pid may run on.
func SchedGetaffinity(pid int) (unix.CPUSet, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(pid, &set); err != nil {
		return set, fromDirect(syserr.SchedGetaffinity, err)
	}

	return set, nil
}

func fromDirect(op syserr.Op, err error) error {
	if err == nil {
		return nil
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		return syserr.FromReturn(op, int(errno))
	}

	return syserr.NewLiteral(op, err.Error())
}
