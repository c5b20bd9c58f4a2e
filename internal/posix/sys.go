package posix

import (
	"os"
	"time"

	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/syserr"
)

func Mmap(fd int, offset int64, length, prot, flags int) ([]byte, error) {
	b, err := unix.Mmap(fd, offset, length, prot, flags)
	if err != nil {
		return nil, syserr.FromErrno(syserr.Mmap, err)
	}

	return b, nil
}

func Munmap(b []byte) error {
	return syserr.FromErrno(syserr.Munmap, unix.Munmap(b))
}

// Nanosleep sleeps for d. When interrupted it returns the unslept time
// together with the EINTR error; it never resumes on its own.
func Nanosleep(d time.Duration) (time.Duration, error) {
	req := unix.NsecToTimespec(d.Nanoseconds())
	var rem unix.Timespec
	if err := unix.Nanosleep(&req, &rem); err != nil {
		return time.Duration(rem.Nano()), syserr.FromErrno(syserr.Nanosleep, err)
	}

	return 0, nil
}

// Isatty reports whether fd refers to a terminal. ENOTTY is the normal
// "no" answer; any other errno, such as EBADF, is an error.
func Isatty(fd int) (bool, error) {
	_, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err == nil {
		return true, nil
	}
	if err == unix.ENOTTY || err == unix.EINVAL {
		return false, nil
	}

	return false, syserr.FromErrno(syserr.Isatty, err)
}

// Kill sends sig to pid. Signal 0 only probes for existence.
func Kill(pid int, sig unix.Signal) error {
	return syserr.FromErrno(syserr.Kill, unix.Kill(pid, sig))
}

func Prctl(option int, arg2, arg3, arg4, arg5 uintptr) error {
	return syserr.FromErrno(syserr.Prctl, unix.Prctl(option, arg2, arg3, arg4, arg5))
}

// Setenv sets name to value. An existing value is kept unless overwrite is
// set.
func Setenv(name, value string, overwrite bool) error {
	if !overwrite {
		if _, ok := os.LookupEnv(name); ok {
			return nil
		}
	}

	return syserr.FromErrno(syserr.Setenv, unix.Setenv(name, value))
}
