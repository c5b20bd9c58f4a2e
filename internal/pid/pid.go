// Package pid guards exclusive commands with a pid file.
package pid

import (
	"strconv"

	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/ansi"
	"codeberg.org/mutker/oserr/internal/errors"
	"codeberg.org/mutker/oserr/internal/posix"
	"codeberg.org/mutker/oserr/internal/syserr"
)

const (
	filePerm = 0o644
	maxPID   = 32
)

// Acquire creates path holding the current pid. A file left behind by a
// process that no longer exists is replaced; a live owner yields
// resource_busy.
func Acquire(path string) error {
	for attempt := 0; ; attempt++ {
		err := create(path)
		if !syserr.IsCode(err, unix.EEXIST) {
			return err
		}

		owner, stale, err := probe(path)
		if err != nil {
			return err
		}
		if !stale || attempt > 0 {
			return errors.New().WithData(errors.ErrResourceBusy, owner)
		}

		if err := posix.Unlink(path); err != nil && !syserr.IsCode(err, unix.ENOENT) {
			return err
		}
	}
}

// Release removes path. A missing file is not an error.
func Release(path string) error {
	if err := posix.Unlink(path); err != nil && !syserr.IsCode(err, unix.ENOENT) {
		return err
	}

	return nil
}

func create(path string) error {
	fd, err := posix.Open(path, unix.O_WRONLY|unix.O_CREAT|unix.O_EXCL, filePerm)
	if err != nil {
		return err
	}

	data := []byte(strconv.Itoa(unix.Getpid()) + "\n")
	if _, err := posix.Write(fd, data); err != nil {
		posix.Close(fd)
		posix.Unlink(path)
		return err
	}

	return posix.Close(fd)
}

// probe reads the owner pid from path and reports whether that process is
// gone. Unparsable content counts as stale.
func probe(path string) (int, bool, error) {
	fd, err := posix.Open(path, unix.O_RDONLY, 0)
	if syserr.IsCode(err, unix.ENOENT) {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	defer posix.Close(fd)

	buf := make([]byte, maxPID)
	n, err := posix.Read(fd, buf)
	if err != nil {
		return 0, false, err
	}

	owner, _, err := ansi.Strtol(string(buf[:n]), 10)
	if err != nil || owner <= 0 {
		return 0, true, nil
	}

	switch err := posix.Kill(int(owner), 0); {
	case err == nil, syserr.IsCode(err, unix.EPERM):
		return int(owner), false, nil
	case syserr.IsCode(err, unix.ESRCH):
		return int(owner), true, nil
	default:
		return int(owner), false, err
	}
}
