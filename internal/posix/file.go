// Package posix wraps file, directory, memory and socket system calls. Every
// wrapper returns the raw result on success and a *syserr.Error for the
// matching operation on failure.
package posix

import (
	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/syserr"
)

func Open(path string, flags int, mode uint32) (int, error) {
	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, mode)
	if err != nil {
		return -1, syserr.FromErrno(syserr.Open, err)
	}

	return fd, nil
}

func Openat(dirfd int, path string, flags int, mode uint32) (int, error) {
	fd, err := unix.Openat(dirfd, path, flags|unix.O_CLOEXEC, mode)
	if err != nil {
		return -1, syserr.FromErrno(syserr.Openat, err)
	}

	return fd, nil
}

func Close(fd int) error {
	return syserr.FromErrno(syserr.Close, unix.Close(fd))
}

// Read returns the number of bytes read; zero means end of file.
func Read(fd int, p []byte) (int, error) {
	n, err := unix.Read(fd, p)
	if err != nil {
		return -1, syserr.FromErrno(syserr.Read, err)
	}

	return n, nil
}

// Write may write fewer bytes than len(p); callers handle short writes.
func Write(fd int, p []byte) (int, error) {
	n, err := unix.Write(fd, p)
	if err != nil {
		return -1, syserr.FromErrno(syserr.Write, err)
	}

	return n, nil
}

func Dup(fd int) (int, error) {
	nfd, err := unix.Dup(fd)
	if err != nil {
		return -1, syserr.FromErrno(syserr.Dup, err)
	}

	return nfd, nil
}

// Dup2 has dup2 semantics on every architecture. dup3 rejects equal
// descriptors, so that case only checks that oldfd is open.
func Dup2(oldfd, newfd int) (int, error) {
	if oldfd == newfd {
		if _, err := unix.FcntlInt(uintptr(oldfd), unix.F_GETFD, 0); err != nil {
			return -1, syserr.FromErrno(syserr.Dup2, err)
		}
		return newfd, nil
	}

	if err := unix.Dup3(oldfd, newfd, 0); err != nil {
		return -1, syserr.FromErrno(syserr.Dup2, err)
	}

	return newfd, nil
}

func Fcntl(fd, cmd, arg int) (int, error) {
	r, err := unix.FcntlInt(uintptr(fd), cmd, arg)
	if err != nil {
		return -1, syserr.FromErrno(syserr.Fcntl, err)
	}

	return r, nil
}

func Fstat(fd int, st *unix.Stat_t) error {
	return syserr.FromErrno(syserr.Fstat, unix.Fstat(fd, st))
}

func Stat(path string, st *unix.Stat_t) error {
	return syserr.FromErrno(syserr.Stat, unix.Stat(path, st))
}

func Fsync(fd int) error {
	return syserr.FromErrno(syserr.Fsync, unix.Fsync(fd))
}

func Ftruncate(fd int, length int64) error {
	return syserr.FromErrno(syserr.Ftruncate, unix.Ftruncate(fd, length))
}

func Lseek(fd int, offset int64, whence int) (int64, error) {
	off, err := unix.Seek(fd, offset, whence)
	if err != nil {
		return -1, syserr.FromErrno(syserr.Lseek, err)
	}

	return off, nil
}

func Link(oldpath, newpath string) error {
	return syserr.FromErrno(syserr.Link, unix.Link(oldpath, newpath))
}

func Linkat(olddirfd int, oldpath string, newdirfd int, newpath string, flags int) error {
	return syserr.FromErrno(syserr.Linkat, unix.Linkat(olddirfd, oldpath, newdirfd, newpath, flags))
}

func Unlink(path string) error {
	return syserr.FromErrno(syserr.Unlink, unix.Unlink(path))
}

func Unlinkat(dirfd int, path string, flags int) error {
	return syserr.FromErrno(syserr.Unlinkat, unix.Unlinkat(dirfd, path, flags))
}

func Mkdir(path string, mode uint32) error {
	return syserr.FromErrno(syserr.Mkdir, unix.Mkdir(path, mode))
}

func Mkdirat(dirfd int, path string, mode uint32) error {
	return syserr.FromErrno(syserr.Mkdirat, unix.Mkdirat(dirfd, path, mode))
}

func Rmdir(path string) error {
	return syserr.FromErrno(syserr.Rmdir, unix.Rmdir(path))
}
