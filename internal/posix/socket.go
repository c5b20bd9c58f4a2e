package posix

import (
	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/syserr"
)

func Socket(domain, typ, proto int) (int, error) {
	fd, err := unix.Socket(domain, typ|unix.SOCK_CLOEXEC, proto)
	if err != nil {
		return -1, syserr.FromErrno(syserr.Socket, err)
	}

	return fd, nil
}

func Bind(fd int, sa unix.Sockaddr) error {
	return syserr.FromErrno(syserr.Bind, unix.Bind(fd, sa))
}

func Listen(fd, backlog int) error {
	return syserr.FromErrno(syserr.Listen, unix.Listen(fd, backlog))
}

func Accept(fd int) (int, unix.Sockaddr, error) {
	nfd, sa, err := unix.Accept4(fd, unix.SOCK_CLOEXEC)
	if err != nil {
		return -1, nil, syserr.FromErrno(syserr.Accept, err)
	}

	return nfd, sa, nil
}

func SetsockoptInt(fd, level, opt, value int) error {
	return syserr.FromErrno(syserr.Setsockopt, unix.SetsockoptInt(fd, level, opt, value))
}

func Shutdown(fd, how int) error {
	return syserr.FromErrno(syserr.Shutdown, unix.Shutdown(fd, how))
}

