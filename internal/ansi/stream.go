package ansi

import (
	"bufio"
	"io"

	"go.uber.org/multierr"
	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/syserr"
)

const streamBufSize = 4096

// Stream is a buffered output stream over a file descriptor, in the manner
// of a stdio FILE opened for writing.
type Stream struct {
	fd int
	w  *bufio.Writer
}

type fdWriter int

func (fd fdWriter) Write(p []byte) (int, error) {
	var written int
	for written < len(p) {
		n, err := unix.Write(int(fd), p[written:])
		if err != nil {
			return written, err
		}
		if n == 0 {
			return written, io.ErrShortWrite
		}
		written += n
	}

	return written, nil
}

// Fopen opens path with a stdio mode string: "r", "w", "a", optionally
// followed by "+", with "b" ignored. Any other mode fails with EINVAL.
func Fopen(path, mode string) (*Stream, error) {
	flags, ok := modeFlags(mode)
	if !ok {
		return nil, syserr.New(syserr.Fopen, int(unix.EINVAL))
	}

	fd, err := unix.Open(path, flags|unix.O_CLOEXEC, 0o666)
	if err != nil {
		return nil, syserr.FromErrno(syserr.Fopen, err)
	}

	return newStream(fd), nil
}

// Fdopen wraps an already open descriptor. The descriptor must be valid.
func Fdopen(fd int, mode string) (*Stream, error) {
	if _, ok := modeFlags(mode); !ok {
		return nil, syserr.New(syserr.Fdopen, int(unix.EINVAL))
	}
	if _, err := unix.FcntlInt(uintptr(fd), unix.F_GETFL, 0); err != nil {
		return nil, syserr.FromErrno(syserr.Fdopen, err)
	}

	return newStream(fd), nil
}

func newStream(fd int) *Stream {
	return &Stream{fd: fd, w: bufio.NewWriterSize(fdWriter(fd), streamBufSize)}
}

// Fileno returns the descriptor, or EBADF once the stream is closed.
func (s *Stream) Fileno() (int, error) {
	if s.fd < 0 {
		return -1, syserr.New(syserr.Fileno, int(unix.EBADF))
	}

	return s.fd, nil
}

func (s *Stream) Fputs(str string) error {
	if s.fd < 0 {
		return syserr.New(syserr.Fputs, int(unix.EBADF))
	}
	if _, err := s.w.WriteString(str); err != nil {
		return syserr.FromErrno(syserr.Fputs, err)
	}

	return nil
}

// Fwrite writes p in full. A short count is a failure even when the
// underlying error carries no errno.
func (s *Stream) Fwrite(p []byte) (int, error) {
	if s.fd < 0 {
		return 0, syserr.New(syserr.Fwrite, int(unix.EBADF))
	}

	n, err := s.w.Write(p)
	if n != len(p) {
		if err == nil {
			err = io.ErrShortWrite
		}
		return n, syserr.FromErrno(syserr.Fwrite, err)
	}

	return n, nil
}

func (s *Stream) Fflush() error {
	if s.fd < 0 {
		return syserr.New(syserr.Fflush, int(unix.EBADF))
	}

	return syserr.FromErrno(syserr.Fflush, s.w.Flush())
}

// Fclose flushes and closes the stream. Both failures are reported; the
// descriptor is released either way.
func (s *Stream) Fclose() error {
	if s.fd < 0 {
		return syserr.New(syserr.Fclose, int(unix.EBADF))
	}

	flushErr := s.w.Flush()
	closeErr := unix.Close(s.fd)
	s.fd = -1

	return multierr.Combine(
		syserr.FromErrno(syserr.Fclose, flushErr),
		syserr.FromErrno(syserr.Fclose, closeErr),
	)
}

func modeFlags(mode string) (int, bool) {
	if mode == "" {
		return 0, false
	}

	plus := false
	for _, c := range mode[1:] {
		switch c {
		case '+':
			plus = true
		case 'b':
		default:
			return 0, false
		}
	}

	switch mode[0] {
	case 'r':
		if plus {
			return unix.O_RDWR, true
		}
		return unix.O_RDONLY, true
	case 'w':
		if plus {
			return unix.O_RDWR | unix.O_CREAT | unix.O_TRUNC, true
		}
		return unix.O_WRONLY | unix.O_CREAT | unix.O_TRUNC, true
	case 'a':
		if plus {
			return unix.O_RDWR | unix.O_CREAT | unix.O_APPEND, true
		}
		return unix.O_WRONLY | unix.O_CREAT | unix.O_APPEND, true
	}

	return 0, false
}
