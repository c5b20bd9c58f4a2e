package posix

import (
	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/syserr"
)

const direntBufSize = 8192

// Dir is an open directory stream.
type Dir struct {
	fd    int
	buf   []byte
	off   int
	end   int
	names []string
}

func Opendir(path string) (*Dir, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, syserr.FromErrno(syserr.Opendir, err)
	}

	return &Dir{fd: fd, buf: make([]byte, direntBufSize)}, nil
}

// Readdir returns the next entry name, skipping "." and "..". The end of
// the directory is reported as "", nil, like readdir returning NULL with
// errno untouched.
func (d *Dir) Readdir() (string, error) {
	for len(d.names) == 0 {
		if d.off >= d.end {
			n, err := unix.Getdents(d.fd, d.buf)
			if err != nil {
				return "", syserr.FromErrno(syserr.Readdir, err)
			}
			if n <= 0 {
				return "", nil
			}
			d.off, d.end = 0, n
		}

		var consumed int
		consumed, _, d.names = unix.ParseDirent(d.buf[d.off:d.end], -1, d.names[:0])
		d.off += consumed
	}

	name := d.names[0]
	d.names = d.names[1:]

	return name, nil
}

// Fd returns the descriptor backing the stream.
func (d *Dir) Fd() int {
	return d.fd
}

func (d *Dir) Closedir() error {
	err := unix.Close(d.fd)
	d.fd = -1

	return syserr.FromErrno(syserr.Closedir, err)
}
