package posix

import (
	"crypto/rand"
	"strings"

	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/syserr"
)

const (
	templateSuffix = "XXXXXX"
	tempAttempts   = 100
	tempAlphabet   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Mkstemp creates a unique file from template, whose last six characters
// must be "XXXXXX", and returns the open descriptor and the chosen path.
func Mkstemp(template string) (int, string, error) {
	if !strings.HasSuffix(template, templateSuffix) {
		return -1, "", syserr.New(syserr.Mkstemp, int(unix.EINVAL))
	}

	var err error
	for i := 0; i < tempAttempts; i++ {
		path := fillTemplate(template)
		var fd int
		fd, err = unix.Open(path, unix.O_RDWR|unix.O_CREAT|unix.O_EXCL|unix.O_CLOEXEC, 0o600)
		if err == nil {
			return fd, path, nil
		}
		if err != unix.EEXIST {
			break
		}
	}

	return -1, "", syserr.FromErrno(syserr.Mkstemp, err)
}

// Mkdtemp creates a unique directory from template with mode 0700.
func Mkdtemp(template string) (string, error) {
	if !strings.HasSuffix(template, templateSuffix) {
		return "", syserr.New(syserr.Mkdtemp, int(unix.EINVAL))
	}

	var err error
	for i := 0; i < tempAttempts; i++ {
		path := fillTemplate(template)
		err = unix.Mkdir(path, 0o700)
		if err == nil {
			return path, nil
		}
		if err != unix.EEXIST {
			break
		}
	}

	return "", syserr.FromErrno(syserr.Mkdtemp, err)
}

func fillTemplate(template string) string {
	var b [len(templateSuffix)]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = tempAlphabet[int(b[i])%len(tempAlphabet)]
	}

	return template[:len(template)-len(templateSuffix)] + string(b[:])
}
