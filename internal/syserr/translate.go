package syserr

import (
	"errors"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"golang.org/x/sys/unix"
)

// FromErrno translates the error of an x/sys style call, which hands back
// the errno of the very call that failed. A nil err yields nil.
//
//	fd, err := unix.Open(path, flags, mode)
//	if err != nil {
//		return -1, syserr.FromErrno(syserr.Open, err)
//	}
//
// Errors that carry no errno become literal errors with the error's text.
func FromErrno(op Op, err error) error {
	if err == nil {
		return nil
	}

	var errno unix.Errno
	if errors.As(err, &errno) {
		return New(op, int(errno))
	}

	return NewLiteral(op, err.Error())
}

// FromReturn translates primitives that return the error number directly
// and zero on success. The ambient errno is never consulted.
func FromReturn(op Op, rc int) error {
	if rc == 0 {
		return nil
	}

	return New(op, rc)
}

// FromResolver translates a name resolution status code.
func FromResolver(op Op, rc int) error {
	if rc == 0 {
		return nil
	}

	return NewDomain(op, DomainResolver, rc, "")
}

// FromNVML translates an NVML return code.
func FromNVML(op Op, ret nvml.Return) error {
	if ret == nvml.SUCCESS {
		return nil
	}

	return NewDomain(op, DomainNVML, int(ret), "")
}

// As returns the *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// CodeOf returns the numeric code of the *Error in err's chain.
func CodeOf(err error) (int, bool) {
	e, ok := As(err)
	if !ok {
		return 0, false
	}

	return e.Code(), true
}

// OpOf returns the failing operation of the *Error in err's chain.
func OpOf(err error) (Op, bool) {
	e, ok := As(err)
	if !ok {
		return OpFirst, false
	}

	return e.Op(), true
}

// IsCode reports whether err is an errno domain *Error with the given code.
func IsCode(err error, code unix.Errno) bool {
	e, ok := As(err)

	return ok && e.Domain() == DomainErrno && e.Code() == int(code)
}
