// Package syserr translates failed system and library calls into typed
// errors that keep the failing operation, the numeric code and an optional
// diagnostic literal, and only format a message when one is asked for.
package syserr

import (
	"strconv"
	"sync/atomic"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"golang.org/x/sys/unix"
)

// Error is one failed call of a wrapped primitive.
//
// Construction only stores the raw fields; the human readable message is
// built on the first call to Error and memoized. The op, code, domain and
// literal never change after construction.
type Error struct {
	op      Op
	domain  Domain
	code    int
	literal string

	msg atomic.Pointer[string]
}

// New returns an errno domain error for op.
func New(op Op, code int) *Error {
	return &Error{op: op, code: code}
}

// NewLiteral returns an error without a numeric code, for failures that the
// primitive signals through an out-of-band condition.
func NewLiteral(op Op, literal string) *Error {
	return &Error{op: op, literal: literal}
}

// NewDomain returns an error whose code lives in domain. A non-empty literal
// takes precedence over code resolution when the message is built.
func NewDomain(op Op, domain Domain, code int, literal string) *Error {
	return &Error{op: op, domain: domain, code: code, literal: literal}
}

// Op returns the failing operation.
func (e *Error) Op() Op { return e.op }

// Name returns the short name of the failing operation.
func (e *Error) Name() string { return e.op.String() }

// Code returns the stored numeric code, zero for literal-only errors.
func (e *Error) Code() int { return e.code }

// Domain returns the numeric space of Code.
func (e *Error) Domain() Domain { return e.domain }

// Literal returns the diagnostic text supplied at the call site, if any.
func (e *Error) Literal() string { return e.literal }

// Error returns "<op>: <description> (<code>)", or "<op>: <literal>" when a
// literal was supplied.
func (e *Error) Error() string {
	if m := e.msg.Load(); m != nil {
		return *m
	}

	m := e.format()
	// Concurrent first callers compute identical text; the first store wins.
	e.msg.CompareAndSwap(nil, &m)

	return *e.msg.Load()
}

func (e *Error) format() string {
	name := e.op.String()
	if e.literal != "" {
		return name + ": " + e.literal
	}

	return name + ": " + Strerror(e.domain, e.code) + " (" + strconv.Itoa(e.code) + ")"
}

// Unwrap exposes the underlying code as a typed error so that errors.Is
// works against unix errno values, fs.ErrNotExist and friends, and nvml
// return codes.
func (e *Error) Unwrap() error {
	if e.code == 0 {
		return nil
	}

	switch e.domain {
	case DomainErrno:
		return unix.Errno(e.code)
	case DomainNVML:
		return nvml.Return(e.code)
	default:
		return nil
	}
}

// Is matches an Op target, which gives per-operation matching:
//
//	errors.Is(err, syserr.Open)
func (e *Error) Is(target error) bool {
	op, ok := target.(Op)
	if !ok {
		return false
	}

	return e.op == op
}

// Clone returns an independent copy. A message already computed for e is
// duplicated into the copy rather than shared.
func (e *Error) Clone() *Error {
	c := &Error{
		op:      e.op,
		domain:  e.domain,
		code:    e.code,
		literal: e.literal,
	}
	if m := e.msg.Load(); m != nil {
		s := *m
		c.msg.Store(&s)
	}

	return c
}

// formatted reports whether the message has been built yet.
func (e *Error) formatted() bool {
	return e.msg.Load() != nil
}
