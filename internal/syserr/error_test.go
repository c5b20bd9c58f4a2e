package syserr

import (
	"errors"
	"io/fs"
	"strconv"
	"sync"
	"testing"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestOpNames(t *testing.T) {
	for _, op := range Ops() {
		assert.NotEmpty(t, op.String(), "op %d has no name", int(op))
		assert.NotEqual(t, unknownOp, op.String())
	}

	assert.Equal(t, "?UNK?", OpFirst.String())
	assert.Equal(t, "?UNK?", OpLast.String())
	assert.Equal(t, "?UNK?", Op(-7).String())
	assert.Equal(t, "?UNK?", (OpLast + 100).String())
}

func TestOpsOrderAndLookup(t *testing.T) {
	ops := Ops()
	require.Len(t, ops, int(OpLast-OpFirst-1))
	assert.Equal(t, Accept, ops[0])
	assert.Equal(t, Write, ops[len(ops)-1])

	seen := make(map[string]bool, len(ops))
	for i, op := range ops {
		if i > 0 {
			assert.Less(t, ops[i-1], op)
		}
		assert.False(t, seen[op.String()], "duplicate name %s", op)
		seen[op.String()] = true

		got, ok := Lookup(op.String())
		require.True(t, ok)
		assert.Equal(t, op, got)
	}

	_, ok := Lookup("nosuchcall")
	assert.False(t, ok)
	_, ok = Lookup("")
	assert.False(t, ok)
}

func TestErrnoMessage(t *testing.T) {
	err := New(Open, int(unix.ENOENT))

	want := "open: " + unix.ENOENT.Error() + " (" + strconv.Itoa(int(unix.ENOENT)) + ")"
	assert.Equal(t, want, err.Error())
	assert.Equal(t, Open, err.Op())
	assert.Equal(t, "open", err.Name())
	assert.Equal(t, DomainErrno, err.Domain())
	assert.Empty(t, err.Literal())
}

func TestMessageIsLazyAndCached(t *testing.T) {
	err := New(Read, int(unix.EBADF))
	assert.False(t, err.formatted())
	assert.Equal(t, int(unix.EBADF), err.Code())
	assert.False(t, err.formatted(), "Code must not build the message")

	first := err.Error()
	assert.True(t, err.formatted())
	p := err.msg.Load()

	second := err.Error()
	assert.Equal(t, first, second)
	assert.Same(t, p, err.msg.Load(), "message must not be rebuilt")
	assert.Equal(t, int(unix.EBADF), err.Code())
}

func TestLiteralError(t *testing.T) {
	err := NewLiteral(Getenv, "environment variable FOO not defined!")

	assert.Equal(t, 0, err.Code())
	assert.Equal(t, "getenv: environment variable FOO not defined!", err.Error())
	assert.NoError(t, err.Unwrap())
}

func TestLiteralTakesPrecedence(t *testing.T) {
	err := NewDomain(Strtol, DomainErrno, int(unix.ERANGE), "out of range")
	assert.Equal(t, "strtol: out of range", err.Error())
	assert.Equal(t, int(unix.ERANGE), err.Code())
}

func TestResolverDomain(t *testing.T) {
	err := NewDomain(Getaddrinfo, DomainResolver, EAINoName, "")
	assert.Equal(t, "getaddrinfo: Name or service not known (-2)", err.Error())
	assert.NoError(t, err.Unwrap())

	// Same number, different domains, different text.
	assert.NotEqual(t, Strerror(DomainErrno, 2), Strerror(DomainResolver, 2))
	assert.Equal(t, "Unknown error", Strerror(DomainResolver, 2))
}

func TestNVMLDomain(t *testing.T) {
	err := NewDomain(NvmlInit, DomainNVML, int(nvml.ERROR_LIBRARY_NOT_FOUND), "")
	assert.NotEmpty(t, Strerror(DomainNVML, err.Code()))
	assert.Contains(t, err.Error(), "nvmlInit: ")
	assert.True(t, errors.Is(err, nvml.ERROR_LIBRARY_NOT_FOUND))
}

func TestStrerrorFallback(t *testing.T) {
	assert.NotEmpty(t, Strerror(DomainErrno, 99999))
	assert.NotEmpty(t, Strerror(DomainErrno, -1))
	assert.Equal(t, "Unknown error", Strerror(DomainResolver, 12345))
}

func TestErrorsIs(t *testing.T) {
	var err error = New(Open, int(unix.ENOENT))

	assert.True(t, errors.Is(err, Open))
	assert.False(t, errors.Is(err, Read))
	assert.True(t, errors.Is(err, unix.ENOENT))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.Is(err, unix.EACCES))

	var target *Error
	require.True(t, errors.As(err, &target))
	assert.Equal(t, int(unix.ENOENT), target.Code())
}

func TestClone(t *testing.T) {
	orig := New(Unlink, int(unix.EACCES))
	fresh := orig.Clone()
	assert.False(t, fresh.formatted())

	msg := orig.Error()
	dup := orig.Clone()
	assert.True(t, dup.formatted())
	assert.Equal(t, msg, dup.Error())
	assert.NotSame(t, orig.msg.Load(), dup.msg.Load())

	assert.Equal(t, msg, fresh.Error())
	assert.Equal(t, orig.Code(), fresh.Code())
	assert.Equal(t, orig.Op(), fresh.Op())
}

func TestConcurrentFirstFormat(t *testing.T) {
	err := New(Write, int(unix.EPIPE))

	var wg sync.WaitGroup
	got := make([]string, 16)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = err.Error()
		}(i)
	}
	wg.Wait()

	for _, s := range got {
		assert.Equal(t, got[0], s)
	}
}

func TestDomainString(t *testing.T) {
	for _, d := range []Domain{DomainErrno, DomainResolver, DomainNVML} {
		parsed, ok := ParseDomain(d.String())
		require.True(t, ok)
		assert.Equal(t, d, parsed)
	}
	_, ok := ParseDomain("bogus")
	assert.False(t, ok)
}
