package syserr

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestFromErrno(t *testing.T) {
	assert.NoError(t, FromErrno(Open, nil))

	_, err := unix.Open("/nonexistent/oserr/file", unix.O_RDONLY, 0)
	require.Error(t, err)

	got := FromErrno(Open, err)
	e, ok := As(got)
	require.True(t, ok)
	assert.Equal(t, Open, e.Op())
	assert.Equal(t, int(unix.ENOENT), e.Code())

	wrapped := FromErrno(Stat, fmt.Errorf("stat: %w", unix.ENOTDIR))
	code, ok := CodeOf(wrapped)
	require.True(t, ok)
	assert.Equal(t, int(unix.ENOTDIR), code)

	plain := FromErrno(Fwrite, errors.New("short write"))
	e, ok = As(plain)
	require.True(t, ok)
	assert.Equal(t, 0, e.Code())
	assert.Equal(t, "fwrite: short write", e.Error())
}

func TestFromReturn(t *testing.T) {
	assert.NoError(t, FromReturn(Spawn, 0))

	err := FromReturn(Spawn, int(unix.EAGAIN))
	code, ok := CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, int(unix.EAGAIN), code)
	assert.True(t, errors.Is(err, Spawn))
	assert.True(t, IsCode(err, unix.EAGAIN))
}

func TestFromResolverAndNVML(t *testing.T) {
	assert.NoError(t, FromResolver(Getaddrinfo, 0))
	assert.NoError(t, FromNVML(NvmlInit, nvml.SUCCESS))

	e, ok := As(FromResolver(Getaddrinfo, EAIAgain))
	require.True(t, ok)
	assert.Equal(t, DomainResolver, e.Domain())
	assert.False(t, IsCode(e, unix.Errno(3)), "resolver codes are not errno codes")

	e, ok = As(FromNVML(NvmlDeviceGetCount, nvml.ERROR_UNINITIALIZED))
	require.True(t, ok)
	assert.Equal(t, DomainNVML, e.Domain())
	assert.Equal(t, int(nvml.ERROR_UNINITIALIZED), e.Code())
}

func TestOpOf(t *testing.T) {
	op, ok := OpOf(fmt.Errorf("context: %w", New(Mkdir, int(unix.EEXIST))))
	require.True(t, ok)
	assert.Equal(t, Mkdir, op)

	_, ok = OpOf(errors.New("plain"))
	assert.False(t, ok)
}

// Each goroutine sits on its own OS thread and fails in a different way;
// neither may observe the other's code.
func TestNoCrossThreadContamination(t *testing.T) {
	const rounds = 500

	run := func(want unix.Errno, call func() error) error {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		for i := 0; i < rounds; i++ {
			err := call()
			if !IsCode(err, want) {
				return fmt.Errorf("round %d: got %v, want errno %d", i, err, want)
			}
		}
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		errs[0] = run(unix.ENOENT, func() error {
			_, err := unix.Open("/nonexistent/oserr/a", unix.O_RDONLY, 0)
			return FromErrno(Open, err)
		})
	}()
	go func() {
		defer wg.Done()
		errs[1] = run(unix.EBADF, func() error {
			return FromErrno(Close, unix.Close(-1))
		})
	}()
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
}
