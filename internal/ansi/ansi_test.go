package ansi_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/ansi"
	"codeberg.org/mutker/oserr/internal/syserr"
)

func TestGetenv(t *testing.T) {
	t.Setenv("OSERR_ANSI_TEST", "value")

	v, err := ansi.Getenv("OSERR_ANSI_TEST")
	require.NoError(t, err)
	assert.Equal(t, "value", v)
}

func TestGetenvUndefined(t *testing.T) {
	_, err := ansi.Getenv("DOESNOTEXISTNOTEXIST")
	require.Error(t, err)

	e, ok := syserr.As(err)
	require.True(t, ok)
	assert.Equal(t, syserr.Getenv, e.Op())
	assert.True(t, errors.Is(err, syserr.Getenv))
	assert.Equal(t, 0, e.Code())
	assert.Contains(t, e.Literal(), "not defined")
	assert.Equal(t, "getenv: environment variable DOESNOTEXISTNOTEXIST not defined!", e.Error())
}

func TestStrtol(t *testing.T) {
	tests := []struct {
		in   string
		base int
		want int64
		end  int
	}{
		{"42", 10, 42, 2},
		{"  -17xyz", 10, -17, 5},
		{"+7", 0, 7, 2},
		{"0x1f", 0, 31, 4},
		{"0X1F", 16, 31, 4},
		{"1f", 16, 31, 2},
		{"0755", 0, 493, 4},
		{"0", 0, 0, 1},
		{"0x", 16, 0, 1},
		{"101", 2, 5, 3},
		{"zz", 36, 1295, 2},
		{"9223372036854775807", 10, math.MaxInt64, 19},
		{"-9223372036854775808", 10, math.MinInt64, 20},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, end, err := ansi.Strtol(tt.in, tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestStrtolNoDigits(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "-", "+x"} {
		_, end, err := ansi.Strtol(in, 10)
		require.Error(t, err, in)
		assert.Equal(t, 0, end)

		e, ok := syserr.As(err)
		require.True(t, ok)
		assert.Equal(t, syserr.Strtol, e.Op())
		assert.Equal(t, 0, e.Code())
		assert.Equal(t, "strtol: no digits found", e.Error())
	}
}

func TestStrtolRange(t *testing.T) {
	got, end, err := ansi.Strtol("9223372036854775808", 10)
	assert.True(t, syserr.IsCode(err, unix.ERANGE))
	assert.Equal(t, int64(math.MaxInt64), got)
	assert.Equal(t, 19, end)

	got, _, err = ansi.Strtol("-99999999999999999999", 10)
	assert.True(t, syserr.IsCode(err, unix.ERANGE))
	assert.Equal(t, int64(math.MinInt64), got)

	_, _, err = ansi.Strtol("1", 1)
	assert.True(t, syserr.IsCode(err, unix.EINVAL))
	_, _, err = ansi.Strtol("1", 37)
	assert.True(t, syserr.IsCode(err, unix.EINVAL))
}

func TestStrftime(t *testing.T) {
	tm := time.Date(2018, time.March, 4, 15, 6, 7, 0, time.UTC)

	s, err := ansi.Strftime("%Y-%m-%d %H:%M:%S %a %b %j %p %%", tm, 64)
	require.NoError(t, err)
	assert.Equal(t, "2018-03-04 15:06:07 Sun Mar 063 PM %", s)

	s, err = ansi.Strftime("%F", tm, 11)
	require.NoError(t, err)
	assert.Equal(t, "2018-03-04", s)

	_, err = ansi.Strftime("%F", tm, 10)
	require.Error(t, err)
	e, ok := syserr.As(err)
	require.True(t, ok)
	assert.Equal(t, syserr.Strftime, e.Op())
	assert.Equal(t, "strftime: destination buffer too small", e.Error())
}

func TestTime(t *testing.T) {
	now, err := ansi.Time()
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Unix(), now, 5)
}

func TestGmtimeR(t *testing.T) {
	tm, err := ansi.GmtimeR(0)
	require.NoError(t, err)
	assert.Equal(t, 1970, tm.Year())

	_, err = ansi.GmtimeR(math.MaxInt64)
	require.Error(t, err)
	e, ok := syserr.As(err)
	require.True(t, ok)
	assert.Equal(t, syserr.GmtimeR, e.Op())
	assert.Equal(t, "Year doesn't fit into integer", e.Literal())
}

func TestSystem(t *testing.T) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}

	avail, err := ansi.System("")
	require.NoError(t, err)
	assert.NotZero(t, avail)

	status, err := ansi.System("true")
	require.NoError(t, err)
	assert.Zero(t, status)

	status, err = ansi.System("exit 3")
	require.Error(t, err)
	assert.Equal(t, "system: child failed", err.Error())
	assert.Equal(t, 3, unix.WaitStatus(status).ExitStatus())
}

func TestStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream")

	_, err := ansi.Fopen(path, "q")
	assert.True(t, syserr.IsCode(err, unix.EINVAL))

	_, err = ansi.Fopen(path, "r")
	assert.True(t, syserr.IsCode(err, unix.ENOENT))
	assert.True(t, errors.Is(err, syserr.Fopen))

	s, err := ansi.Fopen(path, "w")
	require.NoError(t, err)
	fd, err := s.Fileno()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, fd, 0)

	require.NoError(t, s.Fputs("hello "))
	n, err := s.Fwrite([]byte("world"))
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.NoError(t, s.Fflush())
	require.NoError(t, s.Fclose())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(data))

	_, err = s.Fileno()
	assert.True(t, syserr.IsCode(err, unix.EBADF))
	assert.True(t, syserr.IsCode(s.Fclose(), unix.EBADF))
	assert.True(t, syserr.IsCode(s.Fputs("x"), unix.EBADF))
}

func TestStreamFlushFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	s, err := ansi.Fopen(path, "r")
	require.NoError(t, err)

	require.NoError(t, s.Fputs("buffered"))
	err = s.Fflush()
	assert.True(t, syserr.IsCode(err, unix.EBADF))
	assert.True(t, errors.Is(err, syserr.Fflush))

	err = s.Fclose()
	require.Error(t, err)
	assert.True(t, errors.Is(err, syserr.Fclose))
}

func TestFdopen(t *testing.T) {
	_, err := ansi.Fdopen(-1, "w")
	assert.True(t, syserr.IsCode(err, unix.EBADF))
	assert.True(t, errors.Is(err, syserr.Fdopen))

	_, err = ansi.Fdopen(1, "")
	assert.True(t, syserr.IsCode(err, unix.EINVAL))
}
