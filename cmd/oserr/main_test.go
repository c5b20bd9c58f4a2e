package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"codeberg.org/mutker/oserr/internal/errors"
	"codeberg.org/mutker/oserr/internal/journal"
	"codeberg.org/mutker/oserr/internal/syserr"
)

type testApp struct {
	*app
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func withConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	db := filepath.Join(dir, "journal.db")
	path := filepath.Join(dir, "oserr.toml")
	content := "log_level = \"error\"\njournal_db = \"" + db + "\"\njournal_batch_size = 1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("OSERR_CONFIG", path)

	return dir
}

func execute(args ...string) (*testApp, error) {
	ta := &testApp{stdout: &bytes.Buffer{}, stderr: &bytes.Buffer{}}
	ta.app = &app{out: ta.stdout, errOut: ta.stderr}

	return ta, run(context.Background(), ta.app, args)
}

func TestUnlinkMissing(t *testing.T) {
	dir := withConfig(t)
	missing := filepath.Join(dir, "missing")

	ta, err := execute("unlink", missing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errReported))

	want := "Error: unlink: " + unix.ENOENT.Error() + " (" + strconv.Itoa(int(unix.ENOENT)) + ")\n"
	assert.Equal(t, want, ta.stderr.String())
}

func TestUnlinkContinuesAfterFailure(t *testing.T) {
	dir := withConfig(t)
	present := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(present, nil, 0o600))

	ta, err := execute("unlink", filepath.Join(dir, "missing"), present)
	require.Error(t, err)
	assert.NoFileExists(t, present)
	assert.Equal(t, 1, strings.Count(ta.stderr.String(), "Error: "))
}

func TestFailuresAreJournaled(t *testing.T) {
	dir := withConfig(t)

	_, err := execute("--journal", "unlink", filepath.Join(dir, "missing"))
	require.Error(t, err)
	_, err = execute("--journal", "getenv", "OSERR_CMD_TEST_UNDEFINED")
	require.Error(t, err)

	ta, err := execute("--json", "journal", "list")
	require.NoError(t, err)

	var entries []journal.Entry
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "getenv", entries[0].Op)
	assert.Equal(t, "environment variable OSERR_CMD_TEST_UNDEFINED not defined!", entries[0].Literal)
	assert.Equal(t, "unlink", entries[1].Op)
	assert.Equal(t, int(unix.ENOENT), entries[1].Code)

	ta, err = execute("journal", "prune", "--older-than", "1ns")
	require.NoError(t, err)
	assert.Equal(t, "removed 2 entries\n", ta.stdout.String())
	assert.NoFileExists(t, filepath.Join(dir, "oserr-prune.pid"))
}

func TestFailuresNotJournaledByDefault(t *testing.T) {
	dir := withConfig(t)

	_, err := execute("unlink", filepath.Join(dir, "missing"))
	require.Error(t, err)

	ta, err := execute("journal", "list")
	require.NoError(t, err)
	assert.Empty(t, ta.stdout.String())
}

func TestPruneBusy(t *testing.T) {
	dir := withConfig(t)
	lock := filepath.Join(dir, "oserr-prune.pid")
	require.NoError(t, os.WriteFile(lock, []byte(strconv.Itoa(os.Getpid())), 0o600))

	_, err := execute("journal", "prune")
	require.Error(t, err)

	var appErr errors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errors.ErrResourceBusy, appErr.Code())
}

func TestStrerror(t *testing.T) {
	withConfig(t)

	ta, err := execute("strerror", "2")
	require.NoError(t, err)
	assert.Equal(t, unix.ENOENT.Error()+"\n", ta.stdout.String())

	ta, err = execute("strerror", "--domain", "resolver", "--", "-2")
	require.NoError(t, err)
	assert.Equal(t, syserr.Strerror(syserr.DomainResolver, syserr.EAINoName)+"\n", ta.stdout.String())

	ta, err = execute("--json", "strerror", "0x0d")
	require.NoError(t, err)
	var res strerrorResult
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &res))
	assert.Equal(t, strerrorResult{Domain: "errno", Code: 13, Text: unix.EACCES.Error()}, res)
}

func TestStrerrorRejectsInput(t *testing.T) {
	withConfig(t)

	tests := []struct {
		args []string
		code errors.ErrorCode
	}{
		{[]string{"strerror", "--domain", "posix", "2"}, errors.ErrUnknownDomain},
		{[]string{"strerror", "two"}, errors.ErrInvalidCode},
		{[]string{"strerror", "2x"}, errors.ErrInvalidCode},
	}

	for _, tt := range tests {
		_, err := execute(tt.args...)
		require.Error(t, err)

		var appErr errors.Error
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, tt.code, appErr.Code())
	}
}

func TestOps(t *testing.T) {
	withConfig(t)

	ta, err := execute("ops")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(ta.stdout.String()), "\n")
	require.Len(t, lines, len(syserr.Ops()))
	assert.Equal(t, strconv.Itoa(int(syserr.Accept))+"\taccept", lines[0])
	assert.Contains(t, lines, strconv.Itoa(int(syserr.Open))+"\topen")
}

func TestGetenv(t *testing.T) {
	withConfig(t)
	t.Setenv("OSERR_CMD_TEST", "hello")

	ta, err := execute("getenv", "OSERR_CMD_TEST")
	require.NoError(t, err)
	assert.Equal(t, "hello\n", ta.stdout.String())

	ta, err = execute("getenv", "OSERR_CMD_TEST_UNDEFINED")
	require.Error(t, err)
	assert.Equal(t, "Error: getenv: environment variable OSERR_CMD_TEST_UNDEFINED not defined!\n", ta.stderr.String())
}

func TestStrtol(t *testing.T) {
	withConfig(t)

	ta, err := execute("--json", "strtol", "--base", "16", "ff")
	require.NoError(t, err)
	var res strtolResult
	require.NoError(t, json.Unmarshal(ta.stdout.Bytes(), &res))
	assert.Equal(t, strtolResult{Value: 255, End: 2}, res)

	ta, err = execute("strtol", "zz")
	require.Error(t, err)
	assert.Equal(t, "Error: strtol: no digits found\n", ta.stderr.String())
}

func TestHostname(t *testing.T) {
	withConfig(t)

	want, err := os.Hostname()
	require.NoError(t, err)

	ta, err := execute("hostname")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", ta.stdout.String())
}

func TestInvalidConfig(t *testing.T) {
	withConfig(t)

	_, err := execute("--log-level", "loud", "ops")
	require.Error(t, err)

	var appErr errors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, errors.ErrInvalidLogLevel, appErr.Code())
}
