package main

import (
	"bytes"
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opal-lang/semact/core/ast"
)

func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestReplaySexp(t *testing.T) {
	out, errOut, err := run(t, "", "replay", "testdata/hello.yaml")
	require.NoError(t, err)
	assert.Equal(t, "(fcall puts (list (str \"hi\")))\n", out)
	assert.Empty(t, errOut)
}

func TestReplayStdin(t *testing.T) {
	doc, err := os.ReadFile("testdata/hello.yaml")
	require.NoError(t, err)

	out, _, err := run(t, string(doc), "replay", "-")
	require.NoError(t, err)
	assert.Equal(t, "(fcall puts (list (str \"hi\")))\n", out)
}

func TestReplayCBOR(t *testing.T) {
	out, _, err := run(t, "", "replay", "--format", "cbor", "testdata/hello.yaml")
	require.NoError(t, err)

	node, err := ast.DecodeCanonical([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "fcall", node.Kind)
	assert.Equal(t, "puts", node.Name)
	assert.Equal(t, "hello.rb", node.File)
}

func TestReplayUnknownFormat(t *testing.T) {
	_, _, err := run(t, "", "replay", "--format", "xml", "testdata/hello.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}

func TestReplayFailingParse(t *testing.T) {
	out, errOut, err := run(t, "", "replay", "--no-color", "testdata/failing.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, errParseFailed)
	assert.Equal(t, "()\n", out)
	assert.Equal(t, "failing.rb:1 Can't assign to nil\n", errOut)
}

func TestReplayStats(t *testing.T) {
	_, errOut, err := run(t, "", "replay", "--stats", "testdata/hello.yaml")
	require.NoError(t, err)
	assert.Contains(t, errOut, "errors=0")
	assert.Contains(t, errOut, "flipflops=0")
}

func TestReplayVerboseAndQuietConflict(t *testing.T) {
	_, _, err := run(t, "", "replay", "-v", "-q", "testdata/hello.yaml")
	require.Error(t, err)
}

func TestReplayMissingFile(t *testing.T) {
	_, _, err := run(t, "", "replay", "testdata/none.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load testdata/none.yaml")
}

func TestReplayWatchNeedsFile(t *testing.T) {
	_, _, err := run(t, "", "replay", "--watch", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch needs a trace file")
}

func TestDigest(t *testing.T) {
	out, _, err := run(t, "", "digest", "testdata/hello.yaml", "testdata/failing.yaml")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Regexp(t, regexp.MustCompile(`^blake2b:[0-9a-f]{64}  testdata/hello\.yaml$`), lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "  testdata/failing.yaml"))

	again, _, err := run(t, "", "digest", "testdata/hello.yaml")
	require.NoError(t, err)
	assert.Equal(t, lines[0]+"\n", again)
}

func TestOps(t *testing.T) {
	out, _, err := run(t, "", "ops")
	require.NoError(t, err)
	assert.Contains(t, out, "callop")
	assert.Contains(t, out, "dyna_push")

	out, _, err = run(t, "", "ops", "--kinds")
	require.NoError(t, err)
	assert.Contains(t, strings.Split(out, "\n"), "dasgn_curr")
}

func TestNewLoggerStripsTimeAndLevel(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, true).Debug("action", "name", "read")
	assert.Equal(t, "msg=action name=read\n", buf.String())

	buf.Reset()
	newLogger(&buf, false).Debug("action")
	assert.Empty(t, buf.String())
}

func TestShouldUseColor(t *testing.T) {
	var buf bytes.Buffer
	assert.False(t, shouldUseColor(&buf, false), "buffers are not terminals")
	assert.False(t, shouldUseColor(os.Stderr, true))
}
