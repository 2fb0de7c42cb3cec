package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"
)

const sampleInput = `{"id": 1, "result": {"a": {"x": 1}, "b": [1, 2, 3]}}`

// runCommand runs the command with the given args and input
func runCommand(t *testing.T, input string, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	exitCode = run(context.Background(), append([]string{"jsonsplit"}, args...), strings.NewReader(input), &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), exitCode
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		input string
		args  []string
		want  string
	}{
		{
			name:  "default target key",
			input: sampleInput,
			want:  "{\"x\":1}\n[1,2,3]\n",
		},
		{
			name:  "empty collection",
			input: `{"result": {}}`,
			want:  "",
		},
		{
			name:  "other target key",
			input: `{"result": {"a": 1}, "data": {"b": 2, "c": 3}}`,
			args:  []string{"-key", "data"},
			want:  "2\n3\n",
		},
		{
			name:  "filter",
			input: `{"result": {"a": {"ok": true}, "b": {"ok": false}, "c": {"ok": 1}}}`,
			args:  []string{"-where", "$[0].ok"},
			want:  "{\"ok\":true}\n{\"ok\":1}\n",
		},
		{
			name:  "no color by default on pipes",
			input: sampleInput,
			args:  []string{"-color", "auto"},
			want:  "{\"x\":1}\n[1,2,3]\n",
		},
		{
			name:  "forced color",
			input: `{"result": {"a": true}}`,
			args:  []string{"-color", "always"},
			want:  "\033[33mtrue\033[0m\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, exitCode := runCommand(t, tt.input, tt.args...)
			require.Equal(t, 0, exitCode, stderr)
			require.Equal(t, tt.want, stdout)
			require.Empty(t, stderr)
		})
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		args     []string
		exitCode int
		stdout   string
		stderr   string
	}{
		{
			name:     "missing target key",
			input:    `{"other":{"k":{}}}`,
			exitCode: 1,
			stderr:   "jsonsplit: structure error: target key not found",
		},
		{
			name:     "not an object",
			input:    `{"result": [1]}`,
			exitCode: 1,
			stderr:   "jsonsplit: structure error: expected object after target key: StartArray",
		},
		{
			name:     "syntax error after some records",
			input:    `{"result": {"a": 1, "b": [}}`,
			exitCode: 1,
			stdout:   "1\n",
			stderr:   "jsonsplit: stream error: read: syntax error at L1,C",
		},
		{
			name:     "bad flag",
			args:     []string{"-color", "pink"},
			exitCode: 2,
			stderr:   "color must be auto, always or never",
		},
		{
			name:     "missing input file",
			args:     []string{"does-not-exist.json"},
			exitCode: 1,
			stderr:   "does-not-exist.json",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, exitCode := runCommand(t, tt.input, tt.args...)
			require.Equal(t, tt.exitCode, exitCode)
			require.Equal(t, tt.stdout, stdout)
			require.Contains(t, stderr, tt.stderr)
		})
	}
}

func TestRunHelp(t *testing.T) {
	stdout, stderr, exitCode := runCommand(t, "", "-h")
	require.Equal(t, 0, exitCode)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "Usage: jsonsplit")
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "deals.json.zst")
	output := filepath.Join(dir, "deals.ndjson")

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(input, enc.EncodeAll([]byte(sampleInput), nil), 0o600))

	stdout, stderr, exitCode := runCommand(t, "", "-o", output, "-stats", input)
	require.Equal(t, 0, exitCode, stderr)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "jsonsplit: 2 records written, 0 filtered out, 16 bytes")

	written, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Equal(t, "{\"x\":1}\n[1,2,3]\n", string(written))
}

func TestRunDebug(t *testing.T) {
	_, stderr, exitCode := runCommand(t, sampleInput, "-debug")
	require.Equal(t, 0, exitCode)
	require.Contains(t, stderr, `found collection "result"`)
	require.Contains(t, stderr, `record "a" written (8 bytes)`)
	require.Contains(t, stderr, "end of collection after 2 records")
}

type brokenPipe struct{}

func (brokenPipe) Write([]byte) (int, error) {
	return 0, syscall.EPIPE
}

func TestRunBrokenPipe(t *testing.T) {
	var stderr bytes.Buffer
	exitCode := run(context.Background(), []string{"jsonsplit"}, strings.NewReader(sampleInput), brokenPipe{}, &stderr)
	require.Equal(t, 0, exitCode)
	require.Empty(t, stderr.String())
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	exitCode := run(ctx, []string{"jsonsplit"}, strings.NewReader(sampleInput), &stdout, &stderr)
	require.Equal(t, 1, exitCode)
	require.Contains(t, stderr.String(), "context canceled")
}
