package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"braids/src/ir/braid"
	"braids/src/util"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// testBlock is a block of named instructions without operands.
type testBlock struct {
	name  string
	insts []string
}

// testFunction is a function of testBlocks.
type testFunction struct {
	name   string
	blocks []braid.Block[string]
}

// ---------------------
// ----- Constants -----
// ---------------------

const testIR = `
define i64 @f(i64 %a, i64 %b) {
entry:
  %c = add i64 %a, %b
  %d = mul i64 %c, 2
  ret i64 %d
}

define i64 @g(i64 %a) {
entry:
  %x = add i64 %a, 1
  %y = add i64 %a, 2
  ret i64 %a
}
`

const testSrc = `package p

func f(a, b int) int {
	c := a + b
	return c * 2
}

func g(a int) int {
	return a
}
`

// ---------------------
// ----- Functions -----
// ---------------------

func (b *testBlock) Name() string { return b.name }
func (b *testBlock) Instructions() []string { return b.insts }
func (b *testBlock) Operands(inst string) []string { return nil }
func (b *testBlock) Users(inst string) []string { return nil }
func (b *testBlock) Format(inst string) string { return inst }

func (f *testFunction) Name() string { return f.name }
func (f *testFunction) NumParams() int { return 0 }
func (f *testFunction) Blocks() []braid.Block[string] { return f.blocks }

// helperExecute runs braids with argv and returns the exit code, stdout and stderr.
func helperExecute(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	stdout, stderr := bytes.Buffer{}, bytes.Buffer{}
	code := execute(context.Background(), argv, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

// helperWrite writes a file with the given name and contents to a temporary directory and returns its path.
func helperWrite(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

// helperModule creates a Go module holding package p and returns its directory.
func helperModule(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	helperWrite(t, dir, "go.mod", "module example.com/p\n\ngo 1.22\n")
	helperWrite(t, dir, "p.go", testSrc)
	return dir
}

func TestVersion(t *testing.T) {
	code, stdout, _ := helperExecute(t, "--version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, util.AppVersion+"\n", stdout)
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		msg  string
	}{
		{name: "no input", argv: nil, msg: "expected exactly one input"},
		{name: "threads", argv: []string{"-t", "0", "x.ll"}, msg: "thread count"},
		{name: "format", argv: []string{"-f", "xml", "x.ll"}, msg: "unknown report format"},
		{name: "missing file", argv: []string{filepath.Join(t.TempDir(), "missing.ll")}, msg: "Load error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := helperExecute(t, tt.argv...)
			assert.Equal(t, exitError, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, tt.msg)
		})
	}
}

func TestLLVMText(t *testing.T) {
	path := helperWrite(t, t.TempDir(), "test.ll", testIR)
	code, stdout, stderr := helperExecute(t, "-t", "4", path)
	require.Equal(t, exitOK, code, stderr)

	exp := `
Function: f
  number of arguments: 2
  number of basic blocks: 1

  Basic block (name=entry) has 3 instructions.

  Basic block (name=entry) has 1 braids.
    braid:0 %c = add i64 %a, %b
    braid:0 %d = mul i64 %c, 2
    braid:0 ret i64 %d

Function: g
  number of arguments: 1
  number of basic blocks: 1

  Basic block (name=entry) has 3 instructions.

  Basic block (name=entry) has 3 braids.
    braid:0 %x = add i64 %a, 1
    braid:1 %y = add i64 %a, 2
    braid:2 ret i64 %a
`
	if diff := cmp.Diff(exp, stdout); diff != "" {
		t.Errorf("report mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, stderr, "single thread")
}

func TestLLVMFilterAndOutput(t *testing.T) {
	dir := t.TempDir()
	path := helperWrite(t, dir, "test.ll", testIR)
	out := filepath.Join(dir, "report.txt")
	code, stdout, stderr := helperExecute(t, "-F", "g,missing", "-l", "-o", out, path)
	require.Equal(t, exitOK, code, stderr)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "function=missing")

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "Function: f")
	assert.Contains(t, string(b), "Function: g")
	assert.Contains(t, string(b), "has 3 instructions.\n    %x = add i64 %a, 1\n", "listing")
}

func TestGoJSON(t *testing.T) {
	dir := helperModule(t)
	cfg := helperWrite(t, t.TempDir(), "braids.yaml", "format: json\nthreads: 2\n")
	code, stdout, stderr := helperExecute(t, "-c", cfg, dir)
	require.Equal(t, exitOK, code, stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2, "one line per function")

	var f struct {
		Name   string `json:"name"`
		Params int    `json:"params"`
		Blocks []struct {
			Name         string     `json:"name"`
			Instructions int        `json:"instructions"`
			Braids       int        `json:"braids"`
			Members      [][]string `json:"members"`
		} `json:"blocks"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &f))
	assert.Equal(t, "example.com/p.f", f.Name)
	assert.Equal(t, 2, f.Params)
	require.Len(t, f.Blocks, 1)
	assert.Equal(t, "0.entry", f.Blocks[0].Name)
	assert.Equal(t, 1, f.Blocks[0].Braids)
}

func TestGoText(t *testing.T) {
	dir := helperModule(t)
	code, stdout, stderr := helperExecute(t, "-x", "go", "-F", "g", "-v", dir)
	require.Equal(t, exitOK, code, stderr)
	assert.True(t, strings.HasPrefix(stdout, "\nFunction: example.com/p.g\n"), stdout)
	assert.NotContains(t, stdout, "example.com/p.f")
	assert.Contains(t, stderr, "level=DEBUG")
}

// TestReportPrecondition verifies that a malformed block stops the analysis with exit code 2, whatever the number of
// workers, and that reports of earlier functions are still written.
func TestReportPrecondition(t *testing.T) {
	ok := &testBlock{name: "ok", insts: []string{"x", "y"}}
	good := &testFunction{name: "good", blocks: []braid.Block[string]{ok}}
	bad := &testFunction{name: "bad", blocks: []braid.Block[string]{
		ok, ok, &testBlock{name: "dup", insts: []string{"a", "b", "a"}}, ok, ok,
	}}
	fns := []braid.Function[string]{good, bad, good}
	log := util.NewLogger(util.DefaultOptions(), io.Discard)

	for _, e1 := range []int{1, 4} {
		buf := bytes.Buffer{}
		sink := util.Listen(&buf, 4)
		err := report(context.Background(), util.DefaultOptions(), log, sink, fns, e1)
		require.NoError(t, sink.Close())

		require.Error(t, err, "workers=%d", e1)
		assert.Equal(t, exitPrecondition, exitCode(err))
		assert.Equal(t, `Analysis error: block "dup" lists instruction a twice`, err.Error())
		assert.Equal(t, 1, strings.Count(buf.String(), "Function: good"), "workers=%d", e1)
		assert.NotContains(t, buf.String(), "Function: bad")
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitError, exitCode(errors.New("Load error: missing")))
	assert.Equal(t, exitPrecondition, exitCode(fmt.Errorf("wrapped: %w", &preconditionError{v: "bad"})))
}
