package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helperParse runs the flag parser and ParseArgs on argv the way the braids command does.
func helperParse(t *testing.T, argv ...string) (Options, error) {
	t.Helper()
	opt := DefaultOptions()
	cmd := &cobra.Command{Use: "braids"}
	BindFlags(cmd, &opt)
	require.NoError(t, cmd.ParseFlags(argv))
	return ParseArgs(cmd, opt, cmd.Flags().Args())
}

// helperConfig writes a YAML configuration file and returns its path.
func helperConfig(t *testing.T, s string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "braids.yaml")
	require.NoError(t, os.WriteFile(path, []byte(s), 0644))
	return path
}

func TestParseArgsDefaults(t *testing.T) {
	opt, err := helperParse(t, "prog.ll")
	require.NoError(t, err)
	assert.Equal(t, "prog.ll", opt.Src)
	assert.Equal(t, HostLLVM, opt.Host)
	assert.Equal(t, 1, opt.Threads)
	assert.Equal(t, FormatText, opt.Format)
	assert.False(t, opt.Listing)
	assert.Empty(t, opt.Out)
}

func TestParseArgsFlags(t *testing.T) {
	opt, err := helperParse(t, "-t", "8", "-f", "json", "-l", "-F", "main,foo", "-o", "out.txt", "./pkg")
	require.NoError(t, err)
	assert.Equal(t, HostGo, opt.Host)
	assert.Equal(t, 8, opt.Threads)
	assert.Equal(t, FormatJSON, opt.Format)
	assert.True(t, opt.Listing)
	assert.Equal(t, []string{"main", "foo"}, opt.Functions)
	assert.Equal(t, "out.txt", opt.Out)
	assert.True(t, opt.Selected("foo"))
	assert.False(t, opt.Selected("bar"))
	assert.True(t, opt.Selected("example.com/p.foo", "foo"), "any of the names may match")
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		err  error
	}{
		{name: "threads too low", argv: []string{"-t", "0", "a.ll"}, err: ErrThreads},
		{name: "threads too high", argv: []string{"-t", "65", "a.ll"}, err: ErrThreads},
		{name: "format", argv: []string{"-f", "xml", "a.ll"}, err: ErrFormat},
		{name: "host", argv: []string{"-x", "wasm", "a.ll"}, err: ErrHost},
	}
	for _, e1 := range tests {
		t.Run(e1.name, func(t *testing.T) {
			_, err := helperParse(t, e1.argv...)
			assert.ErrorIs(t, err, e1.err)
		})
	}

	_, err := helperParse(t)
	assert.Error(t, err, "missing input")
	_, err = helperParse(t, "a.ll", "b.ll")
	assert.Error(t, err, "two inputs")
}

func TestParseArgsConfig(t *testing.T) {
	path := helperConfig(t, `
host: go
threads: 4
format: json
listing: true
functions: [main]
out: from-file.txt
`)

	opt, err := helperParse(t, "-c", path, "-t", "2", "prog.ll")
	require.NoError(t, err)
	assert.Equal(t, HostGo, opt.Host, "file value used when flag is not set")
	assert.Equal(t, 2, opt.Threads, "flag overrides file")
	assert.Equal(t, FormatJSON, opt.Format)
	assert.True(t, opt.Listing)
	assert.Equal(t, []string{"main"}, opt.Functions)
	assert.Equal(t, "from-file.txt", opt.Out)
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := helperConfig(t, "threads: 2\nworkers: 3\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResolveHost(t *testing.T) {
	tests := []struct {
		opt Options
		exp string
	}{
		{opt: Options{Src: "a.ll"}, exp: HostLLVM},
		{opt: Options{Src: "a.bc"}, exp: HostLLVM},
		{opt: Options{Src: "-"}, exp: HostLLVM},
		{opt: Options{Src: "./..."}, exp: HostGo},
		{opt: Options{Src: "a.ll", Host: "GO"}, exp: HostGo},
	}
	for _, e1 := range tests {
		assert.Equal(t, e1.exp, e1.opt.ResolveHost(), e1.opt.Src)
	}
}
