package util

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSinkOrder sends chunks in reverse order and expects them written in sequence order.
func TestSinkOrder(t *testing.T) {
	var buf bytes.Buffer
	s := Listen(&buf, 4)
	for i1 := 9; i1 >= 0; i1-- {
		s.Send(i1, fmt.Sprintf("%d;", i1))
	}
	require.NoError(t, s.Close())
	assert.Equal(t, "0;1;2;3;4;5;6;7;8;9;", buf.String())
}

// TestSinkConcurrentWriters lets several goroutines close their writers concurrently.
func TestSinkConcurrentWriters(t *testing.T) {
	const n = 32
	var buf bytes.Buffer
	s := Listen(&buf, 2)

	wg := sync.WaitGroup{}
	wg.Add(n)
	for i1 := 0; i1 < n; i1++ {
		w := s.NewWriter(i1)
		go func(i1 int, w *Writer) {
			defer wg.Done()
			w.Printf("line %d\n", i1)
			_, _ = w.Write([]byte("--\n"))
			_ = w.Close()
		}(i1, w)
	}
	wg.Wait()
	require.NoError(t, s.Close())

	sb := strings.Builder{}
	for i1 := 0; i1 < n; i1++ {
		sb.WriteString(fmt.Sprintf("line %d\n--\n", i1))
	}
	assert.Equal(t, sb.String(), buf.String())
}

// TestSinkGap reports an error when a sequence number is never sent.
func TestSinkGap(t *testing.T) {
	var buf bytes.Buffer
	s := Listen(&buf, 1)
	s.Send(0, "a")
	s.Send(2, "c")
	err := s.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk 1")
	assert.Equal(t, "a", buf.String())
}

// TestSinkDuplicate reports an error when a sequence number is sent twice.
func TestSinkDuplicate(t *testing.T) {
	var buf bytes.Buffer
	s := Listen(&buf, 1)
	s.Send(0, "a")
	s.Send(0, "b")
	err := s.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

// TestOpenOutput verifies that output files are created and truncated.
func TestOpenOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("old contents that are long"), 0644))

	w, err := OpenOutput(path, nil)
	require.NoError(t, err)
	_, err = w.Write([]byte("new"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(b))

	buf := bytes.Buffer{}
	stdout, err := OpenOutput("", &buf)
	require.NoError(t, err)
	_, err = stdout.Write([]byte("out"))
	require.NoError(t, err)
	assert.NoError(t, stdout.Close())
	assert.Equal(t, "out", buf.String())
}
