package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Sink serialises report text produced by worker threads. Every piece of output carries a sequence number; the sink
// writes the pieces to the destination strictly in sequence order, starting at 0, regardless of the order in which
// they arrive.
type Sink struct {
	c    chan chunk    // Channel for receiving output from worker threads.
	done chan error    // Receives the final write error when the listener stops.
	w    *bufio.Writer // Destination.
}

// Writer buffers output of a single sequence number. When Close is called the buffer is sent to the Sink.
type Writer struct {
	sb  strings.Builder
	seq int
	s   *Sink
}

// chunk is one piece of output in flight to the listener.
type chunk struct {
	seq int
	s   string
}

// nopCloser keeps stdout open when the output is closed.
type nopCloser struct {
	io.Writer
}

// ---------------------
// ----- Functions -----
// ---------------------

// Listen starts a listener that writes received output to w. Up to n chunks may be queued before senders block.
// The listener runs until Close is called.
func Listen(w io.Writer, n int) *Sink {
	if n < 1 {
		n = 1
	}
	s := &Sink{
		c:    make(chan chunk, n),
		done: make(chan error, 1),
		w:    bufio.NewWriter(w),
	}
	go s.run()
	return s
}

// run receives chunks until the input channel is closed, writing each one as soon as all its predecessors have
// been written.
func (s *Sink) run() {
	defer close(s.done)
	pending := make(map[int]string)
	next := 0
	var err error
	for c := range s.c {
		if _, ok := pending[c.seq]; ok || c.seq < next {
			if err == nil {
				err = fmt.Errorf("duplicate output chunk %d", c.seq)
			}
			continue
		}
		pending[c.seq] = c.s
		for {
			str, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if err == nil {
				_, err = s.w.WriteString(str)
			}
		}
	}
	if err == nil {
		err = s.w.Flush()
	}
	if err == nil && len(pending) > 0 {
		err = fmt.Errorf("output chunk %d was never written, %d chunks discarded", next, len(pending))
	}
	s.done <- err
}

// Send hands the output s with sequence number seq to the listener.
func (s *Sink) Send(seq int, str string) {
	s.c <- chunk{seq: seq, s: str}
}

// Close stops the listener once all sent output has been handled and returns the first write error, if any.
// Send must not be called after Close.
func (s *Sink) Close() error {
	close(s.c)
	return <-s.done
}

// NewWriter returns a Writer that sends its buffer to Sink s with sequence number seq when closed.
func (s *Sink) NewWriter(seq int) *Writer {
	return &Writer{seq: seq, s: s}
}

// Write appends p to the Writer's buffer. It never fails.
func (w *Writer) Write(p []byte) (int, error) {
	return w.sb.Write(p)
}

// Printf writes a format string to the Writer's buffer.
func (w *Writer) Printf(format string, args ...interface{}) {
	w.sb.WriteString(fmt.Sprintf(format, args...))
}

// Close sends the Writer's buffer to its Sink. The Writer must not be used afterwards.
func (w *Writer) Close() error {
	w.s.Send(w.seq, w.sb.String())
	w.sb = strings.Builder{}
	w.s = nil
	return nil
}

// OpenOutput opens the output destination. An empty path returns stdout, which is left open by Close. Existing files
// are truncated.
func OpenOutput(path string, stdout io.Writer) (io.WriteCloser, error) {
	if len(path) == 0 {
		return nopCloser{stdout}, nil
	}
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("could not open output file: %w", err)
	}
	return f, nil
}

// Close does nothing.
func (nopCloser) Close() error {
	return nil
}
