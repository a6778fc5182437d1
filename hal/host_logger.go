//go:build !tinygo

package hal

import (
	"io"
	"os"
	"sync"
)

type stdoutLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewStdoutLogger returns a Logger writing to standard output.
func NewStdoutLogger() Logger {
	return &stdoutLogger{w: os.Stdout}
}

func (l *stdoutLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, s)
	io.WriteString(l.w, "\n")
}

func (l *stdoutLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	io.WriteString(l.w, "\n")
}
