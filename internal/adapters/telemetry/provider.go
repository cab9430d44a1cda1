// Package telemetry provides a logger-backed implementation of the
// telemetry adapter. Each vertex forwards the build stage's output,
// line by line, to the structured logger.
package telemetry

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/appsandbox/depkit/internal/core/ports"
)

// Provider implements ports.Telemetry on top of a ports.Logger.
type Provider struct {
	log ports.Logger
}

// New creates a new logger-backed telemetry provider.
func New(log ports.Logger) *Provider {
	return &Provider{log: log}
}

// Record starts a new vertex with the given display name.
func (p *Provider) Record(_ context.Context, name string) ports.Vertex {
	p.log.Info(fmt.Sprintf("=> %s", name))
	return &logVertex{log: p.log, name: name}
}

// Close flushes the recording session. The logger needs no teardown.
func (p *Provider) Close() error {
	return nil
}

// logVertex forwards stage output to the logger.
type logVertex struct {
	log  ports.Logger
	name string

	stdout lineWriter
	stderr lineWriter
	once   sync.Once
}

func (v *logVertex) init() {
	v.stdout = lineWriter{emit: v.log.Info}
	v.stderr = lineWriter{emit: v.log.Warn}
}

// Stdout returns a writer capturing the stage's standard output.
func (v *logVertex) Stdout() io.Writer {
	v.once.Do(v.init)
	return &v.stdout
}

// Stderr returns a writer capturing the stage's error output.
func (v *logVertex) Stderr() io.Writer {
	v.once.Do(v.init)
	return &v.stderr
}

// Complete marks the vertex as finished.
func (v *logVertex) Complete(err error) {
	v.once.Do(v.init)
	v.stdout.flush()
	v.stderr.flush()
	if err != nil {
		v.log.Error(err)
		return
	}
	v.log.Info(fmt.Sprintf("<= %s done", v.name))
}

// Cached marks the vertex as a cache hit.
func (v *logVertex) Cached() {
	v.log.Info(fmt.Sprintf("<= %s cached", v.name))
}

// lineWriter buffers writes and emits complete lines.
type lineWriter struct {
	mu   sync.Mutex
	buf  bytes.Buffer
	emit func(string)
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Partial line, keep it buffered.
			w.buf.WriteString(line)
			break
		}
		w.emit(line[:len(line)-1])
	}
	return len(p), nil
}

func (w *lineWriter) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

var _ ports.Telemetry = (*Provider)(nil)
