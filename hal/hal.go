package hal

import (
	"errors"

	"tinygo.org/x/drivers"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Pin is a minimal output pin abstraction (chip select, data/command, reset).
type Pin interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

// TxQueue queues bus writes for asynchronous completion.
//
// Queue hands buf to the link; the caller must not modify buf until a
// later Wait has covered that transfer. Wait blocks until the oldest
// outstanding transfer completes, and returns nil immediately when
// nothing is outstanding.
type TxQueue interface {
	Queue(buf []byte) error
	Wait() error
}

// Link bundles one physical panel connection.
//
// Queue may be nil when the target has no DMA engine; callers fall back
// to a SyncQueue over Bus.
type Link struct {
	Bus   drivers.SPI
	Queue TxQueue
	CS    Pin
	DC    Pin
	RST   Pin
}
