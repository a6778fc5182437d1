package hal

import "tinygo.org/x/drivers"

// SyncQueue adapts a plain SPI bus to the TxQueue interface by completing
// every transfer before Queue returns. Wait is then always a no-op.
type SyncQueue struct {
	bus drivers.SPI
}

func NewSyncQueue(bus drivers.SPI) *SyncQueue {
	return &SyncQueue{bus: bus}
}

func (q *SyncQueue) Queue(buf []byte) error {
	return q.bus.Tx(buf, nil)
}

func (q *SyncQueue) Wait() error {
	return nil
}
