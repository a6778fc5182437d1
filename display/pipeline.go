package display

import "prism/hal"

// chunkBytes is the link's native chunk limit and the default capacity
// of each conversion slot.
const chunkBytes = 4096

// pipeline is the two-slot producer/consumer stage between pixel
// conversion (CPU) and bus transfer (hardware). At most two transfers
// are in flight; a slot is refilled only after the transfer that last
// used it has completed, so queued data is never overwritten early.
type pipeline struct {
	q        hal.TxQueue
	slots    [2][]byte
	slot     int
	inflight int
}

// ensure grows both conversion slots to hold at least n bytes. Slots
// are only ever grown, never shrunk.
func (p *pipeline) ensure(n int) {
	if n < chunkBytes {
		n = chunkBytes
	}
	for i := range p.slots {
		if len(p.slots[i]) < n {
			p.slots[i] = make([]byte, n)
		}
	}
}

// capacity returns the usable byte size of one conversion slot.
func (p *pipeline) capacity() int {
	return len(p.slots[0])
}

// submit converts one chunk into the next slot and queues it. When both
// slots are busy it first blocks on the oldest in-flight transfer,
// which is the one that used the slot about to be refilled. fill writes
// into dst and returns the byte count to transmit.
func (p *pipeline) submit(fill func(dst []byte) int) error {
	if p.inflight == 2 {
		if err := p.q.Wait(); err != nil {
			p.inflight--
			p.abort()
			return err
		}
		p.inflight--
	}
	dst := p.slots[p.slot]
	n := fill(dst)
	if err := p.q.Queue(dst[:n]); err != nil {
		p.abort()
		return err
	}
	p.inflight++
	p.slot ^= 1
	return nil
}

// drain blocks until every outstanding transfer has completed.
func (p *pipeline) drain() error {
	for p.inflight > 0 {
		err := p.q.Wait()
		p.inflight--
		if err != nil {
			p.abort()
			return err
		}
	}
	return nil
}

// abort waits out whatever is still in flight so the slots are safe to
// reuse, discarding any further errors. The transfer that already
// failed is the one reported to the caller.
func (p *pipeline) abort() {
	for p.inflight > 0 {
		p.q.Wait()
		p.inflight--
	}
}
