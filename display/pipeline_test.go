package display

import (
	"bytes"
	"errors"
	"testing"
)

var errBoom = errors.New("boom")

// fakeQueue records queue/wait traffic. Queued slices are aliased, not
// copied, and only snapshotted when Wait retires them, so a pipeline
// that refills a slot before its transfer completes corrupts the
// recorded stream.
type fakeQueue struct {
	pending    [][]byte
	sent       [][]byte
	maxPending int

	queueCalls  int
	waitCalls   int
	failQueueAt int // 1-based Queue call to fail at, 0 = never
	failWaitAt  int
}

func (q *fakeQueue) Queue(buf []byte) error {
	q.queueCalls++
	if q.failQueueAt != 0 && q.queueCalls >= q.failQueueAt {
		return errBoom
	}
	q.pending = append(q.pending, buf)
	if len(q.pending) > q.maxPending {
		q.maxPending = len(q.pending)
	}
	return nil
}

func (q *fakeQueue) Wait() error {
	q.waitCalls++
	if len(q.pending) == 0 {
		return nil
	}
	buf := q.pending[0]
	q.pending = q.pending[1:]
	if q.failWaitAt != 0 && q.waitCalls >= q.failWaitAt {
		return errBoom
	}
	q.sent = append(q.sent, append([]byte(nil), buf...))
	return nil
}

func TestPipelineOverlapAndOrdering(t *testing.T) {
	q := &fakeQueue{}
	p := pipeline{q: q}
	p.ensure(16)

	const chunks = 5
	for i := 0; i < chunks; i++ {
		pattern := byte('a' + i)
		err := p.submit(func(dst []byte) int {
			for j := 0; j < 8; j++ {
				dst[j] = pattern
			}
			return 8
		})
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}
	if err := p.drain(); err != nil {
		t.Fatalf("drain: %v", err)
	}

	if q.maxPending > 2 {
		t.Fatalf("maxPending = %d, want <= 2", q.maxPending)
	}
	if len(q.sent) != chunks {
		t.Fatalf("len(sent) = %d, want %d", len(q.sent), chunks)
	}
	for i, sent := range q.sent {
		want := bytes.Repeat([]byte{byte('a' + i)}, 8)
		if !bytes.Equal(sent, want) {
			t.Fatalf("chunk %d = %q, want %q (slot overwritten in flight?)", i, sent, want)
		}
	}
}

func TestPipelineQueueFailureStops(t *testing.T) {
	q := &fakeQueue{failQueueAt: 3}
	p := pipeline{q: q}
	p.ensure(16)

	fill := func(dst []byte) int { dst[0] = 0xAA; return 1 }
	if err := p.submit(fill); err != nil {
		t.Fatalf("submit 1: %v", err)
	}
	if err := p.submit(fill); err != nil {
		t.Fatalf("submit 2: %v", err)
	}
	if err := p.submit(fill); err != errBoom {
		t.Fatalf("submit 3 = %v, want errBoom", err)
	}
	if p.inflight != 0 {
		t.Fatalf("inflight = %d after failed submit, want 0", p.inflight)
	}
	if len(q.pending) != 0 {
		t.Fatalf("pending = %d after abort, want 0", len(q.pending))
	}
}

func TestPipelineWaitFailure(t *testing.T) {
	q := &fakeQueue{failWaitAt: 1}
	p := pipeline{q: q}
	p.ensure(16)

	fill := func(dst []byte) int { return 4 }
	if err := p.submit(fill); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if err := p.drain(); err != errBoom {
		t.Fatalf("drain = %v, want errBoom", err)
	}
	if p.inflight != 0 {
		t.Fatalf("inflight = %d after failed drain, want 0", p.inflight)
	}
}

func TestPipelineEnsureGrowsNeverShrinks(t *testing.T) {
	p := pipeline{q: &fakeQueue{}}
	p.ensure(1)
	if p.capacity() != chunkBytes {
		t.Fatalf("capacity = %d, want default %d", p.capacity(), chunkBytes)
	}
	p.ensure(3 * chunkBytes)
	if p.capacity() != 3*chunkBytes {
		t.Fatalf("capacity = %d, want %d", p.capacity(), 3*chunkBytes)
	}
	p.ensure(16)
	if p.capacity() != 3*chunkBytes {
		t.Fatalf("capacity shrank to %d", p.capacity())
	}
}
