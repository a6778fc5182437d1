package hal

import "testing"

// write drives the simulator like a driver would: command byte with DC
// low, data bytes with DC high, CS held low around the transaction.
func write(s *PanelSim, cmd byte, data ...byte) {
	s.CSPin().Low()
	s.DCPin().Low()
	s.Tx([]byte{cmd}, nil)
	s.DCPin().High()
	if len(data) > 0 {
		s.Tx(data, nil)
	}
	s.CSPin().High()
}

func TestPanelSimDecodesRGB565Payload(t *testing.T) {
	s := NewPanelSim(4, 4)
	write(s, 0x3A, 0x55)
	write(s, 0x2A, 0, 1, 0, 2)
	write(s, 0x2B, 0, 1, 0, 1)
	// Two pixels: red then green, big-endian RGB565.
	write(s, 0x2C, 0xF8, 0x00, 0x07, 0xE0)

	if r, g, b := s.RGBAt(1, 1); r != 255 || g != 0 || b != 0 {
		t.Fatalf("pixel (1,1) = (%d,%d,%d), want red", r, g, b)
	}
	if r, g, b := s.RGBAt(2, 1); r != 0 || g != 255 || b != 0 {
		t.Fatalf("pixel (2,1) = (%d,%d,%d), want green", r, g, b)
	}
	if r, g, b := s.RGBAt(0, 0); r != 0 || g != 0 || b != 0 {
		t.Fatalf("pixel (0,0) = (%d,%d,%d), want untouched", r, g, b)
	}
}

func TestPanelSimWindowWrap(t *testing.T) {
	s := NewPanelSim(4, 4)
	write(s, 0x3A, 0x55)
	write(s, 0x2A, 0, 1, 0, 2) // x 1..2
	write(s, 0x2B, 0, 0, 0, 1) // y 0..1
	// Five pixels into a 2x2 window: the fifth wraps to the origin.
	payload := []byte{
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
		0xF8, 0x00,
	}
	write(s, 0x2C, payload...)

	// Red overwrote white at the window origin.
	if r, g, b := s.RGBAt(1, 0); r != 255 || g != 0 || b != 0 {
		t.Fatalf("window origin = (%d,%d,%d), want red rewrite", r, g, b)
	}
	if r, g, b := s.RGBAt(2, 0); r != 255 || g != 255 || b != 255 {
		t.Fatalf("pixel (2,0) = (%d,%d,%d), want white", r, g, b)
	}
}

func TestPanelSimIgnoresBytesWithCSHigh(t *testing.T) {
	s := NewPanelSim(2, 2)
	s.DCPin().Low()
	s.Tx([]byte{0x2C}, nil) // CS never asserted
	if n := len(s.History()); n != 0 {
		t.Fatalf("len(History()) = %d, want 0", n)
	}
}

func TestPanelSimResetPulse(t *testing.T) {
	s := NewPanelSim(2, 2)
	write(s, 0x2A, 0, 1, 0, 1)
	rst := s.ResetPin()
	rst.Low()
	rst.High()
	if s.Resets() != 1 {
		t.Fatalf("Resets() = %d, want 1", s.Resets())
	}
}

func TestSyncQueueCompletesOnQueue(t *testing.T) {
	s := NewPanelSim(2, 2)
	q := NewSyncQueue(s)
	s.CSPin().Low()
	s.DCPin().Low()
	if err := q.Queue([]byte{0x2C}); err != nil {
		t.Fatalf("Queue: %v", err)
	}
	if err := q.Wait(); err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if n := len(s.History()); n != 1 {
		t.Fatalf("len(History()) = %d, want 1", n)
	}
}
