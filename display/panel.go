package display

import (
	"time"

	"prism/hal"

	"tinygo.org/x/drivers"
)

// Controller opcodes shared by both chips.
const (
	cmdSWRESET = 0x01
	cmdSLPOUT  = 0x11
	cmdNORON   = 0x13
	cmdINVON   = 0x21
	cmdDISPON  = 0x29
	cmdCASET   = 0x2A
	cmdPASET   = 0x2B
	cmdRAMWR   = 0x2C
	cmdCOLMOD  = 0x3A
	cmdMADCTL  = 0x36
)

// panel is the protocol layer shared by the chip drivers: command
// framing, addressing window, hardware reset.
type panel struct {
	bus drivers.SPI
	q   hal.TxQueue
	cs  hal.Pin
	dc  hal.Pin
	rst hal.Pin

	width  int
	height int
}

func (p *panel) Size() (w, h int) {
	return p.width, p.height
}

// cmd issues one command byte plus optional parameter bytes, CS and DC
// gated around the transaction.
func (p *panel) cmd(cmd byte, data ...byte) error {
	p.cs.Low()
	p.dc.Low()
	err := p.bus.Tx([]byte{cmd}, nil)
	p.dc.High()
	if err == nil && len(data) > 0 {
		err = p.bus.Tx(data, nil)
	}
	p.cs.High()
	return err
}

// setWindow addresses the write region (inclusive bounds) and opens it
// for pixel data.
func (p *panel) setWindow(x0, y0, x1, y1 int) error {
	if err := p.cmd(
		cmdCASET,
		byte(x0>>8), byte(x0),
		byte(x1>>8), byte(x1),
	); err != nil {
		return err
	}
	if err := p.cmd(
		cmdPASET,
		byte(y0>>8), byte(y0),
		byte(y1>>8), byte(y1),
	); err != nil {
		return err
	}
	return p.cmd(cmdRAMWR)
}

// reset pulses the reset line if wired, otherwise issues a software
// reset. Delays follow the controller datasheets with margin.
func (p *panel) reset() error {
	if p.rst != nil {
		p.rst.Low()
		time.Sleep(64 * time.Millisecond)
		p.rst.High()
	} else {
		if err := p.cmd(cmdSWRESET); err != nil {
			return err
		}
	}
	time.Sleep(140 * time.Millisecond)
	return nil
}

// clip clamps a requested rectangle to the panel. ok is false for
// anything fully off-panel or with no area.
func (p *panel) clip(x, y, w, h int) (cx, cy, cw, ch int, ok bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	x1 := x + w
	y1 := y + h
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x1 > p.width {
		x1 = p.width
	}
	if y1 > p.height {
		y1 = p.height
	}
	if x >= x1 || y >= y1 {
		return 0, 0, 0, 0, false
	}
	return x, y, x1 - x, y1 - y, true
}
