//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"
)

type machinePin struct {
	pin machine.Pin
}

func (p machinePin) High() { p.pin.High() }
func (p machinePin) Low()  { p.pin.Low() }

// NewBoardLink configures SPI1 for the PicoCalc-style panel wiring and
// returns the link for the display transport.
//
// SCK on GP10, SDO on GP11, SDI on GP12; CS/DC/RST on GP13/GP14/GP15.
func NewBoardLink(clockHz uint32) (Link, error) {
	if machine.SPI1 == nil {
		return Link{}, errors.New("SPI1 unavailable")
	}
	if clockHz == 0 {
		clockHz = 40_000_000
	}

	machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		SDI:       machine.GP12,
		Frequency: clockHz,
	})

	cs := machine.GP13
	dc := machine.GP14
	rst := machine.GP15
	for _, p := range []machine.Pin{cs, dc, rst} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.High()
	}

	return Link{
		Bus: machine.SPI1,
		CS:  machinePin{pin: cs},
		DC:  machinePin{pin: dc},
		RST: machinePin{pin: rst},
	}, nil
}

type uartLogger struct {
	uart *machine.UART
}

// NewUARTLogger configures UART0 on GP0/GP1 at 115200 8N1 and returns a
// Logger writing to it.
func NewUARTLogger() Logger {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	return &uartLogger{uart: uart}
}

func (l *uartLogger) WriteLineString(s string) {
	l.uart.Write([]byte(s))
	l.uart.Write([]byte("\r\n"))
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.Write([]byte("\r\n"))
}
