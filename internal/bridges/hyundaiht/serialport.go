package hyundaiht

import (
	"time"

	goserial "github.com/daedaluz/goserial"
)

// SerialPort is the minimal transport the Port driver needs. It is
// satisfied by *realSerialPort (backed by github.com/daedaluz/goserial) in
// production and by a fake in tests.
type SerialPort interface {
	Read(buf []byte) (int, error)
	Write(buf []byte) (int, error)
	Close() error
}

// realSerialPort adapts goserial.Port to SerialPort, configuring it as a
// raw, half-duplex RS-485 line at open time.
type realSerialPort struct {
	port *goserial.Port
}

// openSerialPort opens path at baud with the given read timeout and
// configures it for raw half-duplex RS-485 use: 8N1, no flow control, and
// the kernel's RS485 transceiver-direction toggling so the driver never
// has to manage a direction GPIO itself.
func openSerialPort(path string, baud goserial.CFlag, readTimeout time.Duration) (SerialPort, error) {
	opts := goserial.NewOptions().SetReadTimeout(readTimeout)
	p, err := goserial.Open(path, opts)
	if err != nil {
		return nil, err
	}

	if err := p.MakeRaw(); err != nil {
		p.Close()
		return nil, err
	}

	attrs, err := p.GetAttr()
	if err != nil {
		p.Close()
		return nil, err
	}
	attrs.SetSpeed(baud)
	if err := p.SetAttr(goserial.TCSANOW, attrs); err != nil {
		p.Close()
		return nil, err
	}

	//nolint:errcheck // RS485 direction control is best-effort: not every
	// adapter (e.g. a USB-RS485 dongle with automatic direction switching)
	// exposes the kernel RS485 ioctl, and the bus still works without it.
	p.SetRS485(&goserial.RS485{Flags: goserial.RS485Enabled | goserial.RS485RXDuringTx})

	return &realSerialPort{port: p}, nil
}

func (s *realSerialPort) Read(buf []byte) (int, error)  { return s.port.Read(buf) }
func (s *realSerialPort) Write(buf []byte) (int, error) { return s.port.Write(buf) }
func (s *realSerialPort) Close() error                  { return s.port.Close() }
