package glove

import (
	"fmt"
	"io"

	"hapticglove/host/serial"
)

// Sink accepts encoded frames for one hand
type Sink interface {
	io.Writer

	// IsReady reports whether writes can currently reach the device
	IsReady() bool

	// Close releases the transport
	Close() error
}

// SinkOpener opens the sink for a port id. It may return a non-nil Sink
// together with an error when the transport failed to open.
type SinkOpener func(port string) (Sink, error)

// SerialOpener returns a SinkOpener that opens serial links using base for
// everything except the device, which comes from the port id.
func SerialOpener(base serial.Config, opener serial.Opener) SinkOpener {
	return func(port string) (Sink, error) {
		cfg := base
		cfg.Device = serial.ResolveDevice(port)
		return serial.OpenLinkWith(&cfg, opener)
	}
}

// DefaultSinkOpener opens 9600 8N1 serial links with the native drivers
func DefaultSinkOpener() SinkOpener {
	return SerialOpener(*serial.DefaultConfig(""), serial.Open)
}

// unopenedSink stands in for a transport that could not be opened
type unopenedSink struct {
	port   string
	closed bool
}

func (s *unopenedSink) Write(b []byte) (int, error) {
	return 0, fmt.Errorf("write %s: %w", s.port, serial.ErrNotOpen)
}

func (s *unopenedSink) IsReady() bool {
	return false
}

func (s *unopenedSink) Close() error {
	if s.closed {
		return fmt.Errorf("close %s: %w", s.port, serial.ErrPortClosed)
	}
	s.closed = true
	return nil
}
