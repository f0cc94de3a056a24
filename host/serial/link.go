package serial

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

var (
	// ErrNotOpen is returned when writing to a link whose port never opened
	ErrNotOpen = errors.New("serial link not open")

	// ErrPortClosed is returned when using a link after Close
	ErrPortClosed = errors.New("serial link closed")
)

// Opener opens a Port from a Config. Open is the production opener.
type Opener func(cfg *Config) (Port, error)

// Link is a write-only byte sink over a serial port.
// A Link exists even when its port failed to open; writes then fail with ErrNotOpen.
type Link struct {
	mu     sync.Mutex
	cfg    *Config
	port   Port
	closed bool
}

// OpenLinkWith opens cfg using opener. The returned Link is never nil; on
// failure it is unopened and the error says why.
func OpenLinkWith(cfg *Config, opener Opener) (*Link, error) {
	if cfg == nil {
		return &Link{cfg: &Config{}}, fmt.Errorf("config cannot be nil")
	}

	l := &Link{cfg: cfg}

	port, err := opener(cfg)
	if err != nil {
		return l, err
	}
	if port == nil {
		return l, fmt.Errorf("opener returned no port for %s", cfg.Device)
	}

	l.port = port
	return l, nil
}

// Name returns the device the link was opened on
func (l *Link) Name() string {
	return l.cfg.Device
}

// IsReady reports whether the port is open and not yet closed
func (l *Link) IsReady() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.port != nil && !l.closed
}

// Write sends b as a single buffer
func (l *Link) Write(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return 0, fmt.Errorf("write %s: %w", l.cfg.Device, ErrPortClosed)
	}
	if l.port == nil {
		return 0, fmt.Errorf("write %s: %w", l.cfg.Device, ErrNotOpen)
	}

	n, err := l.port.Write(b)
	if err != nil {
		return n, fmt.Errorf("write %s: %w", l.cfg.Device, err)
	}
	if n != len(b) {
		return n, fmt.Errorf("write %s: %w (%d/%d bytes)", l.cfg.Device, io.ErrShortWrite, n, len(b))
	}

	return n, nil
}

// Close releases the port. A second Close returns ErrPortClosed.
func (l *Link) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return fmt.Errorf("close %s: %w", l.cfg.Device, ErrPortClosed)
	}
	l.closed = true

	if l.port == nil {
		return nil
	}
	if err := l.port.Close(); err != nil {
		return fmt.Errorf("close %s: %w", l.cfg.Device, err)
	}
	return nil
}
