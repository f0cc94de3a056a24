package serial

import (
	"bytes"
	"errors"
	"sync"
)

// MockPort implements Port with configurable behaviour for testing.
// It records every buffer written so callers can check frame boundaries.
type MockPort struct {
	mu sync.Mutex

	// WriteBuffer captures data written to the port
	WriteBuffer *bytes.Buffer

	// Writes holds a copy of each buffer passed to Write
	Writes [][]byte

	// WriteError is returned by the next Write call if set
	WriteError error

	// ShortWrite makes Write report one byte fewer than requested
	ShortWrite bool

	// CloseError is returned by Close if set
	CloseError error

	// Closed indicates whether Close was called
	Closed bool
}

// NewMockPort creates a new MockPort
func NewMockPort() *MockPort {
	return &MockPort{
		WriteBuffer: bytes.NewBuffer(nil),
	}
}

// Write appends to the write buffer, optionally simulating errors
func (m *MockPort) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Closed {
		return 0, errors.New("serial port closed")
	}

	if m.WriteError != nil {
		err := m.WriteError
		m.WriteError = nil
		return 0, err
	}

	n := len(p)
	if m.ShortWrite && n > 0 {
		n--
	}

	m.Writes = append(m.Writes, append([]byte(nil), p[:n]...))
	m.WriteBuffer.Write(p[:n])
	return n, nil
}

// Close marks the port as closed
func (m *MockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Closed = true
	return m.CloseError
}

// WrittenData returns all data written to the port
func (m *MockPort) WrittenData() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]byte(nil), m.WriteBuffer.Bytes()...)
}

// WriteCount returns the number of successful Write calls
func (m *MockPort) WriteCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.Writes)
}

// IsClosed reports whether Close was called
func (m *MockPort) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Closed
}

// MockOpener hands out MockPorts by device name for testing
type MockOpener struct {
	mu sync.Mutex

	// Ports maps device names to the port returned for them
	Ports map[string]*MockPort

	// Errors maps device names to an open failure
	Errors map[string]error

	// OpenCalls records the config of every Open call
	OpenCalls []Config
}

// NewMockOpener creates an opener that creates a fresh MockPort per device
func NewMockOpener() *MockOpener {
	return &MockOpener{
		Ports:  make(map[string]*MockPort),
		Errors: make(map[string]error),
	}
}

// Fail makes every later open of device fail with err
func (o *MockOpener) Fail(device string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.Errors[device] = err
}

// Port returns the MockPort for device, creating it if needed
func (o *MockOpener) Port(device string) *MockPort {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.portLocked(device)
}

func (o *MockOpener) portLocked(device string) *MockPort {
	p, ok := o.Ports[device]
	if !ok {
		p = NewMockPort()
		o.Ports[device] = p
	}
	return p
}

// Open implements Opener
func (o *MockOpener) Open(cfg *Config) (Port, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.OpenCalls = append(o.OpenCalls, *cfg)

	if err := o.Errors[cfg.Device]; err != nil {
		return nil, err
	}

	// Reopening a device hands back the same port, open again
	p := o.portLocked(cfg.Device)
	p.mu.Lock()
	p.Closed = false
	p.mu.Unlock()

	return p, nil
}
