package serial

import (
	"fmt"

	"github.com/tarm/serial"
	bugst "go.bug.st/serial"
)

// NativePort wraps the tarm/serial implementation
type NativePort struct {
	port *serial.Port
	cfg  *Config
}

// BugstPort wraps the go.bug.st/serial implementation
type BugstPort struct {
	port bugst.Port
	cfg  *Config
}

// Open opens a native serial port using the driver named by cfg.Backend
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	normalized, err := cfg.Normalize()
	if err != nil {
		return nil, fmt.Errorf("invalid serial config for %s: %w", cfg.Device, err)
	}

	switch normalized.Backend {
	case BackendBugst:
		return openBugst(&normalized)
	default:
		return openTarm(&normalized)
	}
}

func openTarm(cfg *Config) (Port, error) {
	serialConfig := &serial.Config{
		Name:     cfg.Device,
		Baud:     cfg.Baud,
		Size:     byte(cfg.DataBits),
		Parity:   serial.Parity(cfg.Parity[0]),
		StopBits: serial.StopBits(cfg.StopBits),
	}

	port, err := serial.OpenPort(serialConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	return &NativePort{
		port: port,
		cfg:  cfg,
	}, nil
}

// Write writes data to the serial port
func (p *NativePort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close closes the serial port
func (p *NativePort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// bugstMode converts a normalized Config into the go.bug.st/serial mode
func bugstMode(cfg *Config) *bugst.Mode {
	mode := &bugst.Mode{
		BaudRate: cfg.Baud,
		DataBits: cfg.DataBits,
		StopBits: bugst.OneStopBit,
		Parity:   bugst.NoParity,
	}

	if cfg.StopBits == 2 {
		mode.StopBits = bugst.TwoStopBits
	}

	switch cfg.Parity {
	case "E":
		mode.Parity = bugst.EvenParity
	case "O":
		mode.Parity = bugst.OddParity
	}

	return mode
}

func openBugst(cfg *Config) (Port, error) {
	port, err := bugst.Open(cfg.Device, bugstMode(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open serial port %s: %w", cfg.Device, err)
	}

	return &BugstPort{
		port: port,
		cfg:  cfg,
	}, nil
}

// Write writes data to the serial port
func (p *BugstPort) Write(b []byte) (int, error) {
	return p.port.Write(b)
}

// Close closes the serial port
func (p *BugstPort) Close() error {
	if p.port != nil {
		return p.port.Close()
	}
	return nil
}

// ListPorts returns the serial devices present on this machine
func ListPorts() ([]string, error) {
	ports, err := bugst.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate serial ports: %w", err)
	}
	return ports, nil
}
