package serial

import (
	"errors"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"
)

// Port represents a serial port interface
// This abstraction allows for different implementations:
// - Native serial (github.com/tarm/serial or go.bug.st/serial)
// - Mock serial (for testing)
type Port interface {
	io.WriteCloser
}

// Backend names a serial driver implementation
type Backend string

const (
	BackendTarm  Backend = "tarm"
	BackendBugst Backend = "bugst"
)

// ErrUnknownBackend is returned for a Config naming an unsupported driver
var ErrUnknownBackend = errors.New("unknown serial backend")

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate (the glove firmware runs at 9600)
	Baud int

	// Data bits per character (5-8)
	DataBits int

	// Parity: "N", "E" or "O"
	Parity string

	// Stop bits: 1 or 2
	StopBits int

	// Driver used to open the port (defaults to tarm)
	Backend Backend
}

// DefaultConfig returns the 9600 8N1 configuration used by the glove controllers
func DefaultConfig(device string) *Config {
	return &Config{
		Device:   ResolveDevice(device),
		Baud:     9600,
		DataBits: 8,
		Parity:   "N",
		StopBits: 1,
		Backend:  BackendTarm,
	}
}

// Normalize validates the config and fills in defaults for unset values
func (c Config) Normalize() (Config, error) {
	cfg := c

	if strings.TrimSpace(cfg.Device) == "" {
		return cfg, fmt.Errorf("device cannot be empty")
	}

	if cfg.Baud <= 0 {
		cfg.Baud = 9600
	}

	if cfg.DataBits == 0 {
		cfg.DataBits = 8
	}
	if cfg.DataBits < 5 || cfg.DataBits > 8 {
		return cfg, fmt.Errorf("invalid data bits %d: must be between 5 and 8", cfg.DataBits)
	}

	if cfg.StopBits == 0 {
		cfg.StopBits = 1
	}
	if cfg.StopBits != 1 && cfg.StopBits != 2 {
		return cfg, fmt.Errorf("invalid stop bits %d: supported values are 1 or 2", cfg.StopBits)
	}

	switch strings.ToUpper(strings.TrimSpace(cfg.Parity)) {
	case "", "N", "NONE":
		cfg.Parity = "N"
	case "E", "EVEN":
		cfg.Parity = "E"
	case "O", "ODD":
		cfg.Parity = "O"
	default:
		return cfg, fmt.Errorf("unsupported parity %q: expected N, E, or O", c.Parity)
	}

	switch cfg.Backend {
	case "":
		cfg.Backend = BackendTarm
	case BackendTarm, BackendBugst:
	default:
		return cfg, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	return cfg, nil
}

// ResolveDevice maps a bare numeric port id to COM<n> on Windows.
// Any other id is returned unchanged.
func ResolveDevice(id string) string {
	return resolveDevice(id, runtime.GOOS)
}

func resolveDevice(id, goos string) string {
	id = strings.TrimSpace(id)
	if goos != "windows" {
		return id
	}
	if n, err := strconv.ParseUint(id, 10, 16); err == nil {
		return "COM" + strconv.FormatUint(n, 10)
	}
	return id
}
