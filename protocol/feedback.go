package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrBadFrame is returned when a byte slice is not a well-formed feedback frame
var ErrBadFrame = errors.New("malformed feedback frame")

// StrengthByte converts a normalized strength into its wire byte.
// NaN encodes as 0, values are clamped to [0,1] and rounded half away from zero.
func StrengthByte(strength float32) byte {
	s := float64(strength)
	if math.IsNaN(s) || s <= 0 {
		return 0
	}
	if s >= 1 {
		return 255
	}
	return byte(math.Round(255 * s))
}

// Frame encodes req as one complete frame.
// Duration is written as-is; range checking is left to the caller.
func Frame(req PulseRequest) [FrameSize]byte {
	var frame [FrameSize]byte

	frame[FramePositionLocation] = byte(req.Location)
	frame[FramePositionStrength] = StrengthByte(req.Strength)
	binary.LittleEndian.PutUint32(frame[FramePositionDuration:], math.Float32bits(req.Duration))
	// Terminator bytes are already zero

	return frame
}

// FrameFields holds the decoded content of one frame
type FrameFields struct {
	Location FingerLocation
	Strength byte
	Duration float32
}

// DecodeFrame parses a frame produced by Frame
func DecodeFrame(data []byte) (FrameFields, error) {
	if len(data) != FrameSize {
		return FrameFields{}, fmt.Errorf("%w: expected %d bytes, got %d", ErrBadFrame, FrameSize, len(data))
	}

	if data[FramePositionTerminator] != 0 || data[FramePositionTerminator+1] != 0 {
		return FrameFields{}, fmt.Errorf("%w: terminator 0x%02x%02x", ErrBadFrame,
			data[FramePositionTerminator], data[FramePositionTerminator+1])
	}

	bits := binary.LittleEndian.Uint32(data[FramePositionDuration : FramePositionDuration+FrameDurationSize])

	return FrameFields{
		Location: FingerLocation(data[FramePositionLocation]),
		Strength: data[FramePositionStrength],
		Duration: math.Float32frombits(bits),
	}, nil
}
