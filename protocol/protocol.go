// Package protocol implements the haptic glove feedback wire protocol
package protocol

import (
	"fmt"
	"math/bits"
	"strings"
)

// Frame layout constants
const (
	FrameSize = 8 // Every admitted pulse is exactly one 8-byte frame

	FramePositionLocation   = 0
	FramePositionStrength   = 1
	FramePositionDuration   = 2
	FramePositionTerminator = 6

	FrameDurationSize   = 4
	FrameTerminatorSize = 2
)

// Hand selects which controller(s) a pulse is sent to
type Hand uint8

const (
	HandLeft Hand = iota
	HandRight
	HandBoth
)

// Valid reports whether h is one of the known hand values
func (h Hand) Valid() bool {
	return h <= HandBoth
}

func (h Hand) String() string {
	switch h {
	case HandLeft:
		return "left"
	case HandRight:
		return "right"
	case HandBoth:
		return "both"
	default:
		return fmt.Sprintf("hand(%d)", uint8(h))
	}
}

// ParseHand converts a case-insensitive name into a Hand
func ParseHand(s string) (Hand, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return HandLeft, nil
	case "right", "r":
		return HandRight, nil
	case "both", "b":
		return HandBoth, nil
	}
	return 0, fmt.Errorf("unknown hand %q: expected left, right or both", s)
}

// FingerLocation is a bit-flag finger channel identifier.
// The byte value goes on the wire unchanged.
type FingerLocation uint8

const (
	Thumb  FingerLocation = 0b00000001
	Index  FingerLocation = 0b00000010
	Middle FingerLocation = 0b00000100
	Ring   FingerLocation = 0b00001000
	Pinky  FingerLocation = 0b00010000
)

// FingerCount is the number of finger channels per hand
const FingerCount = 5

// Fingers lists every finger location in ordinal order
var Fingers = [FingerCount]FingerLocation{Thumb, Index, Middle, Ring, Pinky}

// Valid reports whether l names exactly one finger
func (l FingerLocation) Valid() bool {
	return l != 0 && l&(l-1) == 0 && l <= Pinky
}

// Ordinal returns the channel index (0..4) of a single finger, or -1 if l is not valid
func (l FingerLocation) Ordinal() int {
	if !l.Valid() {
		return -1
	}
	return bits.TrailingZeros8(uint8(l))
}

func (l FingerLocation) String() string {
	switch l {
	case Thumb:
		return "thumb"
	case Index:
		return "index"
	case Middle:
		return "middle"
	case Ring:
		return "ring"
	case Pinky:
		return "pinky"
	default:
		return fmt.Sprintf("finger(0x%02x)", uint8(l))
	}
}

// ParseFingerLocation converts a case-insensitive finger name into a FingerLocation
func ParseFingerLocation(s string) (FingerLocation, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Fingers {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown finger %q: expected thumb, index, middle, ring or pinky", s)
}

// PulseRequest asks for one pulse on one finger of one or both hands.
// Strength is nominally 0-1 and is clamped at encode time; Duration is in seconds.
type PulseRequest struct {
	Hand     Hand
	Location FingerLocation
	Strength float32
	Duration float32
}
