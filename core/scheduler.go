// Package core holds the per-channel pulse scheduling logic
package core

import (
	"fmt"

	"hapticglove/protocol"
)

// SuppressGuard is subtracted from every suppression window so a follow-up
// pulse may start slightly before the previous one nominally ends.
const SuppressGuard = 0.05

// Side is one physical hand controller
type Side uint8

const (
	SideLeft Side = iota
	SideRight
)

// SideCount is the number of physical hand controllers
const SideCount = 2

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return fmt.Sprintf("side(%d)", uint8(s))
	}
}

// Sides expands a request hand into the physical sides it targets.
// Unknown hands target nothing.
func Sides(h protocol.Hand) []Side {
	switch h {
	case protocol.HandLeft:
		return []Side{SideLeft}
	case protocol.HandRight:
		return []Side{SideRight}
	case protocol.HandBoth:
		return []Side{SideLeft, SideRight}
	default:
		return nil
	}
}

// HandScheduler gates pulses on the five finger channels of one hand.
// It is not safe for concurrent use; the owner serializes access.
type HandScheduler struct {
	suppressUntil [protocol.FingerCount]float64
}

// NewHandScheduler creates a scheduler with every channel open at now
func NewHandScheduler(now float64) *HandScheduler {
	s := &HandScheduler{}
	s.Reset(now)
	return s
}

// Reset opens every channel at now
func (s *HandScheduler) Reset(now float64) {
	for i := range s.suppressUntil {
		s.suppressUntil[i] = now
	}
}

// TryAdmit reports whether a pulse on loc may be sent at now. On admission the
// channel is suppressed until now+duration-SuppressGuard. Durations shorter than
// the guard leave the channel open immediately.
func (s *HandScheduler) TryAdmit(loc protocol.FingerLocation, now, duration float64) bool {
	idx := loc.Ordinal()
	if idx < 0 {
		return false
	}

	if s.suppressUntil[idx] > now {
		return false
	}

	s.suppressUntil[idx] = now + duration - SuppressGuard
	return true
}

// SuppressedUntil returns the end of the suppression window for loc
func (s *HandScheduler) SuppressedUntil(loc protocol.FingerLocation) (float64, bool) {
	idx := loc.Ordinal()
	if idx < 0 {
		return 0, false
	}
	return s.suppressUntil[idx], true
}
