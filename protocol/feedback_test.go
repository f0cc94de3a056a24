package protocol

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameLayout(t *testing.T) {
	frame := Frame(PulseRequest{Hand: HandLeft, Location: Index, Strength: 0.5, Duration: 0.2})

	// 0.2f is 0x3E4CCCCD
	want := [FrameSize]byte{2, 128, 0xCD, 0xCC, 0x4C, 0x3E, 0x00, 0x00}
	if diff := cmp.Diff(want, frame); diff != "" {
		t.Errorf("Frame mismatch (-want +got):\n%s", diff)
	}
}

func TestFrameRingScenario(t *testing.T) {
	frame := Frame(PulseRequest{Hand: HandBoth, Location: Ring, Strength: 0.8, Duration: 0.3})

	// 0.3f is 0x3E99999A
	want := [FrameSize]byte{8, 204, 0x9A, 0x99, 0x99, 0x3E, 0x00, 0x00}
	if diff := cmp.Diff(want, frame); diff != "" {
		t.Errorf("Frame mismatch (-want +got):\n%s", diff)
	}
}

func TestConsecutiveFramesAreComplete(t *testing.T) {
	requests := []PulseRequest{
		{Location: Thumb, Strength: 1, Duration: 0.1},
		{Location: Pinky, Strength: 0, Duration: 0.1},
		{Location: Ring, Strength: 0.8, Duration: 0.3},
	}

	var stream []byte
	for _, req := range requests {
		frame := Frame(req)
		stream = append(stream, frame[:]...)
	}
	require.Len(t, stream, len(requests)*FrameSize)

	for i, req := range requests {
		fields, err := DecodeFrame(stream[i*FrameSize : (i+1)*FrameSize])
		require.NoError(t, err, "frame %d", i)
		assert.Equal(t, req.Location, fields.Location, "frame %d", i)
		assert.Equal(t, StrengthByte(req.Strength), fields.Strength, "frame %d", i)
		assert.Equal(t, req.Duration, fields.Duration, "frame %d", i)
	}
}

func TestFrameIgnoresHand(t *testing.T) {
	left := Frame(PulseRequest{Hand: HandLeft, Location: Middle, Strength: 0.3, Duration: 1})
	right := Frame(PulseRequest{Hand: HandRight, Location: Middle, Strength: 0.3, Duration: 1})
	assert.Equal(t, left, right)
}

func TestStrengthByte(t *testing.T) {
	testCases := []struct {
		name     string
		strength float32
		expected byte
	}{
		{"zero", 0, 0},
		{"full", 1, 255},
		{"half rounds up", 0.5, 128},
		{"ring scenario", 0.8, 204},
		{"over range clamps", 1.5, 255},
		{"negative clamps", -0.3, 0},
		{"negative zero", float32(math.Copysign(0, -1)), 0},
		{"NaN", float32(math.NaN()), 0},
		{"positive infinity", float32(math.Inf(1)), 255},
		{"negative infinity", float32(math.Inf(-1)), 0},
		{"smallest step", 1.0 / 255, 1},
		{"just under half step", 0.49 / 255, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, StrengthByte(tc.strength))
		})
	}
}

func TestStrengthClampingMatchesBounds(t *testing.T) {
	over := Frame(PulseRequest{Location: Thumb, Strength: 1.5, Duration: 0.1})
	full := Frame(PulseRequest{Location: Thumb, Strength: 1.0, Duration: 0.1})
	assert.Equal(t, full, over)

	under := Frame(PulseRequest{Location: Thumb, Strength: -0.3, Duration: 0.1})
	zero := Frame(PulseRequest{Location: Thumb, Strength: 0, Duration: 0.1})
	assert.Equal(t, zero, under)
}

func TestDurationPassesThrough(t *testing.T) {
	durations := []float32{
		0,
		-1.25,
		1e30,
		float32(math.Inf(1)),
		float32(math.NaN()),
	}

	for _, d := range durations {
		frame := Frame(PulseRequest{Location: Pinky, Strength: 1, Duration: d})

		fields, err := DecodeFrame(frame[:])
		require.NoError(t, err)
		assert.Equal(t, math.Float32bits(d), math.Float32bits(fields.Duration),
			"duration %v should be encoded bit-exact", d)
	}
}

func TestEveryFingerEncodesItsFlag(t *testing.T) {
	for _, f := range Fingers {
		frame := Frame(PulseRequest{Location: f, Strength: 1, Duration: 0.1})
		assert.Equal(t, byte(f), frame[FramePositionLocation])
		assert.Equal(t, []byte{0, 0}, frame[FramePositionTerminator:])
	}
}

func TestDecodeFrame(t *testing.T) {
	frame := Frame(PulseRequest{Location: Middle, Strength: 0.25, Duration: 0.75})

	fields, err := DecodeFrame(frame[:])
	require.NoError(t, err)
	assert.Equal(t, FrameFields{Location: Middle, Strength: 64, Duration: 0.75}, fields)
}

func TestDecodeFrameRejectsMalformed(t *testing.T) {
	frame := Frame(PulseRequest{Location: Middle, Strength: 0.25, Duration: 0.75})

	_, err := DecodeFrame(frame[:7])
	assert.ErrorIs(t, err, ErrBadFrame)

	_, err = DecodeFrame(append(frame[:], 0))
	assert.ErrorIs(t, err, ErrBadFrame)

	bad := frame
	bad[FrameSize-1] = 0xFF
	_, err = DecodeFrame(bad[:])
	assert.ErrorIs(t, err, ErrBadFrame)
}
