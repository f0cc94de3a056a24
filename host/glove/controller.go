// Package glove drives a pair of haptic glove controllers
package glove

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"hapticglove/core"
	"hapticglove/protocol"
)

// State is the controller lifecycle state
type State uint8

const (
	StateUninitialized State = iota
	StateReady
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Outcome is what happened to a pulse on one side
type Outcome uint8

const (
	OutcomeSkipped     Outcome = iota // side not targeted
	OutcomeSuppressed                 // channel still busy, nothing written
	OutcomeSent                       // frame written
	OutcomeWriteFailed                // frame admitted but the sink rejected it
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeSuppressed:
		return "suppressed"
	case OutcomeSent:
		return "sent"
	case OutcomeWriteFailed:
		return "write-failed"
	default:
		return fmt.Sprintf("outcome(%d)", uint8(o))
	}
}

// FeedbackResult reports the per-side outcome of ApplyFeedback
type FeedbackResult struct {
	Left  Outcome
	Right Outcome
}

// For returns the outcome for side
func (r FeedbackResult) For(side core.Side) Outcome {
	if side == core.SideLeft {
		return r.Left
	}
	return r.Right
}

func (r *FeedbackResult) set(side core.Side, o Outcome) {
	if side == core.SideLeft {
		r.Left = o
	} else {
		r.Right = o
	}
}

// SideOpen is the open result for one side
type SideOpen struct {
	Port string
	Err  error
}

// OpenReport is returned by Initialize. A failed open is reported here, not as an error.
type OpenReport struct {
	Left  SideOpen
	Right SideOpen
}

// OK reports whether both sides opened
func (r OpenReport) OK() bool {
	return r.Left.Err == nil && r.Right.Err == nil
}

// Status is a snapshot of the controller and its sinks
type Status struct {
	State      State
	LeftReady  bool
	RightReady bool
}

// Controller routes pulse requests to the left and right glove sinks,
// dropping pulses whose finger channel is still busy.
// All methods are safe for concurrent use.
type Controller struct {
	mu sync.Mutex

	clock  core.Clock
	logger *zap.Logger
	opener SinkOpener

	state      State
	ports      [core.SideCount]string
	sinks      [core.SideCount]Sink
	schedulers [core.SideCount]*core.HandScheduler
}

// New creates an uninitialized controller
func New(opts ...Option) *Controller {
	c := &Controller{
		state: StateUninitialized,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.clock == nil {
		c.clock = core.NewMonotonicClock()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.opener == nil {
		c.opener = DefaultSinkOpener()
	}

	return c
}

// Initialize opens both sinks and opens every finger channel.
// Open failures are logged and reported; the controller is usable either way.
func (c *Controller) Initialize(leftPort, rightPort string) (OpenReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateReady {
		return OpenReport{}, ErrAlreadyInitialized
	}

	report := OpenReport{
		Left:  c.openSide(core.SideLeft, leftPort),
		Right: c.openSide(core.SideRight, rightPort),
	}

	now := c.clock.Now()
	for i := range c.schedulers {
		c.schedulers[i] = core.NewHandScheduler(now)
	}

	c.state = StateReady
	c.logger.Info("Glove controller initialized",
		zap.String("left_port", leftPort),
		zap.String("right_port", rightPort),
		zap.Bool("left_open", report.Left.Err == nil),
		zap.Bool("right_open", report.Right.Err == nil))

	return report, nil
}

func (c *Controller) openSide(side core.Side, port string) SideOpen {
	sink, err := c.opener(port)
	if sink == nil {
		sink = &unopenedSink{port: port}
		if err == nil {
			err = fmt.Errorf("no sink for port %s", port)
		}
	}

	if err != nil {
		c.logger.Warn("Could not open glove port",
			zap.Stringer("side", side),
			zap.String("port", port),
			zap.Error(err))
	}

	c.ports[side] = port
	c.sinks[side] = sink
	return SideOpen{Port: port, Err: err}
}

// ApplyFeedback sends req to each targeted hand whose finger channel is free.
// Busy channels are skipped silently and transport failures are logged, so
// the returned error only covers misuse: an invalid request or a controller
// that is not initialized.
func (c *Controller) ApplyFeedback(req protocol.PulseRequest) (FeedbackResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var result FeedbackResult

	if c.state != StateReady {
		return result, ErrNotInitialized
	}
	if !req.Hand.Valid() {
		return result, fmt.Errorf("%w: %s", ErrInvalidHand, req.Hand)
	}
	if !req.Location.Valid() {
		return result, fmt.Errorf("%w: %s", ErrInvalidLocation, req.Location)
	}

	for _, side := range core.Sides(req.Hand) {
		result.set(side, c.applySide(side, req))
	}

	return result, nil
}

func (c *Controller) applySide(side core.Side, req protocol.PulseRequest) Outcome {
	now := c.clock.Now()
	sink := c.sinks[side]

	if !sink.IsReady() {
		c.logger.Warn("Applying feedback but the glove port is not open",
			zap.Stringer("side", side),
			zap.String("port", c.ports[side]))
	}

	if !c.schedulers[side].TryAdmit(req.Location, now, float64(req.Duration)) {
		c.logger.Debug("Pulse suppressed",
			zap.Stringer("side", side),
			zap.Stringer("finger", req.Location),
			zap.Float64("now", now))
		return OutcomeSuppressed
	}

	frame := protocol.Frame(req)
	if _, err := sink.Write(frame[:]); err != nil {
		c.logger.Warn("Failed to write feedback frame",
			zap.Stringer("side", side),
			zap.String("port", c.ports[side]),
			zap.Error(err))
		return OutcomeWriteFailed
	}

	return OutcomeSent
}

// Close releases both sinks. Closing a controller that is not running
// returns ErrNotInitialized.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReady {
		return ErrNotInitialized
	}

	var errs []error
	for i, sink := range c.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, fmt.Errorf("%s hand: %w", core.Side(i), err))
		}
		c.sinks[i] = nil
		c.schedulers[i] = nil
	}

	c.state = StateClosed
	c.logger.Info("Glove controller closed")

	return errors.Join(errs...)
}

// State returns the lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns the lifecycle state and sink readiness
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	status := Status{State: c.state}
	if c.state == StateReady {
		status.LeftReady = c.sinks[core.SideLeft].IsReady()
		status.RightReady = c.sinks[core.SideRight].IsReady()
	}
	return status
}
