package viewpoint

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/waddle/camera"
	"github.com/pthm-cable/waddle/input"
)

// Strategy is a camera mode implementation. Strategies own their pose whether
// or not they are active.
type Strategy interface {
	// Activate hands the viewpoint to the strategy. seed may be nil.
	Activate(seed *camera.Pose)
	Deactivate()
	Update(dt float64)
	Pose() camera.Pose
}

// EventSource yields the discrete input events since the last drain.
type EventSource interface {
	Drain() []input.Event
}

// Observer is notified after every mode change.
type Observer interface {
	ModeChanged(from, to Mode)
}

// Controller owns the mode selector and the published viewpoint. It starts in
// ModeThirdPerson with the third-person strategy activated.
type Controller struct {
	thirdPerson Strategy
	fly         Strategy
	events      EventSource
	observer    Observer
	logger      *slog.Logger

	mode      Mode
	published camera.Pose
	switches  int
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers a mode change observer.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// WithLogger sets the logger used for mode changes.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// New creates a controller over the two strategies. events may be nil when
// toggles only come through Toggle or SetMode.
func New(thirdPerson, fly Strategy, events EventSource, opts ...Option) *Controller {
	c := &Controller{
		thirdPerson: thirdPerson,
		fly:         fly,
		events:      events,
		mode:        ModeThirdPerson,
		published:   camera.IdentityPose(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	c.thirdPerson.Activate(nil)
	return c
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Pose returns the pose published by the last Update.
func (c *Controller) Pose() camera.Pose {
	return c.published
}

// Switches returns how many mode changes have happened.
func (c *Controller) Switches() int {
	return c.switches
}

// Toggle flips between third-person and fly.
func (c *Controller) Toggle() {
	c.transition(c.mode.Next())
}

// SetMode selects a mode directly, with the same activation hand-off as
// Toggle. Selecting the active mode does nothing.
func (c *Controller) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, uint8(m))
	}
	if m == c.mode {
		return nil
	}
	c.transition(m)
	return nil
}

func (c *Controller) transition(to Mode) {
	from := c.mode
	switch to {
	case ModeFly:
		c.thirdPerson.Deactivate()
		seed := c.published
		c.fly.Activate(&seed)
	case ModeThirdPerson:
		c.fly.Deactivate()
		c.thirdPerson.Activate(nil)
	}
	c.mode = to
	c.switches++

	c.logger.Info("viewpoint mode changed", "from", from.String(), "to", to.String())
	if c.observer != nil {
		c.observer.ModeChanged(from, to)
	}
}

// Update applies pending toggle events, advances both strategies and
// publishes the active one's pose.
func (c *Controller) Update(dt float64) {
	if c.events != nil {
		for _, e := range c.events.Drain() {
			if e == input.EventToggleCameraMode {
				c.Toggle()
			}
		}
	}

	c.thirdPerson.Update(dt)
	c.fly.Update(dt)

	c.published = c.active().Pose()
}

func (c *Controller) active() Strategy {
	switch c.mode {
	case ModeThirdPerson:
		return c.thirdPerson
	case ModeFly:
		return c.fly
	}
	panic(fmt.Sprintf("viewpoint: invalid mode %d", uint8(c.mode)))
}
