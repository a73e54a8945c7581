// Package timer provides the delay and sound timers. Both
// count down towards zero at a fixed external rate (60Hz),
// independent of how many instructions are executed.
package timer

import "github.com/thelolagemann/gochip8/internal/types"

// Frequency is the rate at which the timers are decremented.
const Frequency = 60

// Controller is the timer pair.
type Controller struct {
	Delay uint8
	Sound uint8
}

// NewController returns a new timer controller with both
// timers stopped.
func NewController() *Controller {
	return &Controller{}
}

// Tick decrements each timer that is above zero.
func (c *Controller) Tick() {
	if c.Delay > 0 {
		c.Delay--
	}
	if c.Sound > 0 {
		c.Sound--
	}
}

// SoundActive reports whether the buzzer should be sounding.
func (c *Controller) SoundActive() bool {
	return c.Sound > 0
}

// Reset stops both timers.
func (c *Controller) Reset() {
	c.Delay = 0
	c.Sound = 0
}

var _ types.Stater = (*Controller)(nil)

func (c *Controller) Load(s *types.State) {
	c.Delay = s.Read8()
	c.Sound = s.Read8()
}

func (c *Controller) Save(s *types.State) {
	s.Write8(c.Delay)
	s.Write8(c.Sound)
}
