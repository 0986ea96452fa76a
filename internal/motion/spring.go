package motion

import "github.com/charmbracelet/harmonica"

const (
	springFrequency = 6.0
	springDamping   = 1.0 // critically damped
)

type spring struct {
	spring harmonica.Spring
}

func newSpring(fps float64) *spring {
	if fps <= 0 {
		fps = 60
	}
	return &spring{spring: harmonica.NewSpring(harmonica.FPS(int(fps)), springFrequency, springDamping)}
}

// step moves c one frame along the spring. A step that would carry the
// cursor past its target lands on the target instead.
func (s *spring) step(c *Cursor) {
	before := c.Target - c.Eased
	p, v := s.spring.Update(c.Eased, c.velocity, c.Target)
	after := c.Target - p
	if before == 0 || (before > 0) != (after > 0) {
		c.Eased = c.Target
		c.velocity = 0
		return
	}
	c.Eased = p
	c.velocity = v
}
