// Package motion moves the two runner cursors toward their rest or hover
// targets, one frame at a time.
package motion

import (
	"math"

	"github.com/olivier-w/siderun/internal/geometry"
)

// DefaultSnapThreshold is the distance below which resting cursors jump
// straight to their target.
const DefaultSnapThreshold = 0.4

// Mode selects how eased values approach their targets.
type Mode int

const (
	ModeExponential Mode = iota
	ModeSpring
)

// String returns the name used in configuration.
func (m Mode) String() string {
	switch m {
	case ModeSpring:
		return "spring"
	default:
		return "exponential"
	}
}

// ParseMode maps a configuration name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "exponential", "exp":
		return ModeExponential, true
	case "spring":
		return ModeSpring, true
	}
	return ModeExponential, false
}

// Cursor is one runner position: where it is heading and where it is drawn.
type Cursor struct {
	Target float64
	Eased  float64

	velocity float64
}

// Hover is the pointer state relative to the host, X and Y in [0,1].
type Hover struct {
	Active bool
	X, Y   float64
}

// Clamp01 limits v to [0,1].
func Clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}

// Mix linearly interpolates from a to b.
func Mix(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Targets returns the primary and secondary targets for the given hover
// state. The secondary cursor runs the opposite way round.
func Targets(b geometry.Bases, h Hover) (primary, secondary float64) {
	if !h.Active {
		return b.PrimaryStart, b.SecondaryStart
	}
	ratio := Clamp01(h.X)
	return Mix(b.PrimaryStart, b.PrimaryEnd, ratio), Mix(b.SecondaryEnd, b.SecondaryStart, ratio)
}

// Engine eases the primary and secondary cursors.
type Engine struct {
	Primary   Cursor
	Secondary Cursor

	// Ease is the fraction of the remaining distance covered per frame, in (0,1].
	Ease          float64
	SnapThreshold float64
	ReducedMotion bool
	Mode          Mode

	spring *spring
	seeded bool
}

// NewEngine returns an engine with the given ease factor and mode.
func NewEngine(ease float64, mode Mode, fps float64) *Engine {
	e := &Engine{
		Ease:          ease,
		SnapThreshold: DefaultSnapThreshold,
		Mode:          mode,
	}
	if mode == ModeSpring {
		e.spring = newSpring(fps)
	}
	return e
}

// Seeded reports whether Reset has placed the cursors yet.
func (e *Engine) Seeded() bool { return e.seeded }

// Reset places both cursors at rest with no animation.
func (e *Engine) Reset(b geometry.Bases) {
	e.Primary = Cursor{Target: b.PrimaryStart, Eased: b.PrimaryStart}
	e.Secondary = Cursor{Target: b.SecondaryStart, Eased: b.SecondaryStart}
	e.seeded = true
}

// Retarget updates targets after a geometry change and leaves the eased
// values alone so the cursors glide to their new positions. The first call
// behaves like Reset.
func (e *Engine) Retarget(b geometry.Bases, h Hover) {
	if !e.seeded {
		e.Reset(b)
		return
	}
	e.Primary.Target, e.Secondary.Target = Targets(b, h)
}

// Step advances one frame and reports whether the cursors have settled.
func (e *Engine) Step(b geometry.Bases, h Hover) (settled bool) {
	e.Primary.Target, e.Secondary.Target = Targets(b, h)

	d1 := math.Abs(e.Primary.Target - e.Primary.Eased)
	d2 := math.Abs(e.Secondary.Target - e.Secondary.Eased)
	threshold := e.SnapThreshold
	if threshold <= 0 {
		threshold = DefaultSnapThreshold
	}

	if !h.Active && d1 < threshold && d2 < threshold {
		e.snap()
		return true
	}
	if e.ReducedMotion {
		e.snap()
		return false
	}

	if e.Mode == ModeSpring && e.spring != nil {
		e.spring.step(&e.Primary)
		e.spring.step(&e.Secondary)
		return false
	}
	e.Primary.Eased += (e.Primary.Target - e.Primary.Eased) * e.Ease
	e.Secondary.Eased += (e.Secondary.Target - e.Secondary.Eased) * e.Ease
	return false
}

func (e *Engine) snap() {
	e.Primary.Eased = e.Primary.Target
	e.Secondary.Eased = e.Secondary.Target
	e.Primary.velocity = 0
	e.Secondary.velocity = 0
}
