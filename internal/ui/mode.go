package ui

import "github.com/olivier-w/siderun/internal/motion"

// MotionMode selects how the runners move.
type MotionMode int

const (
	MotionExponential MotionMode = iota
	MotionSpring
	MotionReduced
)

// Next cycles to the next motion mode.
func (m MotionMode) Next() MotionMode {
	switch m {
	case MotionExponential:
		return MotionSpring
	case MotionSpring:
		return MotionReduced
	default:
		return MotionExponential
	}
}

// String returns the name of the motion mode.
func (m MotionMode) String() string {
	switch m {
	case MotionSpring:
		return "spring"
	case MotionReduced:
		return "reduced"
	default:
		return "exponential"
	}
}

// Easing returns the engine easing for the mode. Reduced motion keeps the
// default easing; the environment preference makes the engine snap.
func (m MotionMode) Easing() motion.Mode {
	if m == MotionSpring {
		return motion.ModeSpring
	}
	return motion.ModeExponential
}

// Icon returns a visual indicator for the motion mode.
func (m MotionMode) Icon() string {
	switch m {
	case MotionSpring:
		return "[spring]"
	case MotionReduced:
		return "[reduced]"
	default:
		return ""
	}
}

// TrackingMode controls whether every host follows the pointer.
type TrackingMode int

const (
	TrackingSheet TrackingMode = iota
	TrackingAll
)

// Toggle switches between the sheet's own setting and tracking everywhere.
func (t TrackingMode) Toggle() TrackingMode {
	if t == TrackingAll {
		return TrackingSheet
	}
	return TrackingAll
}

// Icon returns a visual indicator for the tracking mode.
func (t TrackingMode) Icon() string {
	if t == TrackingAll {
		return "[track]"
	}
	return ""
}
