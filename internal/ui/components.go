package ui

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/olivier-w/siderun/internal/siderun"
)

// lapFraction is where the primary runner sits on the perimeter, in [0,1).
func lapFraction(s siderun.Snapshot) float64 {
	p := s.Metrics.Perimeter
	if p <= 0 {
		return 0
	}
	q := math.Mod(s.Primary.Eased, p)
	if q < 0 {
		q += p
	}
	return q / p
}

func stateIcon(s siderun.State) string {
	switch s {
	case siderun.StateActive:
		return "▶"
	case siderun.StatePaused:
		return "❚❚"
	case siderun.StateDisposed:
		return "×"
	}
	return "…"
}

func renderHostLine(label string, s siderun.Snapshot, selected bool, bar progress.Model) string {
	marker := "  "
	name := labelStyle.Render(fmt.Sprintf("%-12s", label))
	if selected {
		marker = "▸ "
		name = selectedStyle.Render(fmt.Sprintf("%-12s", label))
	}
	hover := "idle      "
	if s.Hover.Active {
		hover = fmt.Sprintf("hover %.2f", s.Hover.X)
	}
	state := statusStyle.Render(fmt.Sprintf("%-2s %-8s", stateIcon(s.State), s.State))
	pos := valueStyle.Render(fmt.Sprintf("%6.1f / %.1f", s.Primary.Eased, s.Metrics.Perimeter))
	return fmt.Sprintf("%s%s %s %s %s %s", marker, name, state, valueStyle.Render(hover), bar.ViewAs(lapFraction(s)), pos)
}
