package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/siderun/internal/clock"
	"github.com/olivier-w/siderun/internal/config"
	"github.com/olivier-w/siderun/internal/scene"
)

// Rows above the canvas: the title line and a blank line.
const headerRows = 2

// Options configure the demo model.
type Options struct {
	// ReducedMotion starts the demo in reduced-motion mode.
	ReducedMotion bool
}

// Model is the Bubbletea model for the interactive border demo.
type Model struct {
	sheet config.Sheet
	stage *scene.Stage

	width, height int
	cols, rows    int

	motion   MotionMode
	tracking TrackingMode
	selected int
	quitting bool

	keys    keyMap
	help    help.Model
	bar     progress.Model
	profile colorProfile
}

// New creates a demo for sheet with a border attached to every host.
func New(sheet config.Sheet, opts Options) Model {
	bar := progress.New(
		progress.WithScaledGradient("#C678DD", "#61AFEF"),
		progress.WithoutPercentage(),
	)
	bar.Width = 16

	m := Model{
		sheet:   sheet,
		stage:   scene.NewStage(sheet, time.Now(), clock.DefaultFPS),
		keys:    defaultKeyMap(),
		help:    help.New(),
		bar:     bar,
		profile: currentColorProfile(),
	}
	if opts.ReducedMotion {
		m.motion = MotionReduced
	}
	m.cols, m.rows = 80, 16
	if vw, vh := sheet.Viewport.Width, sheet.Viewport.Height; vw > 0 && vh > 0 {
		m.cols = int(math.Ceil(vw / cellWidth))
		m.rows = int(math.Ceil(vh / cellHeight))
	}
	m.reattach()
	return m
}

// Stage exposes the running scene.
func (m Model) Stage() *scene.Stage { return m.stage }

// Motion returns the current motion mode.
func (m Model) Motion() MotionMode { return m.motion }

// Tracking returns the current tracking mode.
func (m Model) Tracking() TrackingMode { return m.tracking }

func (m Model) overrides() config.Options {
	var o config.Options
	if m.motion == MotionSpring {
		o.Easing = config.String(m.motion.Easing().String())
	}
	if m.tracking == TrackingAll {
		o.TrackPointer = config.Bool(true)
	}
	return o
}

// reattach re-initialises every host with the current modes.
func (m Model) reattach() {
	m.stage.Doc.SetReducedMotion(m.sheet.ReducedMotion || m.motion == MotionReduced)
	m.stage.Attach(m.overrides())
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.stage.Clock.Interval()), tea.SetWindowTitle(windowTitle(m.sheet.Name)))
}

func (m Model) nextTick() tea.Cmd {
	c := m.stage.Clock
	if c.FramePending() {
		return tickCmd(c.Interval())
	}
	if deadline, ok := c.NextDeadline(); ok {
		return tickCmd(max(deadline.Sub(c.Now()), c.Interval()))
	}
	return tickCmd(idleTick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			m.quitting = true
			m.stage.Close()
			return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
		}
		switch {
		case key.Matches(msg, m.keys.Motion):
			m.motion = m.motion.Next()
			m.reattach()
		case key.Matches(msg, m.keys.Tracking):
			m.tracking = m.tracking.Toggle()
			m.reattach()
		case key.Matches(msg, m.keys.Next):
			if n := len(m.sheet.Hosts); n > 0 {
				m.selected = (m.selected + 1) % n
			}
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case tickMsg:
		m.stage.Clock.Tick(time.Time(msg))
		return m, m.nextTick()

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.FocusMsg:
		m.stage.Doc.SetHidden(false)
		return m, nil

	case tea.BlurMsg:
		m.stage.Doc.PointerLeave()
		m.stage.Doc.SetHidden(true)
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.cols = msg.Width
		m.rows = max(1, msg.Height-headerRows-m.footerRows())
		m.relayout()
		return m, nil
	}

	return m, nil
}

func (m Model) footerRows() int {
	helpRows := 1
	if m.help.ShowAll {
		helpRows = 3
	}
	return 1 + len(m.sheet.Hosts) + 1 + helpRows
}

// relayout sizes the viewport to the canvas and narrows hosts that would
// overflow it. Resized hosts recalculate after the resize debounce.
func (m Model) relayout() {
	vw := float64(m.cols) * cellWidth
	vh := float64(m.rows) * cellHeight
	doc := m.stage.Doc
	doc.SetViewport(vw, vh)

	for _, h := range m.sheet.Hosts {
		el := doc.Element(h.ID)
		if el == nil {
			continue
		}
		r := h.Rect
		if limit := vw - r.Left - cellWidth; r.Width > limit {
			r.Width = max(limit, 0)
		}
		if el.Bounds() != r {
			el.SetBounds(r)
		}
	}
}

// handleMouse converts terminal cells to document pixels, sampling the
// middle of the cell.
func (m Model) handleMouse(msg tea.MouseMsg) {
	doc := m.stage.Doc
	row := msg.Y - headerRows
	if row < 0 || row >= m.rows || msg.X < 0 || msg.X >= m.cols {
		doc.PointerLeave()
		return
	}
	x := (float64(msg.X) + 0.5) * cellWidth
	y := (float64(row) + 0.5) * cellHeight

	if doc.TouchCapable() && msg.Button == tea.MouseButtonLeft {
		switch msg.Action {
		case tea.MouseActionPress:
			doc.TouchStart(x, y)
		case tea.MouseActionMotion:
			doc.TouchMove(x, y)
		}
	}
	if doc.TouchCapable() && msg.Action == tea.MouseActionRelease {
		doc.TouchEnd()
	}
	doc.PointerMove(x, y)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(" ")
	b.WriteString(headerStyle.Render("siderun"))
	b.WriteString("  ")
	b.WriteString(titleStyle.Render(m.sheet.Name))
	for _, icon := range []string{m.motion.Icon(), m.tracking.Icon()} {
		if icon != "" {
			b.WriteString("  ")
			b.WriteString(statusStyle.Render(icon))
		}
	}
	if m.stage.Doc.Hidden() {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render("(paused)"))
	}
	b.WriteString("\n\n")

	b.WriteString(renderDocument(m.stage.Doc, m.cols, m.rows, m.profile, defaultPalette))
	b.WriteString("\n\n")

	for i, h := range m.sheet.Hosts {
		s, ok := m.stage.Runtime.Snapshot(h.ID)
		if !ok {
			continue
		}
		label := h.Label
		if label == "" {
			label = h.ID
		}
		b.WriteString(renderHostLine(label, s, i == m.selected, m.bar))
		b.WriteString("\n")
	}

	b.WriteString("\n ")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func windowTitle(name string) string {
	return fmt.Sprintf("siderun · %s", name)
}
