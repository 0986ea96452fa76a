package scene

import (
	"maps"
	"time"

	"github.com/olivier-w/siderun/internal/clock"
	"github.com/olivier-w/siderun/internal/config"
	"github.com/olivier-w/siderun/internal/siderun"
)

// Stage is a sheet brought to life: a document, its clock and a runtime
// with a border on every host.
type Stage struct {
	Sheet   config.Sheet
	Clock   *clock.Virtual
	Doc     *Document
	Runtime *siderun.Runtime

	disposers []siderun.Disposer
}

// Build populates a document from s.
func Build(s config.Sheet, c *clock.Virtual) *Document {
	d := NewDocument(c)
	d.SetReducedMotion(s.ReducedMotion)
	d.SetTouch(s.Touch)
	for _, h := range s.Hosts {
		style := config.MapStyle{}
		maps.Copy(style, h.Style)
		el := d.AddElement(h.ID, h.Rect, style)
		label := h.Label
		if label == "" {
			label = h.ID
		}
		el.SetLabel(label)
		for _, l := range h.Links {
			el.AddLink(l.Label, l.Rect)
		}
	}
	d.SetViewport(s.Viewport.Width, s.Viewport.Height)
	return d
}

// NewStage builds s on a virtual clock starting at start. Borders are not
// attached until Attach is called.
func NewStage(s config.Sheet, start time.Time, fps int) *Stage {
	c := clock.NewVirtual(start, fps)
	d := Build(s, c)
	return &Stage{
		Sheet:   s,
		Clock:   c,
		Doc:     d,
		Runtime: siderun.New(d, c),
	}
}

// Attach initialises a border on every host, applying override on top of
// each host's own options. Borders from a previous Attach are replaced.
func (st *Stage) Attach(override config.Options) {
	st.disposers = st.disposers[:0]
	for i, h := range st.Sheet.Hosts {
		el := st.Doc.elements[i]
		st.disposers = append(st.disposers, st.Runtime.Init(el, h.Options.Merge(override)))
	}
}

// Close disposes every border.
func (st *Stage) Close() {
	for _, dispose := range st.disposers {
		dispose()
	}
	st.disposers = nil
	st.Runtime.Close()
}
