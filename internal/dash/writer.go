package dash

import "github.com/olivier-w/siderun/internal/surface"

// Sink receives attribute writes.
type Sink interface {
	SetAttr(l surface.Layer, name, value string)
}

type attrKey struct {
	layer surface.Layer
	name  string
}

// Writer applies frames to a sink, skipping attributes whose formatted
// value has not changed since the last write.
type Writer struct {
	sink Sink
	last map[attrKey]string
}

// NewWriter returns a Writer for sink.
func NewWriter(sink Sink) *Writer {
	return &Writer{sink: sink, last: make(map[attrKey]string, len(surface.Layers)*2)}
}

// Apply writes f and returns the number of attributes actually written.
func (w *Writer) Apply(f Frame) int {
	n := 0
	for _, l := range surface.Layers {
		p := f.Layer(l)
		if w.set(l, surface.AttrDashArray, p.Array()) {
			n++
		}
		if w.set(l, surface.AttrDashOffset, p.OffsetAttr()) {
			n++
		}
	}
	return n
}

func (w *Writer) set(l surface.Layer, name, value string) bool {
	k := attrKey{layer: l, name: name}
	if prev, ok := w.last[k]; ok && prev == value {
		return false
	}
	w.sink.SetAttr(l, name, value)
	w.last[k] = value
	return true
}
