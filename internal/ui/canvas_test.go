package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/olivier-w/siderun/internal/config"
	"github.com/olivier-w/siderun/internal/scene"
	"github.com/olivier-w/siderun/internal/surface"
)

func TestRoundRectDist(t *testing.T) {
	tests := []struct {
		x, y float64
		want float64
	}{
		{50, 0, 0},
		{50, 20, -20},
		{50, -5, 5},
		{0, 20, 0},
	}
	for _, tt := range tests {
		if got := roundRectDist(tt.x, tt.y, 100, 40, 10); got != tt.want {
			t.Fatalf("roundRectDist(%v, %v): expected %v, got %v", tt.x, tt.y, tt.want, got)
		}
	}
}

func TestClassify(t *testing.T) {
	if classify(50, 0, 100, 40, 10) != edgeHorizontal {
		t.Fatal("expected top edge to be horizontal")
	}
	if classify(0, 20, 100, 40, 10) != edgeVertical {
		t.Fatal("expected left edge to be vertical")
	}
	if classify(2, 2, 100, 40, 10) != edgeTopLeft || classify(98, 38, 100, 40, 10) != edgeBottomRight {
		t.Fatal("expected corners")
	}
}

func TestCanvasRenderPlain(t *testing.T) {
	cv := newCanvas(4, 2)
	cv.text(1, 0, "ab", colorRGB{R: 255})
	cv.put(9, 9, 'x', colorRGB{})
	if got := cv.render(colorNone); got != " ab \n    " {
		t.Fatalf("unexpected render %q", got)
	}
}

func TestCanvasRenderColorResets(t *testing.T) {
	cv := newCanvas(2, 1)
	cv.put(0, 0, 'a', colorRGB{R: 10, G: 20, B: 30})
	cv.put(1, 0, 'b', colorRGB{R: 10, G: 20, B: 30})
	got := cv.render(colorTrueColor)
	if strings.Count(got, "\x1b[38;2;10;20;30m") != 1 || !strings.HasSuffix(got, "\x1b[0m") {
		t.Fatalf("expected one colour sequence and a reset, got %q", got)
	}
}

func TestDrawOverlayOutlinesHost(t *testing.T) {
	sheet := config.Sheet{
		Name: "box",
		Hosts: []config.HostSheet{{
			ID:    "box",
			Label: "box",
			Rect:  surface.Rect{Left: 40, Top: 48, Width: 240, Height: 64},
			Style: map[string]string{config.PropBorderRadius: "4px"},
		}},
	}
	st := scene.NewStage(sheet, time.Unix(0, 0), 60)
	st.Attach(config.Options{})
	defer st.Close()

	cv := newCanvas(48, 12)
	drawDocument(cv, st.Doc, defaultPalette)

	// Outer box 29..291 × 37..123: the outline rows are 2 and 7.
	top, bottom := 0, 0
	for col := range cv.cols {
		if cv.at(col, 2).set {
			top++
		}
		if cv.at(col, 7).set {
			bottom++
		}
	}
	if top == 0 || bottom == 0 {
		t.Fatalf("expected outline cells on rows 2 and 7, got %d and %d", top, bottom)
	}
	if cv.at(2, 5).set {
		t.Fatal("expected nothing outside the outline")
	}
	out := cv.render(colorNone)
	if !strings.Contains(out, "box") {
		t.Fatalf("expected host label, got\n%s", out)
	}
}

func TestGradientEnds(t *testing.T) {
	g := newGradient("#000000", "#ffffff")
	if g.at(0) != (colorRGB{}) || g.at(1) != (colorRGB{R: 255, G: 255, B: 255}) {
		t.Fatalf("unexpected gradient ends %v %v", g.at(0), g.at(1))
	}
	if g.at(-1) != g.at(0) {
		t.Fatal("expected clamping below zero")
	}
}

func TestDetectColorProfile(t *testing.T) {
	env := func(vars map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := vars[k]
			return v, ok
		}
	}
	tests := []struct {
		vars map[string]string
		want colorProfile
	}{
		{map[string]string{"NO_COLOR": "", "COLORTERM": "truecolor"}, colorNone},
		{map[string]string{"COLORTERM": "24bit", "TERM": "xterm"}, colorTrueColor},
		{map[string]string{"TERM": "xterm-256color"}, colorANSI256},
		{map[string]string{"TERM": "xterm"}, colorANSI16},
		{map[string]string{"TERM": "dumb"}, colorNone},
	}
	for _, tt := range tests {
		if got := detectColorProfile(env(tt.vars)); got != tt.want {
			t.Fatalf("detectColorProfile(%v): expected %v, got %v", tt.vars, tt.want, got)
		}
	}
}
