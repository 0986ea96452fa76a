package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/olivier-w/siderun/internal/clock"
	"github.com/olivier-w/siderun/internal/config"
	"github.com/olivier-w/siderun/internal/scene"
	"github.com/olivier-w/siderun/internal/ui"
)

// renderEpoch pins the virtual clock so repeated renders match.
var renderEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type renderOptions struct {
	sheet         string
	frames        int
	every         int
	fps           int
	hover         string
	format        string
	out           string
	scale         float64
	reducedMotion bool
}

type hoverTarget struct {
	host  string
	ratio float64
}

func parseHover(s string) (hoverTarget, error) {
	host, x, ok := strings.Cut(s, ":")
	if !ok || host == "" {
		return hoverTarget{}, fmt.Errorf("hover %q: expected host:x", s)
	}
	ratio, err := strconv.ParseFloat(x, 64)
	if err != nil {
		return hoverTarget{}, fmt.Errorf("hover %q: %w", s, err)
	}
	if ratio < 0 || ratio > 1 {
		return hoverTarget{}, fmt.Errorf("hover %q: x must be within [0,1]", s)
	}
	return hoverTarget{host: host, ratio: ratio}, nil
}

func runRender(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o renderOptions
	fs.StringVar(&o.sheet, "sheet", "", "sheet file (default: built-in demo)")
	fs.IntVar(&o.frames, "frames", 60, "number of frames to simulate")
	fs.IntVar(&o.every, "every", 1, "write every nth frame")
	fs.IntVar(&o.fps, "fps", clock.DefaultFPS, "native frame rate of the virtual clock")
	fs.StringVar(&o.hover, "hover", "", "move the pointer across a host, as host:x with x in [0,1]")
	fs.StringVar(&o.format, "format", "svg", "output format: svg or png")
	fs.StringVar(&o.out, "out", "frames", "output directory")
	fs.Float64Var(&o.scale, "scale", 1, "png pixel scale")
	fs.BoolVar(&o.reducedMotion, "reduced-motion", envReducedMotion(), "snap instead of easing")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	n, err := render(o)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "wrote %d frames to %s\n", n, o.out)
	return 0
}

func render(o renderOptions) (int, error) {
	if o.frames < 0 {
		return 0, fmt.Errorf("frames must not be negative")
	}
	if o.every < 1 {
		o.every = 1
	}
	if o.format != "svg" && o.format != "png" {
		return 0, fmt.Errorf("unsupported output format %q", o.format)
	}

	source := o.sheet
	if source == "" {
		source = ui.BuiltinDemo
	}
	sheet, err := loadSheetArg(source)
	if err != nil {
		return 0, err
	}

	var target *hoverTarget
	if o.hover != "" {
		h, err := parseHover(o.hover)
		if err != nil {
			return 0, err
		}
		target = &h
	}

	if err := os.MkdirAll(o.out, 0o755); err != nil {
		return 0, fmt.Errorf("creating output directory: %w", err)
	}

	st := scene.NewStage(sheet, renderEpoch, o.fps)
	defer st.Close()
	st.Doc.SetReducedMotion(sheet.ReducedMotion || o.reducedMotion)
	st.Attach(config.Options{})

	if target != nil {
		el := st.Doc.Element(target.host)
		if el == nil {
			return 0, fmt.Errorf("hover: no host %q", target.host)
		}
		b := el.Bounds()
		_, cy := b.Center()
		st.Doc.PointerMove(b.Left+b.Width*target.ratio, cy)
	}

	written := 0
	for i := 1; i <= o.frames; i++ {
		st.Clock.AdvanceFrames(1)
		if i%o.every != 0 {
			continue
		}
		if err := writeFrame(st.Doc, o, i); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func writeFrame(doc *scene.Document, o renderOptions, i int) error {
	path := filepath.Join(o.out, fmt.Sprintf("frame-%04d.%s", i, o.format))
	var data []byte
	switch o.format {
	case "png":
		var buf bytes.Buffer
		if err := doc.RenderPNG(&buf, scene.DefaultPalette, o.scale); err != nil {
			return fmt.Errorf("rendering frame %d: %w", i, err)
		}
		data = buf.Bytes()
	default:
		data = []byte(doc.SVG(scene.DefaultPalette))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing frame %d: %w", i, err)
	}
	return nil
}
