// Package config resolves per-instance border settings from computed style
// and caller options, and loads scene sheets.
package config

import (
	"github.com/olivier-w/siderun/internal/motion"
	"github.com/olivier-w/siderun/internal/surface"
)

// Custom properties read from the host's computed style.
const (
	PropTail         = "--sr-tail"
	PropGap          = "--sr-gap"
	PropEase         = "--sr-ease"
	PropMargin       = "--sr-margin"
	PropMaxFPS       = "--sr-max-fps"
	PropStrokeWidth  = "--sr-stroke-width"
	PropBorderRadius = "border-radius"
)

// Defaults applied when neither options nor style provide a value.
const (
	DefaultTail        = 10.0
	DefaultGap         = 10.0
	DefaultEase        = 0.1
	DefaultMargin      = 11.0
	DefaultMaxFPS      = 60.0
	DefaultStrokeWidth = 3.0
	DefaultRadius      = 12.0
)

// Config is the resolved, immutable configuration of one instance.
type Config struct {
	Tail           float64
	Gap            float64
	Ease           float64
	Margin         float64
	MaxFPS         float64
	TrackPointer   bool
	UseAppleRadius bool
	// MaxRadius caps the corner radius when positive.
	MaxRadius      float64
	PauseOffscreen bool
	Easing         motion.Mode
}

// Options are caller overrides. Nil fields fall back to style and defaults.
type Options struct {
	Tail           *float64 `yaml:"tail"`
	Gap            *float64 `yaml:"gap"`
	Ease           *float64 `yaml:"ease"`
	Margin         *float64 `yaml:"margin"`
	MaxFPS         *float64 `yaml:"maxFps"`
	TrackPointer   *bool    `yaml:"trackPointer"`
	UseAppleRadius *bool    `yaml:"useAppleRadius"`
	MaxRadius      *float64 `yaml:"maxRadius"`
	PauseOffscreen *bool    `yaml:"pauseOffscreen"`
	Easing         *string  `yaml:"easing"`
}

// Float returns a pointer to v, for filling Options.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for filling Options.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v, for filling Options.
func String(v string) *string { return &v }

// Merge returns o with every field set in over replacing it.
func (o Options) Merge(over Options) Options {
	if over.Tail != nil {
		o.Tail = over.Tail
	}
	if over.Gap != nil {
		o.Gap = over.Gap
	}
	if over.Ease != nil {
		o.Ease = over.Ease
	}
	if over.Margin != nil {
		o.Margin = over.Margin
	}
	if over.MaxFPS != nil {
		o.MaxFPS = over.MaxFPS
	}
	if over.TrackPointer != nil {
		o.TrackPointer = over.TrackPointer
	}
	if over.UseAppleRadius != nil {
		o.UseAppleRadius = over.UseAppleRadius
	}
	if over.MaxRadius != nil {
		o.MaxRadius = over.MaxRadius
	}
	if over.PauseOffscreen != nil {
		o.PauseOffscreen = over.PauseOffscreen
	}
	if over.Easing != nil {
		o.Easing = over.Easing
	}
	return o
}

// Resolve builds a Config from style custom properties overridden by opts.
// style may be nil.
func Resolve(style surface.Style, opts Options) Config {
	cfg := Config{
		Tail:           StyleFloat(style, PropTail, DefaultTail),
		Gap:            StyleFloat(style, PropGap, DefaultGap),
		Ease:           StyleFloat(style, PropEase, DefaultEase),
		Margin:         StyleFloat(style, PropMargin, DefaultMargin),
		MaxFPS:         StyleFloat(style, PropMaxFPS, DefaultMaxFPS),
		PauseOffscreen: true,
	}

	if opts.Tail != nil {
		cfg.Tail = *opts.Tail
	}
	if opts.Gap != nil {
		cfg.Gap = *opts.Gap
	}
	if opts.Ease != nil {
		cfg.Ease = *opts.Ease
	}
	if opts.Margin != nil {
		cfg.Margin = *opts.Margin
	}
	if opts.MaxFPS != nil {
		cfg.MaxFPS = *opts.MaxFPS
	}
	if opts.TrackPointer != nil {
		cfg.TrackPointer = *opts.TrackPointer
	}
	if opts.UseAppleRadius != nil {
		cfg.UseAppleRadius = *opts.UseAppleRadius
	}
	if opts.MaxRadius != nil {
		cfg.MaxRadius = *opts.MaxRadius
	}
	if opts.PauseOffscreen != nil {
		cfg.PauseOffscreen = *opts.PauseOffscreen
	}
	if opts.Easing != nil {
		if m, ok := motion.ParseMode(*opts.Easing); ok {
			cfg.Easing = m
		}
	}

	// ease must stay in (0,1] for the cursors to converge without overshoot
	if cfg.Ease <= 0 {
		cfg.Ease = DefaultEase
	}
	if cfg.Ease > 1 {
		cfg.Ease = 1
	}
	if cfg.MaxFPS <= 0 {
		cfg.MaxFPS = DefaultMaxFPS
	}
	if cfg.Margin < 0 {
		cfg.Margin = 0
	}
	return cfg
}

// StrokeWidth reads --sr-stroke-width from style.
func StrokeWidth(style surface.Style) float64 {
	return StyleFloat(style, PropStrokeWidth, DefaultStrokeWidth)
}

// BorderRadius reads border-radius from style.
func BorderRadius(style surface.Style) float64 {
	return StyleFloat(style, PropBorderRadius, DefaultRadius)
}

// StyleFloat reads a numeric property, returning def when style is nil or
// the value is missing, unparseable or zero.
func StyleFloat(style surface.Style, name string, def float64) float64 {
	if style == nil {
		return def
	}
	v, ok := ParseFloat(style.Property(name))
	if !ok || v == 0 {
		return def
	}
	return v
}
