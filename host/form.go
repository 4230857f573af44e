package host

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tmpim/retrolcd"
)

// Form is a source of named string values, such as url.Values.
type Form interface {
	Get(key string) string
}

// Color mode indices as laid out in the front end's mode selector.
const (
	formModeCustom   = 3
	formModeLCDFirst = 4
	formModeLCDLast  = 7
	formModeCRT      = 8
)

// FromForm builds a request from the front end's form fields. Absent
// fields take the defaults of the minimal call shape.
func FromForm(f Form) (retrolcd.Request, error) {
	p := formParser{f: f}

	modeIndex := p.int("colorMode", 0)
	var mode retrolcd.ColorMode
	switch {
	case modeIndex >= 0 && modeIndex < formModeCustom:
		mode = retrolcd.Monochrome{
			Preset: retrolcd.MonochromePreset(modeIndex),
			Flat:   p.bool("flat", false),
		}
	case modeIndex == formModeCustom:
		m, err := customMode(p.string("gbCustomFg", "#000000"),
			p.int("gbCustomFgOpacity", 100), p.string("gbCustomBg", "#ffffff"))
		if err != nil {
			return retrolcd.Request{}, err
		}
		m.Flat = p.bool("flat", false)
		mode = m
	case modeIndex >= formModeLCDFirst && modeIndex <= formModeLCDLast:
		mode = retrolcd.LCD{
			Screen:    retrolcd.Screen(modeIndex - formModeLCDFirst),
			Style:     retrolcd.LCDStyle(p.int("lcdMode", 0)),
			MaxColors: p.int("maxColors", 0),
		}
	case modeIndex == formModeCRT:
		mode = retrolcd.CRT{}
	default:
		return retrolcd.Request{}, &retrolcd.Error{
			Kind:  retrolcd.KindInvalidMode,
			Stage: retrolcd.StageValidating.String(),
			Err:   errorf("color mode %d outside 0..%d", modeIndex, formModeCRT),
		}
	}

	req := retrolcd.DefaultRequest(mode)
	var opts []Option

	if p.has("scaling") {
		opts = append(opts, WithScale(p.int("scaling", req.Scale)))
	}
	if p.has("shades") {
		opts = append(opts, WithShades(p.int("shades", 0)))
	}
	if p.has("brightness", "contrast", "invert", "edgeEnhancement") {
		opts = append(opts, WithTone(false,
			p.float("brightness", 1), p.float("contrast", 1),
			p.bool("invert", false), p.float("edgeEnhancement", 0)))
	}
	if p.has("dither") {
		opts = append(opts, WithDither(p.dither("dither")))
	}
	if p.has("heightCap", "bilinear") {
		opts = append(opts, WithResize(p.int("heightCap", retrolcd.NoHeightCap),
			p.bool("bilinear", false)))
	}
	if p.has("aspectRatio") {
		a, err := retrolcd.ParseAspectRatio(p.string("aspectRatio", "auto"))
		if err != nil {
			p.fail(err)
		}
		opts = append(opts, WithAspect(a))
	}

	if p.err != nil {
		return retrolcd.Request{}, stamp(p.err)
	}

	for _, opt := range opts {
		opt(&req)
	}
	return req, nil
}

// formParser reads typed values, keeping the first error.
type formParser struct {
	f   Form
	err error
}

func (p *formParser) has(keys ...string) bool {
	for _, k := range keys {
		if strings.TrimSpace(p.f.Get(k)) != "" {
			return true
		}
	}
	return false
}

func (p *formParser) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *formParser) string(key, def string) string {
	v := strings.TrimSpace(p.f.Get(key))
	if v == "" {
		return def
	}
	return v
}

func (p *formParser) int(key string, def int) int {
	v := p.string(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(invalidField(key, v))
		return def
	}
	return n
}

func (p *formParser) float(key string, def float64) float64 {
	v := p.string(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(invalidField(key, v))
		return def
	}
	return n
}

func (p *formParser) bool(key string, def bool) bool {
	v := p.string(key, "")
	if v == "" {
		return def
	}
	switch strings.ToLower(v) {
	case "on":
		return true
	case "off":
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(invalidField(key, v))
		return def
	}
	return b
}

// dither accepts a dither mode name or a boolean, where true means error
// diffusion.
func (p *formParser) dither(key string) retrolcd.DitherMode {
	v := p.string(key, "none")
	if mode, err := retrolcd.ParseDitherMode(v); err == nil {
		return mode
	}
	if p.bool(key, false) {
		return retrolcd.DitherDiffusion
	}
	return retrolcd.DitherNone
}

func invalidField(key, value string) error {
	return &retrolcd.Error{
		Kind: retrolcd.KindInvalidParameter,
		Err:  errorf("field %s: invalid value %q", key, value),
	}
}

func errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// stamp marks an error raised before the pipeline starts as a validation
// failure.
func stamp(err error) error {
	var e *retrolcd.Error
	if errors.As(err, &e) && e.Stage == "" {
		return &retrolcd.Error{Kind: e.Kind, Stage: retrolcd.StageValidating.String(), Err: e.Err}
	}
	return err
}
