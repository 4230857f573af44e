// Package host exposes the conversion engine through the flat, primitive
// parameter entry points the web front end calls. Each entry point accepts
// the early minimal call shape (mode and image bytes only) and, through
// options, the extended shape with tone and resize parameters.
package host

import (
	"log"

	"github.com/tmpim/retrolcd"
)

// Host runs conversions for the front end.
type Host struct {
	conv *retrolcd.Converter
}

// New returns a Host logging to logger, or nowhere if logger is nil.
func New(logger *log.Logger) *Host {
	return &Host{conv: retrolcd.New(logger)}
}

var defaultHost = New(nil)

// Option supplies the parameters of the extended call shape.
type Option func(*retrolcd.Request)

// WithTone sets the tone parameters. dither selects error diffusion.
func WithTone(dither bool, brightness, contrast float64, invert bool, edge float64) Option {
	return func(r *retrolcd.Request) {
		r.Tone = retrolcd.ToneParams{
			Brightness:      brightness,
			Contrast:        contrast,
			Invert:          invert,
			EdgeEnhancement: edge,
		}
		if dither {
			r.Tone.Dither = retrolcd.DitherDiffusion
		}
	}
}

// WithDither sets the dither mode, for callers that want ordered dithering.
func WithDither(mode retrolcd.DitherMode) Option {
	return func(r *retrolcd.Request) {
		r.Tone.Dither = mode
	}
}

// WithResize sets the height cap and filter. A heightCap of -1 means no cap.
func WithResize(heightCap int, bilinear bool) Option {
	return func(r *retrolcd.Request) {
		p := retrolcd.ResampleParams{HeightCap: heightCap, Filter: retrolcd.Nearest}
		if heightCap < 0 {
			p.HeightCap = retrolcd.NoHeightCap
		}
		if bilinear {
			p.Filter = retrolcd.Bilinear
		}
		r.Resample = &p
	}
}

// WithAspectRatio sets the CRT pixel aspect. When explicit is false the
// aspect is derived from the source device and value is ignored.
func WithAspectRatio(explicit bool, value float64) Option {
	return func(r *retrolcd.Request) {
		if explicit {
			r.Aspect = retrolcd.ExplicitAspect(value, 1)
		} else {
			r.Aspect = retrolcd.AspectAuto
		}
	}
}

// WithAspect sets the CRT pixel aspect from a parsed ratio.
func WithAspect(a retrolcd.AspectRatio) Option {
	return func(r *retrolcd.Request) {
		r.Aspect = a
	}
}

// WithScale overrides the output block size.
func WithScale(scale int) Option {
	return func(r *retrolcd.Request) {
		r.Scale = scale
	}
}

// WithShades sets how many shades a monochrome mode uses.
func WithShades(n int) Option {
	return func(r *retrolcd.Request) {
		switch m := r.Mode.(type) {
		case retrolcd.Monochrome:
			m.Shades = n
			r.Mode = m
		case retrolcd.MonochromeCustom:
			m.Shades = n
			r.Mode = m
		}
	}
}

func (h *Host) run(mode retrolcd.ColorMode, data []byte, opts []Option) (string, error) {
	req := retrolcd.DefaultRequest(mode)
	for _, opt := range opts {
		opt(&req)
	}
	return h.Convert(data, req)
}

// Convert runs a fully specified request, returning base64 PNG.
func (h *Host) Convert(data []byte, req retrolcd.Request) (string, error) {
	return h.conv.ConvertBase64(data, req)
}

// ProcessImageGb renders with built-in monochrome palette mode (0, 1 or 2).
func (h *Host) ProcessImageGb(mode int, data []byte, opts ...Option) (string, error) {
	if mode < 0 || mode > 2 {
		return "", &retrolcd.Error{
			Kind:  retrolcd.KindInvalidMode,
			Stage: retrolcd.StageValidating.String(),
			Err:   errorf("monochrome mode %d outside 0..2", mode),
		}
	}
	return h.run(retrolcd.Monochrome{Preset: retrolcd.MonochromePreset(mode)}, data, opts)
}

// ProcessImageGbCustom renders with a custom monochrome palette. Colors are
// "#rrggbb" strings and fgOpacity is a percentage.
func (h *Host) ProcessImageGbCustom(fg string, fgOpacity int, bg string, data []byte,
	opts ...Option) (string, error) {
	mode, err := customMode(fg, fgOpacity, bg)
	if err != nil {
		return "", err
	}
	return h.run(mode, data, opts)
}

func customMode(fg string, fgOpacity int, bg string) (retrolcd.MonochromeCustom, error) {
	fgc, err := retrolcd.ParseColor(fg)
	if err != nil {
		return retrolcd.MonochromeCustom{}, stamp(err)
	}
	bgc, err := retrolcd.ParseColor(bg)
	if err != nil {
		return retrolcd.MonochromeCustom{}, stamp(err)
	}
	return retrolcd.MonochromeCustom{
		Foreground: fgc,
		Opacity:    float64(fgOpacity) / 100,
		Background: bgc,
	}, nil
}

// ProcessImageGbc renders through a color LCD. lcdStyle is 0 for subpixel,
// 1 for grid and 2 for flat; paletteIndex picks the screen: GBC, GBA, GBA SP
// or GBA SP white.
func (h *Host) ProcessImageGbc(scale, lcdStyle, paletteIndex int, data []byte,
	opts ...Option) (string, error) {
	mode := retrolcd.LCD{
		Screen: retrolcd.Screen(paletteIndex),
		Style:  retrolcd.LCDStyle(lcdStyle),
	}
	return h.run(mode, data, append([]Option{WithScale(scale)}, opts...))
}

// ProcessImageCrt renders through the CRT filter.
func (h *Host) ProcessImageCrt(scale int, data []byte, opts ...Option) (string, error) {
	return h.run(retrolcd.CRT{}, data, append([]Option{WithScale(scale)}, opts...))
}

// GetSourceDeviceName names the device with native resolution w×h, or
// returns "Unknown".
func GetSourceDeviceName(w, h int) string {
	return retrolcd.DeviceName(w, h)
}

// ProcessImageGb calls ProcessImageGb on a host that does not log.
func ProcessImageGb(mode int, data []byte, opts ...Option) (string, error) {
	return defaultHost.ProcessImageGb(mode, data, opts...)
}

// ProcessImageGbCustom calls ProcessImageGbCustom on a host that does not
// log.
func ProcessImageGbCustom(fg string, fgOpacity int, bg string, data []byte,
	opts ...Option) (string, error) {
	return defaultHost.ProcessImageGbCustom(fg, fgOpacity, bg, data, opts...)
}

// ProcessImageGbc calls ProcessImageGbc on a host that does not log.
func ProcessImageGbc(scale, lcdStyle, paletteIndex int, data []byte,
	opts ...Option) (string, error) {
	return defaultHost.ProcessImageGbc(scale, lcdStyle, paletteIndex, data, opts...)
}

// ProcessImageCrt calls ProcessImageCrt on a host that does not log.
func ProcessImageCrt(scale int, data []byte, opts ...Option) (string, error) {
	return defaultHost.ProcessImageCrt(scale, data, opts...)
}
