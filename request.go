package retrolcd

import (
	"math"
	"strconv"
	"strings"
)

// DitherMode selects how the monochrome quantizer hides banding.
type DitherMode int

// Dither modes.
const (
	DitherNone DitherMode = iota
	DitherDiffusion
	DitherOrdered
)

var ditherNames = []string{"none", "diffusion", "ordered"}

func (d DitherMode) String() string {
	if d < 0 || int(d) >= len(ditherNames) {
		return "dither(" + strconv.Itoa(int(d)) + ")"
	}
	return ditherNames[d]
}

// ParseDitherMode parses a dither mode name as printed by String.
func ParseDitherMode(s string) (DitherMode, error) {
	for i, name := range ditherNames {
		if strings.EqualFold(s, name) {
			return DitherMode(i), nil
		}
	}
	return 0, invalidParameter("unknown dither mode %q", s)
}

// EdgeEnhancementLevels are the accepted edge enhancement strengths.
var EdgeEnhancementLevels = []float64{0, 0.5, 0.75, 1, 1.25, 2, 3, 4, 5}

// ToneParams adjusts lightness before quantizing. Only monochrome modes use
// it.
type ToneParams struct {
	Dither          DitherMode
	Brightness      float64
	Contrast        float64
	Invert          bool
	EdgeEnhancement float64
}

// NeutralTone returns tone parameters that leave the image untouched.
func NeutralTone() ToneParams {
	return ToneParams{Brightness: 1, Contrast: 1}
}

func (p ToneParams) neutral() bool {
	return p.Brightness == 1 && p.Contrast == 1 && !p.Invert &&
		p.EdgeEnhancement == 0
}

func (p ToneParams) validate() error {
	if p.Dither < DitherNone || p.Dither > DitherOrdered {
		return invalidParameter("unknown dither mode %d", int(p.Dither))
	}
	if !(p.Brightness > 0) || math.IsInf(p.Brightness, 0) {
		return invalidParameter("brightness must be positive, got %v", p.Brightness)
	}
	if !(p.Contrast >= 0) || math.IsInf(p.Contrast, 0) {
		return invalidParameter("contrast must not be negative, got %v", p.Contrast)
	}
	for _, level := range EdgeEnhancementLevels {
		if p.EdgeEnhancement == level {
			return nil
		}
	}
	return invalidParameter("unsupported edge enhancement level %v", p.EdgeEnhancement)
}

// Filter is the interpolation used when the resampler shrinks an image.
type Filter int

// Resampling filters.
const (
	Nearest Filter = iota
	Bilinear
)

func (f Filter) String() string {
	if f == Bilinear {
		return "bilinear"
	}
	return "nearest"
}

// NoHeightCap disables the resampler's height cap.
const NoHeightCap = -1

// ResampleParams controls the resampler.
type ResampleParams struct {
	HeightCap int
	Filter    Filter
}

// DefaultResample leaves images at their source size, only undoing integer
// upscales of known devices.
func DefaultResample() ResampleParams {
	return ResampleParams{HeightCap: NoHeightCap, Filter: Nearest}
}

func (p ResampleParams) validate() error {
	if p.HeightCap == 0 {
		return invalidParameter("height cap must be positive")
	}
	if p.Filter != Nearest && p.Filter != Bilinear {
		return invalidParameter("unknown filter %d", int(p.Filter))
	}
	return nil
}

// AspectRatio is the display aspect correction of the CRT filter. The zero
// value picks the ratio from the source device.
type AspectRatio struct {
	Explicit bool
	Ratio    Ratio
}

// AspectAuto derives the pixel aspect from the detected device.
var AspectAuto = AspectRatio{}

// ExplicitAspect returns a fixed num:den pixel aspect.
func ExplicitAspect(num, den float64) AspectRatio {
	return AspectRatio{Explicit: true, Ratio: Ratio{num, den}}
}

// ParseAspectRatio parses "auto", "<num>:<den>" or a plain number.
func ParseAspectRatio(s string) (AspectRatio, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "auto") {
		return AspectAuto, nil
	}

	parts := strings.SplitN(s, ":", 2)
	num, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return AspectAuto, invalidParameter("aspect ratio %q: %v", s, err)
	}
	den := 1.0
	if len(parts) == 2 {
		den, err = strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return AspectAuto, invalidParameter("aspect ratio %q: %v", s, err)
		}
	}

	a := ExplicitAspect(num, den)
	return a, a.validate()
}

func (a AspectRatio) String() string {
	if !a.Explicit {
		return "auto"
	}
	return a.Ratio.String()
}

func (a AspectRatio) validate() error {
	if !a.Explicit {
		return nil
	}
	r := a.Ratio.Float()
	if !(a.Ratio.Num > 0) || !(a.Ratio.Den > 0) || math.IsInf(r, 0) {
		return invalidParameter("aspect ratio %v must be positive", a.Ratio)
	}
	return nil
}

// resolve returns the pixel aspect to correct by for a frame of the given
// device.
func (a AspectRatio) resolve(d DeviceProfile) float64 {
	if a.Explicit {
		return a.Ratio.Float()
	}
	return d.PixelAspect.Float()
}

// MaxOutputPixels bounds the size of a rendered frame.
const MaxOutputPixels = 4096 * 4096

// MaxSourcePixels bounds the size of a decoded image, before any height cap
// shrinks it.
const MaxSourcePixels = 4096 * 4096

// Request is everything a conversion needs. Build one with DefaultRequest
// and override fields.
type Request struct {
	Mode ColorMode
	Tone ToneParams

	// Resample is nil when the resampler should not run at all.
	Resample *ResampleParams

	// Scale is the size of one source pixel in the output.
	Scale  int
	Aspect AspectRatio
}

// DefaultScale is the output block size used for each kind of mode when none
// is given.
func DefaultScale(mode ColorMode) int {
	switch mode.(type) {
	case Monochrome, MonochromeCustom:
		return 5
	case CRT:
		return 6
	}
	return 4
}

// DefaultRequest returns a request for mode with neutral tone and the
// resampling each mode uses by default.
func DefaultRequest(mode ColorMode) Request {
	req := Request{
		Mode:   mode,
		Tone:   NeutralTone(),
		Scale:  DefaultScale(mode),
		Aspect: AspectAuto,
	}
	if _, ok := mode.(MonochromeCustom); !ok {
		p := DefaultResample()
		req.Resample = &p
	}
	return req
}

func (r Request) validate() error {
	switch m := r.Mode.(type) {
	case nil:
		return invalidMode("no color mode given")
	case Monochrome, MonochromeCustom:
		if _, _, err := resolveMono(m); err != nil {
			return err
		}
	case LCD:
		if m.Screen < ScreenGBC || m.Screen > ScreenGBASPWhite {
			return invalidMode("unknown screen %d", int(m.Screen))
		}
		if m.Style < StyleSubpixel || m.Style > StyleFlat {
			return invalidMode("unknown lcd style %d", int(m.Style))
		}
		if m.MaxColors < 0 || m.MaxColors == 1 {
			return invalidParameter("max colors must be 0 or at least 2, got %d", m.MaxColors)
		}
	case CRT:
	default:
		return invalidMode("unsupported color mode %T", m)
	}

	if supportsTone(r.Mode) {
		if err := r.Tone.validate(); err != nil {
			return err
		}
	}
	if r.Resample != nil {
		if err := r.Resample.validate(); err != nil {
			return err
		}
	}
	if r.Scale < 1 {
		return invalidParameter("scale must be at least 1, got %d", r.Scale)
	}
	return r.Aspect.validate()
}
