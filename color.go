package retrolcd

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// rgb is a linear-light color. Channels are nominally 0..1 but may leave
// that range between filter passes.
type rgb struct {
	R, G, B float64
}

func gray(v float64) rgb {
	return rgb{v, v, v}
}

func (c rgb) add(o rgb) rgb {
	return rgb{c.R + o.R, c.G + o.G, c.B + o.B}
}

func (c rgb) sub(o rgb) rgb {
	return rgb{c.R - o.R, c.G - o.G, c.B - o.B}
}

func (c rgb) mul(o rgb) rgb {
	return rgb{c.R * o.R, c.G * o.G, c.B * o.B}
}

func (c rgb) scale(f float64) rgb {
	return rgb{c.R * f, c.G * f, c.B * f}
}

func (c rgb) lerp(o rgb, t float64) rgb {
	return rgb{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

func (c rgb) apply(f func(float64) float64) rgb {
	return rgb{f(c.R), f(c.G), f(c.B)}
}

func (c rgb) clamp() rgb {
	return c.apply(clamp01)
}

func (c rgb) luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

func clamp01(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

var linearTable = func() (t [256]float64) {
	for i := range t {
		t[i] = srgbToLinear(float64(i) / 255)
	}
	return
}()

func srgbToLinear(v float64) float64 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

func linearToSRGB(v float64) float64 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// unitToByte maps 0..1 onto 0..255 with equal-width buckets.
func unitToByte(v float64) uint8 {
	if v >= 1 {
		return 255
	}
	if v <= 0 || v != v {
		return 0
	}
	return uint8(v * 256)
}

func linearFromNRGBA(c color.NRGBA) rgb {
	return rgb{linearTable[c.R], linearTable[c.G], linearTable[c.B]}
}

func linearColorful(c colorful.Color) rgb {
	r, g, b := c.LinearRgb()
	return rgb{r, g, b}
}

// putGamma writes a linear color as opaque sRGB bytes.
func putGamma(dst []uint8, c rgb) {
	dst[0] = unitToByte(linearToSRGB(clamp01(c.R)))
	dst[1] = unitToByte(linearToSRGB(clamp01(c.G)))
	dst[2] = unitToByte(linearToSRGB(clamp01(c.B)))
	dst[3] = 0xff
}

// putDirect writes an already encoded color as opaque bytes.
func putDirect(dst []uint8, c rgb) {
	dst[0] = unitToByte(c.R)
	dst[1] = unitToByte(c.G)
	dst[2] = unitToByte(c.B)
	dst[3] = 0xff
}

// lightness returns CIE L* of a linear luminance, normalized to 0..1.
func lightness(y float64) float64 {
	var l float64
	if y <= 216.0/24389.0 {
		l = y * 24389.0 / 27.0
	} else {
		l = math.Cbrt(y)*116 - 16
	}
	return clamp01(l / 100)
}

func lightnessOf(c color.NRGBA) float64 {
	return lightness(linearFromNRGBA(c).luminance())
}

// toNRGBA returns img as a zero-origin *image.NRGBA, copying only when
// needed. Alpha is ignored by every stage after decoding.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Rect, img, b.Min, draw.Src)
	return dst
}
