package retrolcd

import (
	"image"
	"image/color"
	"math"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/makeworld-the-better-one/dither/v2"
)

// monoFrame is a quantized monochrome frame. Coverage holds the foreground
// coverage of each palette entry for the LCD filter to blend with.
type monoFrame struct {
	img      *image.Paletted
	coverage []float64
	fg, bg   rgb
}

// shadePalette renders the shades of a monochrome mode and returns them with
// their lightness and foreground coverage, full coverage first.
func shadePalette(spec monoSpec) (color.Palette, []float64, []float64) {
	palette := make(color.Palette, len(spec.alphas))
	lightnesses := make([]float64, len(spec.alphas))
	coverage := make([]float64, len(spec.alphas))

	fg, bg := linearColorful(spec.fg), linearColorful(spec.bg)
	for i, a := range spec.alphas {
		coverage[i] = a * spec.opacity
		c := bg.lerp(fg, coverage[i]).clamp()
		n := color.NRGBA{srgbByte(c.R), srgbByte(c.G), srgbByte(c.B), 0xff}
		palette[i] = n
		lightnesses[i] = lightnessOf(n)
	}

	return palette, lightnesses, coverage
}

// srgbByte encodes a linear channel as the nearest 8-bit sRGB value.
func srgbByte(v float64) uint8 {
	return uint8(math.Round(clamp01(linearToSRGB(v)) * 255))
}

// customThresholds bound the lightness buckets of custom palettes, darkest
// bucket first. Each sits a little above an even split so that darker
// shades of a 4-color source land on the intended bucket.
var customThresholds = map[int][]float64{
	2: {0.5 + 0.03},
	3: {1.0/3.0 + 0.03, 2.0/3.0 + 0.03},
	4: {0.25 + 0.03, 0.5 + 0.03, 0.75 + 0.03},
}

// shadeBuckets returns the upper lightness bound of every bucket but the
// last, and the lightness each bucket stands for when dithering. Bucket i
// takes shade i, so the darkest source pixels get full foreground coverage.
func shadeBuckets(spec monoSpec, lightnesses []float64) (thresholds, levels []float64) {
	n := len(lightnesses)
	if spec.custom {
		levels = make([]float64, n)
		for i := range levels {
			levels[i] = float64(i) / float64(n-1)
		}
		return customThresholds[n], levels
	}

	// Preset shades grow lighter with falling coverage, so midpoints
	// between them make the buckets nearest-shade and re-quantizing a
	// quantized frame a no-op.
	thresholds = make([]float64, n-1)
	for i := range thresholds {
		thresholds[i] = (lightnesses[i] + lightnesses[i+1]) / 2
	}
	return thresholds, lightnesses
}

// quantizeMono maps a lightness plane onto the shades of a monochrome mode.
func quantizeMono(l *alphaImage, spec monoSpec, mode DitherMode) *monoFrame {
	palette, lightnesses, coverage := shadePalette(spec)
	thresholds, levels := shadeBuckets(spec, lightnesses)
	out := image.NewPaletted(image.Rect(0, 0, l.w, l.h), palette)

	frame := &monoFrame{
		img:      out,
		coverage: coverage,
		fg:       linearColorful(spec.fg),
		bg:       linearColorful(spec.bg),
	}

	if mode != DitherNone && ditherMono(l, out, levels, mode) {
		return frame
	}

	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			out.SetColorIndex(x, y, bucketOf(l.at(x, y), thresholds))
		}
	}

	return frame
}

// bucketOf returns the first bucket whose bound v does not exceed.
func bucketOf(v float64, thresholds []float64) uint8 {
	for i, t := range thresholds {
		if v <= t {
			return uint8(i)
		}
	}
	return uint8(len(thresholds))
}

// ditherMono dithers over a gray stand-in palette with one gray per distinct
// bucket level. It reports false when there is nothing to dither between.
func ditherMono(l *alphaImage, out *image.Paletted, levels []float64,
	mode DitherMode) bool {
	var proxy []color.Color
	var shadeOf []uint8
	seen := make(map[uint8]bool)
	for i, v := range levels {
		y := uint8(math.Round(v * 255))
		if seen[y] {
			continue
		}
		seen[y] = true
		proxy = append(proxy, color.Gray{Y: y})
		shadeOf = append(shadeOf, uint8(i))
	}
	if len(proxy) < 2 {
		return false
	}

	d := dither.NewDitherer(proxy)
	if d == nil {
		return false
	}
	if mode == DitherOrdered {
		d.Mapper = dither.Bayer(4, 4, 1.0)
	} else {
		d.Matrix = dither.FloydSteinberg
	}

	src := image.NewGray(image.Rect(0, 0, l.w, l.h))
	for i, v := range l.pix {
		src.Pix[i] = uint8(math.Round(v * 255))
	}

	dithered := d.DitherPaletted(src)
	if dithered == nil {
		return false
	}

	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			out.SetColorIndex(x, y, shadeOf[dithered.ColorIndexAt(x, y)])
		}
	}
	return true
}

// rgb555 packs an sRGB color to 15 bits, rounding each channel.
func rgb555(r, g, b uint8) uint16 {
	return uint16(to5(r))<<10 | uint16(to5(g))<<5 | uint16(to5(b))
}

func to5(v uint8) uint8 {
	return uint8((int(v)*31 + 127) / 255)
}

func from5(v uint16) uint8 {
	v &= 0x1f
	return uint8(v<<3 | v>>2)
}

func expand555(c uint16) color.NRGBA {
	return color.NRGBA{from5(c >> 10), from5(c >> 5), from5(c), 0xff}
}

// quantizeLCD snaps every pixel to 15-bit color, optionally limits the
// frame to MaxColors, and runs the result through the screen's color
// response.
func quantizeLCD(src *image.NRGBA, m LCD) *floatImage {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	codes := make([]uint16, w*h)
	distinct := make(map[uint16]uint16)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			c := rgb555(row[x*4], row[x*4+1], row[x*4+2])
			codes[y*w+x] = c
			distinct[c] = c
		}
	}

	if m.MaxColors > 0 && len(distinct) > m.MaxColors {
		reduceColors(codes, w, h, distinct, m.MaxColors)
	}

	lut := screenResponse(m.Screen)
	out := newFloatImage(w, h)
	for i, c := range codes {
		p := lut[distinct[c]]
		out.pix[i*3], out.pix[i*3+1], out.pix[i*3+2] = p.R, p.G, p.B
	}
	return out
}

// reduceColors rewrites the mapping in distinct so that at most n colors
// are used, picking them by median cut.
func reduceColors(codes []uint16, w, h int, distinct map[uint16]uint16, n int) {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i, c := range codes {
		e := expand555(c)
		copy(img.Pix[i*4:i*4+4], []uint8{e.R, e.G, e.B, e.A})
	}

	q := quantize.MedianCutQuantizer{}
	palette := q.Quantize(make(color.Palette, 0, n), img)
	if len(palette) == 0 {
		return
	}

	for c := range distinct {
		p := color.NRGBAModel.Convert(palette.Convert(expand555(c))).(color.NRGBA)
		distinct[c] = rgb555(p.R, p.G, p.B)
	}
}
