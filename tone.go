package retrolcd

import "image"

// lightnessPlane computes normalized L* for every pixel.
func lightnessPlane(src *image.NRGBA) *alphaImage {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := newAlphaImage(w, h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < w; x++ {
			c := rgb{linearTable[row[x*4]], linearTable[row[x*4+1]], linearTable[row[x*4+2]]}
			out.set(x, y, lightness(c.luminance()))
		}
	}
	return out
}

// applyTone adjusts lightness in a fixed order: brightness, contrast, edge
// enhancement, then inversion. Neutral parameters return l itself.
func applyTone(l *alphaImage, p ToneParams) *alphaImage {
	if p.neutral() {
		return l
	}

	out := l.clone()
	if p.Brightness != 1 || p.Contrast != 1 {
		for i, v := range out.pix {
			v = clamp01(v * p.Brightness)
			out.pix[i] = clamp01(0.5 + (v-0.5)*p.Contrast)
		}
	}

	if p.EdgeEnhancement > 0 {
		out = enhanceEdges(out, p.EdgeEnhancement)
	}

	if p.Invert {
		for i, v := range out.pix {
			out.pix[i] = 1 - v
		}
	}

	return out
}

// enhanceEdges sharpens with a 4-neighbor unsharp mask.
func enhanceEdges(l *alphaImage, level float64) *alphaImage {
	out := newAlphaImage(l.w, l.h)
	for y := 0; y < l.h; y++ {
		for x := 0; x < l.w; x++ {
			v := l.at(x, y)
			n := l.clampedAt(x-1, y) + l.clampedAt(x+1, y) +
				l.clampedAt(x, y-1) + l.clampedAt(x, y+1)
			out.set(x, y, clamp01(v+level*(4*v-n)))
		}
	}
	return out
}
