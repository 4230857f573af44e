package retrolcd

import (
	"image"
	"math"
)

const (
	crtScanlineWeight = 0.3
	crtLum            = 0.0
	crtDotMask        = 0.05
	crtLanczosSize    = 2
)

const crtPower = 1/((-0.7*(1-crtScanlineWeight)+1)*(-0.5*crtDotMask+1)) - 1.25

// crtSize returns the output size of a w×h frame at the given scale,
// corrected for pixel aspect.
func crtSize(w, h, scale int, aspect float64) (int, int) {
	oh := int(math.Round(float64(h) * float64(scale) / aspect))
	if oh < 1 {
		oh = 1
	}
	return w * scale, oh
}

// renderCRT draws a linear frame as seen on a CRT: a horizontal Lanczos2
// reconstruction, beam shaped scanlines whose width grows with brightness, and
// an aperture dot mask.
func renderCRT(src *floatImage, scale int, aspect float64) (*image.NRGBA, error) {
	w, h := crtSize(src.w, src.h, scale, aspect)
	if err := outputSize(w, h); err != nil {
		return nil, err
	}

	weights, columns := lanczosWeights(src.w, w)

	sw, sh := float64(src.w), float64(src.h)
	filter := sh / float64(h)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	err := renderBands(dst, func(y int, pix []uint8) {
		ry := (float64(y)+0.5)/float64(h)*sh - 0.5
		yy := floorInt(ry)
		uvY := ry - float64(yy)

		for x := 0; x < w; x++ {
			rx := (float64(x)+0.5)/float64(w)*sw - 0.5
			uvX := rx - float64(columns[x])

			var top, bottom rgb
			for i, wt := range weights[x] {
				sx := columns[x] + i - crtLanczosSize
				top = top.add(src.zeroAt(sx, yy).scale(wt))
				bottom = bottom.add(src.zeroAt(sx, yy+1).scale(wt))
			}
			top, bottom = top.clamp(), bottom.clamp()

			wid, wid2 := scanlineWidth(top), scanlineWidth(bottom)
			w1 := scanlineWeights(uvY, wid).
				add(scanlineWeights(uvY+filter/3, wid)).
				add(scanlineWeights(uvY-filter/3, wid)).scale(1.0 / 3)
			w2 := scanlineWeights(1-uvY, wid2).
				add(scanlineWeights(1-uvY-filter/3, wid2)).
				add(scanlineWeights(1-uvY+filter/3, wid2)).scale(1.0 / 3)

			c := top.mul(w1).add(bottom.mul(w2))

			green := 1 - math.Abs(uvX*2-1)
			mask := rgb{1, 1 - crtDotMask, 1}.lerp(rgb{1 - crtDotMask, 1, 1 - crtDotMask}, green)
			c = c.mul(mask).clamp()

			putDirect(pix[x*4:], crtInvGamma(c).clamp())
		}
	})
	if err != nil {
		return nil, err
	}

	return dst, nil
}

// lanczosWeights precomputes the normalized horizontal filter taps for every
// output column along with the source column each is centred on.
func lanczosWeights(srcW, dstW int) ([][2*crtLanczosSize + 1]float64, []int) {
	weights := make([][2*crtLanczosSize + 1]float64, dstW)
	columns := make([]int, dstW)
	sw, dw := float64(srcW), float64(dstW)

	for x := 0; x < dstW; x++ {
		xx := floorInt((float64(x)+0.5)/dw*sw - 0.5)
		columns[x] = xx
		offset := float64(x) / dw * sw

		var sum float64
		for i := range weights[x] {
			d := float64(xx+i-crtLanczosSize) - offset
			d = math.Max(-crtLanczosSize, math.Min(crtLanczosSize, d))
			wt := 1.0
			if d != 0 {
				d *= math.Pi
				wt = crtLanczosSize * math.Sin(d) * math.Sin(d/crtLanczosSize) / (d * d)
			}
			weights[x][i] = wt
			sum += wt
		}
		for i := range weights[x] {
			weights[x][i] /= sum
		}
	}

	return weights, columns
}

func scanlineWidth(c rgb) rgb {
	return c.apply(func(v float64) float64 {
		v *= v
		return 2 + 2*v*v
	})
}

// scanlineWeights is the beam intensity at a distance from the scanline
// centre. Brighter beams are wider.
func scanlineWeights(distance float64, wid rgb) rgb {
	distance = math.Abs(distance)
	f := func(w float64) float64 {
		v := math.Pow(distance/crtScanlineWeight/math.Sqrt(w*0.5), w)
		return math.Exp(-v) * (crtLum + 1.4) / (w*0.2 + 0.6)
	}
	return rgb{f(wid.R), f(wid.G), f(wid.B)}
}

// crtInvGamma maps linear light to display values, bending towards a circular
// curve to make up for the light lost to scanlines and the mask.
func crtInvGamma(c rgb) rgb {
	return c.apply(func(v float64) float64 {
		cir := (v - 1) * (v - 1)
		a, b := math.Sqrt(v), math.Sqrt(1-cir)
		return a + (b-a)*crtPower
	})
}
