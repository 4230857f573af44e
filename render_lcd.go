package retrolcd

import (
	"image"
	"math"
)

const (
	subpixelLow    = 0.8
	subpixelHigh   = 1.0
	scanlineDepth  = 0.1
	gridSmearX     = 1.5
	gridSmearY     = 0.63
	gridSampleBias = 0.4999
)

var (
	gridCoeffsX = [7]float64{1, -2.0 / 3.0, -1.0 / 5.0, 4.0 / 7.0, -1.0 / 9.0, -2.0 / 11.0, 1.0 / 13.0}
	gridCoeffsY = [7]float64{1, 0, -4.0 / 5.0, 2.0 / 7.0, 4.0 / 9.0, -4.0 / 11.0, 1.0 / 13.0}
)

// renderLCD expands a color-corrected frame into scale×scale blocks drawn in
// the given style.
func renderLCD(src *floatImage, screen Screen, style LCDStyle, scale int) (*image.NRGBA, error) {
	w, h := src.w*scale, src.h*scale
	if err := outputSize(w, h); err != nil {
		return nil, err
	}

	var shade func(x, y int) rgb
	switch style {
	case StyleSubpixel:
		shade = subpixelShader(src, scale)
	case StyleGrid:
		shade = gridShader(src, scale, displayProfiles[screen].bgr)
	case StyleFlat:
		shade = func(x, y int) rgb {
			return src.at(x/scale, y/scale)
		}
	default:
		return nil, invalidMode("unknown lcd style %d", int(style))
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	err := renderBands(dst, func(y int, pix []uint8) {
		for x := 0; x < w; x++ {
			putGamma(pix[x*4:], shade(x, y).clamp())
		}
	})
	if err != nil {
		return nil, err
	}

	return dst, nil
}

// subpixelShader draws vertical RGB stripes six subpixels wide, bleeding into
// the neighboring pixels at the stripe edges and darkening the top and bottom
// of each pixel like a scanline.
func subpixelShader(src *floatImage, scale int) func(x, y int) rgb {
	s := float64(scale)
	return func(x, y int) rgb {
		cx, cy := x/scale, y/scale
		subX := (float64(x%scale) + 0.5) / s * 6
		subY := (float64(y%scale) + 0.5) / s * 6

		center := src.clampedAt(cx, cy)
		left := src.clampedAt(cx-1, cy)
		right := src.clampedAt(cx+1, cy)

		ny, t, dim := cy, 0.0, 1.0
		switch {
		case subY < 1:
			ny, t = cy-1, 0.5-subY*0.5
			dim = subY*scanlineDepth + 1 - scanlineDepth
		case subY > 5:
			ny, t = cy+1, (subY-5)*0.5
			dim = (6-subY)*scanlineDepth + 1 - scanlineDepth
		}
		if ny != cy {
			center = center.lerp(src.clampedAt(cx, ny), t).scale(dim)
			left = left.lerp(src.clampedAt(cx-1, ny), t).scale(dim)
			right = right.lerp(src.clampedAt(cx+1, ny), t).scale(dim)
		}

		midLeft := left.lerp(center, 0.5)
		midRight := right.lerp(center, 0.5)

		const lo, hi = subpixelLow, subpixelHigh
		keys := [7]rgb{
			{hi * center.R, lo * center.G, hi * left.B},
			{hi * center.R, lo * center.G, lo * left.B},
			{hi * center.R, hi * center.G, lo * midLeft.B},
			{lo * midRight.R, hi * center.G, lo * center.B},
			{lo * right.R, hi * center.G, hi * center.B},
			{lo * right.R, lo * midRight.G, hi * center.B},
			{hi * right.R, lo * right.G, hi * center.B},
		}

		seg := int(subX)
		if seg > 5 {
			seg = 5
		}
		return keys[seg].lerp(keys[seg+1], subX-float64(seg))
	}
}

// gridShader integrates a smooth subpixel kernel over each output pixel,
// giving rounded dots with a soft dark grid between them.
func gridShader(src *floatImage, scale int, bgr bool) func(x, y int) rgb {
	s := float64(scale)
	rsubX := 3 / s
	rsubY := 1 / s
	return func(x, y int) rgb {
		u := (float64(x)+0.5)/s - gridSampleBias
		v := (float64(y)+0.5)/s - gridSampleBias
		tx, ty := floorInt(u), floorInt(v)

		sub := (u - float64(tx)) * 3
		lcol := rgb{
			intSmear(sub+1, rsubX, gridSmearX, &gridCoeffsX),
			intSmear(sub, rsubX, gridSmearX, &gridCoeffsX),
			intSmear(sub-1, rsubX, gridSmearX, &gridCoeffsX),
		}
		rcol := rgb{
			intSmear(sub-2, rsubX, gridSmearX, &gridCoeffsX),
			intSmear(sub-3, rsubX, gridSmearX, &gridCoeffsX),
			intSmear(sub-4, rsubX, gridSmearX, &gridCoeffsX),
		}
		if bgr {
			lcol.R, lcol.B = lcol.B, lcol.R
			rcol.R, rcol.B = rcol.B, rcol.R
		}

		subY := v - float64(ty)
		tcol := intSmear(subY, rsubY, gridSmearY, &gridCoeffsY)
		bcol := intSmear(subY-1, rsubY, gridSmearY, &gridCoeffsY)

		return src.clampedAt(tx, ty).mul(lcol).scale(tcol).
			add(src.clampedAt(tx+1, ty+1).mul(rcol).scale(bcol)).
			add(src.clampedAt(tx, ty+1).mul(lcol).scale(bcol)).
			add(src.clampedAt(tx+1, ty).mul(rcol).scale(tcol))
	}
}

// intSmear returns the mean of the kernel described by coeffs over
// [x-dx/2, x+dx/2], with the kernel spanning [-d, d].
func intSmear(x, dx, d float64, coeffs *[7]float64) float64 {
	lo := math.Max(-1, math.Min(1, (x-dx*0.5)/d))
	hi := math.Max(-1, math.Min(1, (x+dx*0.5)/d))
	return d * (smearIntegral(hi, coeffs) - smearIntegral(lo, coeffs)) / dx
}

func smearIntegral(z float64, coeffs *[7]float64) float64 {
	z2 := z * z
	zn := z
	var sum float64
	for _, c := range coeffs {
		sum += zn * c
		zn *= z2
	}
	return sum
}
