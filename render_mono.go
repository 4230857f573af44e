package retrolcd

import (
	"image"
	"image/color"
)

var (
	smearKernel  = []float64{0.8, 0.1}
	shadowKernel = []float64{0.383, 0.241, 0.061, 0.006}
)

const (
	shadowOpacity = 0.5
	shadowOffset  = 1
)

// renderMonoLCD draws a monochrome frame as a reflective LCD: each pixel
// becomes a scale×scale cell separated by a one pixel gap, the ink bleeds
// slightly into neighboring cells and casts a soft shadow onto the
// background behind it.
func renderMonoLCD(f *monoFrame, scale int) (*image.NRGBA, error) {
	sw, sh := f.img.Rect.Dx(), f.img.Rect.Dy()
	w, h := sw*scale, sh*scale
	if err := outputSize(w, h); err != nil {
		return nil, err
	}

	cells := newAlphaImage(w, h)
	gaps := scale >= 3
	for y := 0; y < h; y++ {
		if gaps && y%scale == scale-1 {
			continue
		}
		for x := 0; x < w; x++ {
			if gaps && x%scale == scale-1 {
				continue
			}
			cells.set(x, y, f.coverage[f.img.ColorIndexAt(x/scale, y/scale)])
		}
	}

	ink := cells.convolve(smearKernel)

	// The shadow is blurred at half resolution.
	hw, hh := (w+1)/2, (h+1)/2
	half := newAlphaImage(hw, hh)
	for y := 0; y < hh; y++ {
		for x := 0; x < hw; x++ {
			half.set(x, y, ink.bilinearAt(
				(float64(x)+0.5)*float64(w)/float64(hw),
				(float64(y)+0.5)*float64(h)/float64(hh)))
		}
	}
	shadow := half.convolve(shadowKernel)

	sx := float64(hw) / float64(w)
	sy := float64(hh) / float64(h)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	err := renderBands(dst, func(y int, pix []uint8) {
		for x := 0; x < w; x++ {
			s := shadow.bilinearAt(
				(float64(x-shadowOffset)+0.5)*sx,
				(float64(y-shadowOffset)+0.5)*sy)
			c := f.bg.scale(1 - clamp01(s)*shadowOpacity)
			c = c.lerp(f.fg, clamp01(ink.at(x, y)))
			putGamma(pix[x*4:], c)
		}
	})
	if err != nil {
		return nil, err
	}

	return dst, nil
}

// renderMonoFlat draws every pixel as a solid block of its shade.
func renderMonoFlat(f *monoFrame, scale int) (*image.NRGBA, error) {
	sw, sh := f.img.Rect.Dx(), f.img.Rect.Dy()
	w, h := sw*scale, sh*scale
	if err := outputSize(w, h); err != nil {
		return nil, err
	}

	shades := make([][4]uint8, len(f.img.Palette))
	for i, c := range f.img.Palette {
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		shades[i] = [4]uint8{n.R, n.G, n.B, 0xff}
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	err := renderBands(dst, func(y int, pix []uint8) {
		for x := 0; x < w; x++ {
			s := shades[f.img.ColorIndexAt(x/scale, y/scale)]
			copy(pix[x*4:x*4+4], s[:])
		}
	})
	if err != nil {
		return nil, err
	}

	return dst, nil
}
