package retrolcd

import (
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// renderBands fills dst by calling row for every line. Lines are split into
// contiguous bands rendered concurrently; row must only write to the slice
// it is given.
func renderBands(dst *image.NRGBA, row func(y int, pix []uint8)) error {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()

	bands := runtime.GOMAXPROCS(0)
	if bands > h {
		bands = h
	}
	step := (h + bands - 1) / bands

	var g errgroup.Group
	for y0 := 0; y0 < h; y0 += step {
		y0, y1 := y0, y0+step
		if y1 > h {
			y1 = h
		}

		g.Go(func() error {
			for y := y0; y < y1; y++ {
				row(y, dst.Pix[y*dst.Stride:y*dst.Stride+w*4])
			}
			return nil
		})
	}

	return g.Wait()
}

// outputSize checks that a w×h frame is within MaxOutputPixels.
func outputSize(w, h int) error {
	if w < 1 || h < 1 {
		return invalidParameter("output size %dx%d is empty", w, h)
	}
	if int64(w)*int64(h) > MaxOutputPixels {
		return invalidParameter("output size %dx%d exceeds %d pixels", w, h, MaxOutputPixels)
	}
	return nil
}
