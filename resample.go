package retrolcd

import (
	"image"
	"math"

	"github.com/disintegration/gift"
)

// Resample brings an image to the size it will be rendered at. Tall images
// are shrunk to the height cap. Images that are already a device's native
// size pass through untouched, and exact integer upscales of a device are
// reduced back to native.
func Resample(img image.Image, p ResampleParams) (image.Image, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return nil, emptyInput("cannot resample a %dx%d image", w, h)
	}

	nw, nh := resampledSize(w, h, p)
	switch {
	case nw == w && nh == h:
		return img, nil
	case p.HeightCap > 0 && h > p.HeightCap:
		return resize(img, nw, nh, p.Filter), nil
	default:
		return resize(img, nw, nh, Nearest), nil
	}
}

// resampledSize returns the size Resample brings a w×h image to.
func resampledSize(w, h int, p ResampleParams) (int, int) {
	if p.HeightCap > 0 && h > p.HeightCap {
		nw := int(math.Round(float64(w) * float64(p.HeightCap) / float64(h)))
		if nw < 1 {
			nw = 1
		}
		return nw, p.HeightCap
	}

	if LookupDevice(w, h).Known() {
		return w, h
	}

	if d, _, ok := upscaledDevice(w, h); ok {
		return d.Width, d.Height
	}

	return w, h
}

func resize(img image.Image, w, h int, filter Filter) image.Image {
	resampling := gift.NearestNeighborResampling
	if filter == Bilinear {
		resampling = gift.LinearResampling
	}

	f := gift.Resize(w, h, resampling)
	dst := image.NewNRGBA(f.Bounds(img.Bounds()))
	f.Draw(dst, img, &gift.Options{
		Parallelization: true,
	})
	return dst
}
