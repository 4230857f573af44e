package retrolcd

import (
	"bytes"
	"image"
	// Decoders accepted as input.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/gift"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode decodes an encoded image and applies its EXIF orientation.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, emptyInput("no image data")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeFailure(err)
	}

	if img.Bounds().Empty() {
		return nil, emptyInput("image has no pixels")
	}

	if f := orientationFilter(exifOrientation(data)); f != nil {
		dst := image.NewNRGBA(f.Bounds(img.Bounds()))
		f.Draw(dst, img, &gift.Options{
			Parallelization: true,
		})
		img = dst
	}

	return img, nil
}

// exifOrientation returns the EXIF orientation tag, or 1 when there is none.
func exifOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return o
}

func orientationFilter(o int) gift.Filter {
	switch o {
	case 2:
		return gift.FlipHorizontal()
	case 3:
		return gift.Rotate180()
	case 4:
		return gift.FlipVertical()
	case 5:
		return gift.Transpose()
	case 6:
		return gift.Rotate270()
	case 7:
		return gift.Transverse()
	case 8:
		return gift.Rotate90()
	}
	return nil
}
