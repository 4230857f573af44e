package retrolcd

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResampleHeightCap(t *testing.T) {
	src := gradient(400, 300)

	for _, filter := range []Filter{Nearest, Bilinear} {
		out, err := Resample(src, ResampleParams{HeightCap: 144, Filter: filter})
		require.NoError(t, err)
		assert.Equal(t, 192, out.Bounds().Dx(), filter.String())
		assert.Equal(t, 144, out.Bounds().Dy(), filter.String())
	}

	// Width rounds to the nearest pixel: 333*144/250 = 191.8.
	out, err := Resample(gradient(333, 250), ResampleParams{HeightCap: 144})
	require.NoError(t, err)
	assert.Equal(t, 192, out.Bounds().Dx())
}

func TestResampleCapNotExceeded(t *testing.T) {
	src := gradient(100, 80)
	out, err := Resample(src, ResampleParams{HeightCap: 144})
	require.NoError(t, err)
	assert.Equal(t, image.Image(src), out)
}

func TestResampleKnownDeviceIsIdentity(t *testing.T) {
	src := gradient(160, 144)
	out, err := Resample(src, DefaultResample())
	require.NoError(t, err)
	assert.True(t, out == image.Image(src))
}

func TestResampleUndoesUpscale(t *testing.T) {
	native := gradient(160, 144)
	up := image.NewNRGBA(image.Rect(0, 0, 480, 432))
	for y := 0; y < 432; y++ {
		for x := 0; x < 480; x++ {
			up.SetNRGBA(x, y, native.NRGBAAt(x/3, y/3))
		}
	}

	out, err := Resample(up, DefaultResample())
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 160, 144), out.Bounds())

	got := toNRGBA(out)
	for y := 0; y < 144; y += 7 {
		for x := 0; x < 160; x += 5 {
			assert.Equal(t, native.NRGBAAt(x, y), got.NRGBAAt(x, y))
		}
	}
}

func TestResampleNearestKeepsColors(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 300, 300))
	a := color.NRGBA{10, 200, 30, 0xff}
	b := color.NRGBA{250, 0, 90, 0xff}
	for y := 0; y < 300; y++ {
		for x := 0; x < 300; x++ {
			if (x/10+y/10)%2 == 0 {
				src.SetNRGBA(x, y, a)
			} else {
				src.SetNRGBA(x, y, b)
			}
		}
	}

	out, err := Resample(src, ResampleParams{HeightCap: 100, Filter: Nearest})
	require.NoError(t, err)
	for c := range distinctColors(toNRGBA(out)) {
		assert.True(t, c == a || c == b, "unexpected color %v", c)
	}
}

func TestResampleErrors(t *testing.T) {
	_, err := Resample(gradient(10, 10), ResampleParams{HeightCap: 0})
	assert.True(t, errors.Is(err, ErrInvalidParameter))

	_, err = Resample(image.NewNRGBA(image.Rect(0, 0, 0, 5)), DefaultResample())
	assert.True(t, errors.Is(err, ErrEmptyInput))
}
