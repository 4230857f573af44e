package retrolcd

import (
	"errors"
	"image"
	"image/color"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCRTSize(t *testing.T) {
	tests := []struct {
		w, h, scale int
		aspect      float64
		ow, oh      int
	}{
		{160, 144, 6, 4.0 / 3.0, 960, 648},
		{256, 224, 4, 8.0 / 7.0, 1024, 784},
		{160, 144, 6, 1, 960, 864},
		{100, 75, 3, 3.0 / 2.0, 300, 150},
		{1, 1, 1, 4, 1, 1},
	}

	for _, tt := range tests {
		ow, oh := crtSize(tt.w, tt.h, tt.scale, tt.aspect)
		assert.Equal(t, tt.ow, ow, "%dx%d s%d", tt.w, tt.h, tt.scale)
		assert.Equal(t, tt.oh, oh, "%dx%d s%d", tt.w, tt.h, tt.scale)
	}
}

func TestRenderCRT(t *testing.T) {
	src := linearize(gradient(40, 30))
	out, err := renderCRT(src, 3, 4.0/3.0)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 120, 68), out.Rect)

	for i := 3; i < len(out.Pix); i += 4 {
		assert.Equal(t, uint8(0xff), out.Pix[i])
	}
}

func TestRenderCRTBlack(t *testing.T) {
	out, err := renderCRT(newFloatImage(8, 8), 2, 1)
	require.NoError(t, err)
	for c := range distinctColors(out) {
		assert.Equal(t, color.NRGBA{0, 0, 0, 0xff}, c)
	}
}

func TestLanczosWeightsNormalised(t *testing.T) {
	weights, columns := lanczosWeights(10, 37)
	require.Len(t, weights, 37)
	require.Len(t, columns, 37)
	for _, w := range weights {
		var sum float64
		for _, v := range w {
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-9)
	}
}

func TestRenderLCDSizes(t *testing.T) {
	src := quantizeLCD(gradient(24, 16), LCD{Screen: ScreenGBA})
	for _, style := range []LCDStyle{StyleSubpixel, StyleGrid, StyleFlat} {
		for _, scale := range []int{1, 3, 4} {
			out, err := renderLCD(src, ScreenGBA, style, scale)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 24*scale, 16*scale), out.Rect, style.String())
		}
	}
}

func TestRenderLCDFlatUsesScreenColors(t *testing.T) {
	img := gradient(8, 8)
	src := quantizeLCD(img, LCD{Screen: ScreenGBC})
	out, err := renderLCD(src, ScreenGBC, StyleFlat, 3)
	require.NoError(t, err)

	for y := 0; y < 24; y++ {
		for x := 0; x < 24; x++ {
			want := make([]uint8, 4)
			putGamma(want, src.at(x/3, y/3))
			i := out.PixOffset(x, y)
			assert.Equal(t, want, out.Pix[i:i+4])
		}
	}
}

func TestRenderLCDSubpixelStripes(t *testing.T) {
	// A white pixel shows its red stripe on the left and blue on the right.
	src := newFloatImage(1, 1)
	src.set(0, 0, rgb{1, 1, 1})
	out, err := renderLCD(src, ScreenGBC, StyleSubpixel, 6)
	require.NoError(t, err)

	left := out.NRGBAAt(1, 3)
	right := out.NRGBAAt(4, 3)
	assert.True(t, left.R > left.B)
	assert.True(t, right.B > right.R)
}

func TestRenderMonoLCD(t *testing.T) {
	spec := mustMono(t, Monochrome{Preset: PresetDMG})
	frame := quantizeMono(lightnessPlane(gradient(20, 10)), spec, DitherNone)

	out, err := renderMonoLCD(frame, 5)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 100, 50), out.Rect)

	// Gaps between cells let the background through.
	ink := quantizeMono(lightnessPlane(solid(4, 4, color.NRGBA{0, 0, 0, 0xff})), spec, DitherNone)
	out, err = renderMonoLCD(ink, 5)
	require.NoError(t, err)
	cell, gap := out.NRGBAAt(2, 2), out.NRGBAAt(4, 2)
	assert.True(t, int(gap.R)+int(gap.G)+int(gap.B) > int(cell.R)+int(cell.G)+int(cell.B))

	// Without any ink the whole frame is the background.
	fg, _ := ParseColor("#ff0000")
	bg, _ := ParseColor("#3060c0")
	blank := quantizeMono(lightnessPlane(gradient(6, 6)),
		mustMono(t, MonochromeCustom{Foreground: fg, Background: bg, Opacity: 0}), DitherNone)
	out, err = renderMonoLCD(blank, 4)
	require.NoError(t, err)
	want := make([]uint8, 4)
	putGamma(want, blank.bg)
	for c := range distinctColors(out) {
		assert.Equal(t, color.NRGBA{want[0], want[1], want[2], want[3]}, c)
	}
}

func TestRenderMonoFlatStaysInPalette(t *testing.T) {
	spec := mustMono(t, Monochrome{Preset: PresetLight, Flat: true})
	for _, mode := range []DitherMode{DitherNone, DitherDiffusion, DitherOrdered} {
		frame := quantizeMono(lightnessPlane(gradient(30, 20)), spec, mode)
		out, err := renderMonoFlat(frame, 3)
		require.NoError(t, err)
		palette := paletteSet(frame.img.Palette)
		for c := range distinctColors(out) {
			assert.True(t, palette[c], "%v not in palette", c)
		}
	}
}

func TestRenderBandsMatchesSequential(t *testing.T) {
	src := quantizeLCD(gradient(33, 21), LCD{Screen: ScreenGBASP})

	parallel, err := renderLCD(src, ScreenGBASP, StyleGrid, 5)
	require.NoError(t, err)

	prev := runtime.GOMAXPROCS(1)
	sequential, err := renderLCD(src, ScreenGBASP, StyleGrid, 5)
	runtime.GOMAXPROCS(prev)
	require.NoError(t, err)

	assert.Equal(t, sequential.Pix, parallel.Pix)
}

func TestOutputSizeLimit(t *testing.T) {
	_, err := renderLCD(newFloatImage(1024, 1024), ScreenGBC, StyleFlat, 5)
	assert.True(t, errors.Is(err, ErrInvalidParameter))
}
