package retrolcd

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func convert(t *testing.T, src image.Image, req Request) *Result {
	t.Helper()
	res, err := New(nil).Convert(encodePNG(t, src), req)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(res.PNG))
	require.NoError(t, err)
	assert.Equal(t, res.Image.Rect, decoded.Bounds())
	return res
}

func TestConvertDimensions(t *testing.T) {
	gb := gradient(160, 144)

	tests := []struct {
		name   string
		src    image.Image
		req    func() Request
		w, h   int
		device string
	}{
		{"mono", gb, func() Request { return DefaultRequest(Monochrome{}) }, 800, 720, "Game Boy"},
		{"lcd", gradient(240, 160), func() Request {
			return DefaultRequest(LCD{Screen: ScreenGBA, Style: StyleGrid})
		}, 960, 640, "Game Boy Advance"},
		{"crt 4:3", gb, func() Request {
			r := DefaultRequest(CRT{})
			r.Aspect = ExplicitAspect(4, 3)
			return r
		}, 960, 648, "Game Boy"},
		{"crt auto", gb, func() Request { return DefaultRequest(CRT{}) }, 960, 864, "Game Boy"},
		{"crt snes", gradient(256, 224), func() Request {
			r := DefaultRequest(CRT{})
			r.Scale = 4
			return r
		}, 1024, 784, "SNES"},
		{"crt 3:2", gradient(100, 75), func() Request {
			r := DefaultRequest(CRT{})
			r.Scale = 3
			r.Aspect = ExplicitAspect(3, 2)
			return r
		}, 300, 150, "Unknown"},
		{"capped", gradient(320, 288), func() Request {
			r := DefaultRequest(Monochrome{})
			r.Resample = &ResampleParams{HeightCap: 144, Filter: Bilinear}
			r.Scale = 2
			return r
		}, 320, 288, "Game Boy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := convert(t, tt.src, tt.req())
			assert.Equal(t, tt.w, res.Image.Rect.Dx())
			assert.Equal(t, tt.h, res.Image.Rect.Dy())
			assert.Equal(t, tt.device, res.Device.Name)
		})
	}
}

func TestConvertCustomOpacity(t *testing.T) {
	fg, _ := colorful.Hex("#ff0000")
	bg, _ := colorful.Hex("#0000ff")
	src := gradient(40, 20)

	req := DefaultRequest(MonochromeCustom{Foreground: fg, Background: bg, Opacity: 1, Flat: true})
	req.Tone.Dither = DitherDiffusion
	res := convert(t, src, req)
	assert.Equal(t, map[color.NRGBA]bool{
		{255, 0, 0, 255}: true,
		{0, 0, 255, 255}: true,
	}, distinctColors(res.Image))

	req = DefaultRequest(MonochromeCustom{Foreground: fg, Background: bg, Opacity: 0, Flat: true})
	res = convert(t, src, req)
	assert.Equal(t, map[color.NRGBA]bool{{0, 0, 255, 255}: true}, distinctColors(res.Image))
}

func TestConvertNeutralToneIsNoop(t *testing.T) {
	src := gradient(160, 144)
	c := New(nil)
	data := encodePNG(t, src)

	plain := DefaultRequest(Monochrome{Preset: PresetPocket})
	a, err := c.Convert(data, plain)
	require.NoError(t, err)

	toned := plain
	toned.Tone = ToneParams{Brightness: 1, Contrast: 1}
	b, err := c.Convert(data, toned)
	require.NoError(t, err)
	assert.Equal(t, a.PNG, b.PNG)

	toned.Tone.Invert = true
	inv, err := c.Convert(data, toned)
	require.NoError(t, err)
	assert.NotEqual(t, a.PNG, inv.PNG)
}

func TestConvertIsDeterministic(t *testing.T) {
	data := encodePNG(t, gradient(64, 48))
	c := New(nil)
	for _, mode := range []ColorMode{
		Monochrome{Preset: PresetDMG},
		LCD{Screen: ScreenGBC, Style: StyleSubpixel},
		CRT{},
	} {
		req := DefaultRequest(mode)
		req.Tone.Dither = DitherDiffusion
		a, err := c.Convert(data, req)
		require.NoError(t, err)
		b, err := c.Convert(data, req)
		require.NoError(t, err)
		assert.Equal(t, a.PNG, b.PNG, mode.String())
	}
}

func TestConvertErrors(t *testing.T) {
	c := New(nil)
	valid := encodePNG(t, gradient(8, 8))

	tests := []struct {
		name  string
		data  []byte
		req   Request
		err   error
		stage string
	}{
		{"empty", nil, DefaultRequest(CRT{}), ErrEmptyInput, "decoding"},
		{"garbage", []byte("GIF89a nope"), DefaultRequest(CRT{}), ErrDecodeFailure, "decoding"},
		{"mode", valid, DefaultRequest(LCD{Screen: 42}), ErrInvalidMode, "validating"},
		{"scale", valid, Request{Mode: CRT{}, Tone: NeutralTone()}, ErrInvalidParameter, "validating"},
		{"too large", valid, func() Request {
			r := DefaultRequest(CRT{})
			r.Scale = 1000
			return r
		}(), ErrInvalidParameter, "decoding"},
		{"huge source", pngHeader(6000, 6000), DefaultRequest(CRT{}), ErrInvalidParameter, "decoding"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Convert(tt.data, tt.req)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), err.Error())

			var e *Error
			require.True(t, errors.As(err, &e))
			assert.Equal(t, tt.stage, e.Stage)
		})
	}
}

func TestConvertBase64(t *testing.T) {
	var logs bytes.Buffer
	c := New(log.New(&logs, "", 0))

	out, err := c.ConvertBase64(encodePNG(t, gradient(160, 144)), DefaultRequest(LCD{Style: StyleFlat}))
	require.NoError(t, err)

	data, err := base64.StdEncoding.DecodeString(out)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 640, 576), img.Bounds())

	assert.True(t, strings.Contains(logs.String(), "Game Boy"))
}

func TestCheckSizeBeforeDecoding(t *testing.T) {
	capped := func(mode ColorMode, heightCap int) Request {
		r := DefaultRequest(mode)
		r.Resample = &ResampleParams{HeightCap: heightCap, Filter: Bilinear}
		return r
	}

	tests := []struct {
		name string
		w, h int
		req  Request
		ok   bool
	}{
		{"fits", 160, 144, DefaultRequest(CRT{}), true},
		{"output too large", 1024, 1024, DefaultRequest(Monochrome{}), false},
		{"height cap shrinks it", 2000, 4000, capped(Monochrome{}, 144), true},
		{"source too large despite cap", 6000, 6000, capped(CRT{}, 144), false},
		{"device upscale is undone", 1600, 1440, DefaultRequest(LCD{}), true},
		{"crt aspect", 1000, 700, func() Request {
			r := DefaultRequest(CRT{})
			r.Aspect = ExplicitAspect(1, 4)
			return r
		}(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkSize(pngHeader(tt.w, tt.h), tt.req)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, ErrInvalidParameter), "%v", err)
			}
		})
	}

	// Unreadable headers are left for the decoder to report.
	assert.NoError(t, checkSize([]byte("junk"), DefaultRequest(CRT{})))
}
