package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmpim/retrolcd"
)

// fakeFlags holds set flags; unset flags read as the defaults the
// convert command declares.
type fakeFlags map[string]interface{}

var flagDefaults = fakeFlags{
	"mode":       "dmg",
	"fg":         "#000000",
	"bg":         "#ffffff",
	"opacity":    1.0,
	"screen":     "gbc",
	"style":      "subpixel",
	"aspect":     "auto",
	"dither":     "none",
	"brightness": 1.0,
	"contrast":   1.0,
	"height-cap": retrolcd.NoHeightCap,
}

func (f fakeFlags) get(name string) interface{} {
	if v, ok := f[name]; ok {
		return v
	}
	return flagDefaults[name]
}

func (f fakeFlags) String(name string) string {
	v, _ := f.get(name).(string)
	return v
}

func (f fakeFlags) Int(name string) int {
	v, _ := f.get(name).(int)
	return v
}

func (f fakeFlags) Float64(name string) float64 {
	v, _ := f.get(name).(float64)
	return v
}

func (f fakeFlags) Bool(name string) bool {
	v, _ := f.get(name).(bool)
	return v
}

func (f fakeFlags) IsSet(name string) bool {
	_, ok := f[name]
	return ok
}

func TestRequestFromFlags(t *testing.T) {
	req, err := requestFromFlags(fakeFlags{})
	require.NoError(t, err)
	assert.Equal(t, retrolcd.DefaultRequest(retrolcd.Monochrome{}), req)

	req, err = requestFromFlags(fakeFlags{
		"mode":       "LCD",
		"screen":     "gbasp-white",
		"style":      "grid",
		"max-colors": 16,
		"scale":      3,
	})
	require.NoError(t, err)
	assert.Equal(t, retrolcd.LCD{
		Screen:    retrolcd.ScreenGBASPWhite,
		Style:     retrolcd.StyleGrid,
		MaxColors: 16,
	}, req.Mode)
	assert.Equal(t, 3, req.Scale)

	req, err = requestFromFlags(fakeFlags{
		"mode":       "crt",
		"aspect":     "4:3",
		"height-cap": 240,
		"bilinear":   true,
	})
	require.NoError(t, err)
	assert.Equal(t, retrolcd.ExplicitAspect(4, 3), req.Aspect)
	assert.Equal(t, &retrolcd.ResampleParams{HeightCap: 240, Filter: retrolcd.Bilinear}, req.Resample)

	req, err = requestFromFlags(fakeFlags{
		"mode":    "custom",
		"fg":      "#ff0000",
		"opacity": 0.5,
		"shades":  3,
		"dither":  "ordered",
	})
	require.NoError(t, err)
	custom, ok := req.Mode.(retrolcd.MonochromeCustom)
	require.True(t, ok)
	assert.Equal(t, "#ff0000", custom.Foreground.Hex())
	assert.Equal(t, 3, custom.Shades)
	assert.Equal(t, retrolcd.DitherOrdered, req.Tone.Dither)
	assert.Nil(t, req.Resample)
}

func TestRequestFromFlagsErrors(t *testing.T) {
	for _, flags := range []fakeFlags{
		{"mode": "vga"},
		{"mode": "lcd", "screen": "dsi"},
		{"mode": "lcd", "style": "mosaic"},
		{"mode": "custom", "bg": "white"},
		{"dither": "random"},
		{"aspect": "wide"},
	} {
		_, err := requestFromFlags(flags)
		assert.Error(t, err, "%v", flags)
		_, ok := retrolcd.KindOf(err)
		assert.True(t, ok, "%v", err)
	}
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "shots/pokemon.retrolcd.png", outputPath("shots/pokemon.bmp", false))
	assert.Equal(t, "shot.retrolcd.txt", outputPath("shot.png", true))
}
