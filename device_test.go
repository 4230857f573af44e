package retrolcd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupDevice(t *testing.T) {
	tests := []struct {
		w, h int
		name string
	}{
		{160, 144, "Game Boy"},
		{240, 160, "Game Boy Advance"},
		{256, 224, "SNES"},
		{320, 224, "Mega Drive"},
		{37, 29, "Unknown"},
		{144, 160, "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.name, DeviceName(tt.w, tt.h), "%dx%d", tt.w, tt.h)
	}
}

func TestLookupDeviceIsExact(t *testing.T) {
	d := LookupDevice(160, 144)
	assert.True(t, d.Known())
	assert.Equal(t, 160, d.Width)
	assert.Equal(t, 144, d.Height)

	assert.False(t, LookupDevice(161, 144).Known())
	assert.Equal(t, Unknown, LookupDevice(0, 0))
}

func TestDevicePixelAspect(t *testing.T) {
	assert.InDelta(t, 8.0/7.0, LookupDevice(256, 224).PixelAspect.Float(), 1e-9)
	assert.InDelta(t, 1.0, LookupDevice(160, 144).PixelAspect.Float(), 1e-9)
	assert.InDelta(t, 1.0, Unknown.PixelAspect.Float(), 1e-9)
}

func TestDevicesSortedAndComplete(t *testing.T) {
	list := Devices()
	assert.Len(t, list, len(deviceTable))
	for i := 1; i < len(list); i++ {
		assert.True(t, list[i-1].Name < list[i].Name)
	}

	seen := make(map[resolution]bool)
	for _, d := range list {
		r := resolution{d.Width, d.Height}
		assert.False(t, seen[r], "duplicate resolution %v", r)
		seen[r] = true
	}
}

func TestUpscaledDevice(t *testing.T) {
	d, k, ok := upscaledDevice(480, 432)
	assert.True(t, ok)
	assert.Equal(t, "Game Boy", d.Name)
	assert.Equal(t, 3, k)

	_, _, ok = upscaledDevice(160, 144)
	assert.False(t, ok)

	_, _, ok = upscaledDevice(480, 288)
	assert.False(t, ok)
}
