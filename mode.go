package retrolcd

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorMode selects how an image is rendered. It is one of Monochrome,
// MonochromeCustom, LCD or CRT.
type ColorMode interface {
	String() string
	colorMode()
}

// MonochromePreset is a built-in four shade palette.
type MonochromePreset int

// Built-in monochrome palettes.
const (
	PresetDMG MonochromePreset = iota
	PresetPocket
	PresetLight
)

var presetNames = []string{"dmg", "pocket", "light"}

func (p MonochromePreset) String() string {
	if p < 0 || int(p) >= len(presetNames) {
		return fmt.Sprintf("preset(%d)", int(p))
	}
	return presetNames[p]
}

// ParsePreset parses a preset name as printed by String.
func ParsePreset(s string) (MonochromePreset, error) {
	for i, name := range presetNames {
		if strings.EqualFold(s, name) {
			return MonochromePreset(i), nil
		}
	}
	return 0, invalidMode("unknown monochrome preset %q", s)
}

type presetColors struct {
	fg, bg  string
	opacity float64
}

var presets = []presetColors{
	PresetDMG:    {"#134a07", "#aab513", 1},
	PresetPocket: {"#000000", "#a4a989", 1},
	PresetLight:  {"#002e2c", "#00b5b0", 1},
}

// Monochrome renders with one of the built-in four shade palettes.
// Shades is 2, 3 or 4; zero means 4. Flat draws plain blocks of the shade
// colors instead of the LCD cell grid.
type Monochrome struct {
	Preset MonochromePreset
	Shades int
	Flat   bool
}

// MonochromeCustom renders with shades blended from Foreground over
// Background. Shades is 2, 3 or 4; zero means 2.
type MonochromeCustom struct {
	Foreground colorful.Color
	Opacity    float64
	Background colorful.Color
	Shades     int
	Flat       bool
}

// Screen is a color LCD whose color response is emulated.
type Screen int

// Emulated screens.
const (
	ScreenGBC Screen = iota
	ScreenGBA
	ScreenGBASP
	ScreenGBASPWhite

	numScreens = iota
)

var screenNames = []string{"gbc", "gba", "gbasp", "gbasp-white"}

func (s Screen) String() string {
	if s < 0 || int(s) >= len(screenNames) {
		return fmt.Sprintf("screen(%d)", int(s))
	}
	return screenNames[s]
}

// ParseScreen parses a screen name as printed by String.
func ParseScreen(s string) (Screen, error) {
	for i, name := range screenNames {
		if strings.EqualFold(s, name) {
			return Screen(i), nil
		}
	}
	return 0, invalidMode("unknown screen %q", s)
}

// LCDStyle is the look of the color LCD pixel grid.
type LCDStyle int

// LCD styles.
const (
	StyleSubpixel LCDStyle = iota
	StyleGrid
	StyleFlat
)

var styleNames = []string{"subpixel", "grid", "flat"}

func (s LCDStyle) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return fmt.Sprintf("style(%d)", int(s))
	}
	return styleNames[s]
}

// ParseLCDStyle parses a style name as printed by String.
func ParseLCDStyle(s string) (LCDStyle, error) {
	for i, name := range styleNames {
		if strings.EqualFold(s, name) {
			return LCDStyle(i), nil
		}
	}
	return 0, invalidMode("unknown lcd style %q", s)
}

// LCD renders in 15-bit color through a screen's color response.
// MaxColors, when positive, limits how many distinct colors a frame uses.
type LCD struct {
	Screen    Screen
	Style     LCDStyle
	MaxColors int
}

// CRT renders full color through a CRT shader.
type CRT struct{}

func (Monochrome) colorMode()       {}
func (MonochromeCustom) colorMode() {}
func (LCD) colorMode()              {}
func (CRT) colorMode()              {}

func (m Monochrome) String() string {
	return "monochrome/" + m.Preset.String()
}

func (m MonochromeCustom) String() string {
	return fmt.Sprintf("monochrome/custom(%s over %s, %.2f)",
		m.Foreground.Hex(), m.Background.Hex(), m.Opacity)
}

func (m LCD) String() string {
	return "lcd/" + m.Screen.String() + "/" + m.Style.String()
}

func (CRT) String() string {
	return "crt"
}

// ParseColor parses a "#rrggbb" or "#rgb" color.
func ParseColor(s string) (colorful.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, invalidParameter("color %q: %v", s, err)
	}
	return c, nil
}

var shadeAlphas = map[int][]float64{
	2: {1, 0},
	3: {1, 0.5, 0.07},
	4: {1, 2.0 / 3.0, 1.0 / 3.0, 0.07},
}

// monoSpec is the resolved foreground, background and coverage per shade of a
// monochrome mode. Custom palettes bucket lightness with fixed thresholds
// since their foreground need not be the darker color.
type monoSpec struct {
	fg, bg  colorful.Color
	opacity float64
	alphas  []float64
	flat    bool
	custom  bool
}

func resolveMono(mode ColorMode) (monoSpec, bool, error) {
	switch m := mode.(type) {
	case Monochrome:
		if m.Preset < 0 || int(m.Preset) >= len(presets) {
			return monoSpec{}, true, invalidMode("unknown monochrome preset %d", int(m.Preset))
		}
		shades := m.Shades
		if shades == 0 {
			shades = 4
		}
		alphas, ok := shadeAlphas[shades]
		if !ok {
			return monoSpec{}, true, invalidParameter("shades must be 2, 3 or 4, got %d", m.Shades)
		}
		p := presets[m.Preset]
		fg, _ := colorful.Hex(p.fg)
		bg, _ := colorful.Hex(p.bg)
		return monoSpec{fg: fg, bg: bg, opacity: p.opacity, alphas: alphas, flat: m.Flat}, true, nil
	case MonochromeCustom:
		shades := m.Shades
		if shades == 0 {
			shades = 2
		}
		alphas, ok := shadeAlphas[shades]
		if !ok {
			return monoSpec{}, true, invalidParameter("shades must be 2, 3 or 4, got %d", m.Shades)
		}
		if m.Opacity < 0 || m.Opacity > 1 || m.Opacity != m.Opacity {
			return monoSpec{}, true, invalidParameter("foreground opacity %v outside [0, 1]", m.Opacity)
		}
		if !m.Foreground.IsValid() || !m.Background.IsValid() {
			return monoSpec{}, true, invalidParameter("custom colors must be in gamut")
		}
		return monoSpec{fg: m.Foreground, bg: m.Background, opacity: m.Opacity,
			alphas: alphas, flat: m.Flat, custom: true}, true, nil
	}
	return monoSpec{}, false, nil
}

// supportsTone reports whether the tone stage applies to mode.
func supportsTone(mode ColorMode) bool {
	switch mode.(type) {
	case Monochrome, MonochromeCustom:
		return true
	}
	return false
}
