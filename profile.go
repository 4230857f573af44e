package retrolcd

import (
	"math"
	"sync"
)

// displayProfile models the color response of a handheld screen: a gamma
// shift, a luminance scale and a channel bleed matrix applied in linear
// light.
type displayProfile struct {
	r, gr, br float64
	rg, g, bg float64
	rb, gb, b float64

	lum         float64
	gamma       float64
	gammaOffset float64

	// bgr screens order their subpixels blue first.
	bgr bool
}

var displayProfiles = []displayProfile{
	ScreenGBC: {
		r: 0.80, gr: 0.275, br: -0.075,
		rg: 0.135, g: 0.64, bg: 0.225,
		rb: 0.195, gb: 0.155, b: 0.65,
		lum: 0.93, gamma: 2.2, gammaOffset: -0.5,
	},
	ScreenGBA: {
		r: 0.80, gr: 0.275, br: -0.075,
		rg: 0.135, g: 0.64, bg: 0.225,
		rb: 0.195, gb: 0.155, b: 0.65,
		lum: 0.93, gamma: 2.0, gammaOffset: 0.5,
		bgr: true,
	},
	ScreenGBASP: {
		r: 0.86, gr: 0.10, br: -0.06,
		rg: 0.03, g: 0.745, bg: 0.0675,
		rb: 0.0025, gb: -0.03, b: 1.0275,
		lum: 0.97, gamma: 2.0, gammaOffset: 0.0,
	},
	ScreenGBASPWhite: {
		r: 0.955, gr: 0.11, br: -0.065,
		rg: 0.0375, g: 0.885, bg: 0.0775,
		rb: 0.0025, gb: -0.03, b: 1.0275,
		lum: 0.94, gamma: 2.0, gammaOffset: 0.0,
	},
}

func (p *displayProfile) correct(c rgb) rgb {
	exp := (p.gamma + p.gammaOffset) / p.gamma
	c = c.apply(func(v float64) float64 {
		return math.Pow(v, exp)
	}).scale(p.lum).clamp()

	return rgb{
		p.r*c.R + p.gr*c.G + p.br*c.B,
		p.rg*c.R + p.g*c.G + p.bg*c.B,
		p.rb*c.R + p.gb*c.G + p.b*c.B,
	}.clamp()
}

type responseTable [1 << 15]rgb

var (
	responseOnce   [numScreens]sync.Once
	responseTables [numScreens]*responseTable
)

// screenResponse returns the linear color each 15-bit code appears as on
// screen s. Tables are built on first use and never change.
func screenResponse(s Screen) *responseTable {
	responseOnce[s].Do(func() {
		p := &displayProfiles[s]
		t := new(responseTable)
		for c := range t {
			e := expand555(uint16(c))
			t[c] = p.correct(linearFromNRGBA(e))
		}
		responseTables[s] = t
	})
	return responseTables[s]
}
