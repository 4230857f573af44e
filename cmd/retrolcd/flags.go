package main

import (
	"fmt"
	"strings"

	"github.com/tmpim/retrolcd"
	"github.com/urfave/cli/v2"
)

var convertFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		EnvVars: []string{"RETROLCD_MODE"},
		Value:   "dmg",
		Usage:   "color mode: dmg, pocket, light, custom, lcd or crt",
	},
	&cli.StringFlag{
		Name:  "fg",
		Value: "#000000",
		Usage: "foreground color for the custom mode",
	},
	&cli.StringFlag{
		Name:  "bg",
		Value: "#ffffff",
		Usage: "background color for the custom mode",
	},
	&cli.Float64Flag{
		Name:  "opacity",
		Value: 1,
		Usage: "foreground opacity for the custom mode, 0 to 1",
	},
	&cli.IntFlag{
		Name:  "shades",
		Usage: "number of monochrome shades, 2 to 4 (0 for the mode default)",
	},
	&cli.BoolFlag{
		Name:  "flat",
		Usage: "draw monochrome pixels as flat blocks without the LCD effect",
	},
	&cli.StringFlag{
		Name:    "screen",
		EnvVars: []string{"RETROLCD_SCREEN"},
		Value:   "gbc",
		Usage:   "color LCD screen: gbc, gba, gbasp or gbasp-white",
	},
	&cli.StringFlag{
		Name:    "style",
		EnvVars: []string{"RETROLCD_STYLE"},
		Value:   "subpixel",
		Usage:   "color LCD style: subpixel, grid or flat",
	},
	&cli.IntFlag{
		Name:  "max-colors",
		Usage: "limit color LCD output to this many source colors (0 for no limit)",
	},
	&cli.IntFlag{
		Name:    "scale",
		Aliases: []string{"s"},
		EnvVars: []string{"RETROLCD_SCALE"},
		Usage:   "output pixels per source pixel (0 for the mode default)",
	},
	&cli.StringFlag{
		Name:  "aspect",
		Value: "auto",
		Usage: "CRT pixel aspect ratio, as auto, W:H or a number",
	},
	&cli.StringFlag{
		Name:  "dither",
		Value: "none",
		Usage: "monochrome dithering: none, diffusion or ordered",
	},
	&cli.Float64Flag{
		Name:  "brightness",
		Value: 1,
		Usage: "lightness multiplier",
	},
	&cli.Float64Flag{
		Name:  "contrast",
		Value: 1,
		Usage: "contrast around mid gray",
	},
	&cli.BoolFlag{
		Name:  "invert",
		Usage: "invert lightness",
	},
	&cli.Float64Flag{
		Name:  "edge",
		Usage: fmt.Sprintf("edge enhancement level, one of %v", retrolcd.EdgeEnhancementLevels),
	},
	&cli.IntFlag{
		Name:    "height-cap",
		EnvVars: []string{"RETROLCD_HEIGHT_CAP"},
		Value:   retrolcd.NoHeightCap,
		Usage:   "shrink sources taller than this (-1 for no cap)",
	},
	&cli.BoolFlag{
		Name:  "bilinear",
		Usage: "use bilinear filtering when shrinking",
	},
	&cli.BoolFlag{
		Name:  "base64",
		Usage: "write the PNG base64 encoded",
	},
	&cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output path, - for stdout (default INPUT.retrolcd.png)",
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log pipeline stages",
	},
}

// flagSource is the subset of *cli.Context requestFromFlags reads.
type flagSource interface {
	String(name string) string
	Int(name string) int
	Float64(name string) float64
	Bool(name string) bool
	IsSet(name string) bool
}

func requestFromFlags(c flagSource) (retrolcd.Request, error) {
	mode, err := modeFromFlags(c)
	if err != nil {
		return retrolcd.Request{}, err
	}

	req := retrolcd.DefaultRequest(mode)

	if c.Int("scale") > 0 {
		req.Scale = c.Int("scale")
	}

	dither, err := retrolcd.ParseDitherMode(c.String("dither"))
	if err != nil {
		return retrolcd.Request{}, err
	}
	req.Tone = retrolcd.ToneParams{
		Dither:          dither,
		Brightness:      c.Float64("brightness"),
		Contrast:        c.Float64("contrast"),
		Invert:          c.Bool("invert"),
		EdgeEnhancement: c.Float64("edge"),
	}

	if c.IsSet("height-cap") || c.IsSet("bilinear") {
		p := retrolcd.ResampleParams{HeightCap: c.Int("height-cap"), Filter: retrolcd.Nearest}
		if c.Bool("bilinear") {
			p.Filter = retrolcd.Bilinear
		}
		req.Resample = &p
	}

	req.Aspect, err = retrolcd.ParseAspectRatio(c.String("aspect"))
	if err != nil {
		return retrolcd.Request{}, err
	}

	return req, nil
}

func modeFromFlags(c flagSource) (retrolcd.ColorMode, error) {
	switch name := strings.ToLower(c.String("mode")); name {
	case "custom":
		fg, err := retrolcd.ParseColor(c.String("fg"))
		if err != nil {
			return nil, err
		}
		bg, err := retrolcd.ParseColor(c.String("bg"))
		if err != nil {
			return nil, err
		}
		return retrolcd.MonochromeCustom{
			Foreground: fg,
			Opacity:    c.Float64("opacity"),
			Background: bg,
			Shades:     c.Int("shades"),
			Flat:       c.Bool("flat"),
		}, nil

	case "lcd":
		screen, err := retrolcd.ParseScreen(c.String("screen"))
		if err != nil {
			return nil, err
		}
		style, err := retrolcd.ParseLCDStyle(c.String("style"))
		if err != nil {
			return nil, err
		}
		return retrolcd.LCD{Screen: screen, Style: style, MaxColors: c.Int("max-colors")}, nil

	case "crt":
		return retrolcd.CRT{}, nil

	default:
		preset, err := retrolcd.ParsePreset(name)
		if err != nil {
			return nil, err
		}
		return retrolcd.Monochrome{
			Preset: preset,
			Shades: c.Int("shades"),
			Flat:   c.Bool("flat"),
		}, nil
	}
}
