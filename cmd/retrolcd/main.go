package main

import (
	"encoding/base64"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tmpim/retrolcd"
	"github.com/urfave/cli/v2"
)

func main() {
	log.SetFlags(0)

	app := cli.NewApp()
	app.Name = "retrolcd"
	app.Usage = "render images as they would look on retro handheld screens and CRTs"
	app.Version = "1.0.0"

	app.Commands = []*cli.Command{
		{
			Name:      "convert",
			Usage:     "Convert an image to a simulated display",
			ArgsUsage: "INPUT",
			Flags:     convertFlags,
			Action:    convert,
		},
		{
			Name:      "identify",
			Usage:     "Name the device an image was captured from",
			ArgsUsage: "INPUT...",
			Action:    identify,
		},
		{
			Name:   "devices",
			Usage:  "List known devices",
			Action: devices,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func convert(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	req, err := requestFromFlags(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	input := c.Args().First()
	data, err := ioutil.ReadFile(input)
	if err != nil {
		return cli.Exit(err, 1)
	}

	start := time.Now()
	res, err := retrolcd.New(logger).Convert(data, req)
	if err != nil {
		return cli.Exit(err, 1)
	}

	out := res.PNG
	if c.Bool("base64") {
		out = []byte(base64.StdEncoding.EncodeToString(res.PNG))
	}

	output := c.String("output")
	if output == "" {
		output = outputPath(input, c.Bool("base64"))
	}
	if output == "-" {
		_, err = os.Stdout.Write(out)
	} else {
		err = ioutil.WriteFile(output, out, 0644)
	}
	if err != nil {
		return cli.Exit(err, 1)
	}

	logger.Printf("%s (%s, %dx%d) -> %dx%d in %v", input, res.Device.Name,
		res.SourceWidth, res.SourceHeight, res.Image.Rect.Dx(), res.Image.Rect.Dy(),
		time.Since(start))
	return nil
}

func outputPath(input string, b64 bool) string {
	base := strings.TrimSuffix(input, filepath.Ext(input)) + ".retrolcd"
	if b64 {
		return base + ".txt"
	}
	return base + ".png"
}

func identify(c *cli.Context) error {
	if c.NArg() < 1 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	for _, path := range c.Args().Slice() {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return cli.Exit(err, 1)
		}

		img, err := retrolcd.Decode(data)
		if err != nil {
			return cli.Exit(fmt.Errorf("%s: %w", path, err), 1)
		}

		b := img.Bounds()
		fmt.Printf("%s: %dx%d %s\n", path, b.Dx(), b.Dy(),
			retrolcd.DeviceName(b.Dx(), b.Dy()))
	}
	return nil
}

func devices(c *cli.Context) error {
	for _, d := range retrolcd.Devices() {
		fmt.Printf("%-20s %4dx%-4d %s\n", d.Name, d.Width, d.Height, d.PixelAspect)
	}
	return nil
}
