package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/tmpim/retrolcd"
)

var modes = []struct {
	name string
	mode retrolcd.ColorMode
}{
	{"dmg", retrolcd.Monochrome{Preset: retrolcd.PresetDMG}},
	{"pocket", retrolcd.Monochrome{Preset: retrolcd.PresetPocket}},
	{"light", retrolcd.Monochrome{Preset: retrolcd.PresetLight}},
	{"gbc-subpixel", retrolcd.LCD{Screen: retrolcd.ScreenGBC, Style: retrolcd.StyleSubpixel}},
	{"gba-grid", retrolcd.LCD{Screen: retrolcd.ScreenGBA, Style: retrolcd.StyleGrid}},
	{"gbasp-flat", retrolcd.LCD{Screen: retrolcd.ScreenGBASP, Style: retrolcd.StyleFlat}},
	{"crt", retrolcd.CRT{}},
}

func main() {
	f, err := os.Create("./cpuprof.out")
	if err != nil {
		log.Fatal("could not create CPU profile: ", err)
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		log.Fatal("could not start CPU profile: ", err)
	}
	defer pprof.StopCPUProfile()
	defer fmt.Println("goodbye")

	if err := os.MkdirAll("./output_test", 0755); err != nil {
		log.Fatal(err)
	}

	files, err := ioutil.ReadDir("./input_test")
	if err != nil {
		log.Fatal(err)
	}

	conv := retrolcd.New(nil)
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		convert(conv, filepath.Base(f.Name()))
	}
}

func convert(conv *retrolcd.Converter, name string) {
	start := time.Now()

	data, err := ioutil.ReadFile("./input_test/" + name)
	if err != nil {
		log.Println("Failed to read image:", err)
		os.Exit(1)
	}

	basename := strings.TrimSuffix(name, filepath.Ext(name))

	for _, m := range modes {
		modeStart := time.Now()

		req := retrolcd.DefaultRequest(m.mode)
		res, err := conv.Convert(data, req)
		if err != nil {
			log.Println("Failed to convert image:", name, m.name, err)
			continue
		}

		log.Printf("%s [%s] %s: %v", name, res.Device.Name, m.name, time.Since(modeStart))

		out := "./output_test/" + basename + "." + m.name + ".png"
		if err := ioutil.WriteFile(out, res.PNG, 0644); err != nil {
			log.Println("Warning: Failed to write preview image:", err)
		}
	}

	log.Println("[complete]", name+":", time.Since(start))
}
