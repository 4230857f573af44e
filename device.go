package retrolcd

import (
	"sort"
	"strconv"
)

// Ratio is a width:height ratio.
type Ratio struct {
	Num, Den float64
}

// Float returns Num/Den.
func (r Ratio) Float() float64 {
	return r.Num / r.Den
}

func (r Ratio) String() string {
	return strconv.FormatFloat(r.Num, 'g', -1, 64) + ":" +
		strconv.FormatFloat(r.Den, 'g', -1, 64)
}

var square = Ratio{1, 1}

// DeviceProfile describes the native framebuffer of a piece of hardware.
type DeviceProfile struct {
	Name        string
	Width       int
	Height      int
	PixelAspect Ratio
}

// Unknown is returned for resolutions no registered device uses.
var Unknown = DeviceProfile{Name: "Unknown", PixelAspect: square}

// Known reports whether d is a registered device.
func (d DeviceProfile) Known() bool {
	return d.Width > 0 && d.Height > 0
}

type resolution struct {
	w, h int
}

var deviceTable = []DeviceProfile{
	{"Game Boy", 160, 144, square},
	{"Game Boy Advance", 240, 160, square},
	{"Neo Geo Pocket", 160, 152, square},
	{"WonderSwan", 224, 144, square},
	{"Atari Lynx", 160, 102, square},
	{"Pokémon mini", 96, 64, square},
	{"Nintendo DS", 256, 192, square},
	{"PSP", 480, 272, square},
	{"Virtual Boy", 384, 224, square},
	{"NES", 256, 240, Ratio{8, 7}},
	{"SNES", 256, 224, Ratio{8, 7}},
	{"SNES (hi-res)", 512, 224, Ratio{4, 7}},
	{"Mega Drive", 320, 224, Ratio{32, 35}},
}

var devices = func() map[resolution]DeviceProfile {
	m := make(map[resolution]DeviceProfile, len(deviceTable))
	for _, d := range deviceTable {
		m[resolution{d.Width, d.Height}] = d
	}
	return m
}()

// LookupDevice returns the device whose native resolution is exactly w×h,
// or Unknown.
func LookupDevice(w, h int) DeviceProfile {
	if d, ok := devices[resolution{w, h}]; ok {
		return d
	}
	return Unknown
}

// DeviceName returns the name of the device with native resolution w×h.
func DeviceName(w, h int) string {
	return LookupDevice(w, h).Name
}

// Devices lists every registered device sorted by name.
func Devices() []DeviceProfile {
	list := make([]DeviceProfile, len(deviceTable))
	copy(list, deviceTable)
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

// upscaledDevice finds a device for which w×h is an exact integer upscale
// of at least 2. The smallest matching factor wins.
func upscaledDevice(w, h int) (DeviceProfile, int, bool) {
	best, bestK := Unknown, 0
	for _, d := range deviceTable {
		if w%d.Width != 0 || h%d.Height != 0 {
			continue
		}
		k := w / d.Width
		if k < 2 || h/d.Height != k {
			continue
		}
		if bestK == 0 || k < bestK {
			best, bestK = d, k
		}
	}
	return best, bestK, bestK != 0
}
