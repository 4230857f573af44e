package retrolcd

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

// gradient returns a w×h image whose lightness rises left to right, with a
// little color variation down the rows.
func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / maxInt(w-1, 1))
			img.SetNRGBA(x, y, color.NRGBA{v, uint8(int(v) * y / maxInt(h-1, 1)), 255 - v, 0xff})
		}
	}
	return img
}

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func distinctColors(img *image.NRGBA) map[color.NRGBA]bool {
	seen := make(map[color.NRGBA]bool)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			seen[img.NRGBAAt(x, y)] = true
		}
	}
	return seen
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// pngHeader returns a PNG signature and IHDR chunk declaring a w×h grayscale
// image with no pixel data, enough for image.DecodeConfig.
func pngHeader(w, h int) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	chunk := make([]byte, 4+13)
	copy(chunk, "IHDR")
	binary.BigEndian.PutUint32(chunk[4:], uint32(w))
	binary.BigEndian.PutUint32(chunk[8:], uint32(h))
	chunk[12] = 8 // bit depth, then grayscale with default methods

	var n [4]byte
	binary.BigEndian.PutUint32(n[:], 13)
	buf.Write(n[:])
	buf.Write(chunk)
	binary.BigEndian.PutUint32(n[:], crc32.ChecksumIEEE(chunk))
	buf.Write(n[:])
	return buf.Bytes()
}
