package retrolcd

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"
)

var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

// EncodePNG encodes a rendered frame as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := pngEncoder.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeBase64 encodes a rendered frame as base64 PNG.
func EncodeBase64(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
