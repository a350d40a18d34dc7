package images

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// Quality is the fixed lossy-encoding setting for stored covers.
const Quality = 85

// Ext is the extension of every stored cover file.
const Ext = ".jpg"

// Transcode decodes a cover image (JPEG, PNG, GIF or WebP), flattens any
// transparency onto a white background and re-encodes it as JPEG at the
// fixed quality.
func Transcode(r io.Reader) ([]byte, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding cover image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, flatten(img), &jpeg.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encoding cover image: %w", err)
	}
	return buf.Bytes(), nil
}

// flatten composites the image over white, producing a plain 3-channel
// result regardless of the source color mode.
func flatten(img image.Image) image.Image {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(out, bounds, img, bounds.Min, draw.Over)
	return out
}
