package ai

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

const jpegQuality = 85

// ResizeImage shrinks an image so neither side exceeds maxSize, keeping
// the aspect ratio, and re-encodes it as JPEG. Images already within the
// limit are re-encoded as-is so providers always see a single format.
func ResizeImage(data []byte, maxSize int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}

	if w, h := scaledSize(img.Bounds(), maxSize); w > 0 {
		scaled := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Over, nil)
		img = scaled
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("could not encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// scaledSize returns the target dimensions with the longer side clamped
// to maxSize, or zeros when the image already fits.
func scaledSize(bounds image.Rectangle, maxSize int) (int, int) {
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxSize && height <= maxSize {
		return 0, 0
	}
	if width > height {
		return maxSize, height * maxSize / width
	}
	return width * maxSize / height, maxSize
}
