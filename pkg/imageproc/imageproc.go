// Package imageproc normalizes uploaded coffee-cup photos and applies the
// fixed geometric mask that isolates the cup interior before the image is
// sent to the vision model.
package imageproc

import (
	"bytes"
	"fmt"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// maxModelSide caps the longest side of a trimmed image before it is
// base64-encoded for the hosted model.
const maxModelSide = 2048

// Decode parses image bytes in any registered format, with an explicit
// WebP fallback for encoders that omit the RIFF header variants the
// standard registration matches on.
func Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}

	if img, werr := webp.Decode(bytes.NewReader(data)); werr == nil {
		return img, nil
	}

	return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImage, err)
}

// ConvertToPNG decodes an uploaded image and re-encodes it as PNG, so that
// every stored slot holds the same format regardless of what was uploaded.
func ConvertToPNG(data []byte) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: PNG encoding failed: %v", domain.ErrInvalidImage, err)
	}
	return buf.Bytes(), nil
}

// Trim keeps the union of two fixed regions proportional to the frame: the
// inscribed centered ellipse and the triangle with vertices at the bottom
// corners and the top-center. Everything outside is set to opaque black.
// The function is pure: output depends only on the input pixels.
func Trim(src image.Image) *image.NRGBA {
	img := imaging.Clone(src)
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	if w == 0 || h == 0 {
		return img
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if insideEllipse(x, y, w, h) || insideTriangle(x, y, w, h) {
				continue
			}
			i := y*img.Stride + x*4
			img.Pix[i] = 0
			img.Pix[i+1] = 0
			img.Pix[i+2] = 0
			img.Pix[i+3] = 255
		}
	}

	return img
}

// TrimPNG decodes, masks and re-encodes an image, clamping the longest side
// so the payload stays reasonable for the hosted model.
func TrimPNG(data []byte) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}

	trimmed := Trim(img)
	if trimmed.Bounds().Dx() > maxModelSide || trimmed.Bounds().Dy() > maxModelSide {
		trimmed = imaging.Fit(trimmed, maxModelSide, maxModelSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, trimmed, imaging.PNG); err != nil {
		return nil, fmt.Errorf("%w: PNG encoding failed: %v", domain.ErrInvalidImage, err)
	}
	return buf.Bytes(), nil
}

func insideEllipse(x, y, w, h int) bool {
	// Pixel centers against the inscribed ellipse ((2x/w)-1)^2 + ((2y/h)-1)^2 <= 1.
	nx := (2*(float64(x)+0.5) - float64(w)) / float64(w)
	ny := (2*(float64(y)+0.5) - float64(h)) / float64(h)
	return nx*nx+ny*ny <= 1
}

func insideTriangle(x, y, w, h int) bool {
	// Triangle (0,h), (w,h), (w/2,0): below both edges running to the apex.
	fx := float64(x) + 0.5
	fy := float64(y) + 0.5
	fw := float64(w)
	fh := float64(h)
	left := fh * (1 - 2*fx/fw)
	right := fh * (2*fx/fw - 1)
	return fy >= left && fy >= right
}
