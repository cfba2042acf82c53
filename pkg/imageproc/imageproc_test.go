package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shubhamjangid510/coffe-cup/internal/domain"
)

func solidImage(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
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

func TestDecode_RejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	require.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestConvertToPNG_FromJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solidImage(40, 30, color.White), &jpeg.Options{Quality: 90}))

	data, err := ConvertToPNG(buf.Bytes())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 40, img.Bounds().Dx())
	require.Equal(t, 30, img.Bounds().Dy())
}

func TestConvertToPNG_RejectsGarbage(t *testing.T) {
	_, err := ConvertToPNG([]byte{0x00, 0x01, 0x02})
	require.ErrorIs(t, err, domain.ErrInvalidImage)
}

func TestTrim_PreservesDimensions(t *testing.T) {
	trimmed := Trim(solidImage(120, 80, color.White))
	require.Equal(t, 120, trimmed.Bounds().Dx())
	require.Equal(t, 80, trimmed.Bounds().Dy())
}

func TestTrim_MaskGeometry(t *testing.T) {
	trimmed := Trim(solidImage(100, 100, color.White))

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black := color.NRGBA{R: 0, G: 0, B: 0, A: 255}

	// Center sits inside the ellipse.
	require.Equal(t, white, trimmed.NRGBAAt(50, 50))

	// Top corners fall outside both the ellipse and the triangle.
	require.Equal(t, black, trimmed.NRGBAAt(1, 1))
	require.Equal(t, black, trimmed.NRGBAAt(98, 1))

	// Bottom corners fall outside the ellipse but inside the triangle,
	// so the union keeps them.
	require.Equal(t, white, trimmed.NRGBAAt(1, 98))
	require.Equal(t, white, trimmed.NRGBAAt(98, 98))
}

func TestTrimPNG_Deterministic(t *testing.T) {
	input := encodePNG(t, solidImage(64, 64, color.NRGBA{R: 120, G: 80, B: 40, A: 255}))

	first, err := TrimPNG(input)
	require.NoError(t, err)
	second, err := TrimPNG(input)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.NotEmpty(t, first)
}

func TestTrimPNG_RejectsGarbage(t *testing.T) {
	_, err := TrimPNG([]byte("nope"))
	require.ErrorIs(t, err, domain.ErrInvalidImage)
}
