package screen

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scheerer/rgb-light/lights"
)

// stripes returns a one pixel high image with the given pixel colors.
func stripes(colors ...color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, len(colors), 1))
	for x, c := range colors {
		img.SetRGBA(x, 0, c)
	}
	return img
}

var (
	red   = color.RGBA{R: 255, A: 255}
	blue  = color.RGBA{B: 255, A: 255}
	black = color.RGBA{A: 255}
)

func TestAlgorithms(t *testing.T) {
	img := stripes(red, red, blue, black)

	tests := []struct {
		name string
		want lights.Color
	}{
		{name: "AVERAGE", want: lights.Color{Red: 127, Blue: 63}},
		{name: "SQUARED_AVERAGE", want: lights.Color{Red: 180, Blue: 127}},
		{name: "MEDIAN", want: lights.Color{Red: 127}},
		{name: "MODE", want: lights.Color{Red: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Algorithm(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f(img, 1))
		})
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	_, err := Algorithm("BRIGHTEST")
	assert.Error(t, err)
}

func TestPixelGridSize(t *testing.T) {
	img := stripes(red, blue, red, blue)

	assert.Equal(t, lights.Color{Red: 255}, AverageColor(img, 2))
	assert.Equal(t, lights.Color{Red: 127, Blue: 127}, AverageColor(img, 0))
}

func TestEmptyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))

	assert.Equal(t, lights.Black, AverageColor(img, 1))
	assert.Equal(t, lights.Black, SquaredAverageColor(img, 1))
	assert.Equal(t, lights.Black, MedianColor(img, 1))
	assert.Equal(t, lights.Black, ModeColor(img, 1))
}
