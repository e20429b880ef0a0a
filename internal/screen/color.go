package screen

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/kbinani/screenshot"

	"github.com/scheerer/rgb-light/lights"
)

// ColorFunc reduces an image to a single color, looking at every
// pixelGridSize-th pixel in both directions.
type ColorFunc func(img *image.RGBA, pixelGridSize int) lights.Color

var algorithms = map[string]ColorFunc{
	"AVERAGE":         AverageColor,
	"SQUARED_AVERAGE": SquaredAverageColor,
	"MEDIAN":          MedianColor,
	"MODE":            ModeColor,
}

// Algorithm returns the ColorFunc registered under name.
func Algorithm(name string) (ColorFunc, error) {
	f, ok := algorithms[name]
	if !ok {
		return nil, fmt.Errorf("unknown color algorithm: %v", name)
	}
	return f, nil
}

// CaptureDisplay takes a screenshot of display n, 0 being the primary display.
func CaptureDisplay(n int) (*image.RGBA, error) {
	if active := screenshot.NumActiveDisplays(); n >= active {
		return nil, fmt.Errorf("display %d not found, %d active", n, active)
	}
	return screenshot.CaptureDisplay(n)
}

// sample calls f with the 8-bit color of every sampled pixel.
func sample(img *image.RGBA, pixelGridSize int, f func(c color.RGBA)) {
	if pixelGridSize < 1 {
		pixelGridSize = 1
	}
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y += pixelGridSize {
		for x := bounds.Min.X; x < bounds.Max.X; x += pixelGridSize {
			f(img.RGBAAt(x, y))
		}
	}
}

func AverageColor(img *image.RGBA, pixelGridSize int) lights.Color {
	var sumR, sumG, sumB, total uint64
	sample(img, pixelGridSize, func(c color.RGBA) {
		total++
		sumR += uint64(c.R)
		sumG += uint64(c.G)
		sumB += uint64(c.B)
	})
	if total == 0 {
		return lights.Black
	}

	return lights.Color{
		Red:   uint8(sumR / total),
		Green: uint8(sumG / total),
		Blue:  uint8(sumB / total),
	}
}

// SquaredAverageColor averages the squares of each channel, which weighs
// bright pixels more than AverageColor does.
func SquaredAverageColor(img *image.RGBA, pixelGridSize int) lights.Color {
	var sumR, sumG, sumB, total uint64
	sample(img, pixelGridSize, func(c color.RGBA) {
		total++
		sumR += uint64(c.R) * uint64(c.R)
		sumG += uint64(c.G) * uint64(c.G)
		sumB += uint64(c.B) * uint64(c.B)
	})
	if total == 0 {
		return lights.Black
	}

	root := func(sum uint64) uint8 {
		return uint8(math.Sqrt(float64(sum) / float64(total)))
	}
	return lights.Color{
		Red:   root(sumR),
		Green: root(sumG),
		Blue:  root(sumB),
	}
}

// MedianColor takes the median of each channel separately.
func MedianColor(img *image.RGBA, pixelGridSize int) lights.Color {
	var reds, greens, blues []uint8
	sample(img, pixelGridSize, func(c color.RGBA) {
		reds = append(reds, c.R)
		greens = append(greens, c.G)
		blues = append(blues, c.B)
	})
	if len(reds) == 0 {
		return lights.Black
	}

	median := func(values []uint8) uint8 {
		slices.Sort(values)
		n := len(values)
		if n%2 == 0 {
			return uint8((int(values[n/2-1]) + int(values[n/2])) / 2)
		}
		return values[n/2]
	}

	return lights.Color{
		Red:   median(reds),
		Green: median(greens),
		Blue:  median(blues),
	}
}

// ModeColor returns the most common sampled color. Ties go to the color seen first.
func ModeColor(img *image.RGBA, pixelGridSize int) lights.Color {
	counts := make(map[lights.Color]int)
	var mode lights.Color
	best := 0
	sample(img, pixelGridSize, func(c color.RGBA) {
		key := lights.Color{Red: c.R, Green: c.G, Blue: c.B}
		counts[key]++
		if counts[key] > best {
			best = counts[key]
			mode = key
		}
	})
	return mode
}
