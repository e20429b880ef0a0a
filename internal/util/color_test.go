package util

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
)

func TestRgbToHsv(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		h, s, v float64
	}{
		{name: "black", r: 0, g: 0, b: 0, h: 0, s: 0, v: 0},
		{name: "white", r: 255, g: 255, b: 255, h: 0, s: 0, v: 1},
		{name: "grey", r: 128, g: 128, b: 128, h: 0, s: 0, v: 128.0 / 255},
		{name: "red", r: 255, g: 0, b: 0, h: 0, s: 1, v: 1},
		{name: "green", r: 0, g: 255, b: 0, h: 1.0 / 3, s: 1, v: 1},
		{name: "blue", r: 0, g: 0, b: 255, h: 2.0 / 3, s: 1, v: 1},
		{name: "yellow", r: 255, g: 255, b: 0, h: 1.0 / 6, s: 1, v: 1},
		{name: "cyan", r: 0, g: 255, b: 255, h: 0.5, s: 1, v: 1},
		{name: "magenta", r: 255, g: 0, b: 255, h: 5.0 / 6, s: 1, v: 1},
		{name: "rose wraps below zero", r: 255, g: 0, b: 128, h: 1 - (128.0/255)/6, s: 1, v: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := RgbToHsv(tt.r, tt.g, tt.b)
			assert.InDelta(t, tt.h, h, 1e-9)
			assert.InDelta(t, tt.s, s, 1e-9)
			assert.InDelta(t, tt.v, v, 1e-9)
			assert.GreaterOrEqual(t, h, 0.0)
			assert.Less(t, h, 1.0)
		})
	}
}

func TestRgbToHsvMatchesColorful(t *testing.T) {
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 51 {
			for b := 0; b < 256; b += 85 {
				h, s, v := RgbToHsv(uint8(r), uint8(g), uint8(b))
				ch, cs, cv := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hsv()

				assert.InDelta(t, cs, s, 1e-9, "saturation for %d,%d,%d", r, g, b)
				assert.InDelta(t, cv, v, 1e-9, "value for %d,%d,%d", r, g, b)
				if cs > 0 {
					assert.InDelta(t, 0, hueDistance(ch/360, h), 1e-9, "hue for %d,%d,%d", r, g, b)
				}
			}
		}
	}
}

func TestRgbToHsvAchromaticIsNotNaN(t *testing.T) {
	for i := 0; i < 256; i++ {
		h, s, _ := RgbToHsv(uint8(i), uint8(i), uint8(i))
		assert.False(t, math.IsNaN(h))
		assert.Equal(t, 0.0, h)
		assert.Equal(t, 0.0, s)
	}
}

func TestHsvToRgb(t *testing.T) {
	tests := []struct {
		name      string
		h, s, v   float64
		normalize bool
		r, g, b   uint8
	}{
		{name: "red", h: 0, s: 1, v: 1, r: 255, g: 0, b: 0},
		{name: "green", h: 1.0 / 3, s: 1, v: 1, r: 0, g: 255, b: 0},
		{name: "blue", h: 2.0 / 3, s: 1, v: 1, r: 0, g: 0, b: 255},
		{name: "white", h: 0.42, s: 0, v: 1, r: 255, g: 255, b: 255},
		{name: "half red", h: 0, s: 1, v: 0.5, r: 128, g: 0, b: 0},
		{name: "cyan", h: 0.5, s: 1, v: 1, r: 0, g: 255, b: 255},
		{name: "normalized cyan", h: 0.5, s: 1, v: 1, normalize: true, r: 0, g: 128, b: 128},
		{name: "normalized primary untouched", h: 2.0 / 3, s: 1, v: 1, normalize: true, r: 0, g: 0, b: 255},
		{name: "normalized white", h: 0, s: 0, v: 0.6, normalize: true, r: 51, g: 51, b: 51},
		{name: "clamps saturation and value", h: 0.5, s: 2, v: -1, r: 0, g: 0, b: 0},
		{name: "value above one", h: 0, s: 1, v: 7, r: 255, g: 0, b: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := HsvToRgb(tt.h, tt.s, tt.v, tt.normalize)
			assert.Equal(t, [3]uint8{tt.r, tt.g, tt.b}, [3]uint8{r, g, b})
		})
	}
}

func TestHsvToRgbNormalizationUsesOriginalSum(t *testing.T) {
	// Orange-ish: r=1, g=0.5, b=0 before normalization; sum 1.5.
	r, g, b := HsvToRgb(1.0/12, 1, 1, true)
	assert.Equal(t, uint8(170), r)
	assert.Equal(t, uint8(85), g)
	assert.Equal(t, uint8(0), b)
}

func TestHsvToRgbHueWraps(t *testing.T) {
	for _, pair := range [][2]float64{{1.25, 0.25}, {-0.25, 0.75}, {3, 0}, {-1.5, 0.5}} {
		r1, g1, b1 := HsvToRgb(pair[0], 1, 1, false)
		r2, g2, b2 := HsvToRgb(pair[1], 1, 1, false)
		assert.Equal(t, [3]uint8{r2, g2, b2}, [3]uint8{r1, g1, b1}, "hue %v", pair[0])
	}
}

func TestRoundTrip(t *testing.T) {
	for r := 0; r < 256; r += 5 {
		for g := 0; g < 256; g += 5 {
			for b := 0; b < 256; b += 5 {
				h, s, v := RgbToHsv(uint8(r), uint8(g), uint8(b))
				r2, g2, b2 := HsvToRgb(h, s, v, false)
				assert.InDelta(t, r, int(r2), 1, "red for %d,%d,%d", r, g, b)
				assert.InDelta(t, g, int(g2), 1, "green for %d,%d,%d", r, g, b)
				assert.InDelta(t, b, int(b2), 1, "blue for %d,%d,%d", r, g, b)
			}
		}
	}
}

func TestWrapHue(t *testing.T) {
	tests := map[float64]float64{
		0:            0,
		0.5:          0.5,
		1:            0,
		1.25:         0.25,
		-0.25:        0.75,
		-1:           0,
		-1e-18:       0,
		math.NaN():   0,
		math.Inf(1):  0,
		math.Inf(-1): 0,
	}
	for in, want := range tests {
		got := WrapHue(in)
		assert.InDelta(t, want, got, 1e-12, "WrapHue(%v)", in)
		assert.Less(t, got, 1.0)
	}
}

func TestRgbToHsb(t *testing.T) {
	h, s, b := RgbToHsb(0, 0, 255)
	assert.Equal(t, uint16(43690), h)
	assert.Equal(t, uint16(0xFFFF), s)
	assert.Equal(t, uint16(0xFFFF), b)
}

func hueDistance(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 1-d)
}
