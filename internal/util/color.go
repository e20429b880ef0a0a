package util

import (
	"math"
)

// RgbToHsv converts 8-bit RGB to HSV with every component in [0, 1].
// Hue is 0 for achromatic colors.
func RgbToHsv(r, g, b uint8) (float64, float64, float64) {
	red := float64(r) / 255.0
	green := float64(g) / 255.0
	blue := float64(b) / 255.0

	max := math.Max(red, math.Max(green, blue))
	min := math.Min(red, math.Min(green, blue))
	chroma := max - min

	var h, s float64
	v := max

	if v > 0 {
		s = chroma / v
	}

	if chroma == 0 {
		return 0, s, v
	}

	switch max {
	case red:
		h = ((green - blue) / chroma) / 6
	case green:
		h = (2 + (blue-red)/chroma) / 6
	default:
		h = (4 + (red-green)/chroma) / 6
	}

	return WrapHue(h), s, v
}

// HsvToRgb converts HSV to 8-bit RGB using the alternative HSV to RGB formula.
// Saturation and value are clamped to [0, 1] and hue wraps around.
//
// With normalizeMixedBrightness set, mixed hues are scaled down so the sum of
// the channels never exceeds v, which keeps e.g. cyan from looking brighter
// than blue.
func HsvToRgb(h, s, v float64, normalizeMixedBrightness bool) (uint8, uint8, uint8) {
	h = WrapHue(h)
	s = Clamp(s, 0, 1)
	v = Clamp(v, 0, 1)

	rf := hsvChannel(5, h, s, v)
	gf := hsvChannel(3, h, s, v)
	bf := hsvChannel(1, h, s, v)

	if sum := rf + gf + bf; normalizeMixedBrightness && sum > v {
		rf, gf, bf = v*rf/sum, v*gf/sum, v*bf/sum
	}

	return To255(rf), To255(gf), To255(bf)
}

func hsvChannel(offset, h, s, v float64) float64 {
	k := math.Mod(offset+h*6, 6)
	return v - v*s*Clamp(math.Min(k, 4-k), 0, 1)
}

// WrapHue maps any hue onto the circle [0, 1).
func WrapHue(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0
	}
	h -= math.Trunc(h)
	if h < 0 {
		h += 1
	}
	// -epsilon + 1 rounds up to exactly 1
	if h >= 1 {
		h = 0
	}
	return h
}

func Clamp(value, min, max float64) float64 {
	if math.IsNaN(value) {
		return min
	}
	return math.Min(max, math.Max(min, value))
}

// To255 scales a [0, 1] fraction to the nearest 8-bit intensity.
func To255(f float64) uint8 {
	return uint8(math.Round(Clamp(f, 0, 1) * 255))
}

// RgbToHsb converts RGB to the 16-bit HSB scale used by LIFX bulbs.
func RgbToHsb(r, g, b uint8) (uint16, uint16, uint16) {
	h, s, v := RgbToHsv(r, g, b)

	hue := uint16(math.Round(h * 0xFFFF))
	saturation := uint16(math.Round(s * 0xFFFF))
	brightness := uint16(math.Round(v * 0xFFFF))

	return hue, saturation, brightness
}
