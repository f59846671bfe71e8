// Package render draws the year-progress reveal over the source image.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"
)

// DefaultMaskColor matches the background of the stock banana image.
var DefaultMaskColor = color.RGBA{R: 246, G: 246, B: 246, A: 255}

// RevealWidth returns how many columns of a width-wide image are revealed at percent.
// percent is clamped to [0,100].
func RevealWidth(width, percent int) int {
	if percent <= 0 {
		return 0
	}
	if percent >= 100 {
		return width
	}
	return percent * width / 100
}

// Reveal copies src and covers every column at or right of the reveal edge
// with an opaque mask.
func Reveal(src image.Image, percent int, mask color.Color) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	edge := RevealWidth(b.Dx(), percent)
	if edge < b.Dx() {
		r, g, bl, _ := mask.RGBA()
		opaque := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8), A: 255}
		hidden := image.Rect(edge, 0, b.Dx(), b.Dy())
		draw.Draw(dst, hidden, image.NewUniform(opaque), image.Point{}, draw.Src)
	}
	return dst
}

// ParseHexColor parses "#rrggbb" or "rrggbb" into an opaque colour.
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("mask colour %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("mask colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
