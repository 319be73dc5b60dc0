package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrscan/bitmap"
	"qrscan/geom"
)

// axisAlignedSymbol draws an axis-aligned checkerboard-free square of
// dimension modules, each modulePx pixels wide, on a white canvas, with the
// cell at module (mx, my) set On iff on(mx, my).
func axisAlignedSymbol(dimension, modulePx int, on func(mx, my int) bool) *bitmap.Bitmap {
	size := dimension * modulePx
	b := bitmap.New(size, size)
	b.Rect(0, 0, size, size, bitmap.Off)
	for my := 0; my < dimension; my++ {
		for mx := 0; mx < dimension; mx++ {
			if on(mx, my) {
				b.Rect(mx*modulePx, my*modulePx, modulePx, modulePx, bitmap.On)
			}
		}
	}
	return b
}

func TestRectifyAxisAlignedIdentity(t *testing.T) {
	const dimension = 21
	const modulePx = 4

	on := func(mx, my int) bool { return (mx+my)%3 == 0 }
	img := axisAlignedSymbol(dimension, modulePx, on)

	// Finder pattern centers sit 3 modules in from each edge; Rectify's
	// target square coordinates (3.5 .. dimension-3.5) are pixel centers of
	// those module positions, not the symbol's outer corners.
	center := func(mx, my int) geom.Point {
		return geom.Point{
			X: float64(mx*modulePx) + float64(modulePx)/2.0,
			Y: float64(my*modulePx) + float64(modulePx)/2.0,
		}
	}
	topLeft := center(3, 3)
	topRight := center(dimension-4, 3)
	bottomLeft := center(3, dimension-4)
	bottomRight := center(dimension-4, dimension-4)

	rectified, err := Rectify(img, topLeft, topRight, bottomRight, bottomLeft, dimension, false)
	require.NoError(t, err)

	for my := 0; my < dimension; my++ {
		for mx := 0; mx < dimension; mx++ {
			assert.Equal(t, on(mx, my), rectified.IsOn(mx, my), "module (%d,%d)", mx, my)
		}
	}
}

func TestRectifyFailsOnDegenerateDimension(t *testing.T) {
	img := bitmap.New(10, 10)
	_, err := Rectify(img, geom.Point{}, geom.Point{X: 1}, geom.Point{X: 1, Y: 1}, geom.Point{Y: 1}, 0, false)
	assert.Error(t, err)
}
