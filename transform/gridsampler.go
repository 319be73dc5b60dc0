package transform

import (
	"errors"

	"qrscan/bitmap"
	"qrscan/geom"
)

// ErrNotFound is returned when a sampled grid point falls outside (or just
// barely outside, even after nudging) the source image.
var ErrNotFound = errors.New("transform: sample point out of bounds")

// Rectify samples img into a dimension x dimension Bitmap of On/Off cells,
// mapping (topLeft, topRight, bottomRight, bottomLeft) in source image space
// onto the module-space points (3.5, 3.5), (dimension-3.5, 3.5), the
// bottom-right point described below, and (3.5, dimension-3.5): the three
// finder pattern centers plus a fourth corner. bottomRight is either the
// measured alignment pattern center or, when none was found, the
// extrapolated corner topRight-topLeft+bottomLeft; alignmentFound selects
// which of the two source-square coordinates that corresponds to, per the
// rectifier's four-point correspondence.
func Rectify(img *bitmap.Bitmap, topLeft, topRight, bottomRight, bottomLeft geom.Point, dimension int, alignmentFound bool) (*bitmap.Bitmap, error) {
	if dimension <= 0 {
		return nil, ErrNotFound
	}
	dimMinusThree := float64(dimension) - 3.5
	sourceBR := dimMinusThree
	if alignmentFound {
		sourceBR = dimMinusThree - 3.0
	}

	xform := QuadrilateralToQuadrilateral(
		3.5, 3.5, dimMinusThree, 3.5, sourceBR, sourceBR, 3.5, dimMinusThree,
		topLeft.X, topLeft.Y, topRight.X, topRight.Y, bottomRight.X, bottomRight.Y, bottomLeft.X, bottomLeft.Y,
	)
	return sampleGrid(img, dimension, dimension, xform)
}

// sampleGrid walks every output cell center through transform, nudges
// points that land just outside the source image back in bounds, and reads
// the source bitmap's On/Off value into the rectified output.
func sampleGrid(img *bitmap.Bitmap, dimensionX, dimensionY int, transform *PerspectiveTransform) (*bitmap.Bitmap, error) {
	out := bitmap.New(dimensionX, dimensionY)
	points := make([]float64, 2*dimensionX)
	for y := 0; y < dimensionY; y++ {
		iValue := float64(y) + 0.5
		for x := 0; x < len(points); x += 2 {
			points[x] = float64(x/2) + 0.5
			points[x+1] = iValue
		}
		transform.TransformPoints(points)
		if err := checkAndNudgePoints(img, points); err != nil {
			return nil, err
		}
		for x := 0; x < len(points); x += 2 {
			ix := int(points[x])
			iy := int(points[x+1])
			if ix < 0 || ix >= img.Width() || iy < 0 || iy >= img.Height() {
				return nil, ErrNotFound
			}
			cell := bitmap.Off
			if img.IsOn(ix, iy) {
				cell = bitmap.On
			}
			out.Set(x/2, y, cell)
		}
	}
	return out, nil
}

// checkAndNudgePoints checks that transformed points are within image
// bounds, nudging back onto the nearest valid pixel index when a point
// lands exactly one pixel outside (a common rounding artifact at the grid's
// edges), and failing when a point is further out than that.
func checkAndNudgePoints(img *bitmap.Bitmap, points []float64) error {
	width := img.Width()
	height := img.Height()
	maxOffset := len(points) - 1

	nudged := true
	for offset := 0; offset < maxOffset && nudged; offset += 2 {
		x := int(points[offset])
		y := int(points[offset+1])
		if x < -1 || x > width || y < -1 || y > height {
			return ErrNotFound
		}
		nudged = false
		if x == -1 {
			points[offset] = 0
			nudged = true
		} else if x == width {
			points[offset] = float64(width - 1)
			nudged = true
		}
		if y == -1 {
			points[offset+1] = 0
			nudged = true
		} else if y == height {
			points[offset+1] = float64(height - 1)
			nudged = true
		}
	}

	nudged = true
	for offset := len(points) - 2; offset >= 0 && nudged; offset -= 2 {
		x := int(points[offset])
		y := int(points[offset+1])
		if x < -1 || x > width || y < -1 || y > height {
			return ErrNotFound
		}
		nudged = false
		if x == -1 {
			points[offset] = 0
			nudged = true
		} else if x == width {
			points[offset] = float64(width - 1)
			nudged = true
		}
		if y == -1 {
			points[offset+1] = 0
			nudged = true
		} else if y == height {
			points[offset+1] = float64(height - 1)
			nudged = true
		}
	}
	return nil
}
