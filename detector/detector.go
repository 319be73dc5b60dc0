// Package detector implements C8: finding the three finder patterns and the
// (optional) alignment pattern in a binarized image, and deriving the
// symbol's module size and dimension from them.
//
// Grounded on the teacher's qrcode/detector/detector.go, with its separate
// FinderPattern/AlignmentPattern structs unified into geom.Pattern and
// bitutil.BitMatrix swapped for the ternary bitmap.Bitmap. The triple
// selection at the end of findFinderPatterns is rewritten to the
// right-isoceles-triangle scoring and 1.4x module-size ratio cutoff the data
// model calls for, replacing the teacher's simpler top-3-by-count heuristic.
package detector

import (
	"errors"
	"math"
	"sort"

	"qrscan/bitmap"
	"qrscan/geom"
	"qrscan/qrtables"
)

// ErrFinderNotFound is returned when fewer than three finder pattern
// candidates survive scanning, or no triple passes the shape/size filters.
var ErrFinderNotFound = errors.New("detector: finder pattern triple not found")

// ErrModuleSizeTooSmall is returned when the estimated module size of the
// winning triple is below one pixel, making every downstream measurement
// meaningless.
var ErrModuleSizeTooSmall = errors.New("detector: estimated module size below 1.0")

// ErrInvalidDimension is returned when the triple's snapped dimension does
// not correspond to a QR version in [1, 40].
var ErrInvalidDimension = errors.New("detector: dimension is not a valid symbol size")

// Result holds everything the rectifier (transform package) needs to sample
// the symbol: the three finder centers, the alignment pattern if one was
// found, and the derived module size and dimension.
type Result struct {
	TopLeft, TopRight, BottomLeft geom.Pattern
	Alignment                     *geom.Pattern
	ModuleSize                    float64
	Dimension                     int
}

// Detect locates the finder triple and, for versions that have one, the
// bottom-right alignment pattern, in img.
func Detect(img *bitmap.Bitmap) (*Result, error) {
	candidates, err := findFinderPatterns(img)
	if err != nil {
		return nil, err
	}

	topLeft, topRight, bottomLeft, ok := selectBestPatterns(candidates)
	if !ok {
		return nil, ErrFinderNotFound
	}

	moduleSize := calculateModuleSize(img, topLeft, topRight, bottomLeft)
	if moduleSize < 1.0 {
		return nil, ErrModuleSizeTooSmall
	}

	dimension, err := computeDimension(topLeft, topRight, bottomLeft, moduleSize)
	if err != nil {
		return nil, err
	}
	version, ok := qrtables.ProvisionalVersion(dimension)
	if !ok {
		return nil, ErrInvalidDimension
	}

	result := &Result{
		TopLeft:     topLeft,
		TopRight:    topRight,
		BottomLeft:  bottomLeft,
		ModuleSize:  moduleSize,
		Dimension:   dimension,
	}

	if centers := qrtables.AlignmentPositions(version); len(centers) > 0 {
		bottomRightX := topRight.X - topLeft.X + bottomLeft.X
		bottomRightY := topRight.Y - topLeft.Y + bottomLeft.Y
		correctionToTopLeft := 1.0 - 3.0/float64(dimension-7)
		estX := int(topLeft.X + correctionToTopLeft*(bottomRightX-topLeft.X))
		estY := int(topLeft.Y + correctionToTopLeft*(bottomRightY-topLeft.Y))

		for _, factor := range []float64{4, 8, 16} {
			if ap := findAlignmentInRegion(img, moduleSize, estX, estY, factor); ap != nil {
				result.Alignment = ap
				break
			}
		}
	}

	return result, nil
}

// computeDimension derives the symbol's module count from the triple's
// spacing, snapping to the nearest dimension congruent to 1 mod 4.
func computeDimension(topLeft, topRight, bottomLeft geom.Pattern, moduleSize float64) (int, error) {
	tltrDist := topLeft.Point().Distance(topRight.Point())
	tlblDist := topLeft.Point().Distance(bottomLeft.Point())
	dimension := int(math.Round((tltrDist/moduleSize+tlblDist/moduleSize)/2.0)) + 7
	switch dimension % 4 {
	case 0:
		dimension++
	case 2:
		dimension--
	case 3:
		dimension -= 2
	}
	return dimension, nil
}

// calculateModuleSize averages the black-white-black run estimate along the
// top-left/top-right and top-left/bottom-left legs.
func calculateModuleSize(img *bitmap.Bitmap, topLeft, topRight, bottomLeft geom.Pattern) float64 {
	return (moduleSizeOneWay(img, topLeft, topRight) + moduleSizeOneWay(img, topLeft, bottomLeft)) / 2.0
}

func moduleSizeOneWay(img *bitmap.Bitmap, pattern, other geom.Pattern) float64 {
	est1 := sizeOfBlackWhiteBlackRunBothWays(img, int(pattern.X), int(pattern.Y), int(other.X), int(other.Y))
	est2 := sizeOfBlackWhiteBlackRunBothWays(img, int(other.X), int(other.Y), int(pattern.X), int(pattern.Y))
	if math.IsNaN(est1) {
		return est2 / 7.0
	}
	if math.IsNaN(est2) {
		return est1 / 7.0
	}
	return (est1 + est2) / 14.0
}

func sizeOfBlackWhiteBlackRunBothWays(img *bitmap.Bitmap, fromX, fromY, toX, toY int) float64 {
	result := sizeOfBlackWhiteBlackRun(img, fromX, fromY, toX, toY)

	scale := 1.0
	otherToX := fromX - (toX - fromX)
	if otherToX < 0 {
		scale = float64(fromX) / float64(fromX-otherToX)
		otherToX = 0
	} else if otherToX >= img.Width() {
		scale = float64(img.Width()-1-fromX) / float64(otherToX-fromX)
		otherToX = img.Width() - 1
	}
	otherToY := int(float64(fromY) - float64(toY-fromY)*scale)

	scale = 1.0
	if otherToY < 0 {
		scale = float64(fromY) / float64(fromY-otherToY)
		otherToY = 0
	} else if otherToY >= img.Height() {
		scale = float64(img.Height()-1-fromY) / float64(otherToY-fromY)
		otherToY = img.Height() - 1
	}
	otherToX = int(float64(fromX) + float64(otherToX-fromX)*scale)

	result += sizeOfBlackWhiteBlackRun(img, fromX, fromY, otherToX, otherToY)
	return result - 1.0
}

func sizeOfBlackWhiteBlackRun(img *bitmap.Bitmap, fromX, fromY, toX, toY int) float64 {
	steep := false
	dx := abs(toX - fromX)
	dy := abs(toY - fromY)
	if dy > dx {
		steep = true
		fromX, fromY = fromY, fromX
		toX, toY = toY, toX
		dx, dy = dy, dx
	}

	xstep := 1
	if fromX > toX {
		xstep = -1
	}
	ystep := 1
	if fromY > toY {
		ystep = -1
	}

	state := 0
	xLimit := toX + xstep
	e := -dx
	for x := fromX; x != xLimit; x += xstep {
		realX := x
		realY := fromY + (x-fromX)*dy/dx*ystep
		if steep {
			realX = fromY + (x-fromX)*dy/dx*ystep
			realY = x
		}

		if realX < 0 || realX >= img.Width() || realY < 0 || realY >= img.Height() {
			break
		}

		if state == 1 == img.IsOn(realX, realY) {
			if state == 2 {
				return math.Sqrt(float64((x-fromX)*(x-fromX)) + float64(((x-fromX)*dy/dx)*((x-fromX)*dy/dx)))
			}
			state++
		}
		e += 2 * dy
		if e > 0 {
			if fromY == toY {
				break
			}
			fromY += ystep
			e -= 2 * dx
		}
	}

	if state == 2 {
		return math.Sqrt(float64((toX-fromX+xstep)*(toX-fromX+xstep)) + float64((toY-fromY)*(toY-fromY)))
	}
	return math.NaN()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// findAlignmentInRegion bounds a search window of half-width
// allowanceFactor*moduleSize around the estimated center and looks for a
// 1:1:1 light/dark/light run inside it: the pattern's dark center module
// between the two sides of its light ring.
func findAlignmentInRegion(img *bitmap.Bitmap, moduleSize float64, estX, estY int, allowanceFactor float64) *geom.Pattern {
	allowance := int(allowanceFactor * moduleSize)
	left := max(0, estX-allowance)
	top := max(0, estY-allowance)
	right := min(img.Width()-1, estX+allowance)
	bottom := min(img.Height()-1, estY+allowance)

	width := right - left
	height := bottom - top
	if width < 0 || height < 0 {
		return nil
	}
	return findAlignmentPattern(img, left, top, width, height, moduleSize)
}

func findAlignmentPattern(img *bitmap.Bitmap, startX, startY, width, height int, moduleSize float64) *geom.Pattern {
	middleY := startY + height/2
	for dy := 0; dy < height; dy++ {
		y := middleY
		if dy%2 == 0 {
			y += (dy + 1) / 2
		} else {
			y -= (dy + 1) / 2
		}
		if y < startY || y >= startY+height {
			continue
		}

		stateCount := [3]int{}
		state := 0
		for x := startX; x < startX+width; x++ {
			if !img.IsOn(x, y) {
				if state == 1 {
					state = 2
				}
				stateCount[state]++
			} else if state == 1 {
				stateCount[1]++
			} else {
				if state == 2 {
					if foundAlignmentPattern(stateCount, moduleSize) {
						centerX := float64(x) - float64(stateCount[2]) - float64(stateCount[1])/2.0
						centerY := crossCheckVerticalAlignment(img, int(centerX), y, 2*stateCount[1], moduleSize)
						if !math.IsNaN(centerY) {
							p := geom.NewPattern(centerX, centerY, moduleSize)
							return &p
						}
					}
					stateCount[0] = stateCount[2]
					stateCount[1] = 1
					stateCount[2] = 0
					state = 1
				} else {
					state++
					stateCount[state]++
				}
			}
		}
		if state == 2 && foundAlignmentPattern(stateCount, moduleSize) {
			centerX := float64(startX+width) - float64(stateCount[2]) - float64(stateCount[1])/2.0
			centerY := crossCheckVerticalAlignment(img, int(centerX), y, 2*stateCount[1], moduleSize)
			if !math.IsNaN(centerY) {
				p := geom.NewPattern(centerX, centerY, moduleSize)
				return &p
			}
		}
	}
	return nil
}

func foundAlignmentPattern(stateCount [3]int, moduleSize float64) bool {
	maxVariance := moduleSize / 2.0
	for _, count := range stateCount {
		if math.Abs(float64(count)-moduleSize) >= maxVariance {
			return false
		}
	}
	return true
}

func crossCheckVerticalAlignment(img *bitmap.Bitmap, centerX, startY, maxCount int, moduleSize float64) float64 {
	maxY := img.Height()
	stateCount := [3]int{}

	y := startY
	for y >= 0 && img.IsOn(centerX, y) && stateCount[1] <= maxCount {
		stateCount[1]++
		y--
	}
	if y < 0 || stateCount[1] > maxCount {
		return math.NaN()
	}
	for y >= 0 && !img.IsOn(centerX, y) && stateCount[0] <= maxCount {
		stateCount[0]++
		y--
	}
	if stateCount[0] > maxCount {
		return math.NaN()
	}

	y = startY + 1
	for y < maxY && img.IsOn(centerX, y) && stateCount[1] <= maxCount {
		stateCount[1]++
		y++
	}
	if y == maxY || stateCount[1] > maxCount {
		return math.NaN()
	}
	for y < maxY && !img.IsOn(centerX, y) && stateCount[2] <= maxCount {
		stateCount[2]++
		y++
	}
	if stateCount[2] > maxCount {
		return math.NaN()
	}

	total := stateCount[0] + stateCount[1] + stateCount[2]
	if 5*abs(total-int(moduleSize*3)) >= int(moduleSize*3) {
		return math.NaN()
	}
	return float64(y-stateCount[2]) - float64(stateCount[1])/2.0
}

// findFinderPatterns scans rows looking for 1:1:3:1:1 on/off runs, merging
// matches into a candidate list by geom.Pattern equivalence.
func findFinderPatterns(img *bitmap.Bitmap) ([]geom.Pattern, error) {
	height := img.Height()
	width := img.Width()

	skip := (3 * height) / (4 * 97)
	if skip < 3 {
		skip = 3
	}

	var candidates []geom.Pattern

	for y := skip - 1; y < height; y += skip {
		stateCount := [5]int{}
		state := 0
		for x := 0; x < width; x++ {
			if img.IsOn(x, y) {
				if state&1 == 1 {
					state++
				}
				stateCount[state]++
			} else {
				if state&1 == 0 {
					if state == 4 {
						if foundFinderPattern(stateCount) {
							candidates, _ = handlePossibleCenter(img, candidates, stateCount, y, x)
						}
						stateCount[0] = stateCount[2]
						stateCount[1] = stateCount[3]
						stateCount[2] = stateCount[4]
						stateCount[3] = 1
						stateCount[4] = 0
						state = 3
					} else {
						state++
						stateCount[state]++
					}
				} else {
					stateCount[state]++
				}
			}
		}
		if state == 4 && foundFinderPattern(stateCount) {
			candidates, _ = handlePossibleCenter(img, candidates, stateCount, y, width)
		}
	}

	if len(candidates) < 3 {
		return nil, ErrFinderNotFound
	}
	return candidates, nil
}

func foundFinderPattern(stateCount [5]int) bool {
	total := 0
	for i := 0; i < 5; i++ {
		if stateCount[i] == 0 {
			return false
		}
		total += stateCount[i]
	}
	if total < 7 {
		return false
	}
	moduleSize := float64(total) / 7.0
	maxVariance := moduleSize / 2.0
	return math.Abs(moduleSize-float64(stateCount[0])) < maxVariance &&
		math.Abs(moduleSize-float64(stateCount[1])) < maxVariance &&
		math.Abs(3*moduleSize-float64(stateCount[2])) < 3*maxVariance &&
		math.Abs(moduleSize-float64(stateCount[3])) < maxVariance &&
		math.Abs(moduleSize-float64(stateCount[4])) < maxVariance
}

func handlePossibleCenter(img *bitmap.Bitmap, candidates []geom.Pattern, stateCount [5]int, i, j int) ([]geom.Pattern, bool) {
	total := stateCount[0] + stateCount[1] + stateCount[2] + stateCount[3] + stateCount[4]
	centerJ := float64(j) - float64(stateCount[4]+stateCount[3]) - float64(stateCount[2])/2.0
	centerI := crossCheckVerticalFinder(img, i, int(centerJ), stateCount[2], total)
	if math.IsNaN(centerI) {
		return candidates, false
	}

	estModuleSize := float64(total) / 7.0
	for idx, c := range candidates {
		if c.AboutEquals(estModuleSize, centerJ, centerI) {
			candidates[idx] = c.Combine(estModuleSize, centerJ, centerI)
			return candidates, true
		}
	}
	return append(candidates, geom.NewPattern(centerJ, centerI, estModuleSize)), false
}

func crossCheckVerticalFinder(img *bitmap.Bitmap, startI, centerJ, maxCount, originalTotal int) float64 {
	maxI := img.Height()
	stateCount := [5]int{}

	i := startI
	for i >= 0 && img.IsOn(centerJ, i) {
		stateCount[2]++
		i--
	}
	if i < 0 {
		return math.NaN()
	}
	for i >= 0 && !img.IsOn(centerJ, i) && stateCount[1] <= maxCount {
		stateCount[1]++
		i--
	}
	if i < 0 || stateCount[1] > maxCount {
		return math.NaN()
	}
	for i >= 0 && img.IsOn(centerJ, i) && stateCount[0] <= maxCount {
		stateCount[0]++
		i--
	}
	if stateCount[0] > maxCount {
		return math.NaN()
	}

	i = startI + 1
	for i < maxI && img.IsOn(centerJ, i) {
		stateCount[2]++
		i++
	}
	if i == maxI {
		return math.NaN()
	}
	for i < maxI && !img.IsOn(centerJ, i) && stateCount[3] <= maxCount {
		stateCount[3]++
		i++
	}
	if i == maxI || stateCount[3] > maxCount {
		return math.NaN()
	}
	for i < maxI && img.IsOn(centerJ, i) && stateCount[4] <= maxCount {
		stateCount[4]++
		i++
	}
	if stateCount[4] > maxCount {
		return math.NaN()
	}

	totalNew := stateCount[0] + stateCount[1] + stateCount[2] + stateCount[3] + stateCount[4]
	if 5*abs(totalNew-originalTotal) >= 2*originalTotal {
		return math.NaN()
	}

	if foundFinderPattern(stateCount) {
		return float64(i-stateCount[4]-stateCount[3]) - float64(stateCount[2])/2.0
	}
	return math.NaN()
}

// selectBestPatterns picks, among all candidate triples, the one whose
// squared side lengths a<=b<=c minimize |c-2b|+|c-2a| (closest to a right
// isoceles triangle), rejecting any triple whose largest module size
// exceeds its smallest by more than 1.4x. It returns the triple assigned to
// (topLeft, topRight, bottomLeft) roles.
func selectBestPatterns(candidates []geom.Pattern) (topLeft, topRight, bottomLeft geom.Pattern, ok bool) {
	if len(candidates) < 3 {
		return geom.Pattern{}, geom.Pattern{}, geom.Pattern{}, false
	}

	bestScore := math.Inf(1)
	var bestI, bestJ, bestK int
	found := false

	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			for k := j + 1; k < len(candidates); k++ {
				p1, p2, p3 := candidates[i], candidates[j], candidates[k]
				minMod := math.Min(p1.ModuleSize, math.Min(p2.ModuleSize, p3.ModuleSize))
				maxMod := math.Max(p1.ModuleSize, math.Max(p2.ModuleSize, p3.ModuleSize))
				if maxMod > minMod*1.4 {
					continue
				}

				sides := []float64{
					p1.Point().DistanceSquared(p2.Point()),
					p2.Point().DistanceSquared(p3.Point()),
					p1.Point().DistanceSquared(p3.Point()),
				}
				sort.Float64s(sides)
				a, b, c := sides[0], sides[1], sides[2]
				score := math.Abs(c-2*b) + math.Abs(c-2*a)
				if score < bestScore {
					bestScore = score
					bestI, bestJ, bestK = i, j, k
					found = true
				}
			}
		}
	}

	if !found {
		return geom.Pattern{}, geom.Pattern{}, geom.Pattern{}, false
	}
	return orderFinderPatterns(candidates[bestI], candidates[bestJ], candidates[bestK])
}

// orderFinderPatterns assigns roles within a winning triple: the vertex
// opposite the longest side is top-left, and the remaining two are oriented
// so that (topRight-topLeft) x (bottomLeft-topLeft) is non-negative.
func orderFinderPatterns(p1, p2, p3 geom.Pattern) (topLeft, topRight, bottomLeft geom.Pattern, ok bool) {
	d12 := p1.Point().Distance(p2.Point())
	d23 := p2.Point().Distance(p3.Point())
	d13 := p1.Point().Distance(p3.Point())

	var a, b, c geom.Pattern
	switch {
	case d23 >= d12 && d23 >= d13:
		a, b, c = p1, p2, p3
	case d13 >= d12 && d13 >= d23:
		a, b, c = p2, p1, p3
	default:
		a, b, c = p3, p1, p2
	}

	if geom.CrossProductZ(a.Point(), b.Point(), c.Point()) < 0 {
		b, c = c, b
	}
	return a, b, c, true
}
