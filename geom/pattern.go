package geom

import "math"

// Pattern is a candidate finder or alignment pattern center found during a
// scan line pass. Count is the number of independent scans that have been
// merged into this candidate; a higher count means higher confidence.
//
// The teacher keeps separate FinderPattern/AlignmentPattern types that are
// structurally identical; this module unifies them, since the equivalence
// and merge rules below apply to both verbatim.
type Pattern struct {
	X, Y        float64
	ModuleSize  float64
	Count       int
}

// NewPattern creates a pattern with an initial count of 1.
func NewPattern(x, y, moduleSize float64) Pattern {
	return Pattern{X: x, Y: y, ModuleSize: moduleSize, Count: 1}
}

// Point returns the pattern's center as a Point.
func (p Pattern) Point() Point {
	return Point{p.X, p.Y}
}

// AboutEquals reports whether p and other are close enough to be considered
// the same physical pattern, per the equivalence rule in the data model:
// |Δx| ≤ other.moduleSize, |Δy| ≤ other.moduleSize and
// |ΔmoduleSize| ≤ max(1.0, moduleSize).
func (p Pattern) AboutEquals(moduleSize, x, y float64) bool {
	if math.Abs(y-p.Y) > moduleSize || math.Abs(x-p.X) > moduleSize {
		return false
	}
	diff := math.Abs(moduleSize - p.ModuleSize)
	return diff <= 1.0 || diff <= p.ModuleSize
}

// Combine merges an additional observation into p, producing a count-weighted
// average of the numeric fields and summing the counts.
func (p Pattern) Combine(moduleSize, x, y float64) Pattern {
	n := p.Count + 1
	return Pattern{
		X:          (float64(p.Count)*p.X + x) / float64(n),
		Y:          (float64(p.Count)*p.Y + y) / float64(n),
		ModuleSize: (float64(p.Count)*p.ModuleSize + moduleSize) / float64(n),
		Count:      n,
	}
}
