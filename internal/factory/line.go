// Package factory models the production line of the pixel cat-food demo:
// five quality dimensions, a stepped production run, and the product card a
// completed run yields.
package factory

import "math"

// Dimension identifies one production-quality axis.
type Dimension int

const (
	Recipe Dimension = iota
	Production
	Quality
	Packaging
	Logistics

	// NumDimensions is the count of quality dimensions on the line.
	NumDimensions = 5
)

// Label returns the human-readable name for the dimension.
func (d Dimension) Label() string {
	switch d {
	case Recipe:
		return "Recipe"
	case Production:
		return "Production"
	case Quality:
		return "Quality"
	case Packaging:
		return "Packaging"
	case Logistics:
		return "Logistics"
	default:
		return "Unknown"
	}
}

// Dimensions returns all dimensions in display order.
func Dimensions() [NumDimensions]Dimension {
	return [NumDimensions]Dimension{Recipe, Production, Quality, Packaging, Logistics}
}

// defaultValues holds the factory-fresh slider positions.
var defaultValues = [NumDimensions]int{75, 80, 90, 70, 85}

// Line holds the current slider values, indexed by Dimension.
type Line struct {
	values [NumDimensions]int
}

// NewLine returns a Line with default slider values.
func NewLine() *Line {
	return &Line{values: defaultValues}
}

// Value returns the current value of a dimension.
func (l *Line) Value(d Dimension) int {
	return l.values[d]
}

// Set assigns a dimension, clamping into [0,100]. Returns the stored value.
func (l *Line) Set(d Dimension, v int) int {
	l.values[d] = clamp(v)
	return l.values[d]
}

// Adjust moves a dimension by delta, clamping into [0,100]. Returns the
// stored value.
func (l *Line) Adjust(d Dimension, delta int) int {
	return l.Set(d, l.values[d]+delta)
}

// Reset restores all dimensions to their defaults.
func (l *Line) Reset() {
	l.values = defaultValues
}

// Overall returns the rounded mean of the five dimensions.
func (l *Line) Overall() int {
	sum := 0
	for _, v := range l.values {
		sum += v
	}
	return int(math.Round(float64(sum) / NumDimensions))
}

// Snapshot returns a copy of the current values.
func (l *Line) Snapshot() [NumDimensions]int {
	return l.values
}

// Rating maps a score to its quality word.
func Rating(score int) string {
	switch {
	case score >= 90:
		return "outstanding"
	case score >= 80:
		return "excellent"
	case score >= 65:
		return "solid"
	case score >= 45:
		return "uneven"
	default:
		return "rough"
	}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
