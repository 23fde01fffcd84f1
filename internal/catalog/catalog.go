// Package catalog holds the standard cold-formed steel member tables used by
// the lipped channel template: sheet thicknesses, web depths and flange
// widths. All dimensions are in inches.
package catalog

import (
	"fmt"
	"math"
	"slices"
)

// Gauge is a standard sheet thickness.
type Gauge struct {
	Mils         int     // designation thickness (1/1000 in)
	Thickness    float64 // design thickness
	InsideRadius float64 // inside bend radius
}

// Gauges lists the available sheet thicknesses, thinnest first.
var Gauges = []Gauge{
	{Mils: 18, Thickness: 0.0188, InsideRadius: 0.0844},
	{Mils: 27, Thickness: 0.0283, InsideRadius: 0.0796},
	{Mils: 30, Thickness: 0.0312, InsideRadius: 0.0782},
	{Mils: 33, Thickness: 0.0346, InsideRadius: 0.0764},
	{Mils: 43, Thickness: 0.0451, InsideRadius: 0.0712},
	{Mils: 54, Thickness: 0.0566, InsideRadius: 0.0849},
	{Mils: 68, Thickness: 0.0713, InsideRadius: 0.1069},
	{Mils: 97, Thickness: 0.1017, InsideRadius: 0.1525},
	{Mils: 118, Thickness: 0.1242, InsideRadius: 0.1863},
}

// WebDepths lists the available web depths.
var WebDepths = []float64{1.625, 2.5, 3.5, 3.625, 4, 5.5, 6, 8, 10, 12, 14}

// Flange is a flange width with its stiffening lip.
type Flange struct {
	Width float64
	Lip   float64
}

// Flanges lists the available flange widths.
var Flanges = []Flange{
	{Width: 1.25, Lip: 3.0 / 16},
	{Width: 1.375, Lip: 0.375},
	{Width: 1.625, Lip: 0.5},
	{Width: 2, Lip: 0.625},
	{Width: 2.5, Lip: 0.625},
	{Width: 3, Lip: 0.625},
	{Width: 3.5, Lip: 1},
}

// tolerance for matching a dimension against a table entry
const tolerance = 1e-9

// LookupError represents a dimension that is not in a catalog table.
type LookupError struct {
	Table string
	Value float64
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%g is not a standard %s", e.Value, e.Table)
}

func near(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

// GaugeForMils finds the gauge with the given mil designation.
func GaugeForMils(mils int) (Gauge, error) {
	i := slices.IndexFunc(Gauges, func(g Gauge) bool { return g.Mils == mils })
	if i < 0 {
		return Gauge{}, &LookupError{Table: "mil thickness", Value: float64(mils)}
	}
	return Gauges[i], nil
}

// GaugeForThickness finds the gauge with the given design thickness.
func GaugeForThickness(t float64) (Gauge, error) {
	i := slices.IndexFunc(Gauges, func(g Gauge) bool { return near(g.Thickness, t) })
	if i < 0 {
		return Gauge{}, &LookupError{Table: "thickness", Value: t}
	}
	return Gauges[i], nil
}

// InsideRadius returns the inside bend radius for a design thickness.
func InsideRadius(t float64) (float64, error) {
	g, err := GaugeForThickness(t)
	if err != nil {
		return 0, err
	}
	return g.InsideRadius, nil
}

// CenterlineRadius is the bend radius measured to the wall centerline.
func CenterlineRadius(t float64) (float64, error) {
	r, err := InsideRadius(t)
	if err != nil {
		return 0, err
	}
	return r + t/2, nil
}

// LipFitsBend reports whether a 90 degree bend of the centerline radius for
// t leaves a straight part on a lip. Out-to-out lips lose t/2 to the
// flange, so they are checked shorter.
func LipFitsBend(t, lip float64, outToOut bool) (bool, error) {
	r, err := CenterlineRadius(t)
	if err != nil {
		return false, err
	}
	if outToOut {
		lip -= t / 2
	}
	return r < lip, nil
}

// FlangeFor finds the flange table entry for a width.
func FlangeFor(width float64) (Flange, error) {
	i := slices.IndexFunc(Flanges, func(f Flange) bool { return near(f.Width, width) })
	if i < 0 {
		return Flange{}, &LookupError{Table: "flange width", Value: width}
	}
	return Flanges[i], nil
}

// LipLength returns the lip paired with a flange width.
func LipLength(width float64) (float64, error) {
	f, err := FlangeFor(width)
	if err != nil {
		return 0, err
	}
	return f.Lip, nil
}

// CheckWebDepth reports whether depth is a standard web depth.
func CheckWebDepth(depth float64) error {
	if !slices.ContainsFunc(WebDepths, func(d float64) bool { return near(d, depth) }) {
		return &LookupError{Table: "web depth", Value: depth}
	}
	return nil
}

// Designation formats a member name in the usual depth-style-flange-mils
// form, e.g. 362S162-54. Depth and flange are in hundredths of an inch,
// rounded down. Style is S for lipped channels and Z for Z sections.
func Designation(z bool, depth, flange float64, mils int) string {
	style := "S"
	if z {
		style = "Z"
	}
	return fmt.Sprintf("%03d%s%03d-%d", hundredths(depth), style, hundredths(flange), mils)
}

func hundredths(v float64) int {
	return int(math.Floor(v*100 + tolerance))
}
