package section

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// Tolerance is the coordinate tolerance for node identity (in section units).
	Tolerance = 1e-7

	// ZeroTolerance is the threshold below which derived results are snapped to zero.
	ZeroTolerance = 1e-9
)

// Node is a point on the section midline.
type Node struct {
	X float64 `json:"x" yaml:"x" msgpack:"x"`
	Y float64 `json:"y" yaml:"y" msgpack:"y"`
}

// NodeKey is the quantized form of a Node. Two nodes that share a key are
// the same node for every graph operation (adjacency, valence, warping maps).
type NodeKey struct {
	X, Y int64
}

// Key quantizes the node onto a Tolerance grid.
func (n Node) Key() NodeKey {
	return NodeKey{
		X: int64(math.Round(n.X / Tolerance)),
		Y: int64(math.Round(n.Y / Tolerance)),
	}
}

// Same reports whether two nodes quantize to the same key.
func (n Node) Same(o Node) bool {
	return n.Key() == o.Key()
}

// ApproxEqual reports whether both coordinates differ by less than Tolerance.
func (n Node) ApproxEqual(o Node) bool {
	return math.Abs(n.X-o.X) < Tolerance && math.Abs(n.Y-o.Y) < Tolerance
}

// Less orders nodes lexicographically, x first.
func (n Node) Less(o Node) bool {
	if n.X != o.X {
		return n.X < o.X
	}
	return n.Y < o.Y
}

// Vec returns the node as a gonum vector.
func (n Node) Vec() r2.Vec {
	return r2.Vec{X: n.X, Y: n.Y}
}

// IsFinite reports whether both coordinates are finite numbers.
func (n Node) IsFinite() bool {
	return !math.IsNaN(n.X) && !math.IsNaN(n.Y) && !math.IsInf(n.X, 0) && !math.IsInf(n.Y, 0)
}

func (n Node) String() string {
	return fmt.Sprintf("(%.4f,%.4f)", n.X, n.Y)
}

// nodeFromVec converts a gonum vector back into a node.
func nodeFromVec(v r2.Vec) Node {
	return Node{X: v.X, Y: v.Y}
}

// zeroIfClose snaps values within ZeroTolerance of zero to exactly zero.
func zeroIfClose(v float64) float64 {
	if math.Abs(v) < ZeroTolerance {
		return 0
	}
	return v
}
