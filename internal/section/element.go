package section

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// ElementKind tags the concrete element variant.
type ElementKind string

const (
	KindStraight ElementKind = "straight"
	KindArc      ElementKind = "arc"
)

// Element is a thin wall segment of uniform thickness. The set of
// implementations is closed: Straight and Arc.
type Element interface {
	Kind() ElementKind
	Thickness() float64
	Node1() Node
	Node2() Node
	Length() float64
	Area() float64
	Centroid() Node
	Ixx() float64 // about the element centroid
	Iyy() float64
	Ixy() float64
	J() float64 // St. Venant thin-strip contribution
	String() string

	element()
}

// Straight is a straight wall segment between two nodes.
type Straight struct {
	T  float64 `json:"t"`
	N1 Node    `json:"node1"`
	N2 Node    `json:"node2"`
}

// NewStraight returns a straight element of thickness t from n1 to n2.
func NewStraight(t float64, n1, n2 Node) Straight {
	return Straight{T: t, N1: n1, N2: n2}
}

func (s Straight) element()           {}
func (s Straight) Kind() ElementKind  { return KindStraight }
func (s Straight) Thickness() float64 { return s.T }
func (s Straight) Node1() Node        { return s.N1 }
func (s Straight) Node2() Node        { return s.N2 }
func (s Straight) Area() float64      { return s.T * s.Length() }
func (s Straight) J() float64         { return s.Length() * math.Pow(s.T, 3) / 3 }
func (s Straight) Path() r2.Vec       { return r2.Sub(s.N2.Vec(), s.N1.Vec()) }
func (s Straight) Length() float64    { return r2.Norm(s.Path()) }

// Centroid is the midpoint.
func (s Straight) Centroid() Node {
	return Node{X: (s.N1.X + s.N2.X) / 2, Y: (s.N1.Y + s.N2.Y) / 2}
}

func (s Straight) Ixx() float64 {
	h := s.N2.Y - s.N1.Y
	return s.T * s.Length() * h * h / 12
}

func (s Straight) Iyy() float64 {
	w := s.N2.X - s.N1.X
	return s.T * s.Length() * w * w / 12
}

func (s Straight) Ixy() float64 {
	w := s.N2.X - s.N1.X
	h := s.N2.Y - s.N1.Y
	return s.T * s.Length() * w * h / 12
}

// UpdateNode1 returns a copy with node1 moved.
func (s Straight) UpdateNode1(n Node) Straight {
	return Straight{T: s.T, N1: n, N2: s.N2}
}

// UpdateNode2 returns a copy with node2 moved.
func (s Straight) UpdateNode2(n Node) Straight {
	return Straight{T: s.T, N1: s.N1, N2: n}
}

func (s Straight) String() string {
	return fmt.Sprintf("Straight Line: (%.3f,%.3f) -> (%.3f,%.3f), t: %g", s.N1.X, s.N1.Y, s.N2.X, s.N2.Y, s.T)
}

// Arc is a circular arc wall segment. Theta1 and Theta2 are the angles from
// the arc center to each node, in radians, measured clockwise from the +y
// axis. The sign of Radius selects one of the two centers that put both
// nodes on a circle of that radius: positive picks the center to the left
// of node1→node2, negative the one to the right.
type Arc struct {
	T      float64 `json:"t"`
	Radius float64 `json:"radius"`
	N1     Node    `json:"node1"`
	N2     Node    `json:"node2"`
	Theta1 float64 `json:"theta1"`
	Theta2 float64 `json:"theta2"`
}

// NewArc builds an arc of the given radius through n1 and n2. When hint is
// non-nil the center is the candidate farther from hint (hint is the tangent
// intersection of the adjoining walls, which lies outside the fillet).
// Otherwise the sign of radius picks the center.
func NewArc(t, radius float64, n1, n2 Node, hint *Node) (Arc, error) {
	if err := checkArcInput(t, radius, n1, n2); err != nil {
		return Arc{}, err
	}
	r := math.Abs(radius)
	c1, c2 := arcCenters(r, n1.Vec(), n2.Vec())
	first := radius > 0
	if hint != nil {
		h := hint.Vec()
		first = r2.Norm(r2.Sub(c1, h)) >= r2.Norm(r2.Sub(c2, h))
	}
	return arcAbout(t, r, n1, n2, first, c1, c2), nil
}

// newArcNear builds the arc through n1 and n2 whose center is closest to target.
func newArcNear(t, radius float64, n1, n2 Node, target r2.Vec) (Arc, error) {
	if err := checkArcInput(t, radius, n1, n2); err != nil {
		return Arc{}, err
	}
	r := math.Abs(radius)
	c1, c2 := arcCenters(r, n1.Vec(), n2.Vec())
	first := r2.Norm(r2.Sub(c1, target)) < r2.Norm(r2.Sub(c2, target))
	return arcAbout(t, r, n1, n2, first, c1, c2), nil
}

func checkArcInput(t, radius float64, n1, n2 Node) error {
	if !n1.IsFinite() || !n2.IsFinite() {
		return degenerate("arc", "non-finite node %v -> %v", n1, n2)
	}
	if t <= 0 || math.IsNaN(t) {
		return degenerate("arc", "thickness must be positive, got %g", t)
	}
	d := r2.Norm(r2.Sub(n2.Vec(), n1.Vec()))
	if d < Tolerance {
		return degenerate("arc", "coincident nodes %v", n1)
	}
	if radius == 0 || math.IsNaN(radius) || math.Abs(radius) < d/2-Tolerance {
		return degenerate("arc", "radius %g cannot span chord %g", radius, d)
	}
	return nil
}

// arcCenters returns the two centers of radius r through p1 and p2.
func arcCenters(r float64, p1, p2 r2.Vec) (c1, c2 r2.Vec) {
	chord := r2.Sub(p2, p1)
	d := r2.Norm(chord)
	mid := r2.Scale(0.5, r2.Add(p1, p2))
	if d == 0 {
		return mid, mid
	}
	h := math.Sqrt(math.Max(r*r-d*d/4, 0))
	perp := r2.Scale(1/d, r2.Vec{X: p1.Y - p2.Y, Y: p2.X - p1.X})
	return r2.Add(mid, r2.Scale(h, perp)), r2.Sub(mid, r2.Scale(h, perp))
}

func arcAbout(t, r float64, n1, n2 Node, first bool, c1, c2 r2.Vec) Arc {
	c, radius := c1, r
	if !first {
		c, radius = c2, -r
	}
	theta1 := clockwiseFromY(r2.Sub(n1.Vec(), c))
	theta2 := theta1 + math.Remainder(clockwiseFromY(r2.Sub(n2.Vec(), c))-theta1, 2*math.Pi)
	return Arc{T: t, Radius: radius, N1: n1, N2: n2, Theta1: theta1, Theta2: theta2}
}

func clockwiseFromY(v r2.Vec) float64 {
	return math.Atan2(v.X, v.Y)
}

func (a Arc) element()           {}
func (a Arc) Kind() ElementKind  { return KindArc }
func (a Arc) Thickness() float64 { return a.T }
func (a Arc) Node1() Node        { return a.N1 }
func (a Arc) Node2() Node        { return a.N2 }
func (a Arc) Area() float64      { return a.T * a.Length() }
func (a Arc) J() float64         { return a.Length() * math.Pow(a.T, 3) / 3 }

// Alpha is half the swept angle.
func (a Arc) Alpha() float64 { return (a.Theta2 - a.Theta1) / 2 }

func (a Arc) Length() float64 { return 2 * math.Abs(a.Alpha()*a.Radius) }

// Center is derived from the radius sign and the nodes.
func (a Arc) Center() r2.Vec {
	c1, c2 := arcCenters(math.Abs(a.Radius), a.N1.Vec(), a.N2.Vec())
	if a.Radius > 0 {
		return c1
	}
	return c2
}

// ApparentIntersection is the intersection of the tangent lines at both
// nodes, i.e. the sharp corner the arc replaces.
func (a Arc) ApparentIntersection() (Node, error) {
	c := a.Center()
	p1, p2 := a.N1.Vec(), a.N2.Vec()
	u1, u2 := r2.Sub(p1, c), r2.Sub(p2, c)

	m := mat.NewDense(2, 2, []float64{u1.X, u1.Y, u2.X, u2.Y})
	b := mat.NewVecDense(2, []float64{r2.Dot(u1, p1), r2.Dot(u2, p2)})
	var x mat.VecDense
	if err := x.SolveVec(m, b); err != nil {
		return Node{}, degenerate(a.String(), "tangents do not intersect: %v", err)
	}
	n := Node{X: x.AtVec(0), Y: x.AtVec(1)}
	if !n.IsFinite() {
		return Node{}, degenerate(a.String(), "tangents do not intersect")
	}
	return n, nil
}

// Centroid lies on the bisector of the two radius vectors.
func (a Arc) Centroid() Node {
	c := a.Center()
	r := math.Abs(a.Radius)
	u1, u2 := r2.Sub(a.N1.Vec(), c), r2.Sub(a.N2.Vec(), c)

	dot := math.Min(math.Max(r2.Dot(r2.Unit(u1), r2.Unit(u2)), -1), 1)
	angle := math.Acos(dot)
	dist := r
	if angle > 1e-12 {
		dist = 2 * r * math.Sin(angle/2) / angle
	}

	var dir r2.Vec
	bisector := r2.Add(u1, u2)
	if r2.Norm(bisector) > Tolerance*r {
		dir = r2.Unit(bisector)
	} else {
		phi := (a.Theta1 + a.Theta2) / 2
		dir = r2.Vec{X: math.Sin(phi), Y: math.Cos(phi)}
	}
	return nodeFromVec(r2.Add(c, r2.Scale(dist, dir)))
}

// sweep returns the thetas in increasing order and their difference.
func (a Arc) sweep() (lo, hi, d float64) {
	lo, hi = a.Theta1, a.Theta2
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo, hi, hi - lo
}

func (a Arc) Ixx() float64 {
	lo, hi, d := a.sweep()
	if d == 0 {
		return 0
	}
	s1, c1 := math.Sincos(lo)
	s2, c2 := math.Sincos(hi)
	return ((d+s2*c2-s1*c1)/2 - math.Pow(s2-s1, 2)/d) * math.Pow(math.Abs(a.Radius), 3) * a.T
}

func (a Arc) Iyy() float64 {
	lo, hi, d := a.sweep()
	if d == 0 {
		return 0
	}
	s1, c1 := math.Sincos(lo)
	s2, c2 := math.Sincos(hi)
	return ((d-s2*c2+s1*c1)/2 - math.Pow(c1-c2, 2)/d) * math.Pow(math.Abs(a.Radius), 3) * a.T
}

func (a Arc) Ixy() float64 {
	lo, hi, d := a.sweep()
	if d == 0 {
		return 0
	}
	s1, c1 := math.Sincos(lo)
	s2, c2 := math.Sincos(hi)
	return ((s2*s2-s1*s1)/2 + (s2-s1)*(c2-c1)/d) * math.Pow(math.Abs(a.Radius), 3) * a.T
}

// UpdateNode1 moves node1 and keeps the center nearest the current one.
func (a Arc) UpdateNode1(n Node) (Arc, error) {
	return newArcNear(a.T, a.Radius, n, a.N2, a.Center())
}

// UpdateNode2 moves node2 and keeps the center nearest the current one.
func (a Arc) UpdateNode2(n Node) (Arc, error) {
	return newArcNear(a.T, a.Radius, a.N1, n, a.Center())
}

func (a Arc) String() string {
	return fmt.Sprintf("Circle Arc: (%.3f,%.3f) -> (%.3f,%.3f), radius: %g, t: %g", a.N1.X, a.N1.Y, a.N2.X, a.N2.Y, a.Radius, a.T)
}

// NewCornerArc fillets the corner shared by two straight elements with an arc
// of the given radius. The arc's nodes are the tangent points on each element.
func NewCornerArc(t, radius float64, corner Node, e1, e2 Straight) (Arc, error) {
	dev, a, b := cornerDeviation(corner, e1, e2)
	if dev <= 0 || dev >= math.Pi-1e-9 {
		return Arc{}, degenerate(e1.String(), "no corner to round at %v", corner)
	}
	d := math.Abs(radius) * math.Tan(dev/2)
	if d >= r2.Norm(a)-Tolerance || d >= r2.Norm(b)-Tolerance {
		return Arc{}, degenerate(e1.String(), "radius %g too large for corner at %v", radius, corner)
	}
	c := corner.Vec()
	n1 := nodeFromVec(r2.Add(c, r2.Scale(d, r2.Unit(a))))
	n2 := nodeFromVec(r2.Add(c, r2.Scale(d, r2.Unit(b))))
	return NewArc(t, radius, n1, n2, &corner)
}

// cornerDeviation returns how far the two elements meeting at corner turn
// away from a straight line, and each element's direction pointing away
// from the corner.
func cornerDeviation(corner Node, e1, e2 Straight) (float64, r2.Vec, r2.Vec) {
	away := func(e Straight) r2.Vec {
		if e.N1.Same(corner) {
			return e.Path()
		}
		return r2.Scale(-1, e.Path())
	}
	a, b := away(e1), away(e2)
	la, lb := r2.Norm(a), r2.Norm(b)
	if la == 0 || lb == 0 {
		return 0, a, b
	}
	cos := math.Min(math.Max(r2.Dot(a, b)/(la*lb), -1), 1)
	return math.Pi - math.Acos(cos), a, b
}
