package section

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Recompute refreshes every derived property: aggregation, loop detection
// and, for open sections, the warping solution.
func (s *Section) Recompute() error {
	if err := s.Validate(); err != nil {
		return err
	}
	els := s.Elements()

	props := aggregate(els)
	props.Loops = FindClosedLoops(els)
	props.Closed = len(props.Loops) > 0
	props.J = torsionConstant(els, props.Loops)

	var warping Warping
	if props.Closed {
		// Warping and shear center are not computed for closed sections.
		props.ShearCenter = props.Centroid
	} else {
		var err error
		warping, err = solveWarping(els, s.Nodes(), &props)
		if err != nil {
			return err
		}
		props.Cw = warpingConstant(els, warping)
	}

	d2 := math.Pow(props.ShearCenter.X-props.Centroid.X, 2) + math.Pow(props.ShearCenter.Y-props.Centroid.Y, 2)
	props.Ro = math.Sqrt(props.Iz/props.Area + d2)

	s.props = props
	s.warping = warping
	return nil
}

// aggregate combines per-element contributions into whole-section properties.
func aggregate(els []Element) Properties {
	var p Properties
	n := len(els)
	if n == 0 {
		return p
	}

	areas := make([]float64, n)
	cx := make([]float64, n)
	cy := make([]float64, n)
	tMax := 0.0
	for i, e := range els {
		areas[i] = e.Area()
		c := e.Centroid()
		cx[i], cy[i] = c.X, c.Y
		tMax = math.Max(tMax, e.Thickness())
	}

	p.Area = floats.Sum(areas)
	p.Centroid = Node{
		X: zeroIfClose(floats.Dot(areas, cx) / p.Area),
		Y: zeroIfClose(floats.Dot(areas, cy) / p.Area),
	}

	for i, e := range els {
		dx := zeroIfClose(cx[i] - p.Centroid.X)
		dy := zeroIfClose(cy[i] - p.Centroid.Y)
		p.Ixx += e.Ixx() + areas[i]*dy*dy
		p.Iyy += e.Iyy() + areas[i]*dx*dx
		p.Ixy += e.Ixy() + areas[i]*dx*dy
	}
	p.Ixx = zeroIfClose(p.Ixx)
	p.Iyy = zeroIfClose(p.Iyy)
	p.Ixy = zeroIfClose(p.Ixy)

	p.XMin, p.XMax, p.YMin, p.YMax = extents(els)

	principal(&p)

	p.Rxx = math.Sqrt(p.Ixx / p.Area)
	p.Ryy = math.Sqrt(p.Iyy / p.Area)

	cY := math.Max(math.Abs(p.YMax-p.Centroid.Y), math.Abs(p.Centroid.Y-p.YMin))
	cX := math.Max(math.Abs(p.XMax-p.Centroid.X), math.Abs(p.Centroid.X-p.XMin))
	p.Sxx = p.Ixx / (cY + tMax/2)
	p.Syy = p.Iyy / (cX + tMax/2)

	return p
}

// principal fills the principal moments, angle and polar moment.
func principal(p *Properties) {
	mean := (p.Ixx + p.Iyy) / 2
	radius := math.Sqrt(math.Pow(p.Ixx-p.Iyy, 2)/4 + p.Ixy*p.Ixy)
	p.IX = mean + radius
	p.IY = mean - radius
	p.Iz = p.IX + p.IY

	if p.Ixx == p.Iyy && p.Ixy == 0 {
		p.Theta = 0
		return
	}
	p.Theta = 0.5 * math.Atan(-2*p.Ixy/(p.Ixx-p.Iyy))
}

func extents(els []Element) (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, e := range els {
		for _, n := range []Node{e.Node1(), e.Node2()} {
			xMin = math.Min(xMin, n.X)
			xMax = math.Max(xMax, n.X)
			yMin = math.Min(yMin, n.Y)
			yMax = math.Max(yMax, n.Y)
		}
	}
	return xMin, xMax, yMin, yMax
}

// torsionConstant is the open thin-strip sum when there are no loops,
// otherwise the sum of Bredt's constant for each cell. Cells are treated
// independently; there is no interaction term between adjacent cells.
func torsionConstant(els []Element, loops [][]Node) float64 {
	if len(loops) == 0 {
		var j float64
		for _, e := range els {
			j += e.J()
		}
		return j
	}

	var total float64
	for _, cell := range loops {
		if len(cell) < 3 {
			continue
		}
		var area2, perimeter float64
		for i := range cell {
			cur, next := cell[i], cell[(i+1)%len(cell)]
			area2 += cur.X*next.Y - cur.Y*next.X
			if e := elementBetween(els, cur, next); e != nil {
				perimeter += e.Length() / e.Thickness()
			}
		}
		area2 = math.Abs(area2)
		if perimeter > 0 {
			total += area2 * area2 / perimeter
		}
	}
	return total
}

func elementBetween(els []Element, a, b Node) Element {
	for _, e := range els {
		if (e.Node1().Same(a) && e.Node2().Same(b)) || (e.Node1().Same(b) && e.Node2().Same(a)) {
			return e
		}
	}
	return nil
}

// Nodes returns the distinct nodes of the section in lexicographic order.
func (s *Section) Nodes() []Node {
	seen := make(map[NodeKey]bool)
	var nodes []Node
	for _, e := range s.Elements() {
		for _, n := range []Node{e.Node1(), e.Node2()} {
			if !seen[n.Key()] {
				seen[n.Key()] = true
				nodes = append(nodes, n)
			}
		}
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Less(nodes[j]) })
	return nodes
}

// NodeValences counts the elements connected to each node.
func (s *Section) NodeValences() map[NodeKey]int {
	return valences(s.Elements())
}

func valences[E Element](els []E) map[NodeKey]int {
	counts := make(map[NodeKey]int)
	for _, e := range els {
		counts[e.Node1().Key()]++
		counts[e.Node2().Key()]++
	}
	return counts
}

// EndNodes returns the nodes connected to exactly one element.
func (s *Section) EndNodes() []Node {
	return s.nodesWithValence(1)
}

// InteriorNodes returns the nodes connected to exactly two elements.
func (s *Section) InteriorNodes() []Node {
	return s.nodesWithValence(2)
}

func (s *Section) nodesWithValence(v int) []Node {
	counts := s.NodeValences()
	var out []Node
	for _, n := range s.Nodes() {
		if counts[n.Key()] == v {
			out = append(out, n)
		}
	}
	return out
}

// IsClosed reports whether the element graph contains at least one cell.
func (s *Section) IsClosed() bool {
	return len(FindClosedLoops(s.Elements())) > 0
}
