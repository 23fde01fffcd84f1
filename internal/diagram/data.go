package diagram

import (
	"math"

	"github.com/alexiusacademia/gocfs/internal/section"
)

// arcSteps is the number of chords used to draw one arc element.
const arcSteps = 16

// Point represents a 2D coordinate on the section midline
type Point struct {
	X float64
	Y float64
}

// Segment is one element drawn as a polyline.
type Segment struct {
	Points []Point
	Arc    bool
}

// ElementWarping is the normalized warping ordinate at both ends of an element.
type ElementWarping struct {
	N1, N2 Point
	W1, W2 float64
}

// NodeWarping is the normalized warping ordinate at a node.
type NodeWarping struct {
	Node Point
	W    float64
}

// SectionDiagramData holds everything the renderers read from a section
type SectionDiagramData struct {
	Title string

	Segments []Segment
	EndNodes []Point

	XMin, XMax float64
	YMin, YMax float64

	Centroid    Point
	ShearCenter Point
	Closed      bool

	// Warping distribution, empty for closed sections
	Elements   []ElementWarping
	Nodes      []NodeWarping
	WarpingMax float64
}

func point(n section.Node) Point {
	return Point{X: n.X, Y: n.Y}
}

// FromSection collects the drawable state of s.
func FromSection(title string, s *section.Section) SectionDiagramData {
	p := s.Properties()
	data := SectionDiagramData{
		Title:       title,
		XMin:        p.XMin,
		XMax:        p.XMax,
		YMin:        p.YMin,
		YMax:        p.YMax,
		Centroid:    point(p.Centroid),
		ShearCenter: point(p.ShearCenter),
		Closed:      p.Closed,
		WarpingMax:  s.WarpingMax(),
	}

	for _, e := range s.Straights {
		data.Segments = append(data.Segments, Segment{Points: []Point{point(e.N1), point(e.N2)}})
	}
	for _, a := range s.Arcs {
		data.Segments = append(data.Segments, Segment{Points: arcPoints(a), Arc: true})
	}
	for _, n := range s.EndNodes() {
		data.EndNodes = append(data.EndNodes, point(n))
	}

	if p.Closed {
		return data
	}
	for _, e := range s.Elements() {
		w1, _ := s.WarpingNormal(e.Node1())
		w2, _ := s.WarpingNormal(e.Node2())
		data.Elements = append(data.Elements, ElementWarping{N1: point(e.Node1()), N2: point(e.Node2()), W1: w1, W2: w2})
	}
	for _, n := range s.Nodes() {
		w, _ := s.WarpingNormal(n)
		data.Nodes = append(data.Nodes, NodeWarping{Node: point(n), W: w})
	}
	return data
}

// arcPoints samples an arc from node1 to node2. Angles are clockwise from +y.
func arcPoints(a section.Arc) []Point {
	c := a.Center()
	r := math.Abs(a.Radius)
	pts := make([]Point, 0, arcSteps+1)
	pts = append(pts, point(a.N1))
	for i := 1; i < arcSteps; i++ {
		theta := a.Theta1 + (a.Theta2-a.Theta1)*float64(i)/arcSteps
		pts = append(pts, Point{X: c.X + r*math.Sin(theta), Y: c.Y + r*math.Cos(theta)})
	}
	return append(pts, point(a.N2))
}
