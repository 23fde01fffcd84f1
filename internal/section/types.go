package section

import (
	"fmt"
	"math"
)

// Section is a thin-walled cross-section assembled from straight and
// circular-arc elements. Elements share nodes where their endpoints
// coincide; an open section is a single path with two free ends.
//
// Derived properties are cached by Recompute. Geometry edits made directly
// on Straights or Arcs are not reflected until Recompute is called; the
// edit operators in template.go always recompute before returning.
type Section struct {
	Straights []Straight
	Arcs      []Arc

	props   Properties
	warping Warping
}

// Properties is the snapshot of derived section properties taken by
// Recompute. Coordinates are relative to the input coordinates.
type Properties struct {
	// Extents of the midline nodes
	XMin, XMax float64
	YMin, YMax float64

	Area     float64
	Centroid Node

	// Geometric moments about the centroid
	Ixx, Iyy, Ixy float64

	// Principal moments and the angle (radians) from geometric to principal axes
	IX, IY float64
	Theta  float64

	Iz float64 // polar, IX+IY

	Rxx, Ryy float64 // radii of gyration
	Ro       float64 // polar radius of gyration about the shear center

	Sxx, Syy float64 // elastic section moduli

	J  float64 // St. Venant torsion constant
	Cw float64 // warping constant, zero for closed sections

	Iwx, Iwy float64 // sectorial products about the centroid
	Wno      float64 // warping normalization constant

	ShearCenter Node

	Closed bool     // the midline contains a cycle
	Loops  [][]Node // closed cells, canonical order
}

// Warping holds the per-node sectorial coordinates of an open section.
type Warping struct {
	W   map[NodeKey]float64 // about the centroid
	Wo  map[NodeKey]float64 // about the shear center
	Rho []float64           // sectorial radius per element, in Elements() order
	Wno float64
}

// New creates a section from the given elements and computes its properties.
func New(straights []Straight, arcs []Arc) (*Section, error) {
	s := &Section{
		Straights: append([]Straight(nil), straights...),
		Arcs:      append([]Arc(nil), arcs...),
	}
	if err := s.Recompute(); err != nil {
		return nil, err
	}
	return s, nil
}

// Elements returns straight elements followed by arc elements.
func (s *Section) Elements() []Element {
	els := make([]Element, 0, len(s.Straights)+len(s.Arcs))
	for _, e := range s.Straights {
		els = append(els, e)
	}
	for _, e := range s.Arcs {
		els = append(els, e)
	}
	return els
}

// Properties returns the snapshot taken by the last Recompute.
func (s *Section) Properties() Properties {
	return s.props
}

// Warping returns the warping state taken by the last Recompute. The maps
// are empty for closed sections.
func (s *Section) Warping() Warping {
	return s.warping
}

// Clone returns a deep copy of the section, including cached state.
func (s *Section) Clone() *Section {
	c := &Section{
		Straights: append([]Straight(nil), s.Straights...),
		Arcs:      append([]Arc(nil), s.Arcs...),
		props:     s.props,
		warping:   s.warping.clone(),
	}
	if s.props.Loops != nil {
		c.props.Loops = make([][]Node, len(s.props.Loops))
		for i, l := range s.props.Loops {
			c.props.Loops[i] = append([]Node(nil), l...)
		}
	}
	return c
}

func (w Warping) clone() Warping {
	c := Warping{Wno: w.Wno, Rho: append([]float64(nil), w.Rho...)}
	if w.W != nil {
		c.W = make(map[NodeKey]float64, len(w.W))
		for k, v := range w.W {
			c.W[k] = v
		}
	}
	if w.Wo != nil {
		c.Wo = make(map[NodeKey]float64, len(w.Wo))
		for k, v := range w.Wo {
			c.Wo[k] = v
		}
	}
	return c
}

// Validate checks element geometry before properties are computed.
func (s *Section) Validate() error {
	if len(s.Straights)+len(s.Arcs) == 0 {
		return degenerate("", "section has no elements")
	}
	for i, e := range s.Elements() {
		name := fmt.Sprintf("element %d (%s)", i+1, e.Kind())
		if !e.Node1().IsFinite() || !e.Node2().IsFinite() {
			return degenerate(name, "non-finite node coordinates")
		}
		if t := e.Thickness(); !(t > 0) || math.IsInf(t, 0) {
			return degenerate(name, "thickness must be positive, got %g", t)
		}
		if e.Node1().Same(e.Node2()) || e.Length() < Tolerance {
			return degenerate(name, "zero length")
		}
	}
	return nil
}
