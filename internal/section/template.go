package section

import (
	"fmt"
	"math"
	"sort"
)

// Default lipped channel dimensions, in inches.
const (
	DefaultThickness   = 0.0188
	DefaultWebDepth    = 1.625
	DefaultFlangeWidth = 1.25
	DefaultLipLength   = 3.0 / 16
)

// cornerDeviationMin is the smallest turn (radians) that gets a fillet.
const cornerDeviationMin = 0.1

// Straight element slots of the lipped channel layout.
const (
	slotWeb = iota
	slotBottomFlange
	slotTopFlange
	slotBottomLip
	slotTopLip
	templateSlots
)

// DefaultSection returns the 18 mil 162S125 lipped channel on its centerline.
func DefaultSection() *Section {
	t, d, b, l := DefaultThickness, DefaultWebDepth, DefaultFlangeWidth, DefaultLipLength
	s, err := New([]Straight{
		NewStraight(t, Node{0, 0}, Node{0, d}),
		NewStraight(t, Node{0, 0}, Node{b, 0}),
		NewStraight(t, Node{0, d}, Node{b, d}),
		NewStraight(t, Node{b, 0}, Node{b, l}),
		NewStraight(t, Node{b, d}, Node{b, d - l}),
	}, nil)
	if err != nil {
		panic(fmt.Sprintf("section: default section: %v", err))
	}
	return s
}

// apply runs op on a copy of s and commits the copy only when op and the
// following recompute both succeed.
func (s *Section) apply(op func(c *Section) error) error {
	c := s.Clone()
	if err := op(c); err != nil {
		return err
	}
	if err := c.Recompute(); err != nil {
		return err
	}
	*s = *c
	return nil
}

// MoveNode moves every element end that sits on from to the location to.
func (s *Section) MoveNode(from, to Node) error {
	return s.apply(func(c *Section) error {
		return c.moveNode(from, to)
	})
}

func (s *Section) moveNode(from, to Node) error {
	for i, e := range s.Straights {
		if e.N1.Same(from) {
			e = e.UpdateNode1(to)
		}
		if e.N2.Same(from) {
			e = e.UpdateNode2(to)
		}
		s.Straights[i] = e
	}
	for i, a := range s.Arcs {
		var err error
		if a.N1.Same(from) {
			if a, err = a.UpdateNode1(to); err != nil {
				return err
			}
		}
		if a.N2.Same(from) {
			if a, err = a.UpdateNode2(to); err != nil {
				return err
			}
		}
		s.Arcs[i] = a
	}
	return nil
}

// SetAllThicknesses overwrites the thickness of every element.
func (s *Section) SetAllThicknesses(t float64) error {
	return s.apply(func(c *Section) error {
		for i := range c.Straights {
			c.Straights[i].T = t
		}
		for i := range c.Arcs {
			c.Arcs[i].T = t
		}
		return nil
	})
}

// UpdateWebDepth moves the flange and lip nodes of a lipped channel to a new
// web depth. Existing fillets are removed first and restored with the same
// radius afterwards.
func (s *Section) UpdateWebDepth(depth, lip float64) error {
	return s.apply(func(c *Section) error {
		return c.withSharpCorners(func() error {
			if err := c.checkTemplate(); err != nil {
				return err
			}
			st := c.Straights
			st[slotWeb].N2.Y = depth
			st[slotTopFlange].N1.Y = depth
			st[slotTopFlange].N2.Y = depth
			st[slotTopLip].N1.Y = depth
			st[slotTopLip].N2.Y = depth - lip
			return nil
		})
	})
}

// UpdateFlangeWidth moves the flange tips and lips of a lipped channel to a
// new flange width. The side each flange points to is kept, so Z sections
// stay Z sections.
func (s *Section) UpdateFlangeWidth(width, depth, lip float64) error {
	return s.apply(func(c *Section) error {
		return c.withSharpCorners(func() error {
			if err := c.checkTemplate(); err != nil {
				return err
			}
			st := c.Straights
			bottom := math.Copysign(width, st[slotBottomFlange].N2.X)
			top := math.Copysign(width, st[slotTopFlange].N2.X)
			st[slotBottomFlange].N2.X = bottom
			st[slotBottomLip].N1.X = bottom
			st[slotBottomLip].N2.X = bottom
			st[slotBottomLip].N2.Y = lip
			st[slotTopFlange].N2.X = top
			st[slotTopLip].N1.X = top
			st[slotTopLip].N2.X = top
			st[slotTopLip].N2.Y = depth - lip
			return nil
		})
	})
}

func (s *Section) checkTemplate() error {
	if len(s.Straights) != templateSlots || len(s.Arcs) != 0 {
		return fmt.Errorf("%w: %d straight and %d arc elements", ErrNotTemplate, len(s.Straights), len(s.Arcs))
	}
	return nil
}

// withSharpCorners removes any fillets, runs edit and puts fillets of the
// previous radius back.
func (s *Section) withSharpCorners(edit func() error) error {
	if len(s.Arcs) == 0 {
		return edit()
	}
	radius := math.Abs(s.Arcs[0].Radius)
	if err := s.removeRoundedCorners(); err != nil {
		return err
	}
	if err := edit(); err != nil {
		return err
	}
	return s.addRoundedCorners(radius)
}

// AddRoundedCorners replaces each sharp corner between two straight
// elements with a tangent arc of the given centerline radius. Corners that
// turn by less than 0.1 rad are left alone.
func (s *Section) AddRoundedCorners(radius float64) error {
	return s.apply(func(c *Section) error {
		return c.addRoundedCorners(radius)
	})
}

func (s *Section) addRoundedCorners(radius float64) error {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return degenerate("", "corner radius must be positive, got %g", radius)
	}
	for {
		corner, i, j, ok := s.nextSharpCorner()
		if !ok {
			return nil
		}
		e1, e2 := s.Straights[i], s.Straights[j]
		arc, err := NewCornerArc(e1.T, radius, corner, e1, e2)
		if err != nil {
			return err
		}
		s.Straights[i] = trimTo(e1, corner, arc.N1)
		s.Straights[j] = trimTo(e2, corner, arc.N2)
		s.Arcs = append(s.Arcs, arc)
	}
}

// nextSharpCorner finds the lexicographically first node joining exactly two
// straight elements at an angle.
func (s *Section) nextSharpCorner() (Node, int, int, bool) {
	counts := valences(s.Straights)
	var corners []Node
	seen := make(map[NodeKey]bool)
	for _, e := range s.Straights {
		for _, n := range []Node{e.N1, e.N2} {
			if counts[n.Key()] == 2 && !seen[n.Key()] {
				seen[n.Key()] = true
				corners = append(corners, n)
			}
		}
	}
	sort.Slice(corners, func(a, b int) bool { return corners[a].Less(corners[b]) })

	for _, n := range corners {
		var idx []int
		for i, e := range s.Straights {
			if e.N1.Same(n) || e.N2.Same(n) {
				idx = append(idx, i)
			}
		}
		if len(idx) != 2 {
			continue
		}
		dev, _, _ := cornerDeviation(n, s.Straights[idx[0]], s.Straights[idx[1]])
		if dev > cornerDeviationMin {
			return n, idx[0], idx[1], true
		}
	}
	return Node{}, 0, 0, false
}

func trimTo(e Straight, corner, to Node) Straight {
	if e.N1.Same(corner) {
		return e.UpdateNode1(to)
	}
	return e.UpdateNode2(to)
}

// RemoveRoundedCorners deletes every arc and extends the adjoining straight
// elements to the arc's apparent intersection.
func (s *Section) RemoveRoundedCorners() error {
	return s.apply(func(c *Section) error {
		return c.removeRoundedCorners()
	})
}

func (s *Section) removeRoundedCorners() error {
	for _, arc := range s.Arcs {
		p, err := arc.ApparentIntersection()
		if err != nil {
			return err
		}
		for i, e := range s.Straights {
			if e.N1.Same(arc.N1) || e.N1.Same(arc.N2) {
				e = e.UpdateNode1(p)
			}
			if e.N2.Same(arc.N1) || e.N2.Same(arc.N2) {
				e = e.UpdateNode2(p)
			}
			s.Straights[i] = e
		}
	}
	s.Arcs = nil
	return nil
}

// ConvertToCenterline shifts out-to-out channel coordinates onto the wall
// centerline. Flange tips move outward by t (t/2 for Z sections), lip ends
// by t/2 and the top flange up by t.
func (s *Section) ConvertToCenterline(z bool, t float64) error {
	return s.apply(func(c *Section) error {
		return c.withSharpCorners(func() error {
			return c.offsetNodes(z, t, 1)
		})
	})
}

// ConvertToOutToOut is the inverse of ConvertToCenterline.
func (s *Section) ConvertToOutToOut(z bool, t float64) error {
	return s.apply(func(c *Section) error {
		return c.withSharpCorners(func() error {
			return c.offsetNodes(z, t, -1)
		})
	})
}

// offsetNodes applies the centerline offset with the given sign to each
// template slot. Shared nodes get the same shift from both elements.
func (s *Section) offsetNodes(z bool, t, sign float64) error {
	if err := s.checkTemplate(); err != nil {
		return err
	}
	tip := t
	if z {
		tip = t / 2
	}
	out := func(n *Node) { n.X += sign * math.Copysign(tip, n.X) }
	up := func(n *Node, dy float64) { n.Y += sign * dy }

	st := s.Straights
	up(&st[slotWeb].N2, t)
	out(&st[slotBottomFlange].N2)
	up(&st[slotTopFlange].N1, t)
	out(&st[slotTopFlange].N2)
	up(&st[slotTopFlange].N2, t)
	out(&st[slotBottomLip].N1)
	out(&st[slotBottomLip].N2)
	up(&st[slotBottomLip].N2, t/2)
	out(&st[slotTopLip].N1)
	up(&st[slotTopLip].N1, t)
	out(&st[slotTopLip].N2)
	up(&st[slotTopLip].N2, t/2)
	return nil
}

// SwitchCZ mirrors the bottom flange and bottom lip about the web, turning
// a C section into a Z section and back.
func (s *Section) SwitchCZ() error {
	return s.apply(func(c *Section) error {
		return c.withSharpCorners(func() error {
			if err := c.checkTemplate(); err != nil {
				return err
			}
			st := c.Straights
			st[slotBottomFlange].N2.X = -st[slotBottomFlange].N2.X
			st[slotBottomLip].N1.X = -st[slotBottomLip].N1.X
			st[slotBottomLip].N2.X = -st[slotBottomLip].N2.X
			return nil
		})
	})
}
