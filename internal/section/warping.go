package section

import "math"

// warpingPass is the result of one frontier walk about a reference point.
type warpingPass struct {
	w        map[NodeKey]float64
	rho      []float64
	iwx, iwy float64
	wno      float64
}

// solveWarping runs the two warping passes of an open section, fills the
// shear center and sectorial products into props and returns the per-node
// warping state.
func solveWarping(els []Element, nodes []Node, props *Properties) (Warping, error) {
	seed, ok := warpingSeed(els, nodes)
	if !ok {
		return Warping{}, &MalformedGraphError{Pass: "centroid", Total: len(nodes)}
	}

	first, err := walkWarping(els, len(nodes), seed, props.Centroid, props.Centroid, props.Area, "centroid")
	if err != nil {
		return Warping{}, err
	}
	props.Iwx = zeroIfClose(first.iwx)
	props.Iwy = zeroIfClose(first.iwy)
	props.ShearCenter = shearCenter(*props)

	second, err := walkWarping(els, len(nodes), seed, props.ShearCenter, props.Centroid, props.Area, "shear center")
	if err != nil {
		return Warping{}, err
	}
	props.Wno = second.wno

	return Warping{W: first.w, Wo: second.w, Rho: second.rho, Wno: second.wno}, nil
}

// warpingSeed picks the lexicographically smallest free end.
func warpingSeed(els []Element, nodes []Node) (NodeKey, bool) {
	counts := valences(els)
	for _, n := range nodes {
		if counts[n.Key()] == 1 {
			return n.Key(), true
		}
	}
	return NodeKey{}, false
}

// walkWarping propagates the sectorial coordinate outward from seed, one
// frontier element at a time. Iwx and Iwy are taken about centroid and the
// normalization term is divided by area.
func walkWarping(els []Element, total int, seed NodeKey, ref, centroid Node, area float64, pass string) (warpingPass, error) {
	p := warpingPass{
		w:   map[NodeKey]float64{seed: 0},
		rho: make([]float64, len(els)),
	}
	done := make([]bool, len(els))

	for len(p.w) < total {
		progressed := false
		for i, e := range els {
			if done[i] {
				continue
			}
			k1, k2 := e.Node1().Key(), e.Node2().Key()
			w1, has1 := p.w[k1]
			w2, has2 := p.w[k2]
			if has1 == has2 {
				continue
			}

			sn, fn := e.Node1(), e.Node2()
			l := e.Length()
			rho := ((sn.X-ref.X)*(fn.Y-ref.Y) - (fn.X-ref.X)*(sn.Y-ref.Y)) / l
			if has1 {
				w2 = w1 + rho*l
				p.w[k2] = w2
			} else {
				w1 = w2 - rho*l
				p.w[k1] = w1
			}
			p.rho[i] = rho
			done[i] = true
			progressed = true

			tl := e.Thickness() * l
			dx1, dx2 := sn.X-centroid.X, fn.X-centroid.X
			dy1, dy2 := sn.Y-centroid.Y, fn.Y-centroid.Y
			p.iwx += ((w1*dx1+w2*dx2)/3 + (w1*dx2+w2*dx1)/6) * tl
			p.iwy += ((w1*dy1+w2*dy2)/3 + (w1*dy2+w2*dy1)/6) * tl
			p.wno += (w1 + w2) * tl / (2 * area)
		}
		if !progressed {
			return warpingPass{}, &MalformedGraphError{Processed: len(p.w), Total: total, Pass: pass}
		}
	}
	return p, nil
}

// shearCenter solves the shear center from the sectorial products. A
// singular inertia tensor falls back to the centroid.
func shearCenter(p Properties) Node {
	det := p.Ixx*p.Iyy - p.Ixy*p.Ixy
	if math.Abs(det) <= ZeroTolerance*math.Abs(p.Ixx*p.Iyy) || det == 0 {
		return p.Centroid
	}
	return Node{
		X: zeroIfClose((p.Iyy*p.Iwy-p.Ixy*p.Iwx)/det + p.Centroid.X),
		Y: zeroIfClose(-(p.Ixx*p.Iwx-p.Ixy*p.Iwy)/det + p.Centroid.Y),
	}
}

// warpingConstant integrates wn² over each element with Simpson weights.
func warpingConstant(els []Element, w Warping) float64 {
	var cw float64
	for _, e := range els {
		a := w.Wno - w.Wo[e.Node1().Key()]
		b := w.Wno - w.Wo[e.Node2().Key()]
		cw += (a*a + a*b + b*b) / 3 * e.Area()
	}
	return cw
}

// WarpingNormal returns the normalized warping ordinate wn at node. It
// reports false for closed sections and unknown nodes.
func (s *Section) WarpingNormal(n Node) (float64, bool) {
	wo, ok := s.warping.Wo[n.Key()]
	if !ok {
		return 0, false
	}
	return s.warping.Wno - wo, true
}

// WarpingMax returns the largest |wn| over all nodes.
func (s *Section) WarpingMax() float64 {
	var m float64
	for _, wo := range s.warping.Wo {
		m = math.Max(m, math.Abs(s.warping.Wno-wo))
	}
	return m
}
