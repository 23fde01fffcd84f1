package section

import "fmt"

// SummaryRow is one line of the property report.
type SummaryRow struct {
	Group string
	Label string
	Value string
	Unit  string
}

// Summary lists the derived properties grouped the way they are reported.
// unit is the length unit used to label each row.
func (s *Section) Summary(unit string) []SummaryRow {
	p := s.props
	pow := func(n int) string {
		sup := map[int]string{2: "²", 3: "³", 4: "⁴", 6: "⁶"}
		return unit + sup[n]
	}
	num := func(v float64) string { return fmt.Sprintf("%.6g", v) }

	rows := []SummaryRow{
		{"GEOMETRY", "Elements", fmt.Sprintf("%d straight, %d arc", len(s.Straights), len(s.Arcs)), ""},
		{"GEOMETRY", "Free ends", fmt.Sprint(len(s.EndNodes())), ""},
		{"GEOMETRY", "Interior nodes", fmt.Sprint(len(s.InteriorNodes())), ""},
		{"GEOMETRY", "Closed cells", fmt.Sprint(len(p.Loops)), ""},
		{"GEOMETRY", "x range", fmt.Sprintf("%.4f to %.4f", p.XMin, p.XMax), unit},
		{"GEOMETRY", "y range", fmt.Sprintf("%.4f to %.4f", p.YMin, p.YMax), unit},
		{"GEOMETRY", "Area (A)", num(p.Area), pow(2)},
		{"GEOMETRY", "Centroid (xc, yc)", fmt.Sprintf("%.5f, %.5f", p.Centroid.X, p.Centroid.Y), unit},

		{"BENDING", "Ixx", num(p.Ixx), pow(4)},
		{"BENDING", "Iyy", num(p.Iyy), pow(4)},
		{"BENDING", "Ixy", num(p.Ixy), pow(4)},
		{"BENDING", "I1 (major)", num(p.IX), pow(4)},
		{"BENDING", "I2 (minor)", num(p.IY), pow(4)},
		{"BENDING", "θ (principal)", fmt.Sprintf("%.5f", p.Theta), "rad"},
		{"BENDING", "Sxx", num(p.Sxx), pow(3)},
		{"BENDING", "Syy", num(p.Syy), pow(3)},
		{"BENDING", "rxx", num(p.Rxx), unit},
		{"BENDING", "ryy", num(p.Ryy), unit},

		{"TORSION", "Iz (polar)", num(p.Iz), pow(4)},
		{"TORSION", "J", num(p.J), pow(4)},
	}

	if p.Closed {
		return append(rows, SummaryRow{"TORSION", "Warping", "not computed for closed sections", ""})
	}
	return append(rows,
		SummaryRow{"TORSION", "Cw", num(p.Cw), pow(6)},
		SummaryRow{"TORSION", "Shear center (xs, ys)", fmt.Sprintf("%.5f, %.5f", p.ShearCenter.X, p.ShearCenter.Y), unit},
		SummaryRow{"TORSION", "ro", num(p.Ro), unit},
		SummaryRow{"TORSION", "ωn normalization (wno)", num(p.Wno), pow(2)},
		SummaryRow{"TORSION", "max |ωn|", num(s.WarpingMax()), pow(2)},
	)
}
