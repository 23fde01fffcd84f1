package diagram

import (
	"fmt"
	"math"
	"strings"
)

// DrawASCIISectionDiagram draws the section midline on a character grid with
// the centroid (+), the shear center (S) and the free ends (o).
func DrawASCIISectionDiagram(data SectionDiagramData) string {
	var sb strings.Builder

	widthChars := 48
	heightChars := 24

	// Bounds include the shear center, which is often outside the walls
	xMin, xMax := math.Min(data.XMin, data.Centroid.X), math.Max(data.XMax, data.Centroid.X)
	yMin, yMax := math.Min(data.YMin, data.Centroid.Y), math.Max(data.YMax, data.Centroid.Y)
	if !data.Closed {
		xMin, xMax = math.Min(xMin, data.ShearCenter.X), math.Max(xMax, data.ShearCenter.X)
		yMin, yMax = math.Min(yMin, data.ShearCenter.Y), math.Max(yMax, data.ShearCenter.Y)
	}
	dx, dy := xMax-xMin, yMax-yMin
	if dx <= 0 && dy <= 0 {
		return ""
	}

	// Characters are about twice as tall as they are wide
	var sx, sy float64
	if dx > 0 {
		sx = float64(widthChars-1) / dx
		sy = sx / 2
	}
	if dx <= 0 || dy*sy > float64(heightChars-1) {
		sy = float64(heightChars-1) / dy
		sx = 2 * sy
	}
	cols := int(math.Round(dx*sx)) + 1
	rows := int(math.Round(dy*sy)) + 1

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	cell := func(p Point) (int, int) {
		c := int(math.Round((p.X - xMin) * sx))
		r := rows - 1 - int(math.Round((p.Y-yMin)*sy))
		return r, c
	}
	plot := func(p Point, ch rune) {
		r, c := cell(p)
		if r >= 0 && r < rows && c >= 0 && c < cols {
			grid[r][c] = ch
		}
	}

	for _, seg := range data.Segments {
		for i := 1; i < len(seg.Points); i++ {
			a, b := seg.Points[i-1], seg.Points[i]
			r1, c1 := cell(a)
			r2, c2 := cell(b)
			steps := 2*max(abs(r2-r1), abs(c2-c1)) + 1
			for k := 0; k <= steps; k++ {
				f := float64(k) / float64(steps)
				plot(Point{X: a.X + f*(b.X-a.X), Y: a.Y + f*(b.Y-a.Y)}, '█')
			}
		}
	}
	for _, n := range data.EndNodes {
		plot(n, 'o')
	}
	plot(data.Centroid, '+')
	if !data.Closed {
		plot(data.ShearCenter, 'S')
	}

	sb.WriteString("\n")
	if data.Title != "" {
		sb.WriteString(fmt.Sprintf("  %s\n", strings.ToUpper(data.Title)))
		sb.WriteString(fmt.Sprintf("  %s\n", strings.Repeat("─", len([]rune(data.Title)))))
	}
	sb.WriteString(fmt.Sprintf("  ┌%s┐\n", strings.Repeat("─", cols+2)))
	for _, row := range grid {
		sb.WriteString(fmt.Sprintf("  │ %s │\n", string(row)))
	}
	sb.WriteString(fmt.Sprintf("  └%s┘\n", strings.Repeat("─", cols+2)))

	// Legend
	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ███ = Wall midline\n")
	sb.WriteString(fmt.Sprintf("  +   = Centroid %s\n", fmtPoint(data.Centroid)))
	if data.Closed {
		sb.WriteString("  Closed section: shear center and warping not computed\n")
	} else {
		sb.WriteString(fmt.Sprintf("  S   = Shear center %s\n", fmtPoint(data.ShearCenter)))
		sb.WriteString("  o   = Free end\n")
	}

	return sb.String()
}

// DrawWarpingDiagram lists the normalized warping ordinate at each node with
// a bar scaled to the largest magnitude.
func DrawWarpingDiagram(data SectionDiagramData) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("  WARPING DISTRIBUTION (normalized ωn)\n")
	sb.WriteString("  ────────────────────────────────────\n\n")

	if data.Closed || len(data.Nodes) == 0 {
		sb.WriteString("  Not computed for closed sections.\n")
		return sb.String()
	}

	half := 16
	scale := 0.0
	if data.WarpingMax > 0 {
		scale = float64(half) / data.WarpingMax
	}

	for _, n := range data.Nodes {
		bar := int(math.Round(math.Abs(n.W) * scale))
		left := strings.Repeat(" ", half)
		right := ""
		if n.W < 0 {
			left = strings.Repeat(" ", half-bar) + strings.Repeat("█", bar)
		} else {
			right = strings.Repeat("█", bar)
		}
		sb.WriteString(fmt.Sprintf("  %-20s %10.5f  %s│%s\n", fmtPoint(n.Node), n.W, left, right))
	}

	sb.WriteString(fmt.Sprintf("\n  max |ωn| = %.5f\n", data.WarpingMax))
	return sb.String()
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, title))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %-*s  ║\n", maxLen-4, line))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

func fmtPoint(p Point) string {
	return fmt.Sprintf("(%.4f, %.4f)", p.X, p.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
