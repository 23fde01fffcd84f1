package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ExportOptions controls image export.
type ExportOptions struct {
	Width, Height vg.Length
	Warping       bool // overlay the warping distribution
}

// DefaultExportOptions is an 8x6 in image without the overlay.
func DefaultExportOptions() ExportOptions {
	return ExportOptions{Width: 8 * vg.Inch, Height: 6 * vg.Inch}
}

// warpingSpan is the overlay offset of the largest ordinate, as a fraction
// of the larger section extent.
const warpingSpan = 0.15

// ExportSectionDiagram exports the section outline to an image file. The
// format follows the extension (png, svg, pdf); anything else gets .png.
func ExportSectionDiagram(data SectionDiagramData, filename string, opts ExportOptions) error {
	p := plot.New()
	p.Title.Text = "Section"
	if data.Title != "" {
		p.Title.Text = data.Title
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	if opts.Warping && !data.Closed && data.WarpingMax > 0 {
		if err := addWarpingOverlay(p, data); err != nil {
			return err
		}
	}

	for _, seg := range data.Segments {
		pts := make(plotter.XYs, len(seg.Points))
		for i, pt := range seg.Points {
			pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = color.Black
		p.Add(line)
	}

	markers := plotter.XYs{{X: data.Centroid.X, Y: data.Centroid.Y}}
	labels := []string{"C"}
	if !data.Closed {
		markers = append(markers, plotter.XY{X: data.ShearCenter.X, Y: data.ShearCenter.Y})
		labels = append(labels, "SC")
	}
	scatter, err := plotter.NewScatter(markers)
	if err != nil {
		return err
	}
	scatter.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	scatter.GlyphStyle.Radius = vg.Points(4)
	scatter.GlyphStyle.Shape = draw.CrossGlyph{}
	p.Add(scatter)

	l, err := plotter.NewLabels(plotter.XYLabels{XYs: markers, Labels: labels})
	if err != nil {
		return err
	}
	p.Add(l)

	// Keep the section undistorted
	p.X.Min, p.X.Max, p.Y.Min, p.Y.Max = squareBounds(p, opts)

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(opts.Width, opts.Height, filename)
	default:
		return p.Save(opts.Width, opts.Height, filename+".png")
	}
}

// addWarpingOverlay draws each element's ωn as a band offset along the
// element normal, with the nodal values as labels.
func addWarpingOverlay(p *plot.Plot, data SectionDiagramData) error {
	extent := math.Max(data.XMax-data.XMin, data.YMax-data.YMin)
	scale := warpingSpan * extent / data.WarpingMax

	for _, e := range data.Elements {
		dx, dy := e.N2.X-e.N1.X, e.N2.Y-e.N1.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l, dx/l
		band := plotter.XYs{
			{X: e.N1.X, Y: e.N1.Y},
			{X: e.N2.X, Y: e.N2.Y},
			{X: e.N2.X + nx*e.W2*scale, Y: e.N2.Y + ny*e.W2*scale},
			{X: e.N1.X + nx*e.W1*scale, Y: e.N1.Y + ny*e.W1*scale},
		}
		poly, err := plotter.NewPolygon(band)
		if err != nil {
			return err
		}
		poly.Color = color.RGBA{R: 100, G: 149, B: 237, A: 120}
		poly.LineStyle.Color = color.RGBA{R: 0, G: 0, B: 139, A: 255}
		poly.LineStyle.Width = vg.Points(0.5)
		p.Add(poly)
	}

	xys := make(plotter.XYs, len(data.Nodes))
	text := make([]string, len(data.Nodes))
	for i, n := range data.Nodes {
		xys[i] = plotter.XY{X: n.Node.X, Y: n.Node.Y}
		text[i] = fmt.Sprintf("%.4f", n.W)
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: text})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

// squareBounds widens the current axis ranges so one unit has the same
// length on both axes.
func squareBounds(p *plot.Plot, opts ExportOptions) (xMin, xMax, yMin, yMax float64) {
	xMin, xMax, yMin, yMax = p.X.Min, p.X.Max, p.Y.Min, p.Y.Max
	pad := 0.1 * math.Max(xMax-xMin, yMax-yMin)
	xMin, xMax, yMin, yMax = xMin-pad, xMax+pad, yMin-pad, yMax+pad

	aspect := float64(opts.Width) / float64(opts.Height)
	w, h := xMax-xMin, yMax-yMin
	if w/h < aspect {
		grow := (h*aspect - w) / 2
		xMin, xMax = xMin-grow, xMax+grow
	} else {
		grow := (w/aspect - h) / 2
		yMin, yMax = yMin-grow, yMax+grow
	}
	return xMin, xMax, yMin, yMax
}
