package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexiusacademia/gocfs/internal/diagram"
	"github.com/alexiusacademia/gocfs/internal/section"
	"github.com/spf13/pflag"
	"gonum.org/v1/plot/vg"
)

const rule = "───────────────────────────────────────────────────────────────"

// reportOptions selects the optional parts of a section report.
type reportOptions struct {
	diagram bool
	warping bool
	export  string
	overlay bool
}

// printReport writes the property tables and any requested diagrams.
func printReport(out io.Writer, title string, s *section.Section, opts reportOptions) error {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintf(out, "     THIN-WALLED SECTION PROPERTIES - %s\n", title)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	var w *tabwriter.Writer
	group := ""
	for _, row := range s.Summary(cfg.Units) {
		if row.Group != group {
			if w != nil {
				w.Flush()
				fmt.Fprintln(out)
			}
			group = row.Group
			fmt.Fprintf(out, "%s:\n", group)
			fmt.Fprintln(out, rule)
			w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		}
		fmt.Fprintf(w, "  %s:\t%s %s\n", row.Label, row.Value, row.Unit)
	}
	if w != nil {
		w.Flush()
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "ELEMENTS:")
	fmt.Fprintln(out, rule)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\tElement\tLength\tρ (about SC)\n")
	fmt.Fprintf(w, "  ─\t───────\t──────\t────────────\n")
	rho := s.Warping().Rho
	for i, e := range s.Elements() {
		r := "-"
		if i < len(rho) {
			r = fmt.Sprintf("%.5f", rho[i])
		}
		fmt.Fprintf(w, "  %d\t%s\t%.5f\t%s\n", i+1, e, e.Length(), r)
	}
	w.Flush()
	fmt.Fprintln(out)

	p := s.Properties()
	fmt.Fprint(out, diagram.DrawSummaryBox("KEY PROPERTIES", []string{
		fmt.Sprintf("A  = %.6g %s²", p.Area, cfg.Units),
		fmt.Sprintf("I1 = %.6g %s⁴   I2 = %.6g %s⁴", p.IX, cfg.Units, p.IY, cfg.Units),
		fmt.Sprintf("J  = %.6g %s⁴   Cw = %.6g %s⁶", p.J, cfg.Units, p.Cw, cfg.Units),
	}))

	data := diagram.FromSection(title, s)
	if opts.diagram {
		fmt.Fprintln(out, diagram.DrawASCIISectionDiagram(data))
	}
	if opts.warping {
		fmt.Fprintln(out, diagram.DrawWarpingDiagram(data))
	}

	if opts.export != "" {
		exp := diagram.ExportOptions{
			Width:   vg.Length(cfg.Export.WidthIn) * vg.Inch,
			Height:  vg.Length(cfg.Export.HeightIn) * vg.Inch,
			Warping: opts.overlay,
		}
		if err := diagram.ExportSectionDiagram(data, opts.export, exp); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Fprintf(out, "Diagram exported to: %s\n", opts.export)
		logger.Info("diagram exported", "file", opts.export, "warping", opts.overlay)
	}
	return nil
}

// addReportFlags registers the diagram flags shared by the report commands.
func addReportFlags(c *pflag.FlagSet, opts *reportOptions) {
	c.BoolVar(&opts.diagram, "diagram", false, "Show ASCII section outline")
	c.BoolVar(&opts.warping, "warping", false, "Show warping distribution table")
	c.StringVarP(&opts.export, "output", "o", "", "Export diagram to file (png, svg, pdf)")
	c.BoolVar(&opts.overlay, "overlay", false, "Draw the warping distribution on the exported diagram")
}
