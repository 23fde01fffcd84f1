package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gocfs/internal/catalog"
	"github.com/alexiusacademia/gocfs/internal/template"
	"github.com/spf13/cobra"
)

var (
	templateShape     string
	templateDepth     float64
	templateFlange    float64
	templateMils      int
	templateRounded   bool
	templateOutToOut  bool
	templateSave      string
	templateOut       string
	templateList      bool
	templateRepOption reportOptions
)

var sectionTemplateCmd = &cobra.Command{
	Use:   "template",
	Short: "Build a lipped C or Z channel from the catalog",
	Long: `Build a lipped C or Z channel from the standard catalog of
thicknesses, web depths and flange widths, then report its properties.

The lip length follows the flange width and the bend radius follows the
thickness. Dimensions are centerline unless --out-to-out is given.

Examples:
  gocfs section template --list
  gocfs section template --depth 3.625 --flange 1.625 --mils 54
  gocfs section template --shape Z --depth 8 --flange 2.5 --mils 68 --rounded
  gocfs section template --depth 6 --flange 2 --mils 43 --out c600.json --save "600S200-43"`,
	RunE: runSectionTemplate,
}

func init() {
	sectionCmd.AddCommand(sectionTemplateCmd)

	def := template.DefaultParams()
	f := sectionTemplateCmd.Flags()
	f.StringVar(&templateShape, "shape", string(def.Shape), "Shape: C or Z")
	f.Float64Var(&templateDepth, "depth", def.WebDepth, "Web depth (in)")
	f.Float64Var(&templateFlange, "flange", def.FlangeWidth, "Flange width (in)")
	f.IntVar(&templateMils, "mils", def.Mils, "Thickness designation (mils)")
	f.BoolVar(&templateRounded, "rounded", false, "Round the corners with the catalog bend radius")
	f.BoolVar(&templateOutToOut, "out-to-out", false, "Use out-to-out instead of centerline dimensions")
	f.StringVar(&templateSave, "save", "", "Save the section to the library under this name")
	f.StringVar(&templateOut, "out", "", "Write the section to a JSON or YAML file")
	f.BoolVar(&templateList, "list", false, "List the catalog tables and exit")
	addReportFlags(f, &templateRepOption)
}

func runSectionTemplate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if templateList {
		printCatalog(cmd)
		return nil
	}

	shape, err := template.ParseShape(templateShape)
	if err != nil {
		return err
	}
	ed, err := template.NewEditor(logger)
	if err != nil {
		return err
	}
	err = ed.Apply(template.Params{
		Shape:       shape,
		Mils:        templateMils,
		WebDepth:    templateDepth,
		FlangeWidth: templateFlange,
		Rounded:     templateRounded,
		Centerline:  !templateOutToOut,
	})
	if err != nil {
		return err
	}

	params := ed.Params()
	sec := ed.Section()
	if err := printReport(out, params.Designation(), sec, templateRepOption); err != nil {
		return err
	}

	if templateOut != "" {
		if err := sec.SaveToFile(templateOut); err != nil {
			return fmt.Errorf("writing section file: %w", err)
		}
		fmt.Fprintf(out, "Section written to: %s\n", templateOut)
	}
	if templateSave != "" {
		return saveToLibrary(cmd.Context(), cmd, templateSave, sec)
	}
	return nil
}

func printCatalog(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "THICKNESSES:")
	fmt.Fprintln(out, rule)
	for _, g := range catalog.Gauges {
		fmt.Fprintf(out, "  %4d mils  t = %.4f in  inside radius = %.4f in\n", g.Mils, g.Thickness, g.InsideRadius)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "WEB DEPTHS (in):")
	fmt.Fprintln(out, rule)
	for _, d := range catalog.WebDepths {
		fmt.Fprintf(out, "  %g", d)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "FLANGE WIDTHS (in):")
	fmt.Fprintln(out, rule)
	for _, fl := range catalog.Flanges {
		var sharp []string
		for _, g := range catalog.Gauges {
			if fits, err := catalog.LipFitsBend(g.Thickness, fl.Lip, false); err == nil && !fits {
				sharp = append(sharp, strconv.Itoa(g.Mils))
			}
		}
		note := ""
		if len(sharp) > 0 {
			note = "  (sharp only at " + strings.Join(sharp, ", ") + " mils)"
		}
		fmt.Fprintf(out, "  %-6g lip %.4f%s\n", fl.Width, fl.Lip, note)
	}
	fmt.Fprintln(out)
}
