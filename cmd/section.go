package cmd

import (
	"github.com/spf13/cobra"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Thin-walled section property analysis",
	Long: `Compute properties of thin-walled sections defined in JSON or
YAML files, or built from the lipped C/Z channel catalog.

Subcommands:
  analyze   - Report properties of a section file
  template  - Build a catalog C or Z channel and report its properties

Example JSON file structure (a 1.625 x 1.25 lipped channel, inches):
{
  "straights": [
    {"kind": "straight", "t": 0.0188, "node1": {"x": 0, "y": 0}, "node2": {"x": 0, "y": 1.625}},
    {"kind": "straight", "t": 0.0188, "node1": {"x": 0, "y": 0}, "node2": {"x": 1.25, "y": 0}},
    {"kind": "straight", "t": 0.0188, "node1": {"x": 0, "y": 1.625}, "node2": {"x": 1.25, "y": 1.625}},
    {"kind": "straight", "t": 0.0188, "node1": {"x": 1.25, "y": 0}, "node2": {"x": 1.25, "y": 0.1875}},
    {"kind": "straight", "t": 0.0188, "node1": {"x": 1.25, "y": 1.625}, "node2": {"x": 1.25, "y": 1.4375}}
  ],
  "arcs": []
}

Arc elements take "radius"; a positive radius puts the center on the
left of node1 -> node2. "theta1"/"theta2" are filled in when saved.`,
}

func init() {
	rootCmd.AddCommand(sectionCmd)
}
