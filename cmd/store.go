package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alexiusacademia/gocfs/internal/section"
	"github.com/alexiusacademia/gocfs/internal/store"
	"github.com/spf13/cobra"
)

var (
	storeListLimit  int
	storeShowReport reportOptions
	storeExportFile string
	storeImportFile string
	storeImportName string
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the local section library",
	Long: `List, inspect, rename, duplicate, delete, import and export saved sections.

Records are referred to by ID or by exact name.

Examples:
  gocfs store list
  gocfs store show "362S162-54" --diagram
  gocfs store rename 362S162-54 "Header stud"
  gocfs store duplicate "Header stud"
  gocfs store export "Header stud" --file header.yaml
  gocfs store import --file tube.json --name "Tube 2x2"`,
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved sections, most recently modified first",
	Args:  cobra.NoArgs,
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, st *store.Store, args []string) error {
		recs, err := st.List(ctx, storeListLimit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(recs) == 0 {
			fmt.Fprintln(out, "No saved sections.")
			return nil
		}
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  ID\tName\tCreated\tModified\tArea\n")
		fmt.Fprintf(w, "  ──\t────\t───────\t────────\t────\n")
		for _, r := range recs {
			area := "-"
			if p, err := r.Section.Properties(); err == nil {
				area = fmt.Sprintf("%.5f", p.Area)
			}
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", r.ID, r.Name,
				r.Created.Local().Format("2006-01-02 15:04"), r.Modified.Local().Format("2006-01-02 15:04"), area)
		}
		return w.Flush()
	}),
}

var storeShowCmd = &cobra.Command{
	Use:   "show <id|name>",
	Short: "Report the properties of a saved section",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, st *store.Store, args []string) error {
		rec, err := st.Find(ctx, args[0])
		if err != nil {
			return err
		}
		sec, err := rec.CFS()
		if err != nil {
			return err
		}
		return printReport(cmd.OutOrStdout(), rec.Name, sec, storeShowReport)
	}),
}

var storeRenameCmd = &cobra.Command{
	Use:   "rename <id|name> <new name>",
	Short: "Rename a saved section",
	Args:  cobra.ExactArgs(2),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, st *store.Store, args []string) error {
		rec, err := st.Find(ctx, args[0])
		if err != nil {
			return err
		}
		rec, err = st.Rename(ctx, rec.ID, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", rec.ID, rec.Name)
		return nil
	}),
}

var storeDuplicateCmd = &cobra.Command{
	Use:   "duplicate <id|name>",
	Short: "Copy a saved section under the same name",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, st *store.Store, args []string) error {
		rec, err := st.Find(ctx, args[0])
		if err != nil {
			return err
		}
		dup, err := st.Duplicate(ctx, rec.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Duplicated %q as %s\n", dup.Name, dup.ID)
		return nil
	}),
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete a saved section",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, st *store.Store, args []string) error {
		rec, err := st.Find(ctx, args[0])
		if err != nil {
			return err
		}
		if err := st.Delete(ctx, rec.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q (%s)\n", rec.Name, rec.ID)
		return nil
	}),
}

var storeExportCmd = &cobra.Command{
	Use:   "export <id|name>",
	Short: "Write a saved section to a JSON or YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, st *store.Store, args []string) error {
		rec, err := st.Find(ctx, args[0])
		if err != nil {
			return err
		}
		sec, err := rec.CFS()
		if err != nil {
			return err
		}
		if err := sec.SaveToFile(storeExportFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Section %q written to: %s\n", rec.Name, storeExportFile)
		return nil
	}),
}

var storeImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Add a section file to the library",
	Args:  cobra.NoArgs,
	RunE: withStore(func(ctx context.Context, cmd *cobra.Command, st *store.Store, args []string) error {
		sec, err := section.LoadFromFile(storeImportFile)
		if err != nil {
			return fmt.Errorf("loading section: %w", err)
		}
		rec, err := st.Create(ctx, storeImportName, sec)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %q as %s\n", rec.Name, rec.ID)
		return nil
	}),
}

type storeRunFunc func(ctx context.Context, cmd *cobra.Command, st *store.Store, args []string) error

// withStore opens the library around a command.
func withStore(fn storeRunFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		st, err := openStore()
		if err != nil {
			return err
		}
		defer func() {
			if err := st.Close(); err != nil {
				fmt.Fprintln(os.Stderr, "closing section library:", err)
			}
		}()
		return fn(ctx, cmd, st, args)
	}
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeListCmd, storeShowCmd, storeRenameCmd, storeDuplicateCmd, storeDeleteCmd, storeExportCmd, storeImportCmd)

	storeListCmd.Flags().IntVarP(&storeListLimit, "limit", "n", 0, "Show at most this many records (0 for all)")

	addReportFlags(storeShowCmd.Flags(), &storeShowReport)

	storeExportCmd.Flags().StringVarP(&storeExportFile, "file", "f", "", "Output file (.json, .yaml or .yml) [required]")
	storeExportCmd.MarkFlagRequired("file")

	storeImportCmd.Flags().StringVarP(&storeImportFile, "file", "f", "", "Section JSON or YAML file [required]")
	storeImportCmd.MarkFlagRequired("file")
	storeImportCmd.Flags().StringVar(&storeImportName, "name", "", "Record name (default \""+store.DefaultName+"\")")
}
