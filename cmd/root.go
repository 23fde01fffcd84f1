package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/gocfs/internal/config"
	"github.com/alexiusacademia/gocfs/internal/logging"
	"github.com/alexiusacademia/gocfs/internal/store"
	"github.com/alexiusacademia/gocfs/internal/version"
	"github.com/spf13/cobra"
)

var (
	configFile string
	logLevel   string
	storePath  string

	cfg    = config.Default()
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "gocfs",
	Short: "Cold-Formed Steel Section Properties Tool",
	Long: `gocfs - Go Cold-Formed Steel Section Calculator

A CLI tool for the geometric and torsional properties of thin-walled
cold-formed steel sections built from straight and curved wall segments.

This tool helps structural engineers compute:
  - Area, centroid, moments and products of inertia
  - Principal axes, section moduli and radii of gyration
  - St. Venant torsion constant (open and closed cells)
  - Warping function, warping constant and shear center

Sections are read from JSON or YAML files, built from the standard
lipped C and Z channel catalog, and kept in a local section library.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		if storePath != "" {
			loaded.Store.Path = storePath
			loaded.Store.InMemory = false
		}
		l, err := logging.New(os.Stderr, loaded.Logging())
		if err != nil {
			return err
		}
		cfg, logger = loaded, l
		slog.SetDefault(logger)
		logger.Debug("configuration loaded", "units", cfg.Units, "store", cfg.Store.Path, "in_memory", cfg.Store.InMemory)
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   gocfs v%-49s║\n", version.Version)
		fmt.Println("  ║   Go Cold-Formed Steel Section Calculator                 ║")
		fmt.Println("  ║   Alexius S. Academia ©  2025                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for thin-walled cold-formed steel section properties.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Section properties of straight and arc wall elements")
		fmt.Println("    • Warping constant and shear center of open sections")
		fmt.Println("    • Bredt torsion constant of closed cells")
		fmt.Println("    • Lipped C and Z templates from the standard catalog")
		fmt.Println("    • Local section library")
		fmt.Println()
		fmt.Println("  Use 'gocfs --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Debug("command failed", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default $HOME/.gocfs.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Section library directory")
}

// openStore opens the section library described by the configuration.
func openStore() (*store.Store, error) {
	if cfg.Store.InMemory {
		c := store.InMemoryConfig()
		c.Logger = logger
		return store.Open(c)
	}
	path, err := cfg.StorePath()
	if err != nil {
		return nil, err
	}
	return store.Open(store.Config{Path: path, Logger: logger})
}
