// Command numjuggler renumbers cell, surface, material, transformation,
// tally, universe and fill identifiers in an MCNP input deck, per a
// user-supplied map file, while preserving every other byte of the deck
// exactly (spec.md §1).
//
// Grounded on cmd/hivectl's root.go: a package-level cobra root command,
// global persistent flags, and an execute() wrapper called from main.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dvp2015/numjuggler/internal/diag"
	"github.com/spf13/cobra"
)

var (
	debug   bool
	quiet   bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "numjuggler",
	Short: "Renumber and inspect MCNP input decks",
	Long: `numjuggler rewrites the cell, surface, material, transformation,
tally, universe and fill numbers of an MCNP input deck according to a
map file, leaving every other byte of the deck untouched.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		diag.Init(diag.Options{
			Enabled: debug,
			Level:   slog.LevelDebug,
			Writer:  os.Stderr,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "v", false, "Enable verbose diagnostic logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// printInfo writes a progress message to stdout unless -q/--quiet was given.
func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
