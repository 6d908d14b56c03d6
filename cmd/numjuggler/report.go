package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dvp2015/numjuggler/internal/diag"
	"github.com/dvp2015/numjuggler/internal/kindreg"
	"github.com/dvp2015/numjuggler/pkg/deck"
	"github.com/dvp2015/numjuggler/pkg/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var reportFormat string

func init() {
	cmd := newReportCmd()
	cmd.Flags().StringVarP(&reportFormat, "format", "f", "text", "Output format: text, yaml")
	rootCmd.AddCommand(cmd)
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <deck>",
		Short: "Summarize the numbers already used in a deck",
		Long: `report collects every cell, surface, material, transformation, tally,
universe and fill number already present in a deck (spec.md §4.7
collect_numbers) and prints, per kind, the minimal set of closed ranges
that covers them (range_summary) — useful for spotting gaps or overlap
before writing a map file.

Example:
  numjuggler report input.i
  numjuggler report input.i --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(args[0])
		},
	}
}

func runReport(deckPath string) error {
	sink := diag.NewSink()

	cards, err := deck.ParseDeck(deckPath, sink)
	if err != nil {
		return fmt.Errorf("parse deck %s: %w", deckPath, err)
	}

	var all []*types.Card
	for {
		card, err := cards.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", deckPath, err)
		}
		all = append(all, card)
	}

	numbers := deck.CollectNumbers(all)

	switch reportFormat {
	case "text":
		printReportText(numbers)
	case "yaml":
		if err := printReportYAML(numbers); err != nil {
			return fmt.Errorf("render yaml report: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s (use: text, yaml)", reportFormat)
	}
	return nil
}

var reportOrder = []types.ElementKind{
	types.ElementCell,
	types.ElementSurface,
	types.ElementMaterial,
	types.ElementTransformation,
	types.ElementTally,
	types.ElementUniverse,
	types.ElementFill,
}

func printReportText(numbers map[types.ElementKind][]int64) {
	for _, kind := range reportOrder {
		vals := numbers[kind]
		if len(vals) == 0 {
			continue
		}
		ranges := deck.RangeSummary(vals)
		var distinct int64
		for _, r := range ranges {
			distinct += r.Hi - r.Lo + 1
		}
		fmt.Fprintf(os.Stdout, "%s (%d used):\n", kindreg.ElementName(kind), distinct)
		for _, r := range ranges {
			if r.Lo == r.Hi {
				fmt.Fprintf(os.Stdout, "  %d\n", r.Lo)
			} else {
				fmt.Fprintf(os.Stdout, "  %d--%d\n", r.Lo, r.Hi)
			}
		}
	}
}

type reportRange struct {
	Lo int64 `yaml:"lo"`
	Hi int64 `yaml:"hi"`
}

func printReportYAML(numbers map[types.ElementKind][]int64) error {
	doc := map[string][]reportRange{}
	for _, kind := range reportOrder {
		vals := numbers[kind]
		if len(vals) == 0 {
			continue
		}
		var ranges []reportRange
		for _, r := range deck.RangeSummary(vals) {
			ranges = append(ranges, reportRange{Lo: r.Lo, Hi: r.Hi})
		}
		doc[kindreg.ElementName(kind)] = ranges
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(doc)
}
