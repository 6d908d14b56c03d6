package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dvp2015/numjuggler/internal/diag"
	"github.com/dvp2015/numjuggler/pkg/deck"
	"github.com/dvp2015/numjuggler/pkg/types"
	"github.com/spf13/cobra"
)

var reindexOutput string

func init() {
	cmd := newReindexCmd()
	cmd.Flags().StringVarP(&reindexOutput, "output", "o", "", "Output deck path (required)")
	_ = cmd.MarkFlagRequired("output")
	rootCmd.AddCommand(cmd)
}

func newReindexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reindex <deck>",
		Short: "Renumber every kind to dense, sequential 1-based indices",
		Long: `reindex is a shortcut for the common case of squeezing out number gaps:
it collects every distinct non-zero number per kind, in order of first
appearance, and assigns each a 1-based index (spec.md §4.7
sequential_index), then applies that as a rename-only rule set.

Example:
  numjuggler reindex input.i --output output.i`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReindex(args[0])
		},
	}
}

func runReindex(deckPath string) error {
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

	rules := deck.SequentialIndex(all)

	// sequential_index is derived from the same deck it is about to be
	// applied to, so a second pass through the rewrite engine is needed:
	// the cards above were only collected, never mutated.
	engine := deck.NewEngine(rules, sink)
	var out strings.Builder
	for _, card := range all {
		deck.Apply(card, engine)
		out.WriteString(deck.Emit(card, deck.EmitOptions{}, sink))
	}

	if err := deck.WriteDeck(reindexOutput, []byte(out.String())); err != nil {
		return fmt.Errorf("write %s: %w", reindexOutput, err)
	}
	printInfo("Wrote %s\n", reindexOutput)
	for _, d := range sink.Diagnostics {
		printInfo("warning: line %d: %s\n", d.Line, d.Message)
	}
	return nil
}
