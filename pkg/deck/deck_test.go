package deck

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dvp2015/numjuggler/internal/diag"
	"github.com/dvp2015/numjuggler/pkg/types"
)

// runScenario writes deckText and mapText to temp files, runs the full
// parse/compile/apply/emit pipeline over every card in the deck, and
// returns the concatenated re-emitted bytes.
func runScenario(t *testing.T, deckText, mapText string) string {
	t.Helper()
	dir := t.TempDir()

	deckPath := filepath.Join(dir, "deck.i")
	if err := os.WriteFile(deckPath, []byte(deckText), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}

	var rules types.MapRules
	if mapText != "" {
		mapPath := filepath.Join(dir, "map.txt")
		if err := os.WriteFile(mapPath, []byte(mapText), 0o644); err != nil {
			t.Fatalf("write map: %v", err)
		}
		var err error
		rules, err = CompileMap(mapPath, diag.NewSink())
		if err != nil {
			t.Fatalf("CompileMap: %v", err)
		}
	} else {
		rules = types.NewMapRules()
	}

	sink := diag.NewSink()
	cards, err := ParseDeck(deckPath, sink)
	if err != nil {
		t.Fatalf("ParseDeck: %v", err)
	}
	engine := NewEngine(rules, sink)

	var out strings.Builder
	for {
		card, err := cards.Next()
		if err != nil {
			break
		}
		Apply(card, engine)
		out.WriteString(Emit(card, EmitOptions{}, sink))
	}
	return out.String()
}

func TestScenarioOffsetRename(t *testing.T) {
	got := runScenario(t, "title\n1 0 -2 imp:n=1\n\n", "c: +100\n")
	want := "title\n101 0 -2 imp:n=1\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioAnchorRenameWithRange(t *testing.T) {
	got := runScenario(t, "title\n1 0 -1\n\n5 px 1.0\n\n", "s 5--5: 200\n")
	want := "title\n1 0 -1\n\n200 px 1.0\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioVoidPreserved(t *testing.T) {
	sink := diag.NewSink()
	got := runScenarioWithSink(t, "title\n7 0 -3\n\n", "m: +10\n", sink)
	want := "title\n7 0 -3\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if sink.Has(types.DiagVoidCrossover) {
		t.Error("void material must not warn when no rule ever touches it")
	}
}

func TestScenarioParameterChange(t *testing.T) {
	got := runScenario(t, "title\n3 5 -1.0 -4 imp:n=1 imp:p=1\n\n", "c 3--3: imp:n=0\n")
	want := "title\n3 5 -1.0 -4 imp:n=0 imp:p=1\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioCommentPreservation(t *testing.T) {
	got := runScenario(t, "title\nc this is a cell\n1 0 -1 $trailing\n\n", "c: +1\n")
	want := "title\nc this is a cell\n2 0 -1 $trailing\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScenarioFillUniverseCoupling(t *testing.T) {
	got := runScenario(t, "title\n1 0 -1 u=4 fill=4\n\n", "u: +10\n")
	want := "title\n1 0 -1 u=14 fill=14\n\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseDeckRoundTripWithEmptyRules(t *testing.T) {
	// P5: the empty rules table leaves every card's emission equal to its
	// original.
	deckText := "title\n1 0 -1 2 imp:n=1\n\n20 5 px 1.5\n\nm5 1001.70c 1.0\n"
	got := runScenario(t, deckText, "")
	if got != deckText {
		t.Errorf("got %q, want unchanged %q", got, deckText)
	}
}

func TestWriteDeckThenReadBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.i")
	want := "title\n1 0 -1\n"
	if err := WriteDeck(path, []byte(want)); err != nil {
		t.Fatalf("WriteDeck: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(got) != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseDeckIOFailure(t *testing.T) {
	_, err := ParseDeck(filepath.Join(t.TempDir(), "missing.i"), nil)
	if err == nil {
		t.Fatal("expected an error for a missing deck file")
	}
	var typedErr *types.Error
	if !errors.As(err, &typedErr) || typedErr.Kind != types.ErrIOFailure {
		t.Errorf("expected *types.Error{Kind: ErrIOFailure}, got %v", err)
	}
}

// runScenarioWithSink is runScenario but lets the caller inspect the sink
// afterward.
func runScenarioWithSink(t *testing.T, deckText, mapText string, sink *diag.Sink) string {
	t.Helper()
	dir := t.TempDir()

	deckPath := filepath.Join(dir, "deck.i")
	if err := os.WriteFile(deckPath, []byte(deckText), 0o644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	mapPath := filepath.Join(dir, "map.txt")
	if err := os.WriteFile(mapPath, []byte(mapText), 0o644); err != nil {
		t.Fatalf("write map: %v", err)
	}

	rules, err := CompileMap(mapPath, sink)
	if err != nil {
		t.Fatalf("CompileMap: %v", err)
	}
	cards, err := ParseDeck(deckPath, sink)
	if err != nil {
		t.Fatalf("ParseDeck: %v", err)
	}
	engine := NewEngine(rules, sink)

	var out strings.Builder
	for {
		card, err := cards.Next()
		if err != nil {
			break
		}
		Apply(card, engine)
		out.WriteString(Emit(card, EmitOptions{}, sink))
	}
	return out.String()
}
