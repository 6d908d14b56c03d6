// Package lexer is the card lexer (spec component B): it streams a deck's
// physical lines and groups them into raw cards using the continuation,
// comment, and blank-line rules of spec §4.2, without interpreting a
// card's content (that is internal/decompose's job).
//
// Grounded on original_source/numjuggler/parser.py's get_cards state
// machine, is_commented, is_fc_card, is_blankline, and _check_bad_chars.
// The lazy look-behind the original implements with module-level
// variables (spec §9 "lazy cursor with look-behind") is carried here by the
// Lexer's pending-card and comment-buffer fields, which together stand for
// the Between/InCard/InCommentBuffer states named in §9 (there is no
// separate state value), updated by classifying each physical line as it
// is read.
//
// Scanning style (bufio.Scanner over an explicitly sized buffer) is
// grounded on internal/regtext/parser.go's ParseReg / consts.go's
// ScannerInitialBufferSize / ScannerMaxLineSize.
package lexer

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/dvp2015/numjuggler/internal/diag"
	"github.com/dvp2015/numjuggler/pkg/types"
)

const (
	// ScannerInitialBufferSize is the initial buffer size for the deck scanner.
	ScannerInitialBufferSize = 64 * 1024
	// ScannerMaxLineSize is the maximum physical line length accepted.
	ScannerMaxLineSize = 1024 * 1024

	// continuationIndent is the minimum leading-space run that marks a
	// physical line as a continuation of the previous card.
	continuationIndent = 5

	// ampWindow bounds how far into a line a trailing '&' still counts as
	// a continuation marker (spec §4.2 rule 2: "within its first 81
	// characters").
	ampWindow = 81
)

var (
	reComment = regexp.MustCompile(`(?i)^\s{0,5}c(\s+.*|\s*)$`)
	reFcCard  = regexp.MustCompile(`(?i)^\s*fc\d`)
)

// RawCard is one lexer-level grouping of physical lines: the unit
// internal/decompose consumes to build a types.Card. Lines retain their
// original trailing newline bytes so that joining them reproduces the
// source exactly (spec P1).
type RawCard struct {
	Pos      int // 1-based source line number of the card's first line
	CardKind types.CardKind
	Lines    []string
}

// Text concatenates a RawCard's physical lines.
func (c RawCard) Text() string { return strings.Join(c.Lines, "") }

// Lexer streams RawCards from a deck. Construct with New and call Next
// repeatedly until it returns io.EOF.
type Lexer struct {
	sc   *bufio.Scanner
	sink *diag.Sink

	lineNo  int
	started bool
	ncid    types.CardKind // block kind assigned to the next fresh (non-continuation) card

	pending     []string
	pendingPos  int
	pendingKind types.CardKind

	commentBuf    []string
	commentBufPos int

	prevAmpContinuation bool
	prevWasFc           bool

	queue []RawCard
	done  bool
}

// New returns a Lexer reading from r. r must yield LF-terminated text;
// callers needing encoding normalization should route input through
// internal/deckio.Open first.
func New(r io.Reader, sink *diag.Sink) *Lexer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, ScannerInitialBufferSize), ScannerMaxLineSize)
	sc.Split(splitKeepLF)
	if sink == nil {
		sink = diag.NewSink()
	}
	return &Lexer{sc: sc, sink: sink, ncid: types.CardTitle}
}

// splitKeepLF is bufio.ScanLines with the line terminator kept on the
// returned token, so RawCard.Lines can be joined back into exact bytes.
func splitKeepLF(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := indexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

func indexByte(data []byte, b byte) int {
	for i, c := range data {
		if c == b {
			return i
		}
	}
	return -1
}

// Next returns the next RawCard, or io.EOF once the deck is exhausted.
func (l *Lexer) Next() (*RawCard, error) {
	if !l.started {
		l.started = true
		if err := l.consumeFirstLine(); err != nil {
			return nil, err
		}
	}
	for len(l.queue) == 0 {
		line, ok := l.readLine()
		if !ok {
			l.flushPending()
			l.flushCommentBuf()
			if len(l.queue) == 0 {
				return nil, io.EOF
			}
			break
		}
		l.consume(line)
	}
	card := l.queue[0]
	l.queue = l.queue[1:]
	return &card, nil
}

func (l *Lexer) readLine() (string, bool) {
	if !l.sc.Scan() {
		return "", false
	}
	l.lineNo++
	line := l.sc.Text()
	if strings.ContainsRune(line, '\t') {
		l.sink.Report(types.DiagTabCharacter, l.lineNo, "tab character in input")
	}
	return line, true
}

// consumeFirstLine replicates get_cards' special handling of the deck's
// very first line: a literal "message:" keyword opens a Message block read
// eagerly up to its blank-line delimiter; a literal "continue" keyword
// means the deck holds only a Data block and that directive line itself
// produces no card (matching the original, which never yields it); any
// other first line is the one-line Title card.
func (l *Lexer) consumeFirstLine() error {
	line, ok := l.readLine()
	if !ok {
		return nil
	}
	kw := strings.ToLower(firstToken(line))
	switch kw {
	case "message:":
		msg := []string{line}
		for {
			next, ok := l.readLine()
			if !ok {
				break
			}
			msg = append(msg, next)
			if isBlank(next) {
				break
			}
		}
		last := msg[len(msg)-1]
		if isBlank(last) {
			l.queue = append(l.queue, RawCard{Pos: 1, CardKind: types.CardMessage, Lines: msg[:len(msg)-1]})
			l.queue = append(l.queue, RawCard{Pos: l.lineNo, CardKind: types.CardBlankLine, Lines: []string{last}})
		} else {
			l.queue = append(l.queue, RawCard{Pos: 1, CardKind: types.CardMessage, Lines: msg})
		}
		title, ok := l.readLine()
		if ok {
			l.queue = append(l.queue, RawCard{Pos: l.lineNo, CardKind: types.CardTitle, Lines: []string{title}})
		}
		l.ncid = types.CardCell
	case "continue":
		// The directive line itself is consumed and produces no card,
		// matching original_source/numjuggler/parser.py's get_cards.
		l.ncid = types.CardData
	default:
		l.queue = append(l.queue, RawCard{Pos: 1, CardKind: types.CardTitle, Lines: []string{line}})
		l.ncid = types.CardCell
	}
	return nil
}

func firstToken(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// consume classifies one physical line (beyond the first) and updates
// lexer state, possibly appending finished cards to l.queue.
//
// Comment lines are buffered rather than flushed immediately: a pending
// comment buffer is absorbed into the following card when that card turns
// out to be a continuation of the card preceding the comment, and is only
// emitted as its own Comment card otherwise. Comment lines are also
// skipped when updating the continuation flags (rule 2 names "the
// previous non-comment physical line").
func (l *Lexer) consume(line string) {
	if isBlank(line) {
		l.flushPending()
		l.flushCommentBuf()
		l.queue = append(l.queue, RawCard{Pos: l.lineNo, CardKind: types.CardBlankLine, Lines: []string{line}})
		l.advanceBlock()
		l.prevAmpContinuation = false
		l.prevWasFc = false
		return
	}

	if l.isContinuation(line) {
		l.pending = append(l.pending, l.commentBuf...)
		l.commentBuf = nil
		l.pending = append(l.pending, line)
		if !isComment(line) {
			l.updateContinuationFlags(line)
		}
		return
	}

	if isComment(line) {
		if len(l.commentBuf) == 0 {
			l.commentBufPos = l.lineNo
		}
		l.commentBuf = append(l.commentBuf, line)
		return
	}

	// A new, non-continuation, non-comment, non-blank line starts a fresh
	// card. Any buffered comment lines were not absorbed, so they are
	// emitted as their own Comment card ahead of it.
	l.flushPending()
	l.flushCommentBuf()

	l.appendPending(line, l.ncid)
	l.updateContinuationFlags(line)
}

// advanceBlock moves Cell->Surface->Data on each blank-line delimiter,
// staying at Data for any further blanks (a deck has at most four blocks).
func (l *Lexer) advanceBlock() {
	switch l.ncid {
	case types.CardCell:
		l.ncid = types.CardSurface
	case types.CardSurface:
		l.ncid = types.CardData
	}
}

func (l *Lexer) isContinuation(line string) bool {
	if len(l.pending) == 0 {
		return false
	}
	if hasFiveSpaceIndent(line) {
		return true
	}
	return l.prevAmpContinuation && !l.prevWasFc
}

func (l *Lexer) updateContinuationFlags(line string) {
	l.prevWasFc = isFcCard(line)
	l.prevAmpContinuation = hasAmpContinuation(line)
}

func (l *Lexer) appendPending(line string, kind types.CardKind) {
	if len(l.pending) == 0 {
		l.pendingPos = l.lineNo
		l.pendingKind = kind
	}
	l.pending = append(l.pending, line)
}

func (l *Lexer) flushPending() {
	if len(l.pending) == 0 {
		return
	}
	l.queue = append(l.queue, RawCard{Pos: l.pendingPos, CardKind: l.pendingKind, Lines: l.pending})
	l.pending = nil
}

func (l *Lexer) flushCommentBuf() {
	if len(l.commentBuf) == 0 {
		return
	}
	l.queue = append(l.queue, RawCard{Pos: l.commentBufPos, CardKind: types.CardComment, Lines: l.commentBuf})
	l.commentBuf = nil
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isComment(line string) bool {
	return reComment.MatchString(strings.TrimRight(line, "\r\n"))
}

// IsCommentLine reports whether line matches the deck comment-line pattern
// (spec §4.2): up to five leading spaces, then 'c'/'C', then whitespace or
// end of line. Exported for internal/decompose's template/input split
// (spec §4.3 step 1), which applies the same per-physical-line test.
func IsCommentLine(line string) bool { return isComment(line) }

func isFcCard(line string) bool {
	return reFcCard.MatchString(line)
}

func hasFiveSpaceIndent(line string) bool {
	n := 0
	for n < len(line) && n < continuationIndent && line[n] == ' ' {
		n++
	}
	return n >= continuationIndent
}

func hasAmpContinuation(line string) bool {
	window := line
	if len(window) > ampWindow {
		window = window[:ampWindow]
	}
	return strings.ContainsRune(window, '&')
}
