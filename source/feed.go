package source

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/arloliu/affinity/types"
)

const feedSeparator = "<>"

var conceptID = regexp.MustCompile(`\(.*\)`)

// ParseTerms reads a terms feed: one term per line, blank lines ignored.
//
// Parameters:
//   - r: Feed reader
//
// Returns:
//   - []string: Terms in feed order
//   - error: Read error
func ParseTerms(r io.Reader) ([]string, error) {
	var terms []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		term := strings.TrimSpace(sc.Text())
		if term == "" {
			continue
		}
		terms = append(terms, term)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read terms feed: %w", err)
	}

	return terms, nil
}

// ParseSimilarities reads a similarity feed of score<>term1<>term2 lines.
//
// Parenthesised concept identifiers are stripped from both terms.
//
// Parameters:
//   - r: Feed reader
//
// Returns:
//   - []types.SimilarityEntry[string]: Entries in feed order
//   - error: ErrMalformedFeed (with the line number) or a read error
func ParseSimilarities(r io.Reader) ([]types.SimilarityEntry[string], error) {
	var entries []types.SimilarityEntry[string]

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		fields := strings.Split(text, feedSeparator)
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: line %d: expected 3 fields, got %d", types.ErrMalformedFeed, line, len(fields))
		}

		score, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad score %q", types.ErrMalformedFeed, line, fields[0])
		}

		a, b := stripConceptID(fields[1]), stripConceptID(fields[2])
		if a == "" || b == "" {
			return nil, fmt.Errorf("%w: line %d: empty term", types.ErrMalformedFeed, line)
		}

		entries = append(entries, types.SimilarityEntry[string]{A: a, B: b, Score: score})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read similarity feed: %w", err)
	}

	return entries, nil
}

// WriteTerms writes terms in the terms feed format.
func WriteTerms(w io.Writer, terms []string) error {
	bw := bufio.NewWriter(w)
	for _, t := range terms {
		if _, err := bw.WriteString(t + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteSimilarities writes entries in the similarity feed format.
func WriteSimilarities(w io.Writer, entries []types.SimilarityEntry[string]) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		score := strconv.FormatFloat(e.Score, 'g', -1, 64)
		if _, err := bw.WriteString(score + feedSeparator + e.A + feedSeparator + e.B + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func stripConceptID(s string) string {
	return strings.TrimSpace(conceptID.ReplaceAllString(s, ""))
}
