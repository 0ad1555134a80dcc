// Package textnorm tokenizes raw text into stemmed words for the inverted
// index and the query processor. Parsing and stemming are both pure and
// deterministic: the same input always yields the same output, and stemming
// is idempotent.
package textnorm

import (
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"
)

// Parse lowercases text, treats every rune that is not an ASCII letter as a
// word boundary, and returns the resulting non-empty tokens in order. A
// term is by definition a run of lowercase ASCII letters, so a non-ASCII
// letter (e.g. "é", "ñ", CJK ideographs) is a boundary, not part of a word.
func Parse(text string) []string {
	lower := strings.ToLower(text)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return r >= unicode.MaxASCII || !unicode.IsLetter(r)
	})
	return fields
}

// Stem applies the English Snowball stemming algorithm to a single word,
// stop words included. The stemmer lowercases and trims its input itself;
// callers normally stem tokens already produced by Parse.
func Stem(word string) string {
	return english.Stem(word, true)
}

// ParseAndStem is a convenience wrapper combining Parse and Stem, returning
// stemmed words in the order they occurred in text.
func ParseAndStem(text string) []string {
	words := Parse(text)
	stemmed := make([]string, len(words))
	for i, w := range words {
		stemmed[i] = Stem(w)
	}
	return stemmed
}

// Canonicalize reduces a raw query string to its canonical form: parse,
// stem, deduplicate, sort, and join with single spaces. An all-whitespace or
// empty query canonicalizes to the empty string.
func Canonicalize(query string) string {
	terms := uniqueSortedStems(query)
	return strings.Join(terms, " ")
}

// CanonicalTerms returns the sorted, deduplicated, stemmed term set used to
// search the index for a query, without joining it into a string.
func CanonicalTerms(query string) []string {
	return uniqueSortedStems(query)
}

func uniqueSortedStems(query string) []string {
	words := Parse(query)
	seen := make(map[string]struct{}, len(words))
	var out []string
	for _, w := range words {
		stemmed := Stem(w)
		if _, ok := seen[stemmed]; ok {
			continue
		}
		seen[stemmed] = struct{}{}
		out = append(out, stemmed)
	}
	sort.Strings(out)
	return out
}
