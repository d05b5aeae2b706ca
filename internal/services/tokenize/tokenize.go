// Package tokenize turns raw text into the fragment collections the
// scoring engine indexes: a token stream filtered and optionally
// stemmed, then grouped into fixed-size word chunks, uppercased and
// concatenated. The engine itself treats fragments as opaque character
// sequences; everything language-aware happens here.
package tokenize

import (
	"iter"
	"strings"
	"unicode"

	snowballeng "github.com/kljensen/snowball/english"
)

// DefaultChunkWords is how many consecutive words form one fragment
// when the caller does not override it. Three-word chunks tend to give
// better keyphrase matching than indexing whole texts.
const DefaultChunkWords = 3

// Tokenize yields the maximal letter-or-digit runs of content.
func Tokenize(content string) iter.Seq[string] {
	return func(yield func(string) bool) {
		lastSplit := -1

		for i, char := range content {
			if !(unicode.IsLetter(char) || unicode.IsNumber(char)) {
				if lastSplit != -1 {
					if !yield(content[lastSplit:i]) {
						return
					}
				}
				lastSplit = -1
			} else if lastSplit == -1 {
				lastSplit = i
			}
		}

		if lastSplit != -1 {
			yield(content[lastSplit:])
		}
	}
}

// FilterShort drops tokens of fewer than three characters and tokens
// that are pure digit runs; both mostly add noise to the index.
func FilterShort(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for token := range seq {
			if len([]rune(token)) < 3 || isDigits(token) {
				continue
			}
			if !yield(token) {
				return
			}
		}
	}
}

// Stem reduces every token to its snowball stem.
func Stem(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for token := range seq {
			if !yield(snowballeng.Stem(strings.ToLower(token), false)) {
				return
			}
		}
	}
}

func isDigits(token string) bool {
	for _, r := range token {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Fragments splits text into uppercased fragments of words consecutive
// tokens each. Stemming is applied before grouping when stem is set.
// The result is never empty: a text with no usable tokens maps to a
// single blank fragment, which scores 0 against everything instead of
// failing construction downstream.
func Fragments(text string, words int, stem bool) []string {
	if words <= 0 {
		words = DefaultChunkWords
	}

	tokens := Tokenize(text)
	tokens = FilterShort(tokens)
	if stem {
		tokens = Stem(tokens)
	}

	var fragments []string
	var group strings.Builder
	count := 0
	for token := range tokens {
		group.WriteString(strings.ToUpper(token))
		count++
		if count == words {
			fragments = append(fragments, group.String())
			group.Reset()
			count = 0
		}
	}
	if count > 0 {
		fragments = append(fragments, group.String())
	}

	if len(fragments) == 0 {
		fragments = []string{" "}
	}
	return fragments
}
