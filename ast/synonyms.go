package ast

import "unicode"

// SynonymExpander supplies per-word synonyms for query expansion. The
// engine only consumes this interface; mining synonyms is the caller's
// concern.
type SynonymExpander interface {
	// Synonyms returns alternatives for word, not including word itself.
	Synonyms(word string) []string
}

// SynonymProductCap bounds how many word combinations a single query
// may expand into. The Cartesian product over per-word synonym lists
// grows exponentially with query length, so enumeration stops once the
// cap is reached; combinations are generated with the original words
// first, so the unexpanded query is always among the scored ones.
const SynonymProductCap = 256

// expandQuery tokenizes the query into words, substitutes every word
// by itself or one of its synonyms, and returns up to limit
// concatenated combinations.
func expandQuery(query string, expander SynonymExpander, limit int) []string {
	words := splitWords(query)
	if len(words) == 0 {
		return []string{""}
	}

	options := make([][]string, len(words))
	for i, w := range words {
		options[i] = append([]string{w}, expander.Synonyms(w)...)
	}

	combos := []string{""}
	for _, opts := range options {
		next := make([]string, 0, len(combos)*len(opts))
		for _, prefix := range combos {
			for _, opt := range opts {
				next = append(next, prefix+opt)
				if len(next) == limit {
					break
				}
			}
			if len(next) == limit {
				break
			}
		}
		combos = next
	}
	return combos
}

// splitWords splits a query on anything that is not a letter or a
// digit.
func splitWords(query string) []string {
	var words []string
	start := -1
	runes := []rune(query)
	for i, r := range runes {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if start == -1 {
				start = i
			}
		} else if start != -1 {
			words = append(words, string(runes[start:i]))
			start = -1
		}
	}
	if start != -1 {
		words = append(words, string(runes[start:]))
	}
	return words
}
