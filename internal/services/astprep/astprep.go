// Package astprep holds the string-preparation step shared by every
// annotated-suffix-tree backend: assigning each fragment a unique
// terminator and rejecting input that collides with the reserved
// terminator alphabet. It imports only the standard library so the tree and
// EASA backends can both import it without creating a cycle with the
// public ast package.
package astprep

import (
	"errors"
	"fmt"
)

// TerminatorBase is the first code point of the reserved terminator
// range. Fragment i is terminated with TerminatorBase+i, so input text
// must never contain a rune in [TerminatorBase, TerminatorBase+len(fragments)).
const TerminatorBase = rune(0x0A00)

var (
	// ErrEmptyCollection is returned when BuildIndex is given zero fragments.
	ErrEmptyCollection = errors.New("ast: fragment collection is empty")
	// ErrReservedCharacter is returned when a fragment contains a rune
	// reserved for terminator assignment, or the NUL rune reserved for
	// the EASA backend's suffix-array sentinel.
	ErrReservedCharacter = errors.New("ast: fragment contains a reserved character")
)

// MakeUniqueEndings validates fragments and appends a unique terminator
// rune to each one, guaranteeing no suffix of one fragment is a prefix
// of another fragment's suffix set.
func MakeUniqueEndings(fragments []string) ([][]rune, error) {
	if len(fragments) == 0 {
		return nil, ErrEmptyCollection
	}
	top := TerminatorBase + rune(len(fragments))
	strs := make([][]rune, len(fragments))
	for i, f := range fragments {
		runes := []rune(f)
		for _, r := range runes {
			if r == 0 || (r >= TerminatorBase && r < top) {
				return nil, fmt.Errorf("%w: fragment %d contains %U", ErrReservedCharacter, i, r)
			}
		}
		s := make([]rune, len(runes)+1)
		copy(s, runes)
		s[len(runes)] = TerminatorBase + rune(i)
		strs[i] = s
	}
	return strs, nil
}

// Concat flattens a prepared fragment collection into the single
// string the EASA backend builds its suffix array over.
func Concat(strs [][]rune) []rune {
	n := 0
	for _, s := range strs {
		n += len(s)
	}
	out := make([]rune, 0, n)
	for _, s := range strs {
		out = append(out, s...)
	}
	return out
}

// MatchLen returns the length of the common prefix of a and b.
func MatchLen(a, b []rune) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}
