// Package reconcile matches provider-reported player names against the
// canonical roster. The matcher is deliberately conservative: a false
// positive corrupts scoring permanently, a false negative only leaves a
// player unscored until a later cycle supplies better data. There is no
// edit-distance tier for that reason.
package reconcile

import (
	"strings"
	"unicode"
)

// Names reports whether an externally sourced name and a canonical roster
// name refer to the same player. Tiers are tried in order, first hit wins:
//
//  1. normalized equality
//  2. equal surnames (longer than 2 letters) with equal first initials
//  3. substring containment either direction, spaces stripped
func Names(external, canonical string) bool {
	left := Normalize(external)
	right := Normalize(canonical)
	if left == "" || right == "" {
		return false
	}
	if left == right {
		return true
	}

	leftTokens := strings.Fields(left)
	rightTokens := strings.Fields(right)
	if len(leftTokens) > 1 && len(rightTokens) > 1 {
		leftSurname := leftTokens[len(leftTokens)-1]
		rightSurname := rightTokens[len(rightTokens)-1]
		if leftSurname == rightSurname && len(leftSurname) > 2 &&
			leftTokens[0][0] == rightTokens[0][0] {
			return true
		}
	}

	leftJoined := strings.ReplaceAll(left, " ", "")
	rightJoined := strings.ReplaceAll(right, " ", "")
	return strings.Contains(leftJoined, rightJoined) || strings.Contains(rightJoined, leftJoined)
}

// Normalize lowercases a name, drops everything except letters and spaces,
// and collapses runs of whitespace.
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsSpace(r), r == '.', r == '-', r == '\'':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// FindInRoster returns the first roster name the external name resolves to,
// or "" when nothing matches.
func FindInRoster(external string, roster []string) string {
	for _, candidate := range roster {
		if Names(external, candidate) {
			return candidate
		}
	}
	return ""
}
