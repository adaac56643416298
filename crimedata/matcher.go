package crimedata

import "strings"

// HeaderMatcher picks one column out of a normalized header row.
type HeaderMatcher interface {
	Match(headers []string) (int, bool)
}

// Contains matches the first header that contains every fragment. Matching is case-sensitive.
type Contains []string

func (c Contains) Match(headers []string) (int, bool) {
	if len(c) == 0 {
		return -1, false
	}
	for i, h := range headers {
		if containsAll(h, c) {
			return i, true
		}
	}
	return -1, false
}

func containsAll(s string, fragments []string) bool {
	for _, f := range fragments {
		if !strings.Contains(s, f) {
			return false
		}
	}
	return true
}

// Ranked tries its candidates in order and returns the first hit.
type Ranked []HeaderMatcher

func (r Ranked) Match(headers []string) (int, bool) {
	for _, m := range r {
		if i, ok := m.Match(headers); ok {
			return i, true
		}
	}
	return -1, false
}

// RankedFromFragments builds a Ranked matcher from profile candidates such as [["Straftaten","insgesamt"]].
func RankedFromFragments(candidates [][]string) Ranked {
	out := make(Ranked, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, Contains(c))
	}
	return out
}

// NormalizeHeader folds embedded line breaks into spaces and trims the result.
func NormalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\r\n", " ")
	h = strings.ReplaceAll(h, "\n", " ")
	h = strings.ReplaceAll(h, "\r", " ")
	return strings.TrimSpace(h)
}
