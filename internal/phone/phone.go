// Package phone locates phone-number-shaped substrings in plain text.
//
// The matcher is an explicit grouped-pattern scanner. The shape it matches,
// in order:
//
//	optional country code:  "+"? digit{1,3} sep?
//	optional area code:     "("? digit{2,3} ")"? sep?
//	first group:            digit{3,4} sep?
//	second group:           digit{3,4}
//
// where sep is one of space, hyphen, or period. Alternatives are tried in
// greedy preference order and the scan is leftmost, non-overlapping.
package phone

import "strings"

// minCandidateLen rejects short accidental matches such as bare 4-digit
// groups. Candidates are trimmed before the length check.
const minCandidateLen = 8

// Extract returns the deduplicated phone-number candidates found in text, in
// first-seen order. Callers must treat the result as a set. Empty or
// digit-free text yields an empty slice.
func Extract(text string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, 4)
	for i := 0; i < len(text); {
		end, ok := matchAt(text, i)
		if !ok {
			i++
			continue
		}
		cand := strings.TrimSpace(text[i:end])
		i = end
		if len(cand) < minCandidateLen {
			continue
		}
		if _, dup := seen[cand]; dup {
			continue
		}
		seen[cand] = struct{}{}
		out = append(out, cand)
	}
	return out
}

// matchAt reports the end offset of the first phone-shaped match anchored at
// start, trying alternatives in the same preference order a backtracking
// pattern engine would.
func matchAt(s string, start int) (int, bool) {
	for _, p1 := range countryCodeEnds(s, start) {
		for _, p2 := range areaCodeEnds(s, p1) {
			for _, p3 := range firstGroupEnds(s, p2) {
				if end, ok := secondGroupEnd(s, p3); ok {
					return end, true
				}
			}
		}
	}
	return 0, false
}

// countryCodeEnds enumerates end offsets for the optional country code group:
// an optional "+", one to three digits, then an optional separator. The final
// entry is always i itself, the group-absent alternative.
func countryCodeEnds(s string, i int) []int {
	var out []int
	variant := func(from int) {
		for n := 3; n >= 1; n-- {
			if j, ok := digitsAt(s, from, n); ok {
				out = appendWithSep(out, s, j)
			}
		}
	}
	if i < len(s) && s[i] == '+' {
		variant(i + 1)
	}
	variant(i)
	return append(out, i)
}

// areaCodeEnds enumerates end offsets for the optional area code group: two
// or three digits, optionally parenthesized, then an optional separator.
func areaCodeEnds(s string, i int) []int {
	var out []int
	digitsPart := func(from int) {
		for n := 3; n >= 2; n-- {
			if j, ok := digitsAt(s, from, n); ok {
				if j < len(s) && s[j] == ')' {
					out = appendWithSep(out, s, j+1)
				}
				out = appendWithSep(out, s, j)
			}
		}
	}
	if i < len(s) && s[i] == '(' {
		digitsPart(i + 1)
	}
	digitsPart(i)
	return append(out, i)
}

// firstGroupEnds enumerates end offsets for the required three-to-four digit
// group plus its optional trailing separator.
func firstGroupEnds(s string, i int) []int {
	var out []int
	for n := 4; n >= 3; n-- {
		if j, ok := digitsAt(s, i, n); ok {
			out = appendWithSep(out, s, j)
		}
	}
	return out
}

// secondGroupEnd matches the final required three-to-four digit group.
func secondGroupEnd(s string, i int) (int, bool) {
	for n := 4; n >= 3; n-- {
		if j, ok := digitsAt(s, i, n); ok {
			return j, true
		}
	}
	return 0, false
}

// appendWithSep records the separator-consumed alternative before the
// separator-skipped one, matching greedy "sep?" preference.
func appendWithSep(out []int, s string, j int) []int {
	if isSep(s, j) {
		out = append(out, j+1)
	}
	return append(out, j)
}

// digitsAt reports the offset just past n consecutive ASCII digits at i.
func digitsAt(s string, i, n int) (int, bool) {
	if i+n > len(s) {
		return 0, false
	}
	for k := i; k < i+n; k++ {
		if s[k] < '0' || s[k] > '9' {
			return 0, false
		}
	}
	return i + n, true
}

func isSep(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	switch s[i] {
	case ' ', '\t', '\n', '\r', '\f', '\v', '-', '.':
		return true
	}
	return false
}
