// Package cloze provides pure functions for parsing and rendering cloze
// deletions in card text.
//
// Syntax:
//
//	{{c1::text}}        simple cloze deletion
//	{{c1::text::hint}}  cloze deletion with a hint shown as [hint]
//
// A card may contain several deletions; the number (c1, c2, ...) groups
// related deletions so they are blanked together.
package cloze

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// pattern matches {{c1::text}} or {{c1::text::hint}}.
var pattern = regexp.MustCompile(`\{\{c(\d+)::([^:}]+)(?:::([^}]+))?\}\}`)

// bracePattern matches anything brace-delimited, used to detect malformed
// deletions that look like cloze syntax but do not parse.
var bracePattern = regexp.MustCompile(`\{\{[^}]*\}\}`)

// Match represents a single cloze deletion found in text.
type Match struct {
	Full   string // the full {{cN::...}} source
	Number int    // the cloze group number
	Answer string
	Hint   string // empty when no hint was given
	Start  int    // byte offset of the match
	End    int
}

// Parse returns all cloze deletions in the text, in order of position.
func Parse(text string) []Match {
	var matches []Match
	for _, idx := range pattern.FindAllStringSubmatchIndex(text, -1) {
		number, err := strconv.Atoi(text[idx[2]:idx[3]])
		if err != nil {
			continue
		}

		m := Match{
			Full:   text[idx[0]:idx[1]],
			Number: number,
			Answer: text[idx[4]:idx[5]],
			Start:  idx[0],
			End:    idx[1],
		}
		if idx[6] >= 0 {
			m.Hint = text[idx[6]:idx[7]]
		}
		matches = append(matches, m)
	}
	return matches
}

// Numbers returns the distinct cloze group numbers in the text, ascending.
func Numbers(text string) []int {
	seen := make(map[int]bool)
	for _, m := range Parse(text) {
		seen[m.Number] = true
	}

	numbers := make([]int, 0, len(seen))
	for n := range seen {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// RenderQuestion renders the text for the question side of a review.
// Deletions in the active group are replaced with a blank ([...] or [hint]);
// deletions in other groups are revealed. An activeNumber of 0 blanks every
// group.
func RenderQuestion(text string, activeNumber int) string {
	return replaceAll(text, func(m Match) string {
		if activeNumber != 0 && m.Number != activeNumber {
			return m.Answer
		}
		if m.Hint != "" {
			return "[" + m.Hint + "]"
		}
		return "[...]"
	})
}

// RenderAnswer renders the text for the answer side of a review, revealing
// every deletion and emphasizing the active group.
func RenderAnswer(text string, activeNumber int) string {
	return replaceAll(text, func(m Match) string {
		if activeNumber != 0 && m.Number == activeNumber {
			return "**" + m.Answer + "**"
		}
		return m.Answer
	})
}

// Answers returns the answer text of every deletion, in order of position.
func Answers(text string) []string {
	matches := Parse(text)
	answers := make([]string, len(matches))
	for i, m := range matches {
		answers[i] = m.Answer
	}
	return answers
}

// IsValid reports whether the text contains at least one well-formed cloze
// deletion.
func IsValid(text string) bool {
	return pattern.MatchString(text)
}

// Validate checks the cloze syntax of the text and returns a list of
// human-readable problems. An empty list means the text is valid.
func Validate(text string) []string {
	var errs []string

	if !IsValid(text) {
		errs = append(errs, "no valid cloze deletions found; use {{c1::text}} syntax")
		return errs
	}

	if strings.Count(text, "{{") != strings.Count(text, "}}") {
		errs = append(errs, "mismatched braces; ensure each {{ has a matching }}")
	}

	// Brace-delimited fragments that do not parse are malformed deletions.
	if len(bracePattern.FindAllString(text, -1)) > len(Parse(text)) {
		errs = append(errs, fmt.Sprintf(
			"some cloze deletions are malformed; use %s or %s format",
			"{{c1::text}}", "{{c1::text::hint}}"))
	}

	return errs
}

// replaceAll substitutes every cloze deletion in the text using fn.
func replaceAll(text string, fn func(Match) string) string {
	matches := Parse(text)
	if len(matches) == 0 {
		return text
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(text[last:m.Start])
		b.WriteString(fn(m))
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String()
}
