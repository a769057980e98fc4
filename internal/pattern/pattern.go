// Package pattern wraps regular expressions used to match names and lines,
// and expands $(n) capture-group templates for rename, copy and move.
package pattern

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// ErrInvalidPattern is returned by Compile for malformed expressions.
var ErrInvalidPattern = errors.New("invalid regex pattern")

// groupToken matches $(n) references inside templates.
var groupToken = regexp.MustCompile(`\$\((\d+)\)`)

// Pattern is a compiled regular expression.
type Pattern struct {
	source string
	re     *regexp.Regexp
}

// Compile parses expr. The expression is NFC-normalized first so composed and
// decomposed spellings of the same pattern behave alike.
func Compile(expr string) (*Pattern, error) {
	re, err := regexp.Compile(norm.NFC.String(expr))
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %v", ErrInvalidPattern, expr, err)
	}
	return &Pattern{source: expr, re: re}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the expression the pattern was compiled from.
func (p *Pattern) String() string {
	return p.source
}

// Match is the split of a text around the leftmost match of a pattern.
type Match struct {
	Before  string
	Matched string
	After   string

	groups []string
}

// Groups returns the capture groups of the match; index 0 is the whole match.
// Groups that did not participate are empty.
func (m Match) Groups() []string {
	return m.groups
}

// Search returns the leftmost match of p in text. The boolean is false when
// nothing matched.
func (p *Pattern) Search(text string) (Match, bool) {
	loc := p.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return Match{}, false
	}
	groups := make([]string, len(loc)/2)
	for i := range groups {
		start, end := loc[2*i], loc[2*i+1]
		if start >= 0 {
			groups[i] = text[start:end]
		}
	}
	return Match{
		Before:  text[:loc[0]],
		Matched: text[loc[0]:loc[1]],
		After:   text[loc[1]:],
		groups:  groups,
	}, true
}

// MatchString reports whether text contains a match of p.
func (p *Pattern) MatchString(text string) bool {
	return p.re.MatchString(text)
}

// Substitute expands $(n) tokens in template with the match's groups.
func (m Match) Substitute(template string) string {
	return Substitute(m.groups, template)
}

// Substitute replaces each $(n) in template with groups[n]. References to
// missing groups expand to the empty string.
func Substitute(groups []string, template string) string {
	return groupToken.ReplaceAllStringFunc(template, func(token string) string {
		sub := groupToken.FindStringSubmatch(token)
		idx, err := strconv.Atoi(sub[1])
		if err != nil || idx >= len(groups) {
			return ""
		}
		return groups[idx]
	})
}
