// internal/ai/normalize.go
package ai

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Provider output is free text. Everything that scrapes structure out of it
// lives in this file.

var (
	numberedLine     = regexp.MustCompile(`(?m)^[ \t>*_#-]*\d+[.)][ \t]+(.+?)[ \t]*$`)
	charCountSuffix  = regexp.MustCompile(`(?i)[ \t]*[(\[]\d+[ \t]*(?:characters|chars)[)\]]$`)
	alternativeLabel = regexp.MustCompile(`(?im)^[ \t>#*_]*alternative[ \t]+(?:version[ \t]+)?#?\d+[ \t*_]*(?::[ \t*_]*|$)`)
	reasoningLabel   = regexp.MustCompile(`(?im)(?:^|([.!?]))[ \t>#*_-]*(?:reasoning|reason|explanation|rationale|why (?:it|this) (?:might|may|could|will) perform better)[ \t*_]*:`)

	stripPolicy = bluemonday.StripTagsPolicy()
)

// ParseTitleCandidates splits a numbered list ("1. ...") into its items. A
// reply without any numbered line is returned as a single candidate.
func ParseTitleCandidates(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return []string{}
	}

	var candidates []string
	for _, m := range numberedLine.FindAllStringSubmatch(text, -1) {
		if c := cleanTitle(m[1]); c != "" {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return []string{cleanTitle(text)}
	}
	return candidates
}

func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = charCountSuffix.ReplaceAllString(s, "")
	s = strings.Trim(s, "*_ \t")
	return trimQuotes(s)
}

// CleanAlternative reduces a revision reply to one clean body. When the model
// produced several "Alternative N:" sections only the last one is kept, and
// any trailing reasoning section is dropped.
func CleanAlternative(text string) string {
	body := strings.TrimSpace(text)

	if locs := alternativeLabel.FindAllStringIndex(body, -1); len(locs) > 0 {
		// Walk back past empty sections so a dangling header does not win.
		for i := len(locs) - 1; i >= 0; i-- {
			end := len(body)
			if i+1 < len(locs) {
				end = locs[i+1][0]
			}
			if section := stripReasoning(body[locs[i][1]:end]); section != "" {
				return section
			}
		}
	}
	return stripReasoning(body)
}

func stripReasoning(s string) string {
	// A label may start a line or follow a sentence on the same line. In the
	// second case the sentence keeps its closing punctuation.
	if loc := reasoningLabel.FindStringSubmatchIndex(s); loc != nil {
		cut := loc[0]
		if loc[3] > 0 {
			cut = loc[3]
		}
		s = s[:cut]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "-*_ \t\n")
	return trimQuotes(strings.TrimSpace(s))
}

func trimQuotes(s string) string {
	pairs := [][2]string{{`"`, `"`}, {"“", "”"}, {"'", "'"}}
	for _, p := range pairs {
		if len(s) >= len(p[0])+len(p[1]) && strings.HasPrefix(s, p[0]) && strings.HasSuffix(s, p[1]) {
			inner := s[len(p[0]) : len(s)-len(p[1])]
			if !strings.Contains(inner, p[0]) && !strings.Contains(inner, p[1]) {
				return strings.TrimSpace(inner)
			}
		}
	}
	return s
}

// PlainText removes any HTML the model emitted and undoes entity escaping.
func PlainText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}
