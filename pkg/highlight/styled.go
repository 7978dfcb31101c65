// Package highlight caches rendered highlight spans for editor text.
package highlight

import (
	"strings"

	"github.com/pkg/errors"
)

// Mode selects which highlight domain is active.
type Mode string

const (
	// ModeRhythm marks vowels and stresses, the rhyme domain.
	ModeRhythm Mode = "rhythm"
	// ModeWords marks known and unknown words, the plain-word domain.
	ModeWords Mode = "words"
	// ModeDisabled bypasses rendering and caching.
	ModeDisabled Mode = "none"
)

// ParseMode maps a user-supplied name onto a Mode. An empty name is an error.
func ParseMode(name string) (mode Mode, err error) {
	switch Mode(strings.ToLower(strings.TrimSpace(name))) {
	case ModeRhythm:
		mode = ModeRhythm
	case ModeWords:
		mode = ModeWords
	case ModeDisabled, "off", "disabled":
		mode = ModeDisabled
	default:
		err = errors.Errorf("unknown highlight mode: %q (expected rhythm, words or none)", name)
	}
	return mode, err
}

// Style is the visual class of a span.
type Style string

// Span styles.
const (
	StylePlain    Style = "plain"
	StyleVowel    Style = "vowel"
	StyleStressed Style = "stressed"
	StyleKnown    Style = "known"
	StyleUnknown  Style = "unknown"
)

// Span is a run of text sharing one style.
type Span struct {
	Text  string `json:"text"`
	Style Style  `json:"style"`
}

// StyledText is an ordered list of spans covering the source text exactly.
type StyledText struct {
	Spans []Span `json:"spans"`
}

// Plain wraps text in a single unstyled span.
func Plain(text string) (styled StyledText) {
	if text == "" {
		return styled
	}
	styled.Spans = []Span{{Text: text, Style: StylePlain}}
	return styled
}

// Append adds text with a style, merging into the previous span when the style matches.
func (s *StyledText) Append(text string, style Style) {
	if text == "" {
		return
	}
	if n := len(s.Spans); n > 0 && s.Spans[n-1].Style == style {
		s.Spans[n-1].Text += text
		return
	}
	s.Spans = append(s.Spans, Span{Text: text, Style: style})
}

// String returns the source text.
func (s StyledText) String() string {
	var b strings.Builder
	for _, span := range s.Spans {
		b.WriteString(span.Text)
	}
	return b.String()
}

func (s StyledText) clone() (out StyledText) {
	if s.Spans == nil {
		return out
	}
	out.Spans = append([]Span(nil), s.Spans...)
	return out
}
