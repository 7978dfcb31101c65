// Package renderer turns text into highlight spans and writes them out.
package renderer

import (
	"unicode"

	"github.com/pkg/errors"

	"github.com/nikogura/rhymer/pkg/highlight"
	"github.com/nikogura/rhymer/pkg/lexicon"
)

// Marker renders highlights from the lexicon: stresses and vowels in rhythm mode, known and
// unknown words in words mode.
type Marker struct {
	lex *lexicon.Lexicon
}

// NewMarker creates a renderer over a shared lexicon.
func NewMarker(lex *lexicon.Lexicon) (marker *Marker) {
	marker = &Marker{lex: lex}
	return marker
}

// Render implements highlight.Renderer.
func (m *Marker) Render(text string, mode highlight.Mode) (styled highlight.StyledText, err error) {
	switch mode {
	case highlight.ModeDisabled:
		styled = highlight.Plain(text)
		return styled, err
	case highlight.ModeRhythm, highlight.ModeWords:
	default:
		err = errors.Errorf("cannot render mode %q", mode)
		return styled, err
	}

	runes := []rune(text)
	start := -1
	for i := 0; i <= len(runes); i++ {
		if i < len(runes) && unicode.IsLetter(runes[i]) {
			if start < 0 {
				start = i
			}
			continue
		}

		if start >= 0 {
			m.word(&styled, runes[start:i], mode)
			start = -1
		}
		if i < len(runes) {
			styled.Append(string(runes[i]), highlight.StylePlain)
		}
	}

	return styled, err
}

func (m *Marker) word(styled *highlight.StyledText, token []rune, mode highlight.Mode) {
	normalized := lexicon.Normalize(string(token))
	word, known := m.lex.Lookup(normalized)

	if mode == highlight.ModeWords {
		style := highlight.StyleUnknown
		if known {
			style = highlight.StyleKnown
		}
		styled.Append(string(token), style)
		return
	}

	stressed := -1
	if known && len([]rune(normalized)) == len(token) {
		stressed = word.StressedIndex()
	}

	for i, r := range token {
		switch {
		case i == stressed:
			styled.Append(string(r), highlight.StyleStressed)
		case lexicon.IsVowel(unicode.ToLower(r)):
			styled.Append(string(r), highlight.StyleVowel)
		default:
			styled.Append(string(r), highlight.StylePlain)
		}
	}
}
