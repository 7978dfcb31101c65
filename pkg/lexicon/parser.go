package lexicon

import (
	"fmt"
	"unicode"

	"github.com/pkg/errors"
)

// ErrNoWord is returned when the input contains no letters at all.
var ErrNoWord = errors.New("enter a word to find rhymes for")

// UnknownWordError is returned for a well-formed word missing from the corpus.
type UnknownWordError struct {
	Word string
}

func (e *UnknownWordError) Error() string {
	return fmt.Sprintf("unknown word: %s", e.Word)
}

// Parse converts raw user input into a corpus word. For free text the last word is the
// rhyme target.
func (l *Lexicon) Parse(raw string) (word Word, err error) {
	tokens := Tokenize(raw)
	if len(tokens) == 0 {
		err = ErrNoWord
		return word, err
	}

	text := Normalize(tokens[len(tokens)-1])

	var ok bool
	word, ok = l.Lookup(text)
	if !ok {
		err = &UnknownWordError{Word: text}
		return word, err
	}

	return word, err
}

// Tokenize splits text into words: runs of letters, with inner hyphens kept.
func Tokenize(text string) (tokens []string) {
	runes := []rune(text)
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		// drop trailing hyphens
		for end > start && runes[end-1] == '-' {
			end--
		}
		if end > start {
			tokens = append(tokens, string(runes[start:end]))
		}
		start = -1
	}

	for i, r := range runes {
		switch {
		case unicode.IsLetter(r):
			if start < 0 {
				start = i
			}
		case r == '-' && start >= 0:
		default:
			flush(i)
		}
	}
	flush(len(runes))

	return tokens
}
