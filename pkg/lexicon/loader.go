// Package lexicon loads the word corpus and parses user input into corpus words.
package lexicon

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// customFreq ranks user-added words above everything in the corpus.
const customFreq = 1_000_000_000

// errSkipLine signals that a line should be skipped (comment, empty).
var errSkipLine = errors.New("skip line")

// Lexicon is the in-memory word corpus. Build it once at startup and share it read-only.
type Lexicon struct {
	words map[string]Word
	order []string
	stats Stats
}

// Load memory-maps the corpus file at path and parses it.
//
// The format is one word per line, tab separated:
//
//	word  freq  [pos  [stress  [v1,v2,...]]]
//
// Lines starting with '#' are comments.
func Load(path string) (lex *Lexicon, err error) {
	var f *os.File
	f, err = os.Open(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to open corpus: %s", path)
		return lex, err
	}
	defer f.Close()

	var info os.FileInfo
	info, err = f.Stat()
	if err != nil {
		err = errors.Wrapf(err, "failed to stat corpus: %s", path)
		return lex, err
	}

	if info.Size() == 0 {
		err = errors.Errorf("corpus is empty: %s", path)
		return lex, err
	}

	var m mmap.MMap
	m, err = mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		err = errors.Wrapf(err, "failed to map corpus: %s", path)
		return lex, err
	}
	defer func() {
		unmapErr := m.Unmap()
		if err == nil && unmapErr != nil {
			err = errors.Wrapf(unmapErr, "failed to unmap corpus: %s", path)
		}
	}()

	lex, err = Parse(bytes.NewReader(m))
	if err != nil {
		err = errors.Wrapf(err, "failed to parse corpus: %s", path)
		return lex, err
	}

	return lex, err
}

// Parse reads a corpus from r.
func Parse(r io.Reader) (lex *Lexicon, err error) {
	lex = &Lexicon{words: make(map[string]Word)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		lex.stats.TotalLines++
		line := scanner.Text()

		word, lineErr := parseLine(line)
		if lineErr == errSkipLine {
			if strings.HasPrefix(strings.TrimSpace(line), "#") {
				lex.stats.CommentLines++
			}
			continue
		}
		if lineErr != nil {
			lex.stats.SkippedLines++
			continue
		}

		lex.stats.ParsedLines++
		lex.words[word.Text] = word
	}

	err = scanner.Err()
	if err != nil {
		err = errors.Wrap(err, "failed to scan corpus")
		return lex, err
	}

	lex.reindex()

	err = lex.Validate()
	return lex, err
}

func parseLine(line string) (word Word, err error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		err = errSkipLine
		return word, err
	}

	parts := strings.Split(trimmed, "\t")
	if len(parts) < 2 {
		err = errors.Errorf("expected at least 2 columns, got %d", len(parts))
		return word, err
	}

	word.Text = Normalize(parts[0])
	if word.Text == "" {
		err = errors.New("empty word")
		return word, err
	}

	word.Freq, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		err = errors.Wrapf(err, "bad frequency for %s", word.Text)
		return word, err
	}

	word.POS = "?"
	if len(parts) > 2 && strings.TrimSpace(parts[2]) != "" {
		word.POS = strings.TrimSpace(parts[2])
	}

	if len(parts) > 3 && strings.TrimSpace(parts[3]) != "" {
		word.Stress, err = strconv.Atoi(strings.TrimSpace(parts[3]))
		if err != nil {
			err = errors.Wrapf(err, "bad stress for %s", word.Text)
			return word, err
		}
	}

	if len(parts) > 4 && strings.TrimSpace(parts[4]) != "" {
		word.Vector, err = parseVector(parts[4])
		if err != nil {
			err = errors.Wrapf(err, "bad vector for %s", word.Text)
			return word, err
		}
	}

	return word, err
}

func parseVector(raw string) (vec []float64, err error) {
	fields := strings.Split(raw, ",")
	vec = make([]float64, len(fields))
	for i, f := range fields {
		vec[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, err
		}
	}
	return vec, err
}

// Validate checks that the corpus is usable.
func (l *Lexicon) Validate() (err error) {
	if len(l.words) == 0 {
		err = errors.New("no words found in corpus")
		return err
	}
	return err
}

// Merge adds user words that are not in the corpus yet. Call it before sharing the lexicon.
func (l *Lexicon) Merge(words []string) (added int) {
	for _, raw := range words {
		text := Normalize(raw)
		if text == "" {
			continue
		}
		if _, exists := l.words[text]; exists {
			continue
		}
		l.words[text] = Word{Text: text, Freq: customFreq, POS: "?"}
		added++
	}

	if added > 0 {
		l.stats.CustomWords += added
		l.reindex()
	}
	return added
}

func (l *Lexicon) reindex() {
	l.order = make([]string, 0, len(l.words))
	for text := range l.words {
		l.order = append(l.order, text)
	}
	sort.Strings(l.order)
}

// Lookup returns the entry for an already normalized word.
func (l *Lexicon) Lookup(text string) (word Word, ok bool) {
	word, ok = l.words[text]
	return word, ok
}

// Words returns every entry in alphabetical order.
func (l *Lexicon) Words() (words []Word) {
	words = make([]Word, len(l.order))
	for i, text := range l.order {
		words[i] = l.words[text]
	}
	return words
}

// Len is the number of entries.
func (l *Lexicon) Len() (n int) {
	n = len(l.words)
	return n
}

// Stats returns the loader statistics.
func (l *Lexicon) Stats() (stats Stats) {
	stats = l.stats
	return stats
}

// Normalize trims and lower-cases a word with Russian casing rules.
func Normalize(s string) (normalized string) {
	normalized = cases.Lower(language.Russian).String(strings.TrimSpace(s))
	return normalized
}
