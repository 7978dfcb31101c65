// Package partofspeech maps part-of-speech exclusion flags to the ranking engine's filter codes.
package partofspeech

import (
	"strings"

	"github.com/pkg/errors"
)

// Engine filter codes, in canonical order.
const (
	CodeNoun         = "с"
	CodeAdjective    = "п"
	CodePronoun      = "мс"
	CodePronounAdj   = "мс-п"
	CodeVerb         = "г"
	CodeAdverb       = "н"
	CodeNumeral      = "числ"
	CodeNumeralAdj   = "числ-п"
	CodeLinking      = "вводн"
	CodeInterjection = "межд"
	CodePredicative  = "предик"
	CodePreposition  = "предл"
	CodeConjunction  = "союз"
	CodeComparative  = "сравн"
	CodeParticle     = "част"
	CodeMisc         = "?"
)

// Filter holds one exclusion flag per part of speech. A true flag removes that part of speech
// from the ranked output.
type Filter struct {
	Noun         bool `json:"noun"`
	Adj          bool `json:"adj"`
	Pronoun      bool `json:"pronoun"`
	PronounAdj   bool `json:"pronoun_adj"`
	Verb         bool `json:"verb"`
	Adv          bool `json:"adv"`
	Num          bool `json:"num"`
	NumAdj       bool `json:"num_adj"`
	Linking      bool `json:"linking"`
	Interjection bool `json:"interjection"`
	Pred         bool `json:"pred"`
	Prep         bool `json:"prep"`
	Conj         bool `json:"conj"`
	Compare      bool `json:"compare"`
	Part         bool `json:"part"`
	Misc         bool `json:"misc"`
}

type entry struct {
	name string
	code string
	flag func(f *Filter) *bool
}

//nolint:gochecknoglobals // Fixed vocabulary
var vocabulary = []entry{
	{"noun", CodeNoun, func(f *Filter) *bool { return &f.Noun }},
	{"adj", CodeAdjective, func(f *Filter) *bool { return &f.Adj }},
	{"pronoun", CodePronoun, func(f *Filter) *bool { return &f.Pronoun }},
	{"pronoun_adj", CodePronounAdj, func(f *Filter) *bool { return &f.PronounAdj }},
	{"verb", CodeVerb, func(f *Filter) *bool { return &f.Verb }},
	{"adv", CodeAdverb, func(f *Filter) *bool { return &f.Adv }},
	{"num", CodeNumeral, func(f *Filter) *bool { return &f.Num }},
	{"num_adj", CodeNumeralAdj, func(f *Filter) *bool { return &f.NumAdj }},
	{"linking", CodeLinking, func(f *Filter) *bool { return &f.Linking }},
	{"interjection", CodeInterjection, func(f *Filter) *bool { return &f.Interjection }},
	{"pred", CodePredicative, func(f *Filter) *bool { return &f.Pred }},
	{"prep", CodePreposition, func(f *Filter) *bool { return &f.Prep }},
	{"conj", CodeConjunction, func(f *Filter) *bool { return &f.Conj }},
	{"compare", CodeComparative, func(f *Filter) *bool { return &f.Compare }},
	{"part", CodeParticle, func(f *Filter) *bool { return &f.Part }},
	{"misc", CodeMisc, func(f *Filter) *bool { return &f.Misc }},
}

// Codes returns the filter codes of all set flags, in canonical order.
func (f Filter) Codes() (codes []string) {
	codes = make([]string, 0, len(vocabulary))
	for _, e := range vocabulary {
		if *e.flag(&f) {
			codes = append(codes, e.code)
		}
	}
	return codes
}

// Names lists the flag names accepted by ParseNames, in canonical order.
func Names() (names []string) {
	names = make([]string, len(vocabulary))
	for i, e := range vocabulary {
		names[i] = e.name
	}
	return names
}

// ParseNames builds a Filter with the named flags set. Names are case-insensitive.
func ParseNames(list []string) (f Filter, err error) {
	for _, raw := range list {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}

		found := false
		for _, e := range vocabulary {
			if e.name == name {
				*e.flag(&f) = true
				found = true
				break
			}
		}

		if !found {
			err = errors.Errorf("unknown part of speech %q (known: %s)", raw, strings.Join(Names(), ", "))
			return f, err
		}
	}

	return f, err
}

// Known reports whether code belongs to the filter vocabulary.
func Known(code string) (ok bool) {
	for _, e := range vocabulary {
		if e.code == code {
			ok = true
			return ok
		}
	}
	return ok
}
