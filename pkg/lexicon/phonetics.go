package lexicon

import "strings"

const vowels = "аеёиоуыэюяaeiouy"

// IsVowel reports whether r is a vowel letter (Cyrillic or Latin, lower case).
func IsVowel(r rune) (ok bool) {
	ok = strings.ContainsRune(vowels, r)
	return ok
}

// VowelPositions returns the rune indexes of the vowels of s, in order.
func VowelPositions(s string) (positions []int) {
	for i, r := range []rune(s) {
		if IsVowel(r) {
			positions = append(positions, i)
		}
	}
	return positions
}

// Syllables is the number of vowels in the word.
func (w Word) Syllables() (n int) {
	n = len(VowelPositions(w.Text))
	return n
}

// StressedIndex returns the rune index of the stressed vowel, falling back to the last vowel
// when the stress is unknown or out of range. It returns -1 for words without vowels.
func (w Word) StressedIndex() (idx int) {
	positions := VowelPositions(w.Text)
	if len(positions) == 0 {
		idx = -1
		return idx
	}

	if w.Stress >= 1 && w.Stress <= len(positions) {
		idx = positions[w.Stress-1]
		return idx
	}

	idx = positions[len(positions)-1]
	return idx
}

// Ending is the part of the word from the stressed vowel to the end.
func (w Word) Ending() (ending string) {
	idx := w.StressedIndex()
	if idx < 0 {
		ending = w.Text
		return ending
	}
	ending = string([]rune(w.Text)[idx:])
	return ending
}

// Consonants returns the consonant letters of s, in order.
func Consonants(s string) (out []rune) {
	for _, r := range []rune(s) {
		if !IsVowel(r) && r != 'ь' && r != 'ъ' && r != '-' {
			out = append(out, r)
		}
	}
	return out
}
