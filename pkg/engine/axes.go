package engine

import (
	"math"
	"unicode"

	"github.com/nikogura/rhymer/pkg/lexicon"
	"github.com/nikogura/rhymer/pkg/scoring"
)

// features are the per-word measurements the axes work from.
type features struct {
	word        lexicon.Word
	runes       []rune
	ending      string
	afterStress int
	stressed    rune
}

func measure(w lexicon.Word) (f features) {
	f.word = w
	f.runes = []rune(w.Text)
	f.ending = w.Ending()

	idx := w.StressedIndex()
	if idx >= 0 {
		f.stressed = f.runes[idx]
		f.afterStress = len(lexicon.VowelPositions(f.ending)) - 1
	}
	return f
}

// saturate maps x onto a curve rising as (x+shift)^pow that levels off at asympt once
// asympt is set. Negative bases count as zero.
func saturate(x, shift, pow, asympt, asymptShift float64) (y float64) {
	base := x + shift
	if base <= 0 {
		return 0
	}
	y = math.Pow(base, pow)
	if asympt == 0 {
		return y
	}
	denom := y + asymptShift
	if denom == 0 {
		return 0
	}
	y = asympt * y / denom
	return y
}

// score sums every enabled axis. An axis whose weight is zero is never evaluated.
func score(s scoring.Config, q, c features, relevance float64, singleWordTheme, themed bool) (total float64) {
	if s.Popularity.Weight != 0 {
		total += s.Popularity.Weight * math.Pow(c.word.Freq, s.Popularity.Pow)
	}

	if s.Meaning.Weight != 0 && themed {
		weight, pow := s.Meaning.Weight, s.Meaning.Pow
		if singleWordTheme {
			weight *= s.Meaning.SingleWeight
			pow = s.Meaning.SinglePow
		}
		if weight != 0 {
			total += weight * math.Pow(relevance, pow)
		}
	}

	if s.Stresses.Weight != 0 && s.Stresses.Indexation {
		total += s.Stresses.Weight * stresses(s.Stresses, q, c)
	}

	if s.ConsonantStructure.Weight != 0 {
		total += s.ConsonantStructure.Weight * consonantStructure(s.ConsonantStructure, q, c)
	}

	if s.Alliteration.Weight != 0 {
		total += s.Alliteration.Weight * alliteration(s.Alliteration, q, c)
	}

	total -= unsymmetrical(s.Unsymmetrical, c)
	total += misc(s.Misc, q, c)
	total -= sameSpeechPart(s.SameSpeechPart, q, c)

	if math.IsNaN(total) {
		total = math.Inf(-1)
	}
	return total
}

func stresses(s scoring.Stresses, q, c features) (term float64) {
	var coef float64
	switch {
	case q.stressed == 0 || c.stressed == 0:
		return 0
	case q.ending == c.ending:
		coef = s.KStrictStress
	case q.stressed == c.stressed:
		coef = s.KNotStrictStress
	}

	if coef != 0 {
		term = coef * saturate(float64(c.afterStress), s.ShiftSyllEnding, s.PowSyllEnding, s.Asympt, s.AsymptShift)
	}

	if s.BadRythm != 0 && q.afterStress%2 != c.afterStress%2 {
		term -= s.BadRythm
	}
	return term
}

func consonantStructure(s scoring.ConsonantStructure, q, c features) (term float64) {
	a := lexicon.Consonants(q.ending)
	b := lexicon.Consonants(c.ending)

	common := 0
	for common < len(a) && common < len(b) && a[len(a)-1-common] == b[len(b)-1-common] {
		common++
	}

	mismatch := len(a) - common
	if len(b)-common > mismatch {
		mismatch = len(b) - common
	}

	term = saturate(float64(common), s.ShiftSyllEnding, s.PowSyllEnding, s.Asympt, s.AsymptShift)
	term /= math.Pow(1+float64(mismatch), s.Pow)
	return term
}

func alliteration(s scoring.Alliteration, q, c features) (term float64) {
	qStress := q.word.StressedIndex()
	used := make([]bool, len(c.runes))

	var raw float64
	var matched []int
	for i, r := range q.runes {
		if !isConsonant(r) {
			continue
		}

		best := -1
		for j, cr := range c.runes {
			if used[j] || cr != r {
				continue
			}
			if best < 0 || absInt(j-i) < absInt(best-i) {
				best = j
			}
		}
		if best < 0 {
			continue
		}
		used[best] = true
		matched = append(matched, best)

		closeness := 1 / math.Pow(s.ShiftCoord+float64(absInt(best-i)), s.PowCoordDelta)
		importance := 1.0
		if qStress >= 0 {
			importance = math.Pow(s.ShiftSyllEnding+float64(absInt(qStress-i)), s.PowSyllEnding)
		}
		raw += closeness * importance
	}

	inversions := 0
	for i := range matched {
		for j := i + 1; j < len(matched); j++ {
			if matched[j] < matched[i] {
				inversions++
			}
		}
	}

	term = saturate(raw, 0, 1, s.Asympt, s.AsymptShift)
	if s.Permutations != 0 && len(matched) > 0 {
		term -= s.Permutations * float64(inversions) / float64(len(matched))
	}
	return term
}

func unsymmetrical(s scoring.Unsymmetrical, c features) (penalty float64) {
	length := float64(len(c.runes))
	switch {
	case length < s.OptimalLength && s.LessW != 0:
		penalty = s.LessW * math.Pow(s.OptimalLength-length, s.LessPow)
	case length > s.OptimalLength && s.MoreW != 0:
		penalty = s.MoreW * math.Pow(length-s.OptimalLength, s.MorePow)
	}
	return penalty
}

// misc fines the length difference and rewards words that end on the same letter, vowel or
// consonant alike. Signs ь and ъ do not count as the final letter.
func misc(s scoring.Misc, q, c features) (term float64) {
	if s.LengthDiffFine != 0 {
		term -= s.LengthDiffFine * math.Abs(float64(len(q.runes)-len(c.runes)))
	}
	if s.SameConsEnd != 0 {
		qr, qok := finalLetter(q.runes)
		cr, cok := finalLetter(c.runes)
		if qok && cok && qr == cr {
			term += s.SameConsEnd
		}
	}
	return term
}

func finalLetter(runes []rune) (r rune, ok bool) {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == 'ь' || runes[i] == 'ъ' || !unicode.IsLetter(runes[i]) {
			continue
		}
		r = runes[i]
		ok = true
		return r, ok
	}
	return r, ok
}

func sameSpeechPart(s scoring.SameSpeechPart, q, c features) (penalty float64) {
	if q.word.POS != c.word.POS {
		return 0
	}
	switch c.word.POS {
	case "г":
		penalty = s.Verb
	case "п":
		penalty = s.Adj
	case "с":
		penalty = s.Noun
	case "н":
		penalty = s.Adv
	}
	return penalty
}

func isConsonant(r rune) (ok bool) {
	ok = unicode.IsLetter(r) && len(lexicon.Consonants(string(r))) == 1
	return ok
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
