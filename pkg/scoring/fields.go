package scoring

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// fieldRef points at one settable field of a Config. Exactly one of num and flag is set.
type fieldRef struct {
	num  *float64
	flag *bool
}

func (c *Config) fields() (refs map[string]fieldRef) {
	num := func(p *float64) fieldRef { return fieldRef{num: p} }

	refs = map[string]fieldRef{
		"popularity.weight": num(&c.Popularity.Weight),
		"popularity.pow":    num(&c.Popularity.Pow),

		"meaning.weight":        num(&c.Meaning.Weight),
		"meaning.pow":           num(&c.Meaning.Pow),
		"meaning.single_pow":    num(&c.Meaning.SinglePow),
		"meaning.single_weight": num(&c.Meaning.SingleWeight),

		"stresses.weight":              num(&c.Stresses.Weight),
		"stresses.k_strict_stress":     num(&c.Stresses.KStrictStress),
		"stresses.k_not_strict_stress": num(&c.Stresses.KNotStrictStress),
		"stresses.bad_rythm":           num(&c.Stresses.BadRythm),
		"stresses.shift_syll_ending":   num(&c.Stresses.ShiftSyllEnding),
		"stresses.pow_syll_ending":     num(&c.Stresses.PowSyllEnding),
		"stresses.asympt":              num(&c.Stresses.Asympt),
		"stresses.asympt_shift":        num(&c.Stresses.AsymptShift),
		"stresses.indexation":          {flag: &c.Stresses.Indexation},

		"consonant_structure.weight":            num(&c.ConsonantStructure.Weight),
		"consonant_structure.pow":               num(&c.ConsonantStructure.Pow),
		"consonant_structure.shift_syll_ending": num(&c.ConsonantStructure.ShiftSyllEnding),
		"consonant_structure.pow_syll_ending":   num(&c.ConsonantStructure.PowSyllEnding),
		"consonant_structure.asympt":            num(&c.ConsonantStructure.Asympt),
		"consonant_structure.asympt_shift":      num(&c.ConsonantStructure.AsymptShift),

		"alliteration.weight":            num(&c.Alliteration.Weight),
		"alliteration.shift_coord":       num(&c.Alliteration.ShiftCoord),
		"alliteration.pow_coord_delta":   num(&c.Alliteration.PowCoordDelta),
		"alliteration.shift_syll_ending": num(&c.Alliteration.ShiftSyllEnding),
		"alliteration.pow_syll_ending":   num(&c.Alliteration.PowSyllEnding),
		"alliteration.permutations":      num(&c.Alliteration.Permutations),
		"alliteration.asympt":            num(&c.Alliteration.Asympt),
		"alliteration.asympt_shift":      num(&c.Alliteration.AsymptShift),

		"unsymmetrical.optimal_length": num(&c.Unsymmetrical.OptimalLength),
		"unsymmetrical.less_w":         num(&c.Unsymmetrical.LessW),
		"unsymmetrical.less_pow":       num(&c.Unsymmetrical.LessPow),
		"unsymmetrical.more_w":         num(&c.Unsymmetrical.MoreW),
		"unsymmetrical.more_pow":       num(&c.Unsymmetrical.MorePow),

		"misc.length_diff_fine": num(&c.Misc.LengthDiffFine),
		"misc.same_cons_end":    num(&c.Misc.SameConsEnd),

		"same_speech_part.verb": num(&c.SameSpeechPart.Verb),
		"same_speech_part.adj":  num(&c.SameSpeechPart.Adj),
		"same_speech_part.noun": num(&c.SameSpeechPart.Noun),
		"same_speech_part.adv":  num(&c.SameSpeechPart.Adv),
	}
	return refs
}

// Keys lists every settable field as a dotted key, sorted.
func Keys() (keys []string) {
	var c Config
	refs := c.fields()
	keys = make([]string, 0, len(refs))
	for k := range refs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set parses value and stores it in the field named by key.
// Any number is accepted, including negative or nonsensical ones.
func (c *Config) Set(key, value string) (err error) {
	ref, ok := c.fields()[key]
	if !ok {
		err = errors.Errorf("unknown setting: %s", key)
		return err
	}

	if ref.flag != nil {
		var b bool
		b, err = strconv.ParseBool(value)
		if err != nil {
			err = errors.Wrapf(err, "invalid value for %s", key)
			return err
		}
		*ref.flag = b
		return err
	}

	var f float64
	f, err = strconv.ParseFloat(value, 64)
	if err != nil {
		err = errors.Wrapf(err, "invalid value for %s", key)
		return err
	}
	*ref.num = f

	return err
}

// Get returns the current value of the field named by key, formatted for display.
func (c *Config) Get(key string) (value string, err error) {
	ref, ok := c.fields()[key]
	if !ok {
		err = errors.Errorf("unknown setting: %s", key)
		return value, err
	}

	if ref.flag != nil {
		value = strconv.FormatBool(*ref.flag)
		return value, err
	}

	value = strconv.FormatFloat(*ref.num, 'g', -1, 64)
	return value, err
}
