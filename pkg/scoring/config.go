// Package scoring holds the weights and shape parameters the ranking engine scores candidates with.
package scoring

// Config is the weighted multi-axis configuration handed to the ranking engine on every query.
// Values are exploratory tuning surface: nothing here is range-checked.
type Config struct {
	Popularity         Popularity         `json:"popularity"`
	Meaning            Meaning            `json:"meaning"`
	Stresses           Stresses           `json:"stresses"`
	ConsonantStructure ConsonantStructure `json:"consonant_structure"`
	Alliteration       Alliteration       `json:"alliteration"`
	Unsymmetrical      Unsymmetrical      `json:"unsymmetrical"`
	Misc               Misc               `json:"misc"`
	SameSpeechPart     SameSpeechPart     `json:"same_speech_part"`
}

// Popularity rewards lexical frequency.
type Popularity struct {
	Weight float64 `json:"weight"`
	Pow    float64 `json:"pow"`
}

// Meaning rewards semantic closeness to the resolved theme.
// SinglePow and SingleWeight replace Pow when the theme consists of one word.
type Meaning struct {
	Weight       float64 `json:"weight"`
	Pow          float64 `json:"pow"`
	SinglePow    float64 `json:"single_pow"`
	SingleWeight float64 `json:"single_weight"`
}

// Stresses scores the match of stressed syllables and the rhythm of both words.
type Stresses struct {
	Weight           float64 `json:"weight"`
	KStrictStress    float64 `json:"k_strict_stress"`
	KNotStrictStress float64 `json:"k_not_strict_stress"`
	BadRythm         float64 `json:"bad_rythm"`
	ShiftSyllEnding  float64 `json:"shift_syll_ending"`
	PowSyllEnding    float64 `json:"pow_syll_ending"`
	Asympt           float64 `json:"asympt"`
	AsymptShift      float64 `json:"asympt_shift"`
	// Indexation enables stressed-vowel indexing. When false the stress axis is not applicable.
	Indexation bool `json:"indexation"`
}

// ConsonantStructure compares consonant skeletons of the word endings.
type ConsonantStructure struct {
	Weight          float64 `json:"weight"`
	Pow             float64 `json:"pow"`
	ShiftSyllEnding float64 `json:"shift_syll_ending"`
	PowSyllEnding   float64 `json:"pow_syll_ending"`
	Asympt          float64 `json:"asympt"`
	AsymptShift     float64 `json:"asympt_shift"`
}

// Alliteration rewards shared consonants close to each other.
// PowSyllEnding is the only exponent that may be negative.
type Alliteration struct {
	Weight          float64 `json:"weight"`
	ShiftCoord      float64 `json:"shift_coord"`
	PowCoordDelta   float64 `json:"pow_coord_delta"`
	ShiftSyllEnding float64 `json:"shift_syll_ending"`
	PowSyllEnding   float64 `json:"pow_syll_ending"`
	Permutations    float64 `json:"permutations"`
	Asympt          float64 `json:"asympt"`
	AsymptShift     float64 `json:"asympt_shift"`
}

// Unsymmetrical penalizes candidates shorter or longer than OptimalLength.
// LessW and MoreW act as the weights of the two sides.
type Unsymmetrical struct {
	OptimalLength float64 `json:"optimal_length"`
	LessW         float64 `json:"less_w"`
	LessPow       float64 `json:"less_pow"`
	MoreW         float64 `json:"more_w"`
	MorePow       float64 `json:"more_pow"`
}

// Misc holds small standalone terms.
type Misc struct {
	LengthDiffFine float64 `json:"length_diff_fine"`
	SameConsEnd    float64 `json:"same_cons_end"`
}

// SameSpeechPart holds penalties applied when a candidate shares the query word's part of speech.
type SameSpeechPart struct {
	Verb float64 `json:"verb"`
	Adj  float64 `json:"adj"`
	Noun float64 `json:"noun"`
	Adv  float64 `json:"adv"`
}

// Default returns the baseline configuration.
func Default() (cfg Config) {
	cfg = Config{
		Popularity: Popularity{
			Weight: 2e-6,
			Pow:    1.0,
		},
		Meaning: Meaning{
			Weight:       1000.0,
			Pow:          2.0,
			SinglePow:    1.5,
			SingleWeight: 0.5,
		},
		Stresses: Stresses{
			Weight:           50.0,
			KStrictStress:    20.0,
			KNotStrictStress: 3.0,
			BadRythm:         30.0,
			ShiftSyllEnding:  1.0,
			PowSyllEnding:    1.5,
			Asympt:           1.0,
			AsymptShift:      1.0,
			Indexation:       true,
		},
		ConsonantStructure: ConsonantStructure{
			Weight:          3.0,
			Pow:             2.0,
			ShiftSyllEnding: 1.0,
			PowSyllEnding:   2.0,
			Asympt:          1.0,
			AsymptShift:     2.0,
		},
		Alliteration: Alliteration{
			Weight:          2.0,
			ShiftCoord:      1.0,
			PowCoordDelta:   2.0,
			ShiftSyllEnding: 1.0,
			PowSyllEnding:   1.0,
			Permutations:    10.0,
			Asympt:          1.0,
			AsymptShift:     2.0,
		},
		Unsymmetrical: Unsymmetrical{
			OptimalLength: 7.0,
			LessW:         0.1,
			LessPow:       1.05,
			MoreW:         0.1,
			MorePow:       1.05,
		},
		Misc: Misc{
			LengthDiffFine: 0.5,
			SameConsEnd:    1.0,
		},
		SameSpeechPart: SameSpeechPart{
			Verb: 1.0,
			Adj:  0.5,
			Noun: 0.3,
			Adv:  0.5,
		},
	}
	return cfg
}

// Reset replaces the whole configuration with the baseline.
func (c *Config) Reset() {
	*c = Default()
}
