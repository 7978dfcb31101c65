package engine

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikogura/rhymer/pkg/lexicon"
	"github.com/nikogura/rhymer/pkg/scoring"
)

const corpus = "любовь\t500\tс\t2\t1,0\n" +
	"кровь\t300\tс\t1\t0.2,0.9\n" +
	"вновь\t200\tн\t1\t0.9,0.1\n" +
	"морковь\t50\tс\t2\n" +
	"бровь\t40\tс\t1\t0.5,0.5\n" +
	"готовь\t10\tг\t2\n" +
	"ночь\t400\tс\t1\n" +
	"прочь\t150\tн\t1\n" +
	"бродить\t30\tг\t2\n" +
	"ходить\t90\tг\t2\n"

type stubTheme struct {
	words     []string
	relevance map[string]float64
}

func (s stubTheme) Words() []string { return s.words }

func (s stubTheme) Relevance(word string) (float64, bool) {
	r, ok := s.relevance[word]
	return r, ok
}

func newRanker(t *testing.T) (*Ranker, *lexicon.Lexicon) {
	t.Helper()
	lex, err := lexicon.Parse(strings.NewReader(corpus))
	require.NoError(t, err)
	return NewRanker(lex, nil), lex
}

func query(t *testing.T, lex *lexicon.Lexicon, word string) Query {
	t.Helper()
	w, ok := lex.Lookup(word)
	require.True(t, ok)
	return Query{Word: w, Settings: scoring.Default()}
}

func TestFind_SkipsQueryWordAndExcluded(t *testing.T) {
	r, lex := newRanker(t)
	q := query(t, lex, "любовь")
	q.Exclude = []string{"г"}

	got, err := r.Find(context.Background(), q)
	require.NoError(t, err)

	words := Words(got)
	assert.NotContains(t, words, "любовь")
	for _, c := range got {
		assert.NotEqual(t, "г", c.POS, c.Word)
	}
	assert.Len(t, got, 6)
}

func TestFind_OrderAndLimit(t *testing.T) {
	r, lex := newRanker(t)
	q := query(t, lex, "любовь")

	all, err := r.Find(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, all, 9)

	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if prev.Score == cur.Score {
			assert.Less(t, prev.Word, cur.Word)
			continue
		}
		assert.Greater(t, prev.Score, cur.Score)
	}

	q.Limit = 3
	top, err := r.Find(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, all[:3], top)
}

func TestFind_RhymesRankAboveNonRhymes(t *testing.T) {
	r, lex := newRanker(t)
	q := query(t, lex, "любовь")
	q.Settings.Popularity.Weight = 0

	got, err := r.Find(context.Background(), q)
	require.NoError(t, err)

	rank := make(map[string]int)
	for i, c := range got {
		rank[c.Word] = i
	}
	assert.Less(t, rank["морковь"], rank["ходить"])
	assert.Less(t, rank["готовь"], rank["ночь"])
}

func TestFind_TieBreaksAlphabetically(t *testing.T) {
	r, lex := newRanker(t)
	q := query(t, lex, "любовь")
	q.Settings = scoring.Config{}

	got, err := r.Find(context.Background(), q)
	require.NoError(t, err)

	for _, c := range got {
		assert.Zero(t, c.Score)
	}
	assert.Equal(t, []string{"бровь", "бродить", "вновь", "готовь", "кровь", "морковь", "ночь", "прочь", "ходить"}, Words(got))
}

// Every zeroed weight must make the ranking blind to that axis's shape parameters.
func TestFind_ZeroWeightIgnoresShape(t *testing.T) {
	cases := []struct {
		name    string
		disable func(*scoring.Config)
		perturb func(*scoring.Config)
	}{
		{
			name:    "popularity",
			disable: func(c *scoring.Config) { c.Popularity.Weight = 0 },
			perturb: func(c *scoring.Config) { c.Popularity.Pow = -7 },
		},
		{
			name:    "meaning",
			disable: func(c *scoring.Config) { c.Meaning.Weight = 0 },
			perturb: func(c *scoring.Config) {
				c.Meaning.Pow = -3
				c.Meaning.SinglePow = math.Inf(1)
				c.Meaning.SingleWeight = 99
			},
		},
		{
			name:    "stresses",
			disable: func(c *scoring.Config) { c.Stresses.Weight = 0 },
			perturb: func(c *scoring.Config) {
				c.Stresses.KStrictStress = 1e6
				c.Stresses.KNotStrictStress = -5
				c.Stresses.BadRythm = math.NaN()
				c.Stresses.ShiftSyllEnding = -2
				c.Stresses.PowSyllEnding = 0.3
				c.Stresses.Asympt = 0
				c.Stresses.AsymptShift = -1
			},
		},
		{
			name:    "stresses without indexation",
			disable: func(c *scoring.Config) { c.Stresses.Indexation = false },
			perturb: func(c *scoring.Config) {
				c.Stresses.KStrictStress = 1e6
				c.Stresses.BadRythm = -40
			},
		},
		{
			name:    "consonant structure",
			disable: func(c *scoring.Config) { c.ConsonantStructure.Weight = 0 },
			perturb: func(c *scoring.Config) {
				c.ConsonantStructure.Pow = math.NaN()
				c.ConsonantStructure.ShiftSyllEnding = 10
				c.ConsonantStructure.PowSyllEnding = -1
				c.ConsonantStructure.Asympt = 3
				c.ConsonantStructure.AsymptShift = 0
			},
		},
		{
			name:    "alliteration",
			disable: func(c *scoring.Config) { c.Alliteration.Weight = 0 },
			perturb: func(c *scoring.Config) {
				c.Alliteration.ShiftCoord = 0
				c.Alliteration.PowCoordDelta = 5
				c.Alliteration.ShiftSyllEnding = 0
				c.Alliteration.PowSyllEnding = -4
				c.Alliteration.Permutations = 1e9
				c.Alliteration.Asympt = 0
				c.Alliteration.AsymptShift = 7
			},
		},
		{
			name: "unsymmetrical",
			disable: func(c *scoring.Config) {
				c.Unsymmetrical.LessW = 0
				c.Unsymmetrical.MoreW = 0
			},
			perturb: func(c *scoring.Config) {
				c.Unsymmetrical.OptimalLength = 2
				c.Unsymmetrical.LessPow = 9
				c.Unsymmetrical.MorePow = math.NaN()
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, lex := newRanker(t)
			q := query(t, lex, "любовь")
			q.Theme = stubTheme{
				words: []string{"любовь"},
				relevance: map[string]float64{
					"кровь": 0.9, "вновь": 0.4, "бровь": 0.1, "ночь": 0.7, "ходить": 0.2,
				},
			}

			tc.disable(&q.Settings)
			base, err := r.Find(context.Background(), q)
			require.NoError(t, err)

			tc.perturb(&q.Settings)
			perturbed, err := r.Find(context.Background(), q)
			require.NoError(t, err)

			assert.Equal(t, base, perturbed)
		})
	}
}

func TestFind_ThemeDropsUnknownAndRewardsRelevant(t *testing.T) {
	r, lex := newRanker(t)
	q := query(t, lex, "любовь")
	q.Settings = scoring.Config{Meaning: scoring.Meaning{Weight: 10, Pow: 1}}
	q.Theme = stubTheme{
		words:     []string{"сердце", "кровь"},
		relevance: map[string]float64{"кровь": 0.9, "ночь": 0.5, "вновь": 0.1},
	}

	got, err := r.Find(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, []string{"кровь", "ночь", "вновь"}, Words(got))
	assert.InDelta(t, 9.0, got[0].Score, 1e-9)
}

func TestFind_SingleWordTheme(t *testing.T) {
	r, lex := newRanker(t)
	q := query(t, lex, "любовь")
	q.Settings = scoring.Config{Meaning: scoring.Meaning{Weight: 10, Pow: 1, SinglePow: 2, SingleWeight: 0.5}}
	q.Theme = stubTheme{words: []string{"кровь"}, relevance: map[string]float64{"кровь": 0.5}}

	got, err := r.Find(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 10*0.5*0.25, got[0].Score, 1e-9)
}

func TestFind_SameSpeechPartPenalty(t *testing.T) {
	r, lex := newRanker(t)
	q := query(t, lex, "бродить")
	q.Settings = scoring.Config{SameSpeechPart: scoring.SameSpeechPart{Verb: 2}}

	got, err := r.Find(context.Background(), q)
	require.NoError(t, err)

	scores := make(map[string]float64)
	for _, c := range got {
		scores[c.Word] = c.Score
	}
	assert.Equal(t, -2.0, scores["ходить"])
	assert.Equal(t, -2.0, scores["готовь"])
	assert.Zero(t, scores["ночь"])
}

func TestFind_Errors(t *testing.T) {
	r, lex := newRanker(t)

	_, err := r.Find(context.Background(), Query{})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Find(ctx, query(t, lex, "ночь"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSaturate(t *testing.T) {
	assert.Equal(t, 4.0, saturate(1, 1, 2, 0, 0))
	assert.Zero(t, saturate(-3, 1, 2, 0, 0))
	assert.InDelta(t, 0.5, saturate(1, 0, 1, 1, 1), 1e-9)
	assert.Zero(t, saturate(1, 0, 1, 1, -1))
}

func TestMiscSameEnding(t *testing.T) {
	s := scoring.Misc{SameConsEnd: 3}
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{name: "same final consonant", a: "кот", b: "рот", want: 3},
		{name: "same final vowel", a: "роза", b: "коза", want: 3},
		{name: "soft sign skipped", a: "любовь", b: "кровь", want: 3},
		{name: "vowel against consonant", a: "роза", b: "мороз", want: 0},
		{name: "different vowels", a: "роза", b: "розы", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := measure(lexicon.Word{Text: tt.a})
			c := measure(lexicon.Word{Text: tt.b})
			assert.Equal(t, tt.want, misc(s, q, c))
		})
	}
}
