package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nikogura/rhymer/pkg/engine"
	"github.com/nikogura/rhymer/pkg/lexicon"
	"github.com/nikogura/rhymer/pkg/meaning"
	"github.com/nikogura/rhymer/pkg/partofspeech"
	"github.com/nikogura/rhymer/pkg/scoring"
	"github.com/nikogura/rhymer/pkg/session"
	"github.com/nikogura/rhymer/pkg/theme"
)

type mockParser struct{ mock.Mock }

func (m *mockParser) Parse(raw string) (lexicon.Word, error) {
	args := m.Called(raw)
	return args.Get(0).(lexicon.Word), args.Error(1)
}

type mockResolver struct{ mock.Mock }

func (m *mockResolver) Resolve(sel theme.Selection, customText string) (theme.Handle, error) {
	args := m.Called(sel, customText)
	handle, _ := args.Get(0).(theme.Handle)
	return handle, args.Error(1)
}

type mockEngine struct{ mock.Mock }

func (m *mockEngine) Find(ctx context.Context, q engine.Query) ([]engine.Candidate, error) {
	args := m.Called(ctx, q)
	candidates, _ := args.Get(0).([]engine.Candidate)
	return candidates, args.Error(1)
}

func TestFind_Success(t *testing.T) {
	ctx := context.Background()
	word := lexicon.Word{Text: "ночь", POS: "с", Stress: 1}

	state := session.Default()
	state.Exclude = partofspeech.Filter{Verb: true, Noun: true}
	state.ShowRhymes = 2
	state.Settings.Popularity.Weight = 0

	parser := &mockParser{}
	parser.On("Parse", "тёмная ночь").Return(word, nil)

	resolver := &mockResolver{}
	resolver.On("Resolve", theme.None(), "").Return(nil, nil)

	eng := &mockEngine{}
	eng.On("Find", ctx, mock.MatchedBy(func(q engine.Query) bool {
		return q.Word.Text == word.Text &&
			q.Limit == 2 &&
			q.Theme == nil &&
			assert.ObjectsAreEqual([]string{"с", "г"}, q.Exclude) &&
			q.Settings.Popularity.Weight == 0
	})).Return([]engine.Candidate{{Word: "прочь", Score: 2}, {Word: "дочь", Score: 1}}, nil)

	a := New(parser, resolver, eng, nil)
	out := a.Find(ctx, NewRequest(state, "тёмная ночь"))

	require.False(t, out.Failed())
	assert.Equal(t, []string{"прочь", "дочь"}, out.Words)
	assert.Equal(t, []float64{2, 1}, out.Scores)
	eng.AssertExpectations(t)
}

func TestFind_Failures(t *testing.T) {
	word := lexicon.Word{Text: "ночь"}

	tests := []struct {
		name        string
		parseErr    error
		resolveErr  error
		engineErr   error
		wantKind    FailureKind
		wantMessage string
	}{
		{
			name:        "no word",
			parseErr:    lexicon.ErrNoWord,
			wantKind:    QueryUnparsable,
			wantMessage: lexicon.ErrNoWord.Error(),
		},
		{
			name:        "unknown word",
			parseErr:    &lexicon.UnknownWordError{Word: "бдыщ"},
			wantKind:    QueryUnparsable,
			wantMessage: "unknown word: бдыщ",
		},
		{
			name:        "empty theme",
			resolveErr:  theme.ErrEmptyTheme,
			wantKind:    ThemeEmpty,
			wantMessage: "Empty theme",
		},
		{
			name:        "unknown theme words",
			resolveErr:  &theme.UnresolvedWordsError{Words: []string{"unknownword"}},
			wantKind:    ThemeUnknownWords,
			wantMessage: `Unknown words: ["unknownword"]`,
		},
		{
			name:        "unknown preset",
			resolveErr:  &theme.UnknownPresetError{Name: "космос"},
			wantKind:    ThemeUnknownPreset,
			wantMessage: "Unknown theme: космос",
		},
		{
			name:        "model failure",
			resolveErr:  errors.New("model offline"),
			wantKind:    EngineFailure,
			wantMessage: "model offline",
		},
		{
			name:        "engine failure",
			engineErr:   errors.New("connection refused"),
			wantKind:    EngineFailure,
			wantMessage: "Rhyme search failed: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := &mockParser{}
			parser.On("Parse", mock.Anything).Return(word, tt.parseErr)

			resolver := &mockResolver{}
			resolver.On("Resolve", mock.Anything, mock.Anything).Return(nil, tt.resolveErr)

			eng := &mockEngine{}
			eng.On("Find", mock.Anything, mock.Anything).Return(nil, tt.engineErr)

			a := New(parser, resolver, eng, nil)
			out := a.Find(context.Background(), NewRequest(session.Default(), "ночь"))

			require.True(t, out.Failed())
			assert.Empty(t, out.Words)
			assert.Equal(t, tt.wantKind, out.Failure.Kind)
			assert.Equal(t, tt.wantMessage, out.Failure.Error())
			assert.Error(t, out.Failure.Unwrap())

			if tt.parseErr != nil {
				resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
			}
			if tt.parseErr != nil || tt.resolveErr != nil {
				eng.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
			}
		})
	}
}

// End to end over the reference collaborators.
func TestFind_ReferenceStack(t *testing.T) {
	lex, err := lexicon.Parse(strings.NewReader(
		"любовь\t500\tс\t2\t1,0\n" +
			"кровь\t300\tс\t1\t0.9,0.1\n" +
			"морковь\t50\tс\t2\t0,1\n" +
			"вновь\t200\tн\t1\t0.8,0.3\n" +
			"готовь\t10\tг\t2\n"))
	require.NoError(t, err)

	model := meaning.NewModel(lex)
	resolver := theme.NewResolver(theme.NewTable(map[string][]string{"сердце": {"любовь", "кровь"}}), model)
	a := New(lex, resolver, engine.NewRanker(lex, nil), nil)

	state := session.Default()
	out := a.Find(context.Background(), NewRequest(state, "Моя любовь"))
	require.False(t, out.Failed(), "%v", out.Failure)
	assert.Len(t, out.Words, 4)
	assert.NotContains(t, out.Words, "любовь")

	state.Theme = theme.Preset("сердце")
	state.Exclude = partofspeech.Filter{Adv: true}
	out = a.Find(context.Background(), NewRequest(state, "любовь"))
	require.False(t, out.Failed(), "%v", out.Failure)
	assert.ElementsMatch(t, []string{"кровь", "морковь"}, out.Words)

	state.Theme = theme.Custom()
	state.CustomThemeText = "  "
	out = a.Find(context.Background(), NewRequest(state, "любовь"))
	require.True(t, out.Failed())
	assert.Equal(t, ThemeEmpty, out.Failure.Kind)

	state.CustomThemeText = "любовь unknownword"
	out = a.Find(context.Background(), NewRequest(state, "любовь"))
	require.True(t, out.Failed())
	assert.Equal(t, ThemeUnknownWords, out.Failure.Kind)

	out = a.Find(context.Background(), NewRequest(session.Default(), "!!!"))
	require.True(t, out.Failed())
	assert.Equal(t, QueryUnparsable, out.Failure.Kind)
}

func TestNewRequest(t *testing.T) {
	state := session.Default()
	state.Theme = theme.Preset("море")
	state.CustomThemeText = "волна"
	state.ShowRhymes = 7
	state.Settings = scoring.Config{}

	req := NewRequest(state, "парус")
	assert.Equal(t, "парус", req.Input)
	assert.Equal(t, state.Theme, req.Theme)
	assert.Equal(t, "волна", req.CustomThemeText)
	assert.Equal(t, 7, req.ShowRhymes)
	assert.Equal(t, scoring.Config{}, req.Settings)
}
