package highlight

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRenderer struct {
	mock.Mock
}

func (m *mockRenderer) Render(text string, mode Mode) (StyledText, error) {
	args := m.Called(text, mode)
	return args.Get(0).(StyledText), args.Error(1)
}

// countingRenderer tags every span with the mode and counts calls per text.
type countingRenderer struct {
	calls map[string]int
}

func (r *countingRenderer) Render(text string, mode Mode) (StyledText, error) {
	if r.calls == nil {
		r.calls = make(map[string]int)
	}
	r.calls[string(mode)+":"+text]++
	var out StyledText
	out.Append(text, Style(mode))
	return out, nil
}

func newCache(t *testing.T, capacity int, r Renderer) *Cache {
	t.Helper()
	c, err := New(Config{RhymeCapacity: capacity, WordCapacity: capacity, Mode: ModeRhythm}, r)
	require.NoError(t, err)
	return c
}

func TestNew_Validation(t *testing.T) {
	_, err := New(Config{RhymeCapacity: 0, WordCapacity: 1}, &countingRenderer{})
	assert.Error(t, err)

	_, err = New(Config{RhymeCapacity: 1, WordCapacity: -1}, &countingRenderer{})
	assert.Error(t, err)

	_, err = New(Config{RhymeCapacity: 1, WordCapacity: 1}, nil)
	assert.Error(t, err)

	c, err := New(Config{RhymeCapacity: 1, WordCapacity: 1}, &countingRenderer{})
	require.NoError(t, err)
	assert.Equal(t, ModeRhythm, c.Mode())
}

func TestDisabledNeverPopulates(t *testing.T) {
	r := &mockRenderer{}
	c := newCache(t, 4, r)
	c.SetMode(ModeDisabled)

	got, err := c.GetOrRender("любовь и кровь")
	require.NoError(t, err)
	assert.Equal(t, Plain("любовь и кровь"), got)

	assert.Zero(t, c.Len(ModeRhythm))
	assert.Zero(t, c.Len(ModeWords))
	assert.Zero(t, c.Len(ModeDisabled))
	r.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestSecondCallServedFromCache(t *testing.T) {
	r := &mockRenderer{}
	want := StyledText{Spans: []Span{{Text: "л", Style: StylePlain}, {Text: "ю", Style: StyleVowel}}}
	r.On("Render", "лю", ModeRhythm).Return(want, nil).Once()

	c := newCache(t, 4, r)

	first, err := c.GetOrRender("лю")
	require.NoError(t, err)
	second, err := c.GetOrRender("лю")
	require.NoError(t, err)

	assert.Equal(t, want, first)
	assert.Equal(t, first, second)
	r.AssertNumberOfCalls(t, "Render", 1)

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 1e-9)
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	r := &countingRenderer{}
	c := newCache(t, 3, r)

	for _, text := range []string{"a", "b", "c"} {
		_, err := c.GetOrRender(text)
		require.NoError(t, err)
	}

	// touching "a" makes "b" the least recently used entry
	_, err := c.GetOrRender("a")
	require.NoError(t, err)

	_, err = c.GetOrRender("d")
	require.NoError(t, err)

	assert.Equal(t, 3, c.Len(ModeRhythm))
	assert.True(t, c.Contains("a", ModeRhythm))
	assert.False(t, c.Contains("b", ModeRhythm))
	assert.True(t, c.Contains("c", ModeRhythm))
	assert.True(t, c.Contains("d", ModeRhythm))
	assert.Equal(t, int64(1), c.Stats().Evictions)

	// an evicted entry is rendered again
	_, err = c.GetOrRender("b")
	require.NoError(t, err)
	assert.Equal(t, 2, r.calls["rhythm:b"])
	assert.Equal(t, 1, r.calls["rhythm:a"])
}

func TestDomainsAreIndependent(t *testing.T) {
	r := &countingRenderer{}
	c, err := New(Config{RhymeCapacity: 1, WordCapacity: 2}, r)
	require.NoError(t, err)

	_, err = c.GetOrRenderMode("x", ModeWords)
	require.NoError(t, err)
	_, err = c.GetOrRenderMode("y", ModeWords)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err = c.GetOrRenderMode(fmt.Sprintf("r%d", i), ModeRhythm)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, c.Len(ModeRhythm))
	assert.Equal(t, 2, c.Len(ModeWords))
	assert.True(t, c.Contains("x", ModeWords))
	assert.False(t, c.Contains("x", ModeRhythm))

	got, err := c.GetOrRenderMode("x", ModeWords)
	require.NoError(t, err)
	assert.Equal(t, Style(ModeWords), got.Spans[0].Style)
	assert.Equal(t, 1, r.calls["words:x"])
}

func TestRenderFailureNotCached(t *testing.T) {
	r := &mockRenderer{}
	r.On("Render", "bad", ModeRhythm).Return(StyledText{}, errors.New("boom")).Once()
	r.On("Render", "bad", ModeRhythm).Return(Plain("bad"), nil).Once()

	c := newCache(t, 2, r)

	_, err := c.GetOrRender("bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.False(t, c.Contains("bad", ModeRhythm))

	got, err := c.GetOrRender("bad")
	require.NoError(t, err)
	assert.Equal(t, Plain("bad"), got)
	assert.True(t, c.Contains("bad", ModeRhythm))
	r.AssertExpectations(t)
}

func TestSetModeKeepsEntries(t *testing.T) {
	r := &countingRenderer{}
	c := newCache(t, 2, r)

	_, err := c.GetOrRender("строка")
	require.NoError(t, err)

	c.SetMode(ModeWords)
	assert.Equal(t, ModeWords, c.Mode())
	_, err = c.GetOrRender("строка")
	require.NoError(t, err)

	c.SetMode(ModeRhythm)
	_, err = c.GetOrRender("строка")
	require.NoError(t, err)

	assert.Equal(t, 1, r.calls["rhythm:строка"])
	assert.Equal(t, 1, r.calls["words:строка"])
}

// Scoring settings are not an input of the highlight cache: a settings change keeps every
// cached highlight and the renderer is not asked again.
func TestSettingsChangeDoesNotInvalidate(t *testing.T) {
	r := &countingRenderer{}
	c := newCache(t, 2, r)

	_, err := c.GetOrRender("ночь")
	require.NoError(t, err)

	// no settings hook exists to call; the entry must simply survive
	_, err = c.GetOrRender("ночь")
	require.NoError(t, err)
	assert.Equal(t, 1, r.calls["rhythm:ночь"])
}

func TestCachedValueIsNotShared(t *testing.T) {
	r := &countingRenderer{}
	c := newCache(t, 2, r)

	got, err := c.GetOrRender("abc")
	require.NoError(t, err)
	got.Spans[0].Text = "mutated"

	again, err := c.GetOrRender("abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", again.String())
}

func TestUnknownMode(t *testing.T) {
	c := newCache(t, 2, &countingRenderer{})

	_, err := c.GetOrRenderMode("abc", Mode("sparkles"))
	assert.Error(t, err)
	assert.Zero(t, c.Len(Mode("sparkles")))
	assert.False(t, c.Contains("abc", Mode("sparkles")))
}

func TestParseModeAndStyledText(t *testing.T) {
	for name, want := range map[string]Mode{"rhythm": ModeRhythm, "WORDS": ModeWords, "none": ModeDisabled, "off": ModeDisabled} {
		got, err := ParseMode(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	for _, name := range []string{"loud", "", "  "} {
		_, err := ParseMode(name)
		assert.Error(t, err, name)
	}

	var s StyledText
	s.Append("л", StylePlain)
	s.Append("ю", StyleVowel)
	s.Append("", StyleKnown)
	s.Append("б", StylePlain)
	s.Append("о", StyleStressed)
	s.Append("вь", StylePlain)
	s.Append("!", StylePlain)
	assert.Len(t, s.Spans, 5)
	assert.Equal(t, "любовь!", s.String())
	assert.Empty(t, Plain("").Spans)
}
