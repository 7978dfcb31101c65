// Package assistant runs one rhyme query: it parses the input, resolves the theme, builds the
// part-of-speech filter and asks the engine for ranked candidates.
package assistant

import (
	"context"

	"go.uber.org/zap"

	"github.com/nikogura/rhymer/pkg/engine"
	"github.com/nikogura/rhymer/pkg/lexicon"
	"github.com/nikogura/rhymer/pkg/logging"
	"github.com/nikogura/rhymer/pkg/partofspeech"
	"github.com/nikogura/rhymer/pkg/scoring"
	"github.com/nikogura/rhymer/pkg/session"
	"github.com/nikogura/rhymer/pkg/theme"
)

// Parser turns raw input into the word to rhyme with.
type Parser interface {
	Parse(raw string) (lexicon.Word, error)
}

// ThemeResolver turns a theme selection into an optional handle.
type ThemeResolver interface {
	Resolve(sel theme.Selection, customText string) (theme.Handle, error)
}

// Request is everything one query depends on.
type Request struct {
	Input           string
	Settings        scoring.Config
	Theme           theme.Selection
	CustomThemeText string
	Exclude         partofspeech.Filter
	ShowRhymes      int
}

// NewRequest builds a request for input from the session state.
func NewRequest(state session.State, input string) (req Request) {
	req = Request{
		Input:           input,
		Settings:        state.Settings,
		Theme:           state.Theme,
		CustomThemeText: state.CustomThemeText,
		Exclude:         state.Exclude,
		ShowRhymes:      state.ShowRhymes,
	}
	return req
}

// Assistant wires the collaborators of a query.
type Assistant struct {
	parser   Parser
	resolver ThemeResolver
	engine   engine.Engine
	logger   *zap.Logger
}

// New creates an assistant.
func New(parser Parser, resolver ThemeResolver, eng engine.Engine, logger *zap.Logger) (a *Assistant) {
	a = &Assistant{
		parser:   parser,
		resolver: resolver,
		engine:   eng,
		logger:   logging.OrNop(logger),
	}
	return a
}

// Find runs one query. Every failure is reported in the outcome; nothing is retried.
func (a *Assistant) Find(ctx context.Context, req Request) (out Outcome) {
	logger := a.logger.With(zap.String("input", req.Input), zap.String("theme", req.Theme.Label()))

	word, err := a.parser.Parse(req.Input)
	if err != nil {
		logger.Debug("query not parsed", zap.Error(err))
		out = failure(QueryUnparsable, err.Error(), err)
		return out
	}

	handle, err := a.resolver.Resolve(req.Theme, req.CustomThemeText)
	if err != nil {
		out = classifyTheme(err)
		logger.Debug("theme not resolved", zap.String("kind", string(out.Failure.Kind)), zap.Error(err))
		return out
	}

	q := engine.Query{
		Word:     word,
		Settings: req.Settings,
		Theme:    handle,
		Exclude:  req.Exclude.Codes(),
		Limit:    req.ShowRhymes,
	}

	candidates, err := a.engine.Find(ctx, q)
	if err != nil {
		logger.Warn("rhyme search failed", zap.Error(err))
		out = failure(EngineFailure, "Rhyme search failed: "+err.Error(), err)
		return out
	}

	out.Words = engine.Words(candidates)
	out.Scores = make([]float64, len(candidates))
	for i, c := range candidates {
		out.Scores[i] = c.Score
	}

	logger.Debug("rhymes found",
		zap.String("word", word.Text),
		zap.Strings("exclude", q.Exclude),
		zap.Int("count", len(out.Words)),
	)
	return out
}
