package engine

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nikogura/rhymer/pkg/lexicon"
	"github.com/nikogura/rhymer/pkg/logging"
)

// ctxCheckEvery is how many corpus entries are scored between context checks.
const ctxCheckEvery = 1024

// Ranker is the in-process reference engine. It scores every corpus entry with the weighted
// axes of the query settings.
type Ranker struct {
	lex    *lexicon.Lexicon
	logger *zap.Logger
}

// NewRanker creates a ranker over a shared lexicon.
func NewRanker(lex *lexicon.Lexicon, logger *zap.Logger) (ranker *Ranker) {
	ranker = &Ranker{
		lex:    lex,
		logger: logging.OrNop(logger),
	}
	return ranker
}

// Find scores all entries except the query word, excluded parts of speech and, when a theme is
// set, words the theme knows nothing about. Results are sorted by score, then alphabetically.
func (r *Ranker) Find(ctx context.Context, q Query) (candidates []Candidate, err error) {
	if q.Word.Text == "" {
		err = errors.New("query word is empty")
		return candidates, err
	}

	excluded := make(map[string]bool, len(q.Exclude))
	for _, code := range q.Exclude {
		excluded[code] = true
	}

	themed := q.Theme != nil
	singleWordTheme := themed && len(q.Theme.Words()) == 1
	qf := measure(q.Word)

	for i, w := range r.lex.Words() {
		if i%ctxCheckEvery == 0 {
			if err = ctx.Err(); err != nil {
				err = errors.Wrap(err, "ranking cancelled")
				return nil, err
			}
		}

		if w.Text == q.Word.Text || excluded[w.POS] {
			continue
		}

		var relevance float64
		if themed {
			var ok bool
			relevance, ok = q.Theme.Relevance(w.Text)
			if !ok {
				continue
			}
		}

		candidates = append(candidates, Candidate{
			Word:  w.Text,
			POS:   w.POS,
			Score: score(q.Settings, qf, measure(w), relevance, singleWordTheme, themed),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Word < candidates[j].Word
	})

	if q.Limit > 0 && len(candidates) > q.Limit {
		candidates = candidates[:q.Limit]
	}

	r.logger.Debug("ranked candidates",
		zap.String("word", q.Word.Text),
		zap.Int("corpus", r.lex.Len()),
		zap.Int("returned", len(candidates)),
		zap.Bool("themed", themed),
	)

	return candidates, err
}
