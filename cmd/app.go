package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nikogura/rhymer/pkg/config"
	"github.com/nikogura/rhymer/pkg/customdict"
	"github.com/nikogura/rhymer/pkg/engine"
	"github.com/nikogura/rhymer/pkg/lexicon"
	"github.com/nikogura/rhymer/pkg/logging"
	"github.com/nikogura/rhymer/pkg/meaning"
	"github.com/nikogura/rhymer/pkg/session"
	"github.com/nikogura/rhymer/pkg/theme"
)

// app holds the collaborators shared by the commands. Everything is built once per run.
type app struct {
	cfg    config.Config
	logger *zap.Logger
	redis  *redis.Client
	store  session.Store
	lex    *lexicon.Lexicon
}

// newApp loads config and connects the session store. The corpus is loaded on demand.
func newApp() (a *app, err error) {
	a = &app{}

	a.cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return nil, err
	}

	level := a.cfg.LogLevel
	if getVerbose() {
		level = "debug"
	}

	a.logger, err = logging.New(level)
	if err != nil {
		return nil, err
	}

	if a.cfg.Redis.Enabled() {
		a.redis = redis.NewClient(a.cfg.Redis.Options())
	}

	switch a.cfg.Session.Store {
	case config.StoreRedis:
		a.store = session.NewRedisStore(a.redis)
	default:
		a.store = session.NewFileStore(a.cfg.Session.Dir)
	}

	return a, err
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	_ = a.logger.Sync()
}

// customDict returns the Redis custom dictionary, or an error when Redis is not configured.
func (a *app) customDict() (dict *customdict.CustomDict, err error) {
	if a.redis == nil {
		err = errors.New("custom dictionary needs redis.addr in config (or RHYMER_REDIS_ADDR)")
		return dict, err
	}
	dict = customdict.New(a.redis, a.cfg.Redis.CustomDictKey)
	return dict, err
}

// lexicon loads the corpus and merges the custom dictionary into it.
func (a *app) lexicon(ctx context.Context) (lex *lexicon.Lexicon, err error) {
	if a.lex != nil {
		lex = a.lex
		return lex, err
	}

	lex, err = lexicon.Load(a.cfg.LexiconPath)
	if err != nil {
		err = errors.Wrap(err, "failed to load lexicon")
		return lex, err
	}

	stats := lex.Stats()
	a.logger.Debug("lexicon loaded",
		zap.String("path", a.cfg.LexiconPath),
		zap.Int("words", lex.Len()),
		zap.Int("skipped_lines", stats.SkippedLines),
	)
	if stats.SkippedLines > 0 {
		a.logger.Warn("lexicon lines skipped", zap.Int("count", stats.SkippedLines))
	}

	if a.redis != nil {
		dict := customdict.New(a.redis, a.cfg.Redis.CustomDictKey)
		words, dictErr := dict.All(ctx)
		if dictErr != nil {
			a.logger.Warn("custom dictionary unavailable", zap.Error(dictErr))
		} else {
			added := lex.Merge(words)
			a.logger.Debug("custom words merged", zap.Int("added", added))
		}
	}

	a.lex = lex
	return lex, err
}

// themeTable returns the configured theme table, or the built-in one.
func (a *app) themeTable() (table *theme.Table, err error) {
	if a.cfg.ThemesPath == "" {
		table = theme.DefaultTable()
		return table, err
	}

	table, err = theme.LoadTable(a.cfg.ThemesPath)
	if err != nil {
		err = errors.Wrap(err, "failed to load themes")
		return table, err
	}
	return table, err
}

// engine returns the remote engine when an endpoint is configured, else the built-in ranker.
func (a *app) engine(lex *lexicon.Lexicon) (eng engine.Engine) {
	if a.cfg.Engine.Endpoint != "" {
		a.logger.Debug("using remote engine", zap.String("endpoint", a.cfg.Engine.Endpoint))
		eng = engine.NewRemote(a.cfg.Engine.Endpoint, a.cfg.Engine.Timeout())
		return eng
	}
	eng = engine.NewRanker(lex, a.logger)
	return eng
}

// resolver builds the theme resolver over the reference semantic model.
func (a *app) resolver(lex *lexicon.Lexicon) (resolver *theme.Resolver, err error) {
	var table *theme.Table
	table, err = a.themeTable()
	if err != nil {
		return resolver, err
	}
	resolver = theme.NewResolver(table, meaning.NewModel(lex))
	return resolver, err
}

func (a *app) loadState(ctx context.Context) (state session.State, err error) {
	state, err = a.store.Load(logging.WithLogger(ctx, a.logger), a.cfg.Session.ID)
	if err != nil {
		err = errors.Wrap(err, "failed to load session")
		return state, err
	}
	return state, err
}

func (a *app) saveState(ctx context.Context, state session.State) (err error) {
	err = a.store.Save(ctx, a.cfg.Session.ID, state)
	if err != nil {
		err = errors.Wrap(err, "failed to save session")
		return err
	}
	a.logger.Debug("session saved", zap.String("id", a.cfg.Session.ID))
	return err
}
