// Package config loads the rhymer configuration file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// Session store kinds.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// Defaults applied by Validate.
const (
	DefaultSessionID      = "default"
	DefaultRhymeCapacity  = 512
	DefaultWordCapacity   = 2048
	DefaultEngineTimeout  = 30
	DefaultLogLevel       = "warn"
	DefaultCustomDictKey  = "rhymer:custom_dict"
	configDirName         = ".rhymer"
	configFileName        = "config.json"
	defaultLexiconName    = "corpus.tsv"
	defaultSessionDirName = "sessions"
)

// Config represents the application configuration.
type Config struct {
	LexiconPath string          `json:"lexicon_path" env:"RHYMER_LEXICON_PATH"`
	ThemesPath  string          `json:"themes_path,omitempty" env:"RHYMER_THEMES_PATH"`
	LogLevel    string          `json:"log_level,omitempty" env:"RHYMER_LOG_LEVEL"`
	Engine      EngineConfig    `json:"engine"`
	Session     SessionConfig   `json:"session"`
	Redis       RedisConfig     `json:"redis"`
	Highlight   HighlightConfig `json:"highlight"`
}

// EngineConfig selects the ranking engine. An empty endpoint uses the built-in ranker.
type EngineConfig struct {
	Endpoint       string `json:"endpoint,omitempty" env:"RHYMER_ENGINE_ENDPOINT"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty" env:"RHYMER_ENGINE_TIMEOUT"`
}

// SessionConfig tells where session state is kept.
type SessionConfig struct {
	Store string `json:"store" env:"RHYMER_SESSION_STORE"`
	Dir   string `json:"dir,omitempty" env:"RHYMER_SESSION_DIR"`
	ID    string `json:"id,omitempty" env:"RHYMER_SESSION_ID"`
}

// RedisConfig holds the Redis connection used by the custom dictionary and the redis store.
type RedisConfig struct {
	Addr          string `json:"addr,omitempty" env:"RHYMER_REDIS_ADDR"`
	Password      string `json:"password,omitempty" env:"RHYMER_REDIS_PASSWORD"`
	DB            int    `json:"db,omitempty" env:"RHYMER_REDIS_DB"`
	CustomDictKey string `json:"custom_dict_key,omitempty" env:"RHYMER_CUSTOM_DICT_KEY"`
}

// HighlightConfig sizes the highlight caches.
type HighlightConfig struct {
	RhymeCapacity int `json:"rhyme_capacity,omitempty" env:"RHYMER_HIGHLIGHT_RHYME_CAPACITY"`
	WordCapacity  int `json:"word_capacity,omitempty" env:"RHYMER_HIGHLIGHT_WORD_CAPACITY"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() (ok bool) {
	ok = r.Addr != ""
	return ok
}

// Options converts the config into go-redis client options.
func (r RedisConfig) Options() (opts *redis.Options) {
	opts = &redis.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
	}
	return opts
}

// Timeout is the engine call timeout.
func (e EngineConfig) Timeout() (timeout time.Duration) {
	timeout = time.Duration(e.TimeoutSeconds) * time.Second
	return timeout
}

// Dir returns the directory holding the config file and default data, ~/.rhymer.
func Dir() (dir string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return dir, err
	}
	dir = filepath.Join(homeDir, configDirName)
	return dir, err
}

func resolvePath(configPath string) (path string, err error) {
	path = configPath
	if path != "" {
		return path, err
	}

	var dir string
	dir, err = Dir()
	if err != nil {
		return path, err
	}
	path = filepath.Join(dir, configFileName)
	return path, err
}

// Load reads configuration from file with environment variable overrides.
func Load(configPath string) (cfg Config, err error) {
	var path string
	path, err = resolvePath(configPath)
	if err != nil {
		return cfg, err
	}

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			err = errors.Errorf("config file not found: %s (run 'rhymer init' to create)", path)
			return cfg, err
		}
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = json.Unmarshal(data, &cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse config file: %s", path)
		return cfg, err
	}

	err = cleanenv.ReadEnv(&cfg)
	if err != nil {
		err = errors.Wrap(err, "failed to apply environment overrides")
		return cfg, err
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

// Validate checks required configuration and fills defaults.
func (c *Config) Validate() (err error) {
	if c.LexiconPath == "" {
		err = errors.New("lexicon_path is required in config")
		return err
	}

	_, err = os.Stat(c.LexiconPath)
	if os.IsNotExist(err) {
		err = errors.Errorf("lexicon file not found: %s", c.LexiconPath)
		return err
	}

	if c.ThemesPath != "" {
		_, err = os.Stat(c.ThemesPath)
		if os.IsNotExist(err) {
			err = errors.Errorf("themes file not found: %s", c.ThemesPath)
			return err
		}
	}
	err = nil

	switch c.Session.Store {
	case "":
		c.Session.Store = StoreFile
	case StoreFile, StoreRedis:
	default:
		err = errors.Errorf("session.store must be %q or %q, got %q", StoreFile, StoreRedis, c.Session.Store)
		return err
	}

	if c.Session.Store == StoreRedis && !c.Redis.Enabled() {
		err = errors.New("redis.addr is required when session.store is redis")
		return err
	}

	if c.Session.Store == StoreFile && c.Session.Dir == "" {
		var dir string
		dir, err = Dir()
		if err != nil {
			return err
		}
		c.Session.Dir = filepath.Join(dir, defaultSessionDirName)
	}

	if c.Session.ID == "" {
		c.Session.ID = DefaultSessionID
	}

	if c.Redis.CustomDictKey == "" {
		c.Redis.CustomDictKey = DefaultCustomDictKey
	}

	if c.Highlight.RhymeCapacity <= 0 {
		c.Highlight.RhymeCapacity = DefaultRhymeCapacity
	}

	if c.Highlight.WordCapacity <= 0 {
		c.Highlight.WordCapacity = DefaultWordCapacity
	}

	if c.Engine.TimeoutSeconds <= 0 {
		c.Engine.TimeoutSeconds = DefaultEngineTimeout
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	var path string
	path, err = resolvePath(configPath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	defaultConfig := Config{
		LexiconPath: filepath.Join(dir, defaultLexiconName),
		LogLevel:    DefaultLogLevel,
		Engine: EngineConfig{
			TimeoutSeconds: DefaultEngineTimeout,
		},
		Session: SessionConfig{
			Store: StoreFile,
			Dir:   filepath.Join(dir, defaultSessionDirName),
			ID:    DefaultSessionID,
		},
		Redis: RedisConfig{
			CustomDictKey: DefaultCustomDictKey,
		},
		Highlight: HighlightConfig{
			RhymeCapacity: DefaultRhymeCapacity,
			WordCapacity:  DefaultWordCapacity,
		},
	}

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
