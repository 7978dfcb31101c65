package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nikogura/rhymer/pkg/logging"
)

// KeyPrefix namespaces session keys in Redis.
const KeyPrefix = "rhymer:session:"

// Store loads and saves states by session id. A session never saved loads as Default(), and so
// does one whose stored data cannot be parsed. Only I/O failures are errors.
type Store interface {
	Load(ctx context.Context, id string) (State, error)
	Save(ctx context.Context, id string, state State) error
}

// FileStore keeps one JSON file per session in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) (store *FileStore) {
	store = &FileStore{dir: dir}
	return store
}

// Path is the file holding session id.
func (s *FileStore) Path(id string) (path string) {
	path = filepath.Join(s.dir, id+".json")
	return path
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, id string) (state State, err error) {
	err = validateID(id)
	if err != nil {
		return state, err
	}

	path := s.Path(id)

	var data []byte
	data, err = os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			state = Default()
			err = nil
			return state, err
		}
		err = errors.Wrapf(err, "failed to read session file: %s", path)
		return state, err
	}

	state, err = Decode(data)
	if err != nil {
		logging.FromContext(ctx).Warn("session file unreadable, starting from defaults",
			zap.String("path", path), zap.Error(err))
		state = Default()
		err = nil
	}

	return state, err
}

// Save implements Store.
func (s *FileStore) Save(_ context.Context, id string, state State) (err error) {
	err = validateID(id)
	if err != nil {
		return err
	}

	err = os.MkdirAll(s.dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create session directory: %s", s.dir)
		return err
	}

	var data []byte
	data, err = state.Encode()
	if err != nil {
		return err
	}

	path := s.Path(id)
	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write session file: %s", path)
		return err
	}

	return err
}

// RedisStore keeps sessions as JSON strings under KeyPrefix+id.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedisStore creates a store over a Redis client.
func NewRedisStore(client redis.Cmdable) (store *RedisStore) {
	store = &RedisStore{client: client}
	return store
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context, id string) (state State, err error) {
	err = validateID(id)
	if err != nil {
		return state, err
	}

	var data []byte
	data, err = s.client.Get(ctx, KeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			state = Default()
			err = nil
			return state, err
		}
		err = errors.Wrapf(err, "failed to read session %s", id)
		return state, err
	}

	state, err = Decode(data)
	if err != nil {
		logging.FromContext(ctx).Warn("stored session unreadable, starting from defaults",
			zap.String("id", id), zap.Error(err))
		state = Default()
		err = nil
	}

	return state, err
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, id string, state State) (err error) {
	err = validateID(id)
	if err != nil {
		return err
	}

	var data []byte
	data, err = state.Encode()
	if err != nil {
		return err
	}

	err = s.client.Set(ctx, KeyPrefix+id, data, 0).Err()
	if err != nil {
		err = errors.Wrapf(err, "failed to save session %s", id)
		return err
	}

	return err
}

func validateID(id string) (err error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		err = errors.Errorf("invalid session id: %q", id)
		return err
	}
	return err
}
