// Package customdict stores the user's own words in a Redis set.
package customdict

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/nikogura/rhymer/pkg/lexicon"
)

// DefaultKey is the Redis set holding the words.
const DefaultKey = "rhymer:custom_dict"

// CustomDict wraps a Redis client to store custom dictionary words.
type CustomDict struct {
	client redis.Cmdable
	key    string
}

// New creates a CustomDict. An empty key selects DefaultKey.
func New(client redis.Cmdable, key string) (dict *CustomDict) {
	if key == "" {
		key = DefaultKey
	}
	dict = &CustomDict{client: client, key: key}
	return dict
}

// Add inserts words, normalized the way the corpus is. It returns how many were new.
func (cd *CustomDict) Add(ctx context.Context, words ...string) (added int64, err error) {
	members := normalize(words)
	if len(members) == 0 {
		err = errors.New("no words to add")
		return added, err
	}

	added, err = cd.client.SAdd(ctx, cd.key, members...).Result()
	if err != nil {
		err = errors.Wrapf(err, "failed to add words to %s", cd.key)
		return added, err
	}
	return added, err
}

// Remove deletes words. It returns how many were present.
func (cd *CustomDict) Remove(ctx context.Context, words ...string) (removed int64, err error) {
	members := normalize(words)
	if len(members) == 0 {
		return removed, err
	}

	removed, err = cd.client.SRem(ctx, cd.key, members...).Result()
	if err != nil {
		err = errors.Wrapf(err, "failed to remove words from %s", cd.key)
		return removed, err
	}
	return removed, err
}

// All returns every stored word in alphabetical order.
func (cd *CustomDict) All(ctx context.Context) (words []string, err error) {
	words, err = cd.client.SMembers(ctx, cd.key).Result()
	if err != nil {
		err = errors.Wrapf(err, "failed to list words of %s", cd.key)
		return words, err
	}
	sort.Strings(words)
	return words, err
}

func normalize(words []string) (members []interface{}) {
	for _, w := range words {
		if text := lexicon.Normalize(w); text != "" {
			members = append(members, text)
		}
	}
	return members
}
