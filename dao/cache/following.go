package cache

import (
	"Inkwell/config"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultFollowingTTL = 5 * time.Minute

// FollowingCache keeps a viewer's following-id list for feed assembly. A nil
// redis client turns every call into a miss or a no-op.
type FollowingCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewFollowingCache(rdb *redis.Client, conf *config.Config) *FollowingCache {
	ttl := defaultFollowingTTL
	if conf.Redis != nil && conf.Redis.FollowingTTLSeconds > 0 {
		ttl = time.Duration(conf.Redis.FollowingTTLSeconds) * time.Second
	}
	return &FollowingCache{redis: rdb, ttl: ttl}
}

// Get 读取缓存. ok is false on a miss or any redis failure.
func (c *FollowingCache) Get(ctx context.Context, userID uint64) (ids []uint64, ok bool, err error) {
	if c == nil || c.redis == nil {
		return nil, false, nil
	}
	val, err := c.redis.Get(ctx, c.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	ids, err = decodeIDs(val)
	if err != nil {
		return nil, false, err
	}
	return ids, true, nil
}

// setIfCurrent writes the list only while the version the reader saw before
// its database read is still current.
var setIfCurrent = redis.NewScript(`
local v = redis.call('GET', KEYS[2])
if (v or '0') ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// Version returns the invalidation counter for userID. Read it before loading
// the list from the database and hand it back to Set.
func (c *FollowingCache) Version(ctx context.Context, userID uint64) (int64, error) {
	if c == nil || c.redis == nil {
		return 0, nil
	}
	v, err := c.redis.Get(ctx, c.versionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// Set stores ids unless an invalidation happened after version was read, in
// which case the list may predate the toggle and is dropped.
func (c *FollowingCache) Set(ctx context.Context, userID uint64, ids []uint64, version int64) (bool, error) {
	if c == nil || c.redis == nil {
		return false, nil
	}
	keys := []string{c.key(userID), c.versionKey(userID)}
	n, err := setIfCurrent.Run(ctx, c.redis, keys,
		strconv.FormatInt(version, 10), encodeIDs(ids), c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Invalidate must run after the follow toggle has committed. Bumping the
// version fences off readers that loaded the list before the commit.
func (c *FollowingCache) Invalidate(ctx context.Context, userID uint64) error {
	if c == nil || c.redis == nil {
		return nil
	}
	_, err := c.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.versionKey(userID))
		pipe.Del(ctx, c.key(userID))
		return nil
	})
	return err
}

func (c *FollowingCache) key(userID uint64) string {
	return fmt.Sprintf("feed:following:%d", userID)
}

// versionKey has no TTL; an expired counter would reopen the race.
func (c *FollowingCache) versionKey(userID uint64) string {
	return fmt.Sprintf("feed:following:%d:ver", userID)
}

// An empty string is a cached empty list, distinct from a miss.
func encodeIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, ",")
}

func decodeIDs(s string) ([]uint64, error) {
	if s == "" {
		return []uint64{}, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]uint64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cache: bad following id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
