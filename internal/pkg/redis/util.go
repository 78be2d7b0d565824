package redis

import (
	"context"
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// SetWithExpiration sets key with a TTL
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue string value of key, "" when missing
func GetValue(ctx context.Context, key string) (string, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// SetJSON stores value encoded as JSON with a TTL
func SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return Rdb.Set(ctx, key, b, expiration).Err()
}

// GetJSON decodes key into dst. found is false when the key does not exist.
func GetJSON(ctx context.Context, key string, dst any) (found bool, err error) {
	b, err := Rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err = json.Unmarshal(b, dst); err != nil {
		return false, err
	}
	return true, nil
}

// SetNX sets key only if absent, reports whether it was set
func SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return Rdb.SetNX(ctx, key, value, expiration).Result()
}

var releaseLockScript = redis.NewScript(`
if redis.call('get', KEYS[1]) == ARGV[1] then
  return redis.call('del', KEYS[1])
else
  return 0
end
`)

// ReleaseLock deletes a SetNX lock only while owner still holds it
func ReleaseLock(ctx context.Context, key, owner string) (bool, error) {
	n, err := releaseLockScript.Run(ctx, Rdb, []string{key}, owner).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Exists reports whether key exists
func Exists(ctx context.Context, key string) (bool, error) {
	n, err := Rdb.Exists(ctx, key).Result()
	return n > 0, err
}

// SAddWithExpiration adds members to a set and refreshes its TTL
func SAddWithExpiration(ctx context.Context, key string, expiration time.Duration, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	pipe := Rdb.TxPipeline()
	pipe.SAdd(ctx, key, args...)
	pipe.Expire(ctx, key, expiration)
	_, err := pipe.Exec(ctx)
	return err
}

// SAdd adds members to a set
func SAdd(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	return Rdb.SAdd(ctx, key, args...).Err()
}

// GetSet members of a set
func GetSet(ctx context.Context, key string) ([]string, error) {
	return Rdb.SMembers(ctx, key).Result()
}

// Rename renames oldKey, a missing oldKey is reported as ok=false
func Rename(ctx context.Context, oldKey string, newKey string) (ok bool, err error) {
	err = Rdb.Rename(ctx, oldKey, newKey).Err()
	if err != nil {
		if err.Error() == "ERR no such key" {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// DeleteKey deletes keys
func DeleteKey(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return Rdb.Del(ctx, keys...).Err()
}
