package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"mindcare-be/pkg/bandit"

	"github.com/redis/go-redis/v9"
)

// saveScript writes the record only when it is newer than the stored one.
var saveScript = redis.NewScript(`
local current = tonumber(redis.call('HGET', KEYS[1], 'version') or '0')
if current >= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[1], 'sets', ARGV[2])
return 1
`)

// RedisPersister keeps the record in a hash with a version and a JSON
// encoded sets field.
type RedisPersister struct {
	client *redis.Client
	key    string
}

func NewRedisPersister(client *redis.Client, key string) *RedisPersister {
	return &RedisPersister{client: client, key: key}
}

func (p *RedisPersister) Load(ctx context.Context) (bandit.Snapshot, error) {
	fields, err := p.client.HMGet(ctx, p.key, "version", "sets").Result()
	if err != nil {
		return bandit.Snapshot{}, fmt.Errorf("hmget %s: %w", p.key, err)
	}

	rawSets, ok := fields[1].(string)
	if !ok {
		return bandit.Snapshot{}, nil
	}

	var snapshot bandit.Snapshot
	if rawVersion, ok := fields[0].(string); ok {
		snapshot.Version, err = strconv.ParseUint(rawVersion, 10, 64)
		if err != nil {
			return bandit.Snapshot{}, fmt.Errorf("decode %s version: %w", p.key, err)
		}
	}
	if err := json.Unmarshal([]byte(rawSets), &snapshot.Sets); err != nil {
		return bandit.Snapshot{}, fmt.Errorf("decode %s: %w", p.key, err)
	}
	return snapshot, nil
}

func (p *RedisPersister) Save(ctx context.Context, snapshot bandit.Snapshot) error {
	raw, err := json.Marshal(snapshot.Sets)
	if err != nil {
		return fmt.Errorf("encode q-values: %w", err)
	}
	written, err := saveScript.Run(ctx, p.client, []string{p.key}, snapshot.Version, raw).Int()
	if err != nil {
		return fmt.Errorf("save %s: %w", p.key, err)
	}
	if written == 0 {
		return fmt.Errorf("%w: %s at version %d", bandit.ErrStaleSnapshot, p.key, snapshot.Version)
	}
	return nil
}
