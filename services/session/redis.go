package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tailortalk/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "chat:session:"

// maxUpsertRetries bounds optimistic-lock retries when another request
// touches the same session concurrently.
const maxUpsertRetries = 5

// RedisStore keeps sessions in Redis so several server instances can share
// them. The key TTL is set once at creation and kept on every append, so
// expiry stays absolute and Redis evicts without a sweep.
type RedisStore struct {
	client *redis.Client
	opts   Options
}

func NewRedisStore(client *redis.Client, opts Options) *RedisStore {
	return &RedisStore{client: client, opts: opts.withDefaults()}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func load(ctx context.Context, c stringGetter, key string) (*models.Session, error) {
	data, err := c.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	return load(ctx, s.client, sessionKey(id))
}

func (s *RedisStore) Upsert(ctx context.Context, id string, lines ...string) (*models.Session, error) {
	key := sessionKey(id)
	var result *models.Session

	txf := func(tx *redis.Tx) error {
		sess, err := load(ctx, tx, key)
		created := false
		if errors.Is(err, ErrSessionNotFound) {
			sess, created = newSession(id, s.opts.Now()), true
		} else if err != nil {
			return err
		}
		sess.History = appendTruncated(sess.History, lines, s.opts.HistoryLimit)

		b, err := json.Marshal(sess)
		if err != nil {
			return err
		}
		expiration := time.Duration(redis.KeepTTL)
		if created {
			expiration = s.opts.TTL
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, expiration)
			return nil
		})
		if err == nil {
			result = sess
		}
		return err
	}

	for i := 0; i < maxUpsertRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if err != redis.TxFailedErr {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}
	return nil, fmt.Errorf("save session %s: too much contention", id)
}

// Sweep is a no-op: Redis expires keys on its own.
func (s *RedisStore) Sweep(context.Context, time.Time) (int, error) {
	return 0, nil
}
