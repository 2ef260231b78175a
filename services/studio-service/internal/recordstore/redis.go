package recordstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Redis keeps each collection under <prefix><key> and its version under <prefix><key>:version.
// Commits use WATCH on the version keys and a MULTI/EXEC pipeline.
type Redis struct {
	rdb    *redis.Client
	prefix string
}

func NewRedis(rdb *redis.Client, prefix string) *Redis {
	return &Redis{rdb: rdb, prefix: prefix}
}

func (s *Redis) dataKey(key string) string    { return s.prefix + key }
func (s *Redis) versionKey(key string) string { return s.prefix + key + ":version" }

func (s *Redis) Get(ctx context.Context, key string) (Snapshot, error) {
	vals, err := s.rdb.MGet(ctx, s.dataKey(key), s.versionKey(key)).Result()
	if err != nil {
		return Snapshot{}, fmt.Errorf("redis get %s: %w", key, err)
	}
	var snap Snapshot
	if data, ok := vals[0].(string); ok {
		snap.Data = []byte(data)
	}
	if v, ok := vals[1].(string); ok {
		snap.Version, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Snapshot{}, fmt.Errorf("redis version %s: %w", key, err)
		}
	}
	return snap, nil
}

func (s *Redis) Commit(ctx context.Context, writes ...Write) error {
	if len(writes) == 0 {
		return nil
	}
	watched := make([]string, 0, len(writes))
	for _, w := range writes {
		watched = append(watched, s.versionKey(w.Key))
	}

	err := s.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.MGet(ctx, watched...).Result()
		if err != nil {
			return err
		}
		for i, w := range writes {
			var have int64
			if v, ok := current[i].(string); ok {
				if have, err = strconv.ParseInt(v, 10, 64); err != nil {
					return err
				}
			}
			if have != w.Version {
				return ErrVersionConflict
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, w := range writes {
				pipe.Incr(ctx, s.versionKey(w.Key))
				if w.Delete {
					pipe.Del(ctx, s.dataKey(w.Key))
					continue
				}
				pipe.Set(ctx, s.dataKey(w.Key), w.Data, 0)
			}
			return nil
		})
		return err
	}, watched...)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, redis.TxFailedErr), errors.Is(err, ErrVersionConflict):
		return ErrVersionConflict
	default:
		return fmt.Errorf("redis commit: %w", err)
	}
}
