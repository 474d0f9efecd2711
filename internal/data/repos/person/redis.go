package person

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

const maxTxRetries = 8

// raiseSeq moves the id sequence up to an explicitly supplied id so INCR never
// hands it out later.
var raiseSeq = goredis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
local want = tonumber(ARGV[1])
if want > cur then
	redis.call('SET', KEYS[1], want)
end
return 0
`)

// RedisStore keeps one JSON document per person, an INCR sequence, a
// document-id hash index and a sorted set of ids for ordered listing.
type RedisStore struct {
	rdb    *goredis.Client
	prefix string
	now    func() time.Time
	log    *logger.Logger
}

func NewRedisStore(rdb *goredis.Client, keyPrefix string, baseLog *logger.Logger) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "person-api"
	}
	return &RedisStore{
		rdb:    rdb,
		prefix: keyPrefix + ":person",
		now:    time.Now,
		log:    baseLog.With("repo", "PersonRedisStore"),
	}
}

func (s *RedisStore) seqKey() string         { return s.prefix + ":seq" }
func (s *RedisStore) idsKey() string         { return s.prefix + ":ids" }
func (s *RedisStore) docKey() string         { return s.prefix + ":doc" }
func (s *RedisStore) rowKey(id int64) string { return s.prefix + ":" + strconv.FormatInt(id, 10) }

func (s *RedisStore) Save(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	if p == nil {
		return nil, domain.Validation("person.save", "person is required")
	}
	row := p.Clone()
	if row.ID == 0 {
		id, err := s.rdb.Incr(ctx, s.seqKey()).Result()
		if err != nil {
			return nil, fmt.Errorf("person id sequence: %w", err)
		}
		row.ID = id
	} else if err := raiseSeq.Run(ctx, s.rdb, []string{s.seqKey()}, row.ID).Err(); err != nil {
		return nil, fmt.Errorf("person id sequence: %w", err)
	}

	key := s.rowKey(row.ID)
	txf := func(tx *goredis.Tx) error {
		owner, err := tx.HGet(ctx, s.docKey(), row.DocumentID).Int64()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		if err == nil && owner != row.ID {
			return conflictDocument("person.save")
		}

		existing, err := s.decode(tx.Get(ctx, key))
		if err != nil {
			return err
		}
		now := s.now().UTC()
		if existing != nil {
			row.CreatedAt = existing.CreatedAt
		} else {
			row.CreatedAt = now
		}
		row.UpdatedAt = now
		if row.UpdatedAt.Before(row.CreatedAt) {
			row.UpdatedAt = row.CreatedAt
		}
		raw, err := json.Marshal(row)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			if existing != nil && existing.DocumentID != row.DocumentID {
				pipe.HDel(ctx, s.docKey(), existing.DocumentID)
			}
			pipe.Set(ctx, key, raw, 0)
			pipe.HSet(ctx, s.docKey(), row.DocumentID, row.ID)
			pipe.ZAdd(ctx, s.idsKey(), goredis.Z{Score: float64(row.ID), Member: row.ID})
			return nil
		})
		return err
	}

	if err := s.watch(ctx, txf, key, s.docKey()); err != nil {
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, fmt.Errorf("save person: %w", err)
	}
	return row, nil
}

// watch runs an optimistic transaction, retrying when a watched key changed.
func (s *RedisStore) watch(ctx context.Context, fn func(*goredis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := s.rdb.Watch(ctx, fn, keys...)
		if !errors.Is(err, goredis.TxFailedErr) {
			return err
		}
		s.log.Debug("redis transaction retry", "attempt", i+1)
	}
	return goredis.TxFailedErr
}

func (s *RedisStore) decode(cmd *goredis.StringCmd) (*domain.Person, error) {
	raw, err := cmd.Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var row domain.Person
	if err := json.Unmarshal(raw, &row); err != nil {
		return nil, fmt.Errorf("decode person: %w", err)
	}
	return &row, nil
}

func (s *RedisStore) FindByID(ctx context.Context, id int64) (*domain.Person, error) {
	return s.decode(s.rdb.Get(ctx, s.rowKey(id)))
}

func (s *RedisStore) FindByDocumentID(ctx context.Context, documentID string) (*domain.Person, error) {
	id, err := s.rdb.HGet(ctx, s.docKey(), documentID).Int64()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s.FindByID(ctx, id)
}

func (s *RedisStore) FindAll(ctx context.Context) ([]*domain.Person, error) {
	ids, err := s.rdb.ZRange(ctx, s.idsKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*domain.Person{}, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, s.prefix+":"+id)
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Person, 0, len(vals))
	for _, v := range vals {
		str, ok := v.(string)
		if !ok {
			continue
		}
		var row domain.Person
		if err := json.Unmarshal([]byte(str), &row); err != nil {
			return nil, fmt.Errorf("decode person: %w", err)
		}
		out = append(out, &row)
	}
	return out, nil
}

func (s *RedisStore) SearchByName(ctx context.Context, name string) ([]*domain.Person, error) {
	all, err := s.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Person, 0)
	for _, row := range all {
		if nameMatches(row.Name, name) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (s *RedisStore) ExistsByDocumentID(ctx context.Context, documentID string) (bool, error) {
	return s.rdb.HExists(ctx, s.docKey(), documentID).Result()
}

func (s *RedisStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.rowKey(id)).Result()
	return n > 0, err
}

func (s *RedisStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	key := s.rowKey(id)
	deleted := false
	err := s.watch(ctx, func(tx *goredis.Tx) error {
		existing, err := s.decode(tx.Get(ctx, key))
		if err != nil || existing == nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Del(ctx, key)
			pipe.HDel(ctx, s.docKey(), existing.DocumentID)
			pipe.ZRem(ctx, s.idsKey(), id)
			return nil
		})
		deleted = err == nil
		return err
	}, key)
	if err != nil {
		return false, fmt.Errorf("delete person: %w", err)
	}
	return deleted, nil
}

func (s *RedisStore) Count(ctx context.Context) (int64, error) {
	return s.rdb.ZCard(ctx, s.idsKey()).Result()
}
