package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrKeyNotFound возвращается Update, если ключа нет или он истек
var ErrKeyNotFound = errors.New("key not found")

// maxUpdateRetries - сколько раз Update повторяет транзакцию при конфликте WATCH
const maxUpdateRetries = 16

// scanBatch - подсказка COUNT для SCAN
const scanBatch = 200

// RedisStore - эфемерное хранилище состояния с TTL на каждом ключе.
// Значения непрозрачны, сериализацию выполняют сервисы.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Put записывает значение с TTL
func (s *RedisStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}

// PutIfAbsent записывает значение только если ключа нет
func (s *RedisStore) PutIfAbsent(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	created, err := s.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to put-if-absent %s: %w", key, err)
	}
	return created, nil
}

// Get возвращает значение; found=false, если ключ отсутствует или истек
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return val, true, nil
}

// GetMany читает несколько ключей одним MGET. Для отсутствующих ключей
// в результате nil на той же позиции.
func (s *RedisStore) GetMany(ctx context.Context, keys []string) ([][]byte, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to mget %d keys: %w", len(keys), err)
	}
	out := make([][]byte, len(vals))
	for i, v := range vals {
		if str, ok := v.(string); ok {
			out[i] = []byte(str)
		}
	}
	return out, nil
}

// Delete удаляет ключ
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// ListPrepend добавляет значение в начало списка и обрезает его до maxLen.
// LPUSH, LTRIM и EXPIRE выполняются одной транзакцией MULTI/EXEC, поэтому
// параллельные вставки не могут оставить список длиннее maxLen.
func (s *RedisStore) ListPrepend(ctx context.Context, key string, value []byte, maxLen int, ttl time.Duration) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, value)
		pipe.LTrim(ctx, key, 0, int64(maxLen-1))
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to prepend to list %s: %w", key, err)
	}
	return nil
}

// ListRemove удаляет все вхождения значения из списка
func (s *RedisStore) ListRemove(ctx context.Context, key string, value []byte) error {
	if err := s.client.LRem(ctx, key, 0, value).Err(); err != nil {
		return fmt.Errorf("failed to remove from list %s: %w", key, err)
	}
	return nil
}

// ListRange возвращает элементы списка [start, stop], как LRANGE
func (s *RedisStore) ListRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	vals, err := s.client.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read list %s: %w", key, err)
	}
	out := make([][]byte, len(vals))
	for i, v := range vals {
		out[i] = []byte(v)
	}
	return out, nil
}

// ListLen возвращает длину списка
func (s *RedisStore) ListLen(ctx context.Context, key string) (int64, error) {
	n, err := s.client.LLen(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get length of list %s: %w", key, err)
	}
	return n, nil
}

// ScanPrefix возвращает все ключи с заданным префиксом. Используется SCAN,
// а не KEYS, чтобы не блокировать Redis. SCAN может вернуть ключ дважды,
// поэтому результат дедуплицируется.
func (s *RedisStore) ScanPrefix(ctx context.Context, prefix string) ([]string, error) {
	seen := make(map[string]struct{})
	keys := make([]string, 0)
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, prefix+"*", scanBatch).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan prefix %s: %w", prefix, err)
		}
		for _, k := range batch {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}

// Update выполняет read-modify-write ключа под WATCH. Если между чтением и
// записью ключ изменился, транзакция повторяется. Ошибка из fn прерывает
// обновление и возвращается как есть.
func (s *RedisStore) Update(ctx context.Context, key string, ttl time.Duration, fn func(current []byte) ([]byte, error)) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrKeyNotFound
			}
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		return fmt.Errorf("failed to update %s: %w", key, err)
	}
	return fmt.Errorf("failed to update %s: too many concurrent writers", key)
}

// Ping проверяет доступность Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
