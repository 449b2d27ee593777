package redis

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/otpvault/pkg/account"
)

// Store keeps accounts in a Redis list.
type Store struct {
	client redis.UniversalClient
	key    string
}

// New returns a Store using key on client.
func New(client redis.UniversalClient, key string) *Store {
	return &Store{client: client, key: key}
}

// Load returns the list elements in order. A missing key is an empty list.
func (s *Store) Load(ctx context.Context) ([]account.Account, error) {
	items, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}

	accounts := make([]account.Account, 0, len(items))
	for _, item := range items {
		var acc account.Account
		if err := json.Unmarshal([]byte(item), &acc); err != nil {
			return nil, errors.Join(ErrFailedToLoad, err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

// Save replaces the list with accounts atomically.
func (s *Store) Save(ctx context.Context, accounts []account.Account) error {
	values := make([]any, 0, len(accounts))
	for _, acc := range accounts {
		b, err := json.Marshal(acc)
		if err != nil {
			return errors.Join(ErrFailedToSave, err)
		}
		values = append(values, b)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.RPush(ctx, s.key, values...)
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrFailedToSave, err)
	}
	return nil
}
