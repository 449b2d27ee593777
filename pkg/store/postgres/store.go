package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/otpvault/pkg/account"
)

var columns = []string{"id", "position", "name", "secret", "note"}

// Store keeps accounts in the accounts table.
type Store struct {
	pool *pgxpool.Pool
}

// New returns a Store over pool. Run Migrate first.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Load returns every row ordered by position.
func (s *Store) Load(ctx context.Context) ([]account.Account, error) {
	rows, err := s.pool.Query(ctx, "SELECT name, secret, note FROM accounts ORDER BY position")
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}

	accounts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (account.Account, error) {
		var acc account.Account
		err := row.Scan(&acc.Name, &acc.Secret, &acc.Note)
		return acc, err
	})
	if err != nil {
		return nil, errors.Join(ErrFailedToLoad, err)
	}
	return accounts, nil
}

// Save replaces every row in one transaction.
func (s *Store) Save(ctx context.Context, accounts []account.Account) error {
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "DELETE FROM accounts"); err != nil {
			return err
		}
		if len(accounts) == 0 {
			return nil
		}

		_, err := tx.CopyFrom(ctx, pgx.Identifier{"accounts"}, columns,
			pgx.CopyFromSlice(len(accounts), func(i int) ([]any, error) {
				acc := accounts[i]
				id := pgtype.UUID{Bytes: uuid.New(), Valid: true}
				return []any{id, int32(i), acc.Name, acc.Secret, acc.Note}, nil
			}),
		)
		return err
	})
	if err != nil {
		return errors.Join(ErrFailedToSave, err)
	}
	return nil
}
