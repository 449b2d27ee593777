package account

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/dmitrymomot/otpvault/pkg/logger"
)

// ImportResult describes the outcome of Keeper.Import.
type ImportResult struct {
	Added    []Account `json:"added"`
	Existing []Account `json:"existing"`
}

// KeeperOption configures a Keeper.
type KeeperOption func(*Keeper)

// WithLogger sets the logger used to report store problems.
func WithLogger(l *slog.Logger) KeeperOption {
	return func(k *Keeper) {
		if l != nil {
			k.log = l
		}
	}
}

// Keeper owns the account list and persists it through a Store.
// It is safe for concurrent use.
type Keeper struct {
	mu       sync.RWMutex
	store    Store
	log      *slog.Logger
	accounts []Account
}

// NewKeeper returns an empty Keeper backed by store. Call Load to read the
// stored accounts.
func NewKeeper(store Store, opts ...KeeperOption) *Keeper {
	k := &Keeper{
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Load replaces the in-memory list with the stored one. A store that cannot
// be read is treated as empty.
func (k *Keeper) Load(ctx context.Context) {
	accounts, err := k.store.Load(ctx)
	if err != nil {
		k.log.WarnContext(ctx, "account store unreadable, starting empty", logger.Error(err))
		accounts = nil
	}

	k.mu.Lock()
	k.accounts = slices.Clone(accounts)
	k.mu.Unlock()
}

// Reload is Load returning the fresh list.
func (k *Keeper) Reload(ctx context.Context) []Account {
	k.Load(ctx)
	return k.List()
}

// List returns a copy of all accounts in insertion order.
func (k *Keeper) List() []Account {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return slices.Clone(k.accounts)
}

// Find returns the first account with the given name.
func (k *Keeper) Find(name string) (Account, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	acc, ok := lo.Find(k.accounts, func(a Account) bool { return a.Name == name })
	if !ok {
		return Account{}, ErrNotFound
	}
	return acc, nil
}

// Add appends acc unless the same account is already stored.
func (k *Keeper) Add(ctx context.Context, acc Account) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if lo.ContainsBy(k.accounts, acc.Same) {
		return ErrDuplicate
	}

	return k.commit(ctx, append(slices.Clone(k.accounts), acc))
}

// Import adds every account that is not stored yet and reports the ones that
// were skipped. Order of the input is preserved.
func (k *Keeper) Import(ctx context.Context, incoming []Account) (ImportResult, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	var res ImportResult
	next := slices.Clone(k.accounts)
	for _, acc := range incoming {
		if lo.ContainsBy(next, acc.Same) {
			res.Existing = append(res.Existing, acc)
			continue
		}
		next = append(next, acc)
		res.Added = append(res.Added, acc)
	}

	if len(res.Added) == 0 {
		return res, nil
	}

	if err := k.commit(ctx, next); err != nil {
		return ImportResult{}, err
	}

	k.log.InfoContext(ctx, "accounts imported",
		logger.Count(len(res.Added)),
		slog.Int("existing", len(res.Existing)),
	)
	return res, nil
}

// UpdateNote sets the note of the account identified by name and secret.
func (k *Keeper) UpdateNote(ctx context.Context, name, secret, note string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	target := Account{Name: name, Secret: secret}
	if !lo.ContainsBy(k.accounts, target.Same) {
		return ErrNotFound
	}

	next := lo.Map(k.accounts, func(a Account, _ int) Account {
		if a.Same(target) {
			a.Note = note
		}
		return a
	})

	return k.commit(ctx, next)
}

// Delete removes the account identified by name and secret.
func (k *Keeper) Delete(ctx context.Context, name, secret string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	target := Account{Name: name, Secret: secret}
	next := lo.Reject(k.accounts, func(a Account, _ int) bool { return a.Same(target) })
	if len(next) == len(k.accounts) {
		return ErrNotFound
	}

	return k.commit(ctx, next)
}

// commit saves next and makes it current. Callers hold k.mu.
func (k *Keeper) commit(ctx context.Context, next []Account) error {
	if err := k.store.Save(ctx, next); err != nil {
		k.log.ErrorContext(ctx, "failed to save accounts", logger.Count(len(next)), logger.Error(err))
		return errors.Join(ErrSaveFailed, err)
	}
	k.accounts = next
	return nil
}
