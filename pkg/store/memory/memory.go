// Package memory is an in-process account store. Nothing survives a restart;
// it backs tests and the STORE_DRIVER=memory mode.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/otpvault/pkg/account"
)

// Store keeps a private copy of the saved accounts.
type Store struct {
	mu       sync.RWMutex
	accounts []account.Account
	saves    int
}

// New returns a store preloaded with accounts.
func New(accounts ...account.Account) *Store {
	return &Store{accounts: slices.Clone(accounts)}
}

func (s *Store) Load(_ context.Context) ([]account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.accounts), nil
}

func (s *Store) Save(_ context.Context, accounts []account.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = slices.Clone(accounts)
	s.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}
