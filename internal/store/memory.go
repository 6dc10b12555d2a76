// Package store provides the in-memory transaction registry.
package store

import (
	"sort"
	"sync"

	"gateway-sim/internal/domain"
)

// Repository defines the interface for transaction storage.
type Repository interface {
	Save(txn *domain.Transaction) error
	Get(id string) (*domain.Transaction, error)
	List() ([]*domain.Transaction, error)
	Len() int
	Reset()
}

// MemoryStore is an in-memory implementation of Repository. Transactions are
// kept for the life of the store; only Reset removes them.
type MemoryStore struct {
	transactions map[string]*domain.Transaction
	mu           sync.RWMutex
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]*domain.Transaction),
	}
}

// Save stores a transaction. If it already exists, it updates it.
func (s *MemoryStore) Save(txn *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[txn.ID()] = txn
	return nil
}

// Get retrieves a transaction by ID.
func (s *MemoryStore) Get(id string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	txn, exists := s.transactions[id]
	if !exists {
		return nil, domain.ErrTransactionNotFound
	}
	return txn, nil
}

// List returns all transactions sorted by ID.
func (s *MemoryStore) List() ([]*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.transactions))
	for id := range s.transactions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result := make([]*domain.Transaction, 0, len(s.transactions))
	for _, id := range ids {
		result = append(result, s.transactions[id])
	}
	return result, nil
}

// Len returns the number of stored transactions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.transactions)
}

// Reset drops every stored transaction.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = make(map[string]*domain.Transaction)
}
