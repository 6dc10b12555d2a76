package gateway

import (
	"gateway-sim/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockRepository is a mock implementation of store.Repository for testing.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Save(txn *domain.Transaction) error {
	args := m.Called(txn)
	return args.Error(0)
}

func (m *MockRepository) Get(id string) (*domain.Transaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockRepository) List() ([]*domain.Transaction, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func (m *MockRepository) Len() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockRepository) Reset() {
	m.Called()
}
