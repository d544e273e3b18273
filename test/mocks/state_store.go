package mocks

import (
	"context"

	"github.com/TomKxxx/sreality-tracker/internal/models"
	"github.com/stretchr/testify/mock"
)

// StateStore is a mock for storage.StateStore.
type StateStore struct {
	mock.Mock
}

// NewStateStore creates a new instance of StateStore and registers
// expectation checks for test cleanup.
func NewStateStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *StateStore {
	m := &StateStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *StateStore) Load(ctx context.Context) (models.Snapshot, models.History, error) {
	args := m.Called(ctx)

	var snapshot models.Snapshot
	if args.Get(0) != nil {
		snapshot, _ = args.Get(0).(models.Snapshot)
	}

	var history models.History
	if args.Get(1) != nil {
		history, _ = args.Get(1).(models.History)
	}

	return snapshot, history, args.Error(2)
}

func (m *StateStore) Save(ctx context.Context, snapshot models.Snapshot, history models.History) error {
	args := m.Called(ctx, snapshot, history)
	return args.Error(0)
}
