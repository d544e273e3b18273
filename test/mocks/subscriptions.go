package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// SubscriptionRepository is a mock for sqlite.SubscriptionRepository.
type SubscriptionRepository struct {
	mock.Mock
}

// NewSubscriptionRepository creates a new instance of
// SubscriptionRepository and registers expectation checks for test cleanup.
func NewSubscriptionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *SubscriptionRepository {
	m := &SubscriptionRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *SubscriptionRepository) SubscribeChat(ctx context.Context, chatID int64) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

func (m *SubscriptionRepository) UnsubscribeChat(ctx context.Context, chatID int64) error {
	args := m.Called(ctx, chatID)
	return args.Error(0)
}

func (m *SubscriptionRepository) GetSubscribedChats(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)

	var ids []int64
	if args.Get(0) != nil {
		ids, _ = args.Get(0).([]int64)
	}

	return ids, args.Error(1)
}
