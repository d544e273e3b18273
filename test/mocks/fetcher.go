// Package mocks provides testify mocks for the collaborator interfaces.
package mocks

import (
	"context"

	"github.com/TomKxxx/sreality-tracker/internal/models"
	"github.com/stretchr/testify/mock"
)

// Fetcher is a mock for fetcher.Interface.
type Fetcher struct {
	mock.Mock
}

// NewFetcher creates a new instance of Fetcher and registers expectation
// checks for test cleanup.
func NewFetcher(t interface {
	mock.TestingT
	Cleanup(func())
}) *Fetcher {
	m := &Fetcher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Fetcher) Fetch(ctx context.Context) (models.Snapshot, error) {
	args := m.Called(ctx)

	var snapshot models.Snapshot
	if args.Get(0) != nil {
		snapshot, _ = args.Get(0).(models.Snapshot)
	}

	return snapshot, args.Error(1)
}
