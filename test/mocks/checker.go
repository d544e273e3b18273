package mocks

import (
	"context"

	"github.com/TomKxxx/sreality-tracker/internal/models"
	"github.com/stretchr/testify/mock"
)

// Checker is a mock for checker.Interface.
type Checker struct {
	mock.Mock
}

// NewChecker creates a new instance of Checker and registers expectation
// checks for test cleanup.
func NewChecker(t interface {
	mock.TestingT
	Cleanup(func())
}) *Checker {
	m := &Checker{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Checker) RunCycle(ctx context.Context) (*models.Changes, error) {
	args := m.Called(ctx)

	var changes *models.Changes
	if args.Get(0) != nil {
		changes, _ = args.Get(0).(*models.Changes)
	}

	return changes, args.Error(1)
}
