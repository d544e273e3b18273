package mocks

import (
	"context"

	"github.com/TomKxxx/sreality-tracker/internal/models"
	"github.com/stretchr/testify/mock"
)

// Renderer is a mock for renderer.Interface.
type Renderer struct {
	mock.Mock
}

// NewRenderer creates a new instance of Renderer and registers expectation
// checks for test cleanup.
func NewRenderer(t interface {
	mock.TestingT
	Cleanup(func())
}) *Renderer {
	m := &Renderer{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *Renderer) RenderAll(
	ctx context.Context,
	changes *models.Changes,
	snapshot models.Snapshot,
	history models.History,
) error {
	args := m.Called(ctx, changes, snapshot, history)
	return args.Error(0)
}
