package mocks

import (
	"github.com/stretchr/testify/mock"
	"gopkg.in/telebot.v4"
)

// API is a mock for bot.API.
type API struct {
	mock.Mock
}

// NewAPI creates a new instance of API and registers expectation checks for
// test cleanup.
func NewAPI(t interface {
	mock.TestingT
	Cleanup(func())
}) *API {
	m := &API{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *API) Handle(endpoint interface{}, h telebot.HandlerFunc, mw ...telebot.MiddlewareFunc) {
	callArgs := []interface{}{endpoint, h}
	for _, a := range mw {
		callArgs = append(callArgs, a)
	}
	m.Called(callArgs...)
}

func (m *API) Start() {
	m.Called()
}

func (m *API) Stop() {
	m.Called()
}

func (m *API) Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error) {
	callArgs := []interface{}{to, what}
	for _, a := range opts {
		callArgs = append(callArgs, a)
	}
	args := m.Called(callArgs...)

	var msg *telebot.Message
	if args.Get(0) != nil {
		msg, _ = args.Get(0).(*telebot.Message)
	}

	return msg, args.Error(1)
}
