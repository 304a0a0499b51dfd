package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockErrorSink is a mock implementation of port.ErrorSink.
type MockErrorSink struct {
	mock.Mock
}

func (m *MockErrorSink) Notify(err error, msg string) {
	m.Called(err, msg)
}
