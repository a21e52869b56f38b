package mocks

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTokenIssuer is a mock implementation of port.TokenIssuer.
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(uploadID uuid.UUID, expiresAt time.Time) (string, error) {
	args := m.Called(uploadID, expiresAt)
	return args.String(0), args.Error(1)
}

func (m *MockTokenIssuer) Parse(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
