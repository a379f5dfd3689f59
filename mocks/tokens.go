package mocks

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type TokenIssuer struct {
	mock.Mock
}

func (m *TokenIssuer) Generate(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *TokenIssuer) Parse(token string) (uuid.UUID, error) {
	args := m.Called(token)
	return args.Get(0).(uuid.UUID), args.Error(1)
}
