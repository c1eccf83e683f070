package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestLogin(t *testing.T) {
	auth := NewAuthService("correct horse", NewLoginLimiter(5, time.Minute), zaptest.NewLogger(t))

	assert.NoError(t, auth.Login("203.0.113.1", "correct horse"))
	assert.ErrorIs(t, auth.Login("203.0.113.1", "correct horse "), ErrInvalidPassword)
	assert.ErrorIs(t, auth.Login("203.0.113.1", "Correct horse"), ErrInvalidPassword)
	assert.ErrorIs(t, auth.Login("203.0.113.1", ""), ErrInvalidPassword)
}

func TestLoginWithoutConfiguredPassword(t *testing.T) {
	auth := NewAuthService("", NewLoginLimiter(5, time.Minute), zaptest.NewLogger(t))
	assert.ErrorIs(t, auth.Login("203.0.113.1", ""), ErrInvalidPassword)
}

func TestLoginThrottled(t *testing.T) {
	auth := NewAuthService("secret", NewLoginLimiter(2, time.Minute), zaptest.NewLogger(t))
	ip := "203.0.113.2"

	assert.ErrorIs(t, auth.Login(ip, "wrong"), ErrInvalidPassword)
	assert.ErrorIs(t, auth.Login(ip, "wrong"), ErrInvalidPassword)
	assert.ErrorIs(t, auth.Login(ip, "secret"), ErrTooManyAttempts)

	assert.NoError(t, auth.Login("203.0.113.3", "secret"), "other clients are unaffected")
}
