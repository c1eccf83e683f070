package services

import (
	"crypto/sha256"
	"crypto/subtle"

	"go.uber.org/zap"
)

// AuthService checks the single admin password.
type AuthService struct {
	password string
	limiter  *LoginLimiter
	logger   *zap.Logger
}

func NewAuthService(password string, limiter *LoginLimiter, logger *zap.Logger) *AuthService {
	return &AuthService{password: password, limiter: limiter, logger: logger}
}

// Login succeeds only for the exact configured password. Repeated failures
// from one IP are refused before the password is compared.
func (s *AuthService) Login(ip, password string) error {
	if !s.limiter.Check(ip) {
		s.logger.Warn("login throttled", zap.String("ip", ip))
		return ErrTooManyAttempts
	}
	if !s.matches(password) {
		s.limiter.Record(ip)
		s.logger.Warn("login failed", zap.String("ip", ip))
		return ErrInvalidPassword
	}
	s.limiter.Reset(ip)
	s.logger.Info("admin logged in", zap.String("ip", ip))
	return nil
}

// matches compares digests so the comparison time does not depend on
// where the inputs differ or on their lengths.
func (s *AuthService) matches(password string) bool {
	if s.password == "" {
		return false
	}
	got := sha256.Sum256([]byte(password))
	want := sha256.Sum256([]byte(s.password))
	return subtle.ConstantTimeCompare(got[:], want[:]) == 1
}
