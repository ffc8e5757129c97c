package domain

import (
	"context"
	"time"
)

// PasswordVerifier checks a plaintext password against a stored hash.
type PasswordVerifier interface {
	Compare(hash, password string) error
}

// TokenIssuer issues bearer tokens for the authenticated admin.
type TokenIssuer interface {
	Issue(subject, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}

// AdminService authenticates the configured admin and issues tokens for the
// event-mutating endpoints.
type AdminService interface {
	Login(ctx context.Context, email, password string) (token string, err error)
}
