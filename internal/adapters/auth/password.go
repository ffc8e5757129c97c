package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"eventbook/internal/domain"
)

type bcryptVerifier struct {
	cost int
}

// NewBcryptVerifier returns a PasswordVerifier backed by bcrypt. The stored
// admin hash is produced by the same scheme (see Hash).
func NewBcryptVerifier(cost int) domain.PasswordVerifier {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &bcryptVerifier{cost: cost}
}

func (v *bcryptVerifier) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Hash produces a bcrypt hash for the given password. Used to generate the
// ADMIN_PASSWORD_HASH value.
func (v *bcryptVerifier) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), v.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
