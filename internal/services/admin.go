package services

import (
	"context"
	"strings"
	"time"

	"eventbook/internal/domain"
)

const adminTokenExpiry = 24 * time.Hour

type adminService struct {
	adminEmail        string
	adminPasswordHash string
	verifier          domain.PasswordVerifier
	issuer            domain.TokenIssuer
}

// NewAdminService returns an AdminService for the single configured admin
// account. Credentials come from configuration, not from storage.
func NewAdminService(adminEmail, adminPasswordHash string, verifier domain.PasswordVerifier, issuer domain.TokenIssuer) domain.AdminService {
	return &adminService{
		adminEmail:        strings.ToLower(strings.TrimSpace(adminEmail)),
		adminPasswordHash: adminPasswordHash,
		verifier:          verifier,
		issuer:            issuer,
	}
}

func (s *adminService) Login(ctx context.Context, email, password string) (string, error) {
	if s.adminEmail == "" || s.adminPasswordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	if domain.NormalizeEmail(email) != s.adminEmail {
		return "", domain.ErrInvalidCredentials
	}
	if err := s.verifier.Compare(s.adminPasswordHash, password); err != nil {
		return "", domain.ErrInvalidCredentials
	}
	return s.issuer.Issue("admin", s.adminEmail, adminTokenExpiry)
}
