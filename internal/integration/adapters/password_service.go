// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/ecooy/backend/internal/application/adapter"
	domainerror "github.com/ecooy/backend/internal/domain/error"
)

const (
	bcryptCost = 12
	// MinPasswordLength is the shortest accepted password, counted in characters.
	MinPasswordLength = 6
)

type bcryptPasswordService struct {
	cost int
}

// NewPasswordService creates a bcrypt backed password service.
func NewPasswordService() adapter.PasswordService {
	return &bcryptPasswordService{cost: bcryptCost}
}

// NewPasswordServiceWithCost is used by tests to keep hashing fast.
func NewPasswordServiceWithCost(cost int) adapter.PasswordService {
	return &bcryptPasswordService{cost: cost}
}

func (s *bcryptPasswordService) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *bcryptPasswordService) Matches(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (s *bcryptPasswordService) CheckStrength(password string) error {
	if utf8.RuneCountInString(password) >= MinPasswordLength {
		return nil
	}
	return domainerror.NewAuthError(
		domainerror.ErrCodeWeakPassword,
		fmt.Sprintf("password must have at least %d characters", MinPasswordLength),
		domainerror.ErrWeakPassword,
	)
}
