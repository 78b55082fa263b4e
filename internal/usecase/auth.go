package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/domain/repository"
	pkgAuth "github.com/polkiloo/refmart/internal/pkg/auth"
	"github.com/polkiloo/refmart/internal/pkg/refcode"
)

// Referral code collisions are resolved by regenerating; the space is large
// enough that more than a couple of retries means something is wrong.
const maxCodeAttempts = 5

// AuthUseCase handles account lifecycle and token management.
type AuthUseCase struct {
	users       repository.UserRepository
	salespeople repository.SalespersonRepository
	hasher      pkgAuth.PasswordHasher
	tokens      pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, salespeople repository.SalespersonRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, salespeople: salespeople, hasher: hasher, tokens: strategy}
}

// Register creates a new account with the given role and returns an auth token.
func (u *AuthUseCase) Register(ctx context.Context, login, password string, role model.Role) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if !role.IsValid() {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, login, hash, role)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(usr.ID, string(usr.Role))
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// RegisterSalesperson creates a salesperson account and assigns it a unique
// referral code. The code, once assigned, is stable for the identity's
// lifetime and never reused.
func (u *AuthUseCase) RegisterSalesperson(ctx context.Context, login, password string) (*model.Salesperson, string, error) {
	usr, token, err := u.Register(ctx, login, password, model.RoleSalesperson)
	if err != nil {
		return nil, "", err
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := refcode.Generate()
		if err != nil {
			return nil, "", err
		}

		sp, err := u.salespeople.Create(ctx, usr.ID, code)
		if err == nil {
			return sp, token, nil
		}
		if !errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", err
		}
	}

	return nil, "", domainErrors.ErrAlreadyExists
}

// Authenticate validates credentials and returns an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID, string(usr.Role))
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID and role from the provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, model.Role, error) {
	if token == "" {
		return 0, "", pkgAuth.ErrInvalidToken
	}
	id, role, err := u.tokens.ParseToken(token)
	if err != nil {
		return 0, "", err
	}
	return id, model.Role(role), nil
}

// SalespersonByUser resolves the salesperson identity behind a user account.
func (u *AuthUseCase) SalespersonByUser(ctx context.Context, userID int64) (*model.Salesperson, error) {
	return u.salespeople.GetByUserID(ctx, userID)
}
