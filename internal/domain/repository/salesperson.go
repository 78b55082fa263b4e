package repository

import (
	"context"

	"github.com/polkiloo/refmart/internal/domain/model"
)

// SalespersonRepository manages salesperson identities and referral codes.
type SalespersonRepository interface {
	Create(ctx context.Context, userID int64, referralCode string) (*model.Salesperson, error)
	GetByCode(ctx context.Context, code string) (*model.Salesperson, error)
	GetByID(ctx context.Context, id int64) (*model.Salesperson, error)
	GetByUserID(ctx context.Context, userID int64) (*model.Salesperson, error)
}
