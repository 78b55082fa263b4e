package usecase

import (
	"context"
	"errors"
	"strconv"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/domain/repository"
	"github.com/polkiloo/refmart/internal/pkg/refcode"
)

// ReferralUseCase resolves buyer-supplied referral tokens to salesperson
// identities. Pure read, no side effects.
type ReferralUseCase struct {
	salespeople repository.SalespersonRepository
}

// NewReferralUseCase constructs ReferralUseCase.
func NewReferralUseCase(salespeople repository.SalespersonRepository) *ReferralUseCase {
	return &ReferralUseCase{salespeople: salespeople}
}

// Resolve maps a token to a salesperson. An empty token means the order
// proceeds unattributed and yields (nil, nil). A non-empty token that matches
// neither a referral code nor a salesperson identity fails with
// ErrInvalidReferralCode: a supplied code is never silently dropped.
func (u *ReferralUseCase) Resolve(ctx context.Context, token string) (*model.Salesperson, error) {
	normalized := refcode.Normalize(token)
	if normalized == "" {
		return nil, nil
	}

	sp, err := u.salespeople.GetByCode(ctx, normalized)
	if err == nil {
		return checkResolved(sp)
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, err
	}

	if id, convErr := strconv.ParseInt(normalized, 10, 64); convErr == nil {
		sp, err = u.salespeople.GetByID(ctx, id)
		if err == nil {
			return checkResolved(sp)
		}
		if !errors.Is(err, domainErrors.ErrNotFound) {
			return nil, err
		}
	}

	return nil, domainErrors.ErrInvalidReferralCode
}

func checkResolved(sp *model.Salesperson) (*model.Salesperson, error) {
	if sp.Suspended {
		return nil, domainErrors.ErrSalespersonSuspended
	}
	return sp, nil
}
