package errors

import "errors"

var (
	ErrAlreadyExists          = errors.New("already exists")
	ErrNotFound               = errors.New("not found")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidReferralCode    = errors.New("invalid referral code")
	ErrSalespersonSuspended   = errors.New("salesperson suspended")
	ErrProductNotFound        = errors.New("product not found")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrInvalidCommissionRule  = errors.New("invalid commission rule")
)
