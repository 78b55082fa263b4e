package dto

// AuthRequest describes login/password payload.
type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// SalespersonRegisterResponse returns the issued referral code.
type SalespersonRegisterResponse struct {
	SalespersonID int64  `json:"salesperson_id"`
	ReferralCode  string `json:"referral_code"`
}
