package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/server/http/dto"
)

// SalespersonHandler serves balance, ledger history and payout endpoints.
type SalespersonHandler struct {
	facade SalespersonFacade
}

// NewSalespersonHandler creates SalespersonHandler instance.
func NewSalespersonHandler(facade SalespersonFacade) *SalespersonHandler {
	return &SalespersonHandler{facade: facade}
}

func (h *SalespersonHandler) resolve(c *gin.Context) (*model.Salesperson, bool) {
	salesperson, err := h.facade.SalespersonByUser(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusForbidden)
		} else {
			c.Status(http.StatusInternalServerError)
		}
		return nil, false
	}
	return salesperson, true
}

// Balance handles GET /api/salesperson/balance.
func (h *SalespersonHandler) Balance(c *gin.Context) {
	salesperson, ok := h.resolve(c)
	if !ok {
		return
	}

	summary, err := h.facade.Balance(c.Request.Context(), salesperson.ID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		Available: summary.Available,
		Pending:   summary.Pending,
		Withdrawn: summary.Withdrawn,
	})
}

// Ledger handles GET /api/salesperson/ledger.
func (h *SalespersonHandler) Ledger(c *gin.Context) {
	salesperson, ok := h.resolve(c)
	if !ok {
		return
	}

	entries, err := h.facade.Ledger(c.Request.Context(), salesperson.ID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(entries) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		response = append(response, ledgerEntryResponse(&entries[i]))
	}
	c.JSON(http.StatusOK, response)
}

// RequestPayout handles POST /api/salesperson/payouts.
func (h *SalespersonHandler) RequestPayout(c *gin.Context) {
	salesperson, ok := h.resolve(c)
	if !ok {
		return
	}

	request, err := h.facade.RequestPayout(c.Request.Context(), salesperson.ID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInsufficientBalance):
			c.Status(http.StatusPaymentRequired)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, payoutResponse(request))
}

// Payouts handles GET /api/salesperson/payouts.
func (h *SalespersonHandler) Payouts(c *gin.Context) {
	salesperson, ok := h.resolve(c)
	if !ok {
		return
	}

	requests, err := h.facade.Payouts(c.Request.Context(), salesperson.ID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(requests) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.PayoutResponse, 0, len(requests))
	for i := range requests {
		response = append(response, payoutResponse(&requests[i]))
	}
	c.JSON(http.StatusOK, response)
}

func ledgerEntryResponse(entry *model.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		ID:        entry.ID,
		Reference: entry.Reference,
		Kind:      string(entry.Kind),
		Amount:    entry.Amount,
		Status:    string(entry.Status),
		RiskScore: entry.RiskScore,
		Source:    string(entry.Source),
		OrderID:   entry.OrderID,
		CreatedAt: entry.CreatedAt,
	}
}

func payoutResponse(request *model.PayoutRequest) dto.PayoutResponse {
	return dto.PayoutResponse{
		ID:        request.ID,
		Amount:    request.Amount,
		Status:    string(request.Status),
		Note:      request.Note,
		CreatedAt: request.CreatedAt,
	}
}
