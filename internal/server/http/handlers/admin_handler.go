package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/server/http/dto"
)

// AdminHandler serves verification, payout review and manual ledger control.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler creates AdminHandler instance.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// VerifyOrder handles POST /api/admin/orders/:id/verify.
func (h *AdminHandler) VerifyOrder(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.facade.VerifyOrder(c.Request.Context(), CurrentUserID(c), orderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidStateTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, orderResponse(order))
}

// PendingPayouts handles GET /api/admin/payouts.
func (h *AdminHandler) PendingPayouts(c *gin.Context) {
	requests, err := h.facade.PendingPayouts(c.Request.Context())
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

// ResolvePayout handles POST /api/admin/payouts/:id/resolve.
func (h *AdminHandler) ResolvePayout(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ResolvePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	request, err := h.facade.ResolvePayout(c.Request.Context(), CurrentUserID(c), requestID, *req.Approve, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidStateTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, payoutResponse(request))
}

// ResolvePayoutBatch handles POST /api/admin/payouts/resolve.
func (h *AdminHandler) ResolvePayoutBatch(c *gin.Context) {
	var req dto.ResolvePayoutBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.RequestIDs) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.ResolvePayoutBatch(c.Request.Context(), CurrentUserID(c), req.RequestIDs); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidStateTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// SettlePayout handles POST /api/admin/payouts/:id/settle.
func (h *AdminHandler) SettlePayout(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SettlePayoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	request, err := h.facade.SettlePayout(c.Request.Context(), CurrentUserID(c), requestID, *req.Paid, req.Note)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidStateTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, payoutResponse(request))
}

// ManualEntry handles POST /api/admin/ledger.
func (h *AdminHandler) ManualEntry(c *gin.Context) {
	var req dto.ManualEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	entry, err := h.facade.ManualEntry(c.Request.Context(), CurrentUserID(c), req.SalespersonID, model.EntryKind(req.Kind), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount),
			errors.Is(err, domainErrors.ErrInvalidCommissionRule):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, ledgerEntryResponse(entry))
}

// ReviewEntry handles POST /api/admin/ledger/:id/review.
func (h *AdminHandler) ReviewEntry(c *gin.Context) {
	entryID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ReviewEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.ReviewEntry(c.Request.Context(), CurrentUserID(c), entryID, *req.Approve); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidStateTransition):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// CreateProduct handles POST /api/admin/products.
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	rule := model.CommissionRule{
		Type: model.CommissionType(req.CommissionType),
		Rate: req.CommissionRate,
	}
	product, err := h.facade.CreateProduct(c.Request.Context(), req.Name, req.Price, rule)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidCommissionRule),
			errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ProductResponse{
		ID:             product.ID,
		Name:           product.Name,
		Price:          product.Price,
		CommissionType: string(product.Commission.Type),
		CommissionRate: product.Commission.Rate,
		Active:         product.Active,
	})
}
