package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/server/http/dto"
	"github.com/polkiloo/refmart/internal/usecase"
)

// OrderHandler manages checkout and order history endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler creates OrderHandler instance.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/orders.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	input := usecase.CheckoutInput{
		BuyerID:         CurrentUserID(c),
		ReferralToken:   req.ReferralCode,
		PaymentMethod:   model.PaymentMethod(req.PaymentMethod),
		ShippingAddress: req.ShippingAddress,
		ReceiptRef:      req.ReceiptRef,
		Source:          model.AttributionSource(req.Source),
		UserAgent:       c.Request.UserAgent(),
		ClickedAt:       req.ClickedAt,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, usecase.CheckoutItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.facade.Checkout(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidPaymentMethod),
			errors.Is(err, domainErrors.ErrInvalidAmount):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrInvalidReferralCode),
			errors.Is(err, domainErrors.ErrSalespersonSuspended),
			errors.Is(err, domainErrors.ErrProductNotFound):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, orderResponse(order))
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		response = append(response, orderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, response)
}

func orderResponse(order *model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:            order.ID,
		Status:        string(order.Status),
		TotalAmount:   order.TotalAmount,
		PaymentMethod: string(order.PaymentMethod),
		CreatedAt:     order.CreatedAt,
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return resp
}
