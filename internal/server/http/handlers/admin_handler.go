package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/server/http/dto"
)

// AdminHandler serves operator-only endpoints.
type AdminHandler struct {
	facade AdminFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade AdminFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Orders handles GET /api/admin/orders.
func (h *AdminHandler) Orders(c *gin.Context) {
	orders, err := h.facade.AdminOrders(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, orderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// SetStatus handles POST /api/admin/orders/:id/status.
func (h *AdminHandler) SetStatus(c *gin.Context) {
	orderID := PathID(c)
	if orderID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err := h.facade.SetOrderStatus(c.Request.Context(), orderID, model.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, dto.MessageResponse{Message: "This status change is not allowed."})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Order status updated"})
}

// Refund handles POST /api/admin/orders/:id/refund.
func (h *AdminHandler) Refund(c *gin.Context) {
	orderID := PathID(c)
	if orderID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	confirmation, err := h.facade.RefundOrder(c.Request.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition):
			c.JSON(http.StatusConflict, dto.MessageResponse{Message: "This order can no longer be refunded."})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: confirmation})
}

// Credit handles POST /api/admin/balance/credit.
func (h *AdminHandler) Credit(c *gin.Context) {
	var req dto.CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || req.UserID <= 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.CreditBalance(c.Request.Context(), req.UserID, amount); err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, dto.MessageResponse{Message: "Credit amount must be positive"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Balance credited"})
}

// Accounts handles GET /api/admin/accounts.
func (h *AdminHandler) Accounts(c *gin.Context) {
	accounts, err := h.facade.AllAccounts(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	resp := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, accountResponse(&accounts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateAccount handles POST /api/admin/accounts.
func (h *AdminHandler) CreateAccount(c *gin.Context) {
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	price, err := decimal.NewFromString(req.Price)
	if err != nil || req.Username == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	account, err := h.facade.CreateAccount(c.Request.Context(), &model.RedditAccount{
		Username:     req.Username,
		PostKarma:    req.PostKarma,
		CommentKarma: req.CommentKarma,
		AgeYears:     req.AgeYears,
		ProfileURL:   req.ProfileURL,
		Price:        price,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, dto.MessageResponse{Message: "Price must be positive"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, accountResponse(account))
}
