package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/server/http/dto"
)

// AccountHandler serves the aged account storefront.
type AccountHandler struct {
	facade AccountFacade
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(facade AccountFacade) *AccountHandler {
	return &AccountHandler{facade: facade}
}

// List handles GET /api/user/accounts.
func (h *AccountHandler) List(c *gin.Context) {
	accounts, err := h.facade.AvailableAccounts(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(accounts) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.AccountResponse, 0, len(accounts))
	for i := range accounts {
		resp = append(resp, accountResponse(&accounts[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Purchase handles POST /api/user/accounts/:id/purchase.
func (h *AccountHandler) Purchase(c *gin.Context) {
	userID := CurrentUserID(c)
	accountID := PathID(c)
	if accountID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	account, err := h.facade.PurchaseAccount(c.Request.Context(), userID, accountID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrAccountUnavailable):
			c.JSON(http.StatusConflict, dto.MessageResponse{Message: "This account has already been sold."})
		case errors.Is(err, domainErrors.ErrInsufficientBalance):
			c.JSON(http.StatusPaymentRequired, dto.MessageResponse{Message: "Insufficient wallet balance"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, accountResponse(account))
}
