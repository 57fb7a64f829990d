package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/server/http/dto"
	"github.com/votemart/votemart/internal/usecase"
)

// BalanceHandler manages wallet endpoints.
type BalanceHandler struct {
	balance  BalanceFacade
	deposits DepositFacade
}

// NewBalanceHandler constructs BalanceHandler.
func NewBalanceHandler(balance BalanceFacade, deposits DepositFacade) *BalanceHandler {
	return &BalanceHandler{balance: balance, deposits: deposits}
}

// Summary handles GET /api/user/balance.
func (h *BalanceHandler) Summary(c *gin.Context) {
	userID := CurrentUserID(c)
	summary, err := h.balance.Balance(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.BalanceResponse{
		Current: summary.Current.StringFixed(2),
		Spent:   summary.Spent.StringFixed(2),
	})
}

// DepositCard handles POST /api/user/deposits/card.
func (h *BalanceHandler) DepositCard(c *gin.Context) {
	h.beginDeposit(c, func(userID int64, req dto.DepositRequest) (*usecase.StartedDeposit, error) {
		return h.deposits.BeginCardDeposit(c.Request.Context(), userID, req.AmountCents)
	})
}

// DepositCrypto handles POST /api/user/deposits/crypto.
func (h *BalanceHandler) DepositCrypto(c *gin.Context) {
	h.beginDeposit(c, func(userID int64, req dto.DepositRequest) (*usecase.StartedDeposit, error) {
		return h.deposits.BeginCryptoDeposit(c.Request.Context(), userID, req.AmountCents, req.PayCurrency)
	})
}

func (h *BalanceHandler) beginDeposit(c *gin.Context, begin func(int64, dto.DepositRequest) (*usecase.StartedDeposit, error)) {
	userID := CurrentUserID(c)
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	started, err := begin(userID, req)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusUnprocessableEntity, dto.MessageResponse{Message: "Minimum deposit is $1.00"})
		default:
			c.JSON(http.StatusBadGateway, dto.MessageResponse{Message: "Payment provider is unavailable; try again later."})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.DepositStartedResponse{
		Reference:   started.Deposit.Reference.String(),
		RedirectURL: started.RedirectURL,
		Status:      string(started.Deposit.Status),
	})
}

// Deposits handles GET /api/user/deposits.
func (h *BalanceHandler) Deposits(c *gin.Context) {
	userID := CurrentUserID(c)
	deposits, err := h.deposits.Deposits(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(deposits) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.DepositResponse, 0, len(deposits))
	for _, d := range deposits {
		resp = append(resp, dto.DepositResponse{
			Reference:   d.Reference.String(),
			Method:      string(d.Method),
			AmountCents: d.AmountCents,
			Currency:    d.Currency,
			Status:      string(d.Status),
			CreatedAt:   d.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, resp)
}
