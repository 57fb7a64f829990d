package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/server/http/dto"
	"github.com/votemart/votemart/internal/usecase"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// SubmitUpvotes handles POST /api/user/orders/upvotes.
func (h *OrderHandler) SubmitUpvotes(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.UpvoteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.SubmitUpvoteOrder(c.Request.Context(), userID, usecase.UpvoteOrderInput{
		Link:     req.Link,
		Service:  req.Service,
		Quantity: req.Quantity,
		Speed:    req.Speed,
	})
	if err != nil {
		h.submitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submitResponse(result))
}

// SubmitComment handles POST /api/user/orders/comments.
func (h *OrderHandler) SubmitComment(c *gin.Context) {
	userID := CurrentUserID(c)
	var req dto.CommentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.SubmitCommentOrder(c.Request.Context(), userID, usecase.CommentOrderInput{
		Link:    req.Link,
		Content: req.Content,
	})
	if err != nil {
		h.submitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, submitResponse(result))
}

func (h *OrderHandler) submitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrInvalidOrderInput):
		c.JSON(http.StatusUnprocessableEntity, dto.MessageResponse{Message: err.Error()})
	case errors.Is(err, domainErrors.ErrInsufficientBalance):
		c.JSON(http.StatusPaymentRequired, dto.MessageResponse{Message: "Insufficient wallet balance"})
	case errors.Is(err, domainErrors.ErrOrderRefunded):
		c.JSON(http.StatusBadGateway, dto.MessageResponse{Message: "The vendor rejected this order; your wallet was refunded."})
	case errors.Is(err, domainErrors.ErrCompensationFailed):
		c.JSON(http.StatusBadGateway, dto.MessageResponse{Message: "The vendor rejected this order and the refund failed; please contact support."})
	default:
		c.Status(http.StatusInternalServerError)
	}
}

func submitResponse(result *usecase.SubmitResult) dto.SubmitOrderResponse {
	return dto.SubmitOrderResponse{
		Order:    orderResponse(result.Order),
		Deferred: result.Deferred,
		Message:  result.Message,
	}
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	userID := CurrentUserID(c)
	orders, err := h.facade.Orders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	resp := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, orderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh handles POST /api/user/orders/:id/refresh.
func (h *OrderHandler) Refresh(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID := PathID(c)
	if orderID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	result, err := h.facade.RefreshOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		default:
			c.JSON(http.StatusBadGateway, dto.MessageResponse{Message: "Status check failed; try again later."})
		}
		return
	}

	c.JSON(http.StatusOK, dto.RefreshResponse{
		Updated:        result.Updated,
		Status:         string(result.Status),
		VotesDelivered: result.VotesDelivered,
		Reason:         result.Reason,
		RetryAfterSec:  int(result.RetryAfter.Seconds()),
	})
}

// RefreshAll handles POST /api/user/orders/refresh.
func (h *OrderHandler) RefreshAll(c *gin.Context) {
	userID := CurrentUserID(c)

	result, err := h.facade.RefreshOrders(c.Request.Context(), userID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if result.RetryAfter > 0 {
		c.JSON(http.StatusTooManyRequests, dto.BulkRefreshResponse{
			RetryAfterSec: int(result.RetryAfter.Seconds()),
			Message:       "Statuses were refreshed recently; try again shortly.",
		})
		return
	}

	c.JSON(http.StatusOK, dto.BulkRefreshResponse{
		Updated: result.Updated,
		Skipped: result.Skipped,
		Failed:  result.Failed,
		Message: "Statuses refreshed",
	})
}

// Cancel handles POST /api/user/orders/:id/cancel.
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID := CurrentUserID(c)
	orderID := PathID(c)
	if orderID == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.CancelOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrOrderNotCancellable):
			c.JSON(http.StatusConflict, dto.MessageResponse{Message: "This order can no longer be cancelled."})
		default:
			c.JSON(http.StatusBadGateway, dto.MessageResponse{Message: "The vendor declined the cancellation; the order is unchanged."})
		}
		return
	}

	c.JSON(http.StatusOK, dto.SubmitOrderResponse{
		Order:   orderResponse(order),
		Message: "Order cancelled",
	})
}
