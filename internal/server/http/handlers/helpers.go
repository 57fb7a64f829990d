package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/pkg/pricing"
	"github.com/votemart/votemart/internal/server/http/dto"
	"github.com/votemart/votemart/internal/server/http/middleware"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// PathID parses a numeric :id path parameter, zero when malformed.
func PathID(c *gin.Context) int64 {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

func orderResponse(o *model.Order) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:              o.ID,
		Kind:            string(o.Kind),
		Link:            o.Link,
		Quantity:        o.Quantity,
		Amount:          o.Amount.StringFixed(2),
		Status:          string(o.Status),
		VotesDelivered:  o.VotesDelivered,
		LastStatusCheck: o.LastStatusCheck,
		CreatedAt:       o.CreatedAt,
	}
	if o.Kind == model.OrderKindUpvote {
		resp.Service = o.Service.String()
		resp.Speed = pricing.SpeedLabel(o.Speed)
	}
	return resp
}

func accountResponse(a *model.RedditAccount) dto.AccountResponse {
	return dto.AccountResponse{
		ID:           a.ID,
		Username:     a.Username,
		PostKarma:    a.PostKarma,
		CommentKarma: a.CommentKarma,
		TotalKarma:   a.TotalKarma(),
		AgeYears:     a.AgeYears,
		ProfileURL:   a.ProfileURL,
		Price:        a.Price.StringFixed(2),
		Status:       string(a.Status),
		SoldAt:       a.SoldAt,
	}
}
