package test

import (
	"context"

	"github.com/votemart/votemart/internal/adapter/fulfillment"
	"github.com/votemart/votemart/internal/domain/model"
)

// FulfillmentClientStub simulates the vendor API via function overrides.
type FulfillmentClientStub struct {
	SubmitUpvoteFn  func(context.Context, fulfillment.UpvoteOrderRequest) (string, error)
	SubmitCommentFn func(context.Context, fulfillment.CommentOrderRequest) (string, error)
	UpvoteStatusFn  func(context.Context, string) (*model.FulfillmentReport, error)
	CommentStatusFn func(context.Context, string) (*model.FulfillmentReport, error)
	CancelFn        func(context.Context, string) error

	SubmittedUpvotes  []fulfillment.UpvoteOrderRequest
	SubmittedComments []fulfillment.CommentOrderRequest
	StatusQueries     []string
	Cancelled         []string
}

var _ fulfillment.Client = (*FulfillmentClientStub)(nil)

func (s *FulfillmentClientStub) SubmitUpvoteOrder(ctx context.Context, req fulfillment.UpvoteOrderRequest) (string, error) {
	s.SubmittedUpvotes = append(s.SubmittedUpvotes, req)
	if s.SubmitUpvoteFn != nil {
		return s.SubmitUpvoteFn(ctx, req)
	}
	return "ext-1", nil
}

func (s *FulfillmentClientStub) SubmitCommentOrder(ctx context.Context, req fulfillment.CommentOrderRequest) (string, error) {
	s.SubmittedComments = append(s.SubmittedComments, req)
	if s.SubmitCommentFn != nil {
		return s.SubmitCommentFn(ctx, req)
	}
	return "ext-1", nil
}

func (s *FulfillmentClientStub) UpvoteOrderStatus(ctx context.Context, orderNumber string) (*model.FulfillmentReport, error) {
	s.StatusQueries = append(s.StatusQueries, orderNumber)
	if s.UpvoteStatusFn != nil {
		return s.UpvoteStatusFn(ctx, orderNumber)
	}
	return &model.FulfillmentReport{OrderNumber: orderNumber, Status: model.FulfillmentStatusPending}, nil
}

func (s *FulfillmentClientStub) CommentOrderStatus(ctx context.Context, orderNumber string) (*model.FulfillmentReport, error) {
	s.StatusQueries = append(s.StatusQueries, orderNumber)
	if s.CommentStatusFn != nil {
		return s.CommentStatusFn(ctx, orderNumber)
	}
	return &model.FulfillmentReport{OrderNumber: orderNumber, Status: model.FulfillmentStatusPending}, nil
}

func (s *FulfillmentClientStub) CancelUpvoteOrder(ctx context.Context, orderNumber string) error {
	s.Cancelled = append(s.Cancelled, orderNumber)
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderNumber)
	}
	return nil
}
