package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/votemart/votemart/internal/adapter/fulfillment"
	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/domain/repository"
	"github.com/votemart/votemart/internal/pkg/pricing"
)

// OrderUseCase runs the order submission and cancellation workflows.
type OrderUseCase struct {
	ledger      repository.LedgerRepository
	orders      repository.OrderRepository
	client      fulfillment.Client
	compensator *Compensator
	reconciler  *ReconcileUseCase
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	ledger repository.LedgerRepository,
	orders repository.OrderRepository,
	client fulfillment.Client,
	compensator *Compensator,
	reconciler *ReconcileUseCase,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		ledger:      ledger,
		orders:      orders,
		client:      client,
		compensator: compensator,
		reconciler:  reconciler,
		validate:    newValidator(),
		logger:      logger,
	}
}

// SubmitResult reports the outcome of a successful (or deferred) submission.
type SubmitResult struct {
	Order    *model.Order
	Deferred bool
	Message  string
}

// SubmitUpvoteOrder charges the wallet and hands the order to the vendor.
// Vendor unreachable defers the submission without refunding; vendor
// rejection triggers compensation. There is no automatic re-submission.
func (u *OrderUseCase) SubmitUpvoteOrder(ctx context.Context, userID int64, input UpvoteOrderInput) (*SubmitResult, error) {
	if err := validateUpvoteInput(u.validate, input); err != nil {
		return nil, err
	}

	service := model.Service(input.Service)
	amount := pricing.Quote(service, input.Speed, input.Quantity)

	order, err := u.ledger.PlaceUpvoteOrder(ctx, userID, input.Link, service, input.Quantity, input.Speed, amount)
	if err != nil {
		return nil, err
	}

	externalID, err := u.client.SubmitUpvoteOrder(ctx, fulfillment.UpvoteOrderRequest{
		Link:     input.Link,
		Quantity: input.Quantity,
		Service:  service,
		Speed:    input.Speed,
	})
	if err != nil {
		return u.handleSubmitFailure(ctx, order, err)
	}

	return u.finishSubmission(ctx, order, externalID)
}

// SubmitCommentOrder is the comment-order variant of the workflow.
func (u *OrderUseCase) SubmitCommentOrder(ctx context.Context, userID int64, input CommentOrderInput) (*SubmitResult, error) {
	if err := validateCommentInput(u.validate, input); err != nil {
		return nil, err
	}

	order, err := u.ledger.PlaceCommentOrder(ctx, userID, input.Link, input.Content, pricing.CommentQuote())
	if err != nil {
		return nil, err
	}

	externalID, err := u.client.SubmitCommentOrder(ctx, fulfillment.CommentOrderRequest{
		Link:    input.Link,
		Content: input.Content,
	})
	if err != nil {
		return u.handleSubmitFailure(ctx, order, err)
	}

	return u.finishSubmission(ctx, order, externalID)
}

func (u *OrderUseCase) handleSubmitFailure(ctx context.Context, order *model.Order, cause error) (*SubmitResult, error) {
	var unreachable *fulfillment.UnreachableError
	if errors.As(cause, &unreachable) {
		// Vendor never saw the request: park the paid order for operator
		// reprocessing instead of refunding.
		if err := u.orders.MarkDeferred(ctx, order.ID, unreachable.Error()); err != nil {
			u.logger.Error("failed to defer order after transport failure",
				slog.Int64("order_id", order.ID),
				slog.Any("error", err),
			)
			return nil, err
		}
		order.Status = model.OrderStatusPendingAPISubmission
		u.logger.Warn("fulfillment unreachable, submission deferred",
			slog.Int64("order_id", order.ID),
		)
		return &SubmitResult{
			Order:    order,
			Deferred: true,
			Message:  "Fulfillment service is temporarily unavailable; your order is queued for submission.",
		}, nil
	}

	return nil, u.compensator.Compensate(ctx, order.ID, cause.Error())
}

func (u *OrderUseCase) finishSubmission(ctx context.Context, order *model.Order, externalID string) (*SubmitResult, error) {
	// The vendor has already accepted the order; a local write failure here
	// leaves a tracked order without its external id. Accepted and logged,
	// never compensated.
	if err := u.orders.AttachExternalOrder(ctx, order.ID, externalID); err != nil {
		u.logger.Error("vendor accepted order but local attach failed",
			slog.Int64("order_id", order.ID),
			slog.String("external_order_id", externalID),
			slog.Any("error", err),
		)
		return nil, err
	}
	order.Status = model.OrderStatusSubmitted
	order.ExternalOrderID = &externalID

	// Best-effort first status pass; its failure never fails the submission.
	if result, err := u.reconciler.RefreshOne(ctx, order.ID); err == nil && result.Updated {
		order.Status = result.Status
		order.VotesDelivered = result.VotesDelivered
	}

	return &SubmitResult{Order: order, Message: "Order submitted"}, nil
}

// GetForUser returns an order only to its owner.
func (u *OrderUseCase) GetForUser(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// CancelOrder performs a user-initiated cancellation. Only vendor-tracked vote
// orders qualify, and the external cancel must succeed before any local write;
// external failure leaves local state untouched. Cancellation never refunds.
func (u *OrderUseCase) CancelOrder(ctx context.Context, userID, orderID int64) (*model.Order, error) {
	order, err := u.GetForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.Cancellable() || !order.Tracked() {
		return nil, domainErrors.ErrOrderNotCancellable
	}
	if order.Kind != model.OrderKindUpvote {
		// The vendor exposes no cancel endpoint for comment orders.
		return nil, domainErrors.ErrOrderNotCancellable
	}
	if err := u.client.CancelUpvoteOrder(ctx, *order.ExternalOrderID); err != nil {
		u.logger.Warn("vendor rejected cancellation",
			slog.Int64("order_id", order.ID),
			slog.Any("error", err),
		)
		return nil, err
	}

	if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.Status = model.OrderStatusCancelled
	return order, nil
}
