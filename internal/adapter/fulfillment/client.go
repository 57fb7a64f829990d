package fulfillment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/votemart/votemart/internal/domain/model"
)

// UnreachableError signals a transport failure: the vendor never saw the
// request, so a submission may be deferred instead of refunded.
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("fulfillment api unreachable: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error { return e.Err }

// APIError signals that the vendor was reachable but rejected the request.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fulfillment api rejected request (%d): %s", e.StatusCode, e.Message)
}

// UpvoteOrderRequest is the vendor submit payload for vote orders.
type UpvoteOrderRequest struct {
	Link     string        `json:"link"`
	Quantity int           `json:"quantity"`
	Service  model.Service `json:"service"`
	Speed    float64       `json:"speed"`
}

// CommentOrderRequest is the vendor submit payload for comment orders.
type CommentOrderRequest struct {
	Link    string `json:"link"`
	Content string `json:"content"`
}

// Client exposes operations against the vendor fulfillment API.
type Client interface {
	SubmitUpvoteOrder(ctx context.Context, req UpvoteOrderRequest) (string, error)
	SubmitCommentOrder(ctx context.Context, req CommentOrderRequest) (string, error)
	UpvoteOrderStatus(ctx context.Context, orderNumber string) (*model.FulfillmentReport, error)
	CommentOrderStatus(ctx context.Context, orderNumber string) (*model.FulfillmentReport, error)
	CancelUpvoteOrder(ctx context.Context, orderNumber string) error
}

// HTTPClient implements Client via the vendor's JSON-over-POST API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// response mirrors the vendor's JSON payloads; only the fields relevant to
// the call are populated.
type response struct {
	OrderNumber    string `json:"order_number"`
	Status         string `json:"status"`
	VoteQuantity   int    `json:"vote_quantity"`
	VotesDelivered int    `json:"votes_delivered"`
	Message        string `json:"message"`
}

// NewHTTPClient creates the vendor client with its default 10s timeout.
func NewHTTPClient(baseURL, apiKey string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse fulfillment url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("fulfillment url must be absolute")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("fulfillment api key must be provided")
	}
	return &HTTPClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// SubmitUpvoteOrder hands a vote order to the vendor and returns its order number.
func (c *HTTPClient) SubmitUpvoteOrder(ctx context.Context, req UpvoteOrderRequest) (string, error) {
	data, err := c.post(ctx, "/upvote_order/submit/", req)
	if err != nil {
		return "", err
	}
	if data.OrderNumber == "" {
		return "", &APIError{StatusCode: http.StatusOK, Message: rejectionMessage(data)}
	}
	return data.OrderNumber, nil
}

// SubmitCommentOrder hands a comment order to the vendor and returns its order number.
func (c *HTTPClient) SubmitCommentOrder(ctx context.Context, req CommentOrderRequest) (string, error) {
	data, err := c.post(ctx, "/comment_order/submit/", req)
	if err != nil {
		return "", err
	}
	if data.OrderNumber == "" {
		return "", &APIError{StatusCode: http.StatusOK, Message: rejectionMessage(data)}
	}
	return data.OrderNumber, nil
}

// UpvoteOrderStatus queries delivery progress of a vote order.
func (c *HTTPClient) UpvoteOrderStatus(ctx context.Context, orderNumber string) (*model.FulfillmentReport, error) {
	return c.status(ctx, "/upvote_order/status/", orderNumber)
}

// CommentOrderStatus queries delivery progress of a comment order.
func (c *HTTPClient) CommentOrderStatus(ctx context.Context, orderNumber string) (*model.FulfillmentReport, error) {
	return c.status(ctx, "/comment_order/status/", orderNumber)
}

// CancelUpvoteOrder asks the vendor to stop delivery.
func (c *HTTPClient) CancelUpvoteOrder(ctx context.Context, orderNumber string) error {
	_, err := c.post(ctx, "/upvote_order/cancel/", map[string]string{"order_number": orderNumber})
	return err
}

func (c *HTTPClient) status(ctx context.Context, endpoint, orderNumber string) (*model.FulfillmentReport, error) {
	data, err := c.post(ctx, endpoint, map[string]string{"order_number": orderNumber})
	if err != nil {
		return nil, err
	}
	return &model.FulfillmentReport{
		OrderNumber:    data.OrderNumber,
		Status:         model.FulfillmentStatus(data.Status),
		VoteQuantity:   data.VoteQuantity,
		VotesDelivered: data.VotesDelivered,
	}, nil
}

func (c *HTTPClient) post(ctx context.Context, endpoint string, payload any) (*response, error) {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint) + "/"

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.String(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UnreachableError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &UnreachableError{Err: err}
	}

	var data response
	if len(raw) > 0 {
		// Tolerate empty or malformed success bodies; rejections carry JSON.
		_ = json.Unmarshal(raw, &data)
	}

	if resp.StatusCode != http.StatusOK {
		message := data.Message
		if message == "" {
			message = resp.Status
		}
		c.logger.Error("fulfillment request failed",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return nil, &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	return &data, nil
}

func rejectionMessage(data *response) string {
	if data.Message != "" {
		return data.Message
	}
	return "vendor returned no order number"
}
