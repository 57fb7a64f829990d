package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/server/http/dto"
	"github.com/votemart/votemart/internal/server/http/middleware"
	testhelpers "github.com/votemart/votemart/internal/test"
	"github.com/votemart/votemart/internal/test/facades"
	"github.com/votemart/votemart/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, method, route, path string, handler gin.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		c.Set(middleware.UserIDContextKey, int64(1))
		handler(c)
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCurrentUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if got := CurrentUserID(c); got != 0 {
		t.Fatalf("expected 0 when not set, got %d", got)
	}

	c.Set(middleware.UserIDContextKey, int64(42))
	if got := CurrentUserID(c); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestPathID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Params = gin.Params{{Key: "id", Value: "17"}}
	if got := PathID(c); got != 17 {
		t.Fatalf("expected 17, got %d", got)
	}

	for _, bad := range []string{"", "abc", "-3", "0"} {
		c.Params = gin.Params{{Key: "id", Value: bad}}
		if got := PathID(c); got != 0 {
			t.Fatalf("expected 0 for %q, got %d", bad, got)
		}
	}
}

func TestAuthHandlerRegister(t *testing.T) {
	login := testhelpers.RandomASCIIString(7, 14)
	password := testhelpers.RandomASCIIString(16, 32)
	body, _ := json.Marshal(dto.AuthRequest{Login: login, Password: password})
	handler := NewAuthHandler(facades.AuthFacadeStub{RegisterFn: func(ctx context.Context, gotLogin, gotPassword string) (string, error) {
		if gotLogin != login || gotPassword != password {
			t.Fatalf("unexpected credentials: %q %q", gotLogin, gotPassword)
		}
		return "session-token", nil
	}})
	resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if got := resp.Header().Get("Authorization"); got != "Bearer session-token" {
		t.Fatalf("unexpected authorization header %q", got)
	}
	result := resp.Result()
	t.Cleanup(func() { _ = result.Body.Close() })
	found := false
	for _, cookie := range result.Cookies() {
		if cookie.Name == "votemart_token" && cookie.Value == "session-token" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected auth cookie named votemart_token")
	}
}

func TestAuthHandlerRegisterFailures(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		body   []byte
		status int
	}{
		{name: "malformed body", body: []byte("{"), status: http.StatusBadRequest},
		{name: "invalid credentials", err: domainErrors.ErrInvalidCredentials, status: http.StatusBadRequest},
		{name: "duplicate login", err: domainErrors.ErrAlreadyExists, status: http.StatusConflict},
		{name: "storage failure", err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			body := tc.body
			if body == nil {
				body, _ = json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
			}
			handler := NewAuthHandler(facades.AuthFacadeStub{RegisterFn: func(context.Context, string, string) (string, error) {
				return "", tc.err
			}})
			resp := performRequest(t, http.MethodPost, "/register", "/register", handler.Register, body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	body, _ := json.Marshal(dto.AuthRequest{Login: "user", Password: "pass"})
	resp := performRequest(t, http.MethodPost, "/login", "/login", NewAuthHandler(facades.AuthFacadeStub{}).Login, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	handler := NewAuthHandler(facades.AuthFacadeStub{AuthenticateFn: func(context.Context, string, string) (string, error) {
		return "", domainErrors.ErrInvalidCredentials
	}})
	resp = performRequest(t, http.MethodPost, "/login", "/login", handler.Login, body)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestOrderHandlerSubmitUpvotes(t *testing.T) {
	body, _ := json.Marshal(dto.UpvoteOrderRequest{
		Link:     "https://www.reddit.com/r/golang/comments/abc123/post/",
		Service:  1,
		Quantity: 100,
		Speed:    3,
	})
	var captured usecase.UpvoteOrderInput
	handler := NewOrderHandler(facades.OrderFacadeStub{SubmitUpvoteOrderFn: func(_ context.Context, userID int64, input usecase.UpvoteOrderInput) (*usecase.SubmitResult, error) {
		if userID != 1 {
			t.Fatalf("unexpected user id %d", userID)
		}
		captured = input
		return &usecase.SubmitResult{Order: facades.SampleOrder(), Message: "Order submitted"}, nil
	}})
	resp := performRequest(t, http.MethodPost, "/orders/upvotes", "/orders/upvotes", handler.SubmitUpvotes, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if captured.Quantity != 100 || captured.Service != 1 || captured.Speed != 3 {
		t.Fatalf("unexpected input forwarded: %+v", captured)
	}

	var parsed dto.SubmitOrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if parsed.Order.Service != "Post upvotes" {
		t.Fatalf("expected service label, got %q", parsed.Order.Service)
	}
	if parsed.Order.Amount != "12.50" {
		t.Fatalf("unexpected amount %q", parsed.Order.Amount)
	}
}

func TestOrderHandlerSubmitErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "invalid input", err: domainErrors.ErrInvalidOrderInput, status: http.StatusUnprocessableEntity},
		{name: "insufficient funds", err: domainErrors.ErrInsufficientBalance, status: http.StatusPaymentRequired},
		{name: "rejected and refunded", err: domainErrors.ErrOrderRefunded, status: http.StatusBadGateway},
		{name: "refund failed", err: domainErrors.ErrCompensationFailed, status: http.StatusBadGateway},
		{name: "storage failure", err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	body, _ := json.Marshal(dto.UpvoteOrderRequest{Link: "https://reddit.com/x", Service: 1, Quantity: 10, Speed: 3})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewOrderHandler(facades.OrderFacadeStub{SubmitUpvoteOrderFn: func(context.Context, int64, usecase.UpvoteOrderInput) (*usecase.SubmitResult, error) {
				return nil, tc.err
			}})
			resp := performRequest(t, http.MethodPost, "/orders/upvotes", "/orders/upvotes", handler.SubmitUpvotes, body)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}

	resp := performRequest(t, http.MethodPost, "/orders/upvotes", "/orders/upvotes", NewOrderHandler(facades.OrderFacadeStub{}).SubmitUpvotes, []byte("{"))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", resp.Code)
	}
}

func TestOrderHandlerSubmitComment(t *testing.T) {
	body, _ := json.Marshal(dto.CommentOrderRequest{
		Link:    "https://www.reddit.com/r/golang/comments/abc123/post/",
		Content: "insightful take",
	})
	resp := performRequest(t, http.MethodPost, "/orders/comments", "/orders/comments", NewOrderHandler(facades.OrderFacadeStub{}).SubmitComment, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var parsed dto.SubmitOrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if parsed.Order.Kind != string(model.OrderKindComment) {
		t.Fatalf("expected comment kind, got %q", parsed.Order.Kind)
	}
	if parsed.Order.Service != "" {
		t.Fatalf("comment orders must not carry a service label, got %q", parsed.Order.Service)
	}
}

func TestOrderHandlerList(t *testing.T) {
	resp := performRequest(t, http.MethodGet, "/orders", "/orders", NewOrderHandler(facades.OrderFacadeStub{}).List, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for empty history, got %d", resp.Code)
	}

	handler := NewOrderHandler(facades.OrderFacadeStub{OrdersFn: func(context.Context, int64) ([]model.Order, error) {
		return []model.Order{*facades.SampleOrder()}, nil
	}})
	resp = performRequest(t, http.MethodGet, "/orders", "/orders", handler.List, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var parsed []dto.OrderResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(parsed) != 1 || parsed[0].VotesDelivered != 40 {
		t.Fatalf("unexpected listing: %+v", parsed)
	}
}

func TestOrderHandlerRefresh(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/orders/:id/refresh", "/orders/1/refresh", NewOrderHandler(facades.OrderFacadeStub{}).Refresh, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var parsed dto.RefreshResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !parsed.Updated || parsed.Status != string(model.OrderStatusInProgress) {
		t.Fatalf("unexpected refresh payload: %+v", parsed)
	}

	resp = performRequest(t, http.MethodPost, "/orders/:id/refresh", "/orders/abc/refresh", NewOrderHandler(facades.OrderFacadeStub{}).Refresh, nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", resp.Code)
	}

	notFound := NewOrderHandler(facades.OrderFacadeStub{RefreshOrderFn: func(context.Context, int64, int64) (usecase.RefreshResult, error) {
		return usecase.RefreshResult{}, domainErrors.ErrNotFound
	}})
	resp = performRequest(t, http.MethodPost, "/orders/:id/refresh", "/orders/5/refresh", notFound.Refresh, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}

	vendorDown := NewOrderHandler(facades.OrderFacadeStub{RefreshOrderFn: func(context.Context, int64, int64) (usecase.RefreshResult, error) {
		return usecase.RefreshResult{}, errors.New("connection refused")
	}})
	resp = performRequest(t, http.MethodPost, "/orders/:id/refresh", "/orders/5/refresh", vendorDown.Refresh, nil)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestOrderHandlerRefreshAll(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/orders/refresh", "/orders/refresh", NewOrderHandler(facades.OrderFacadeStub{}).RefreshAll, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	cooled := NewOrderHandler(facades.OrderFacadeStub{RefreshOrdersFn: func(context.Context, int64) (usecase.BulkRefreshResult, error) {
		return usecase.BulkRefreshResult{RetryAfter: 20 * time.Second}, nil
	}})
	resp = performRequest(t, http.MethodPost, "/orders/refresh", "/orders/refresh", cooled.RefreshAll, nil)
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", resp.Code)
	}
	var parsed dto.BulkRefreshResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if parsed.RetryAfterSec != 20 {
		t.Fatalf("expected retry_after_seconds 20, got %d", parsed.RetryAfterSec)
	}
}

func TestOrderHandlerCancel(t *testing.T) {
	resp := performRequest(t, http.MethodPost, "/orders/:id/cancel", "/orders/1/cancel", NewOrderHandler(facades.OrderFacadeStub{}).Cancel, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "foreign order", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "terminal order", err: domainErrors.ErrOrderNotCancellable, status: http.StatusConflict},
		{name: "vendor declined", err: errors.New("cancel rejected"), status: http.StatusBadGateway},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewOrderHandler(facades.OrderFacadeStub{CancelOrderFn: func(context.Context, int64, int64) (*model.Order, error) {
				return nil, tc.err
			}})
			resp := performRequest(t, http.MethodPost, "/orders/:id/cancel", "/orders/1/cancel", handler.Cancel, nil)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestBalanceHandlerSummary(t *testing.T) {
	handler := NewBalanceHandler(facades.BalanceFacadeStub{}, facades.DepositFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/balance", "/balance", handler.Summary, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var parsed dto.BalanceResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if parsed.Current != "25.00" || parsed.Spent != "12.50" {
		t.Fatalf("unexpected balance payload: %+v", parsed)
	}
}

func TestBalanceHandlerDeposits(t *testing.T) {
	body, _ := json.Marshal(dto.DepositRequest{AmountCents: 2500})
	handler := NewBalanceHandler(facades.BalanceFacadeStub{}, facades.DepositFacadeStub{})
	resp := performRequest(t, http.MethodPost, "/deposits/card", "/deposits/card", handler.DepositCard, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var parsed dto.DepositStartedResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if parsed.RedirectURL == "" {
		t.Fatal("expected redirect URL in response")
	}

	small := NewBalanceHandler(facades.BalanceFacadeStub{}, facades.DepositFacadeStub{BeginCardDepositFn: func(context.Context, int64, int64) (*usecase.StartedDeposit, error) {
		return nil, domainErrors.ErrInvalidAmount
	}})
	resp = performRequest(t, http.MethodPost, "/deposits/card", "/deposits/card", small.DepositCard, body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}

	down := NewBalanceHandler(facades.BalanceFacadeStub{}, facades.DepositFacadeStub{BeginCryptoDepositFn: func(context.Context, int64, int64, string) (*usecase.StartedDeposit, error) {
		return nil, errors.New("provider timeout")
	}})
	cryptoBody, _ := json.Marshal(dto.DepositRequest{AmountCents: 2500, PayCurrency: "usdttrc20"})
	resp = performRequest(t, http.MethodPost, "/deposits/crypto", "/deposits/crypto", down.DepositCrypto, cryptoBody)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodGet, "/deposits", "/deposits", handler.Deposits, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for empty history, got %d", resp.Code)
	}
}

func TestAccountHandler(t *testing.T) {
	handler := NewAccountHandler(facades.AccountFacadeStub{})
	resp := performRequest(t, http.MethodGet, "/accounts", "/accounts", handler.List, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var parsed []dto.AccountResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(parsed) != 1 || parsed[0].TotalKarma != 19200 {
		t.Fatalf("unexpected listing: %+v", parsed)
	}

	empty := NewAccountHandler(facades.AccountFacadeStub{AvailableAccountsFn: func(context.Context) ([]model.RedditAccount, error) {
		return nil, nil
	}})
	resp = performRequest(t, http.MethodGet, "/accounts", "/accounts", empty.List, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}

	resp = performRequest(t, http.MethodPost, "/accounts/:id/purchase", "/accounts/7/purchase", handler.Purchase, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "unknown account", err: domainErrors.ErrNotFound, status: http.StatusNotFound},
		{name: "already sold", err: domainErrors.ErrAccountUnavailable, status: http.StatusConflict},
		{name: "insufficient funds", err: domainErrors.ErrInsufficientBalance, status: http.StatusPaymentRequired},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAccountHandler(facades.AccountFacadeStub{PurchaseAccountFn: func(context.Context, int64, int64) (*model.RedditAccount, error) {
				return nil, tc.err
			}})
			resp := performRequest(t, http.MethodPost, "/accounts/:id/purchase", "/accounts/7/purchase", h.Purchase, nil)
			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
		})
	}
}

func TestAdminHandlerSetStatus(t *testing.T) {
	var gotStatus model.OrderStatus
	handler := NewAdminHandler(facades.AdminFacadeStub{SetOrderStatusFn: func(_ context.Context, orderID int64, status model.OrderStatus) error {
		if orderID != 3 {
			t.Fatalf("unexpected order id %d", orderID)
		}
		gotStatus = status
		return nil
	}})
	body, _ := json.Marshal(dto.SetStatusRequest{Status: "SUBMITTED_TO_API"})
	resp := performRequest(t, http.MethodPost, "/orders/:id/status", "/orders/3/status", handler.SetStatus, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotStatus != model.OrderStatusSubmitted {
		t.Fatalf("unexpected status forwarded: %q", gotStatus)
	}

	conflict := NewAdminHandler(facades.AdminFacadeStub{SetOrderStatusFn: func(context.Context, int64, model.OrderStatus) error {
		return domainErrors.ErrInvalidTransition
	}})
	resp = performRequest(t, http.MethodPost, "/orders/:id/status", "/orders/3/status", conflict.SetStatus, body)
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.Code)
	}
}

func TestAdminHandlerRefund(t *testing.T) {
	handler := NewAdminHandler(facades.AdminFacadeStub{})
	resp := performRequest(t, http.MethodPost, "/orders/:id/refund", "/orders/1/refund", handler.Refund, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var parsed dto.MessageResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &parsed); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if parsed.Message != "Order #1 cancelled, $7.50 returned to wallet" {
		t.Fatalf("unexpected confirmation %q", parsed.Message)
	}
}

func TestAdminHandlerCredit(t *testing.T) {
	handler := NewAdminHandler(facades.AdminFacadeStub{})
	body, _ := json.Marshal(dto.CreditRequest{UserID: 2, Amount: "10.00"})
	resp := performRequest(t, http.MethodPost, "/balance/credit", "/balance/credit", handler.Credit, body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	body, _ = json.Marshal(dto.CreditRequest{UserID: 2, Amount: "not-a-number"})
	resp = performRequest(t, http.MethodPost, "/balance/credit", "/balance/credit", handler.Credit, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	negative := NewAdminHandler(facades.AdminFacadeStub{CreditBalanceFn: func(context.Context, int64, decimal.Decimal) error {
		return domainErrors.ErrInvalidAmount
	}})
	body, _ = json.Marshal(dto.CreditRequest{UserID: 2, Amount: "-5.00"})
	resp = performRequest(t, http.MethodPost, "/balance/credit", "/balance/credit", negative.Credit, body)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestAdminHandlerCreateAccount(t *testing.T) {
	handler := NewAdminHandler(facades.AdminFacadeStub{})
	body, _ := json.Marshal(dto.CreateAccountRequest{
		Username:     "veteran_user",
		PostKarma:    15000,
		CommentKarma: 4200,
		AgeYears:     6,
		ProfileURL:   "https://www.reddit.com/user/veteran_user/",
		Price:        "45.00",
	})
	resp := performRequest(t, http.MethodPost, "/accounts", "/accounts", handler.CreateAccount, body)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	body, _ = json.Marshal(dto.CreateAccountRequest{Username: "x", Price: "bogus"})
	resp = performRequest(t, http.MethodPost, "/accounts", "/accounts", handler.CreateAccount, body)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
