package payment

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
)

// NowPaymentsClient creates crypto invoices via the NowPayments REST API.
type NowPaymentsClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

type nowPaymentResponse struct {
	PaymentID  json.Number `json:"payment_id"`
	PaymentURL string      `json:"payment_url"`
	Message    string      `json:"message"`
}

type nowEstimateResponse struct {
	EstimatedAmount json.Number `json:"estimated_amount"`
}

// NewNowPaymentsClient builds the NowPayments adapter.
func NewNowPaymentsClient(baseURL, apiKey string, logger *slog.Logger) (*NowPaymentsClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse nowpayments url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("nowpayments url must be absolute")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("nowpayments api key must be provided")
	}
	return &NowPaymentsClient{
		baseURL: parsed,
		apiKey:  apiKey,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreatePayment estimates the conversion and creates a payment invoice,
// returning the hosted payment page URL.
func (c *NowPaymentsClient) CreatePayment(ctx context.Context, req CryptoPaymentRequest) (*CryptoPayment, error) {
	if req.AmountCents < 100 {
		return nil, fmt.Errorf("minimum deposit amount is $1")
	}
	currency := req.PayCurrency
	if currency == "" {
		currency = "USDT"
	}
	amountUSD := float64(req.AmountCents) / 100

	estimate, err := c.estimate(ctx, amountUSD, currency)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{
		"price_amount":      amountUSD,
		"price_currency":    "usd",
		"pay_currency":      currency,
		"order_id":          req.Reference,
		"order_description": fmt.Sprintf("Wallet deposit - $%.2f", amountUSD),
		"success_url":       req.SuccessURL,
		"cancel_url":        req.CancelURL,
	}

	var created nowPaymentResponse
	if err := c.do(ctx, http.MethodPost, "/v1/payment", payload, &created); err != nil {
		return nil, err
	}

	return &CryptoPayment{
		ProviderID:   created.PaymentID.String(),
		RedirectURL:  created.PaymentURL,
		CryptoAmount: estimate.EstimatedAmount.String(),
		PayCurrency:  currency,
	}, nil
}

func (c *NowPaymentsClient) estimate(ctx context.Context, amountUSD float64, currency string) (*nowEstimateResponse, error) {
	endpoint := fmt.Sprintf("/v1/estimate?amount=%v&currency_from=usd&currency_to=%s", amountUSD, url.QueryEscape(currency))
	var estimate nowEstimateResponse
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &estimate); err != nil {
		return nil, fmt.Errorf("get crypto conversion rate: %w", err)
	}
	return &estimate, nil
}

func (c *NowPaymentsClient) do(ctx context.Context, method, endpoint string, payload, out any) error {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return err
	}
	target := *c.baseURL
	target.Path = path.Join(target.Path, parsed.Path)
	target.RawQuery = parsed.RawQuery

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("x-api-key", c.apiKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("nowpayments request failed",
			slog.String("endpoint", parsed.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		var data nowPaymentResponse
		_ = json.Unmarshal(raw, &data)
		message := data.Message
		if message == "" {
			message = resp.Status
		}
		return fmt.Errorf("nowpayments error: %s", message)
	}

	return json.Unmarshal(raw, out)
}
