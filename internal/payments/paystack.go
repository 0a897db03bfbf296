package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// PaystackGateway verifies transactions against the Paystack REST API.
type PaystackGateway struct {
	baseURL   string
	secretKey string
	client    *http.Client
}

// NewPaystackGateway creates a gateway client for the given credentials
func NewPaystackGateway(baseURL, secretKey string) *PaystackGateway {
	return &PaystackGateway{
		baseURL:   baseURL,
		secretKey: secretKey,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status    string  `json:"status"`
		Reference string  `json:"reference"`
		Amount    float64 `json:"amount"` // minor units
		Currency  string  `json:"currency"`
		Channel   string  `json:"channel"`
	} `json:"data"`
}

func (g *PaystackGateway) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	endpoint := fmt.Sprintf("%s/transaction/verify/%s", g.baseURL, url.PathEscape(reference))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("verify request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read verify response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var parsed paystackVerifyResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode verify response: %w", err)
	}
	if !parsed.Status {
		return nil, fmt.Errorf("gateway rejected verification: %s", parsed.Message)
	}

	return &VerifyResult{
		Reference: parsed.Data.Reference,
		Paid:      parsed.Data.Status == "success",
		Amount:    parsed.Data.Amount / 100,
		Currency:  parsed.Data.Currency,
		Channel:   parsed.Data.Channel,
	}, nil
}
