package payments

import "context"

// VerifyResult is the gateway's answer for one transaction reference.
type VerifyResult struct {
	Reference string  `json:"reference"`
	Paid      bool    `json:"paid"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	Channel   string  `json:"channel"`
}

// Gateway abstracts the payment provider. Transactions are initialized
// client-side against the provider; the backend only verifies outcomes, so
// the surface stays read-only.
type Gateway interface {
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
}
