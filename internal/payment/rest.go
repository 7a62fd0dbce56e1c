package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/sif/internal/domain"
)

// RESTProvider processes payments through the storefront backend's
// payment endpoint.
type RESTProvider struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewRESTProvider creates a provider that POSTs to baseURL/payments/process.
func NewRESTProvider(baseURL string, logger *slog.Logger) *RESTProvider {
	return &RESTProvider{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger.With("component", "rest_payment_provider"),
	}
}

type processRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Method      string `json:"method"`
	Token       string `json:"token"`
	Email       string `json:"email,omitempty"`
	OrderRef    string `json:"order_ref,omitempty"`
}

type processResponse struct {
	PaymentID string `json:"payment_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// Process sends the charge request and maps failures to EPAYMENT.
func (p *RESTProvider) Process(ctx context.Context, params ProcessParams) (*Result, error) {
	body, err := json.Marshal(processRequest{
		AmountCents: params.AmountCents,
		Currency:    params.Currency,
		Method:      params.Method,
		Token:       params.Token,
		Email:       params.Email,
		OrderRef:    params.OrderRef,
	})
	if err != nil {
		return nil, domain.Internal(err, "payment.process", "failed to encode payment request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/payments/process", bytes.NewReader(body))
	if err != nil {
		return nil, domain.Internal(err, "payment.process", "failed to build payment request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, domain.WrapError(err, domain.EINTERNAL, "payment.process", "payment service unreachable")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.Internal(err, "payment.process", "failed to read payment response")
	}

	var out processResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, domain.Internal(err, "payment.process", "invalid payment response")
	}

	if resp.StatusCode != http.StatusOK {
		p.logger.Warn("payment declined", "status", resp.StatusCode, "message", out.Error)
		msg := out.Error
		if msg == "" {
			msg = fmt.Sprintf("payment failed with status %d", resp.StatusCode)
		}
		return nil, domain.Errorf(domain.EPAYMENT, "payment.process", "%s", msg)
	}

	return &Result{PaymentID: out.PaymentID, Status: out.Status}, nil
}
