package jasaotp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/jasaotpprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/common/upstream"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

type Config struct {
	BaseURL string
	APIKey  string
}

// Client talks to the OTP-rental provider. Auth is an api_key query
// parameter on every authenticated endpoint.
type Client struct {
	http   *resty.Client
	cfg    Config
	logger *logging.ZapLogger
}

func NewClient(cfg Config, logger *logging.ZapLogger) *Client {
	return &Client{
		http:   resty.New(),
		cfg:    cfg,
		logger: logger,
	}
}

func (c *Client) Countries(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(c.cfg.BaseURL + "/negara.php")
	if err != nil {
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	var body jasaotpprotocol.CountriesResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("error unmarshalling countries response: %w", err)
	}
	if !body.Success {
		return nil, &upstream.Error{Message: body.Message}
	}
	return body.Data, nil
}

// Services returns the layanan.php catalog for one country, keyed by
// service code. An unknown country yields an empty map, not an error.
func (c *Client) Services(ctx context.Context, negara string) (map[string]jasaotpprotocol.ServiceItem, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("negara", negara).
		Get(c.cfg.BaseURL + "/layanan.php")
	if err != nil {
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("error unmarshalling services response: %w", err)
	}
	raw, ok := body[negara]
	if !ok {
		c.logger.DebugCtx(ctx, "no services for country", zap.String("negara", negara))
		return map[string]jasaotpprotocol.ServiceItem{}, nil
	}
	services := make(map[string]jasaotpprotocol.ServiceItem)
	if err := json.Unmarshal(raw, &services); err != nil {
		return nil, fmt.Errorf("error unmarshalling services for %q: %w", negara, err)
	}
	return services, nil
}

func (c *Client) PlaceOrder(ctx context.Context, negara, layanan, operator string) (jasaotpprotocol.PlacedOrder, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key":  c.cfg.APIKey,
			"negara":   negara,
			"layanan":  layanan,
			"operator": operator,
		}).
		Get(c.cfg.BaseURL + "/order.php")
	if err != nil {
		return jasaotpprotocol.PlacedOrder{}, fmt.Errorf("get request failed: %w", err)
	}
	var body jasaotpprotocol.OrderResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return jasaotpprotocol.PlacedOrder{}, fmt.Errorf("error unmarshalling order response: %w", err)
	}
	if !body.Success {
		return jasaotpprotocol.PlacedOrder{}, &upstream.Error{Message: body.Message}
	}
	c.logger.DebugCtx(ctx, "order placed",
		zap.String("orderID", body.Data.OrderID.String()),
		zap.String("number", body.Data.Number),
	)
	return jasaotpprotocol.PlacedOrder{
		OrderID: body.Data.OrderID.String(),
		Number:  body.Data.Number,
		App:     body.Data.App,
	}, nil
}

func (c *Client) CancelOrder(ctx context.Context, orderID string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key": c.cfg.APIKey,
			"id":      orderID,
		}).
		Get(c.cfg.BaseURL + "/cancel.php")
	if err != nil {
		return fmt.Errorf("get request failed: %w", err)
	}
	var body jasaotpprotocol.CancelResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return fmt.Errorf("error unmarshalling cancel response: %w", err)
	}
	if !body.Success {
		return &upstream.Error{Message: body.Message}
	}
	return nil
}

// GetSMS returns the current OTP text for an order. "Still waiting"
// answers come back as text too; classification is the poller's job.
func (c *Client) GetSMS(ctx context.Context, orderID string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"api_key": c.cfg.APIKey,
			"id":      orderID,
		}).
		Get(c.cfg.BaseURL + "/sms.php")
	if err != nil {
		return "", fmt.Errorf("get request failed: %w", err)
	}
	var body jasaotpprotocol.SMSResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("error unmarshalling sms response: %w", err)
	}
	if !body.Success {
		return "", &upstream.Error{Message: body.Message}
	}
	return body.Data.OTP, nil
}
