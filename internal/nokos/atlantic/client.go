package atlantic

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/atlanticprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/common/upstream"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	depositType   = "ewallet"
	depositMethod = "qrisfast"
)

type Config struct {
	BaseURL string
	APIKey  string
}

// Client wraps the QRIS deposit gateway. All endpoints take form-encoded
// bodies with the api_key inside.
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

func (c *Client) CreateDeposit(ctx context.Context, reffID string, nominal int64) (atlanticprotocol.Deposit, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"api_key": c.cfg.APIKey,
			"reff_id": reffID,
			"nominal": strconv.FormatInt(nominal, 10),
			"type":    depositType,
			"metode":  depositMethod,
		}).
		Post(c.cfg.BaseURL + "/deposit/create")
	if err != nil {
		return atlanticprotocol.Deposit{}, fmt.Errorf("post request failed: %w", err)
	}
	var body atlanticprotocol.CreateResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return atlanticprotocol.Deposit{}, fmt.Errorf("error unmarshalling deposit response: %w", err)
	}
	if !body.Status {
		return atlanticprotocol.Deposit{}, &upstream.Error{Message: body.Message}
	}
	c.logger.DebugCtx(ctx, "deposit created",
		zap.String("paymentID", body.Data.ID.String()),
		zap.String("reffID", reffID),
	)
	return atlanticprotocol.Deposit{
		ID:       body.Data.ID.String(),
		QRString: body.Data.QRString,
	}, nil
}

// DepositStatus reports the gateway's view of a deposit, "unknown" when
// the gateway answers without one.
func (c *Client) DepositStatus(ctx context.Context, paymentID string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"api_key": c.cfg.APIKey,
			"id":      paymentID,
		}).
		Post(c.cfg.BaseURL + "/deposit/status")
	if err != nil {
		return "", fmt.Errorf("post request failed: %w", err)
	}
	var body atlanticprotocol.StatusResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("error unmarshalling status response: %w", err)
	}
	if body.Data.Status == "" {
		return "unknown", nil
	}
	return body.Data.Status, nil
}
