package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/RyuuXiaoo/nokoslagii/pkg/qr"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const depositTTL = 15 * time.Minute

type Deposit struct {
	PaymentID string
	ReffID    string
	QRImage   string
	ExpiredAt time.Time
}

// Payments wraps the QRIS gateway. Deposits are not linked to any pending
// purchase; the client polls the status and decides when to commit.
type Payments struct {
	gateway DepositGateway
	zone    *time.Location
	logger  *logging.ZapLogger
}

func NewPayments(gateway DepositGateway, logger *logging.ZapLogger) *Payments {
	zone, err := time.LoadLocation("Asia/Jakarta")
	if err != nil {
		// tzdata missing on the host; WIB is fixed UTC+7 anyway
		zone = time.FixedZone("WIB", 7*60*60)
	}
	return &Payments{
		gateway: gateway,
		zone:    zone,
		logger:  logger,
	}
}

func (p *Payments) CreateDeposit(ctx context.Context, nominal int64) (Deposit, error) {
	reffID := strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
	deposit, err := p.gateway.CreateDeposit(ctx, reffID, nominal)
	if err != nil {
		return Deposit{}, err //nolint:wrapcheck // gateway message must reach the handler
	}
	qrImage, err := qr.DataURL(deposit.QRString)
	if err != nil {
		return Deposit{}, fmt.Errorf("rendering QR image failed: %w", err)
	}
	p.logger.InfoCtx(ctx, "deposit created",
		zap.String("paymentID", deposit.ID),
		zap.String("reffID", reffID),
		zap.Int64("nominal", nominal),
	)
	return Deposit{
		PaymentID: deposit.ID,
		ReffID:    reffID,
		QRImage:   qrImage,
		ExpiredAt: time.Now().In(p.zone).Add(depositTTL),
	}, nil
}

func (p *Payments) DepositStatus(ctx context.Context, paymentID string) (string, error) {
	status, err := p.gateway.DepositStatus(ctx, paymentID)
	if err != nil {
		return "", fmt.Errorf("getting deposit status failed: %w", err)
	}
	return status, nil
}
