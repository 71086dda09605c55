package otppoller

import (
	"context"
	"regexp"
	"time"

	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/RyuuXiaoo/nokoslagii/pkg/timeutils"
	"go.uber.org/zap"
)

var (
	// Provider answers "Menunggu SMS" (or "pending") while the number has
	// not received anything yet.
	waitingPattern = regexp.MustCompile(`(?i)menunggu|pending`)
	digitsPattern  = regexp.MustCompile(`\d{4,6}`)
)

type SMSProvider interface {
	GetSMS(ctx context.Context, orderID string) (string, error)
}

// Update is the single terminal result of one polling run.
type Update struct {
	Status data.Status
	OTP    *string
	Raw    string
}

type Config struct {
	PollInterval time.Duration
	MaxAttempts  int
}

type Poller struct {
	provider SMSProvider
	cfg      Config
	logger   *logging.ZapLogger
}

func NewPoller(cfg Config, provider SMSProvider, logger *logging.ZapLogger) *Poller {
	return &Poller{
		provider: provider,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run polls until a definitive SMS arrives or the attempt budget runs out,
// then invokes onUpdate exactly once. Errors from the provider are not
// distinguishable from "still waiting"; both consume one attempt.
// Cancelling ctx stops the loop without a terminal callback — the
// canceller owns the order's final state.
func (p *Poller) Run(ctx context.Context, orderID string, onUpdate func(Update)) {
	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		otpText, err := p.provider.GetSMS(ctx, orderID)
		if err != nil {
			p.logger.DebugCtx(ctx, "sms attempt unresolved",
				zap.String("orderID", orderID),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		} else if otpText != "" && !waitingPattern.MatchString(otpText) {
			otp := otpText
			if digits := digitsPattern.FindString(otpText); digits != "" {
				otp = digits
			}
			p.logger.InfoCtx(ctx, "otp received",
				zap.String("orderID", orderID),
				zap.Int("attempt", attempt),
			)
			onUpdate(Update{Status: data.SuccessStatus, OTP: &otp, Raw: otpText})
			return
		}
		if err := timeutils.SleepCtx(ctx, p.cfg.PollInterval); err != nil {
			p.logger.DebugCtx(ctx, "polling stopped", zap.String("orderID", orderID), zap.Error(err))
			return
		}
	}
	p.logger.InfoCtx(ctx, "otp polling timed out", zap.String("orderID", orderID))
	onUpdate(Update{Status: data.FailedStatus, OTP: nil, Raw: "timeout"})
}
