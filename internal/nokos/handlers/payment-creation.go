package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/clientprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/common/upstream"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/service"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"go.uber.org/zap"
)

type PaymentCreationHandler struct {
	service PaymentCreationService
	logger  *logging.ZapLogger
}

type PaymentCreationService interface {
	CreateDeposit(ctx context.Context, nominal int64) (service.Deposit, error)
}

type DepositRequest struct {
	Nominal json.Number `json:"nominal"`
}

func NewPaymentCreationHandler(service PaymentCreationService, logger *logging.ZapLogger) *PaymentCreationHandler {
	return &PaymentCreationHandler{
		service: service,
		logger:  logger,
	}
}

func (h *PaymentCreationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	request, err := decodeJSON[DepositRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "input decoding error", zap.Error(err))
		writeMessage(r.Context(), w, http.StatusBadRequest, "nominal invalid", h.logger)
		return
	}
	nominal, err := request.Nominal.Int64()
	if err != nil || nominal <= 0 {
		writeMessage(r.Context(), w, http.StatusBadRequest, "nominal invalid", h.logger)
		return
	}

	deposit, err := h.service.CreateDeposit(r.Context(), nominal)
	if err != nil {
		var upstreamErr *upstream.Error
		switch {
		case errors.As(err, &upstreamErr):
			writeMessage(r.Context(), w, http.StatusBadRequest, upstreamErr.Message, h.logger)
			return
		default:
			h.logger.ErrorCtx(r.Context(), "Error creating deposit", zap.Error(err))
			writeMessage(r.Context(), w, http.StatusInternalServerError, err.Error(), h.logger)
			return
		}
	}

	writeJSON(r.Context(), w, http.StatusOK, clientprotocol.DepositResponse{
		OK:        true,
		PaymentID: deposit.PaymentID,
		ReffID:    deposit.ReffID,
		QRImage:   deposit.QRImage,
		ExpiredAt: deposit.ExpiredAt,
	}, h.logger)
}
