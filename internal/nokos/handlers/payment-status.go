package handlers

import (
	"context"
	"net/http"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/clientprotocol"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"go.uber.org/zap"
)

type PaymentStatusHandler struct {
	service PaymentStatusService
	logger  *logging.ZapLogger
}

type PaymentStatusService interface {
	DepositStatus(ctx context.Context, paymentID string) (string, error)
}

func NewPaymentStatusHandler(service PaymentStatusService, logger *logging.ZapLogger) *PaymentStatusHandler {
	return &PaymentStatusHandler{
		service: service,
		logger:  logger,
	}
}

func (h *PaymentStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	paymentID := r.URL.Query().Get("id")
	if paymentID == "" {
		writeMessage(r.Context(), w, http.StatusBadRequest, "id required", h.logger)
		return
	}

	status, err := h.service.DepositStatus(r.Context(), paymentID)
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "Error getting deposit status", zap.Error(err))
		writeMessage(r.Context(), w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	writeJSON(r.Context(), w, http.StatusOK, clientprotocol.DepositStatusResponse{
		OK:     true,
		Status: status,
	}, h.logger)
}
