package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/clientprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/common/upstream"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/service"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderCancellingHandler struct {
	service OrderCancellingService
	logger  *logging.ZapLogger
}

type OrderCancellingService interface {
	Cancel(ctx context.Context, userID, orderID string) error
}

func NewOrderCancellingHandler(service OrderCancellingService, logger *logging.ZapLogger) *OrderCancellingHandler {
	return &OrderCancellingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderCancellingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), failedToRecoverUserIDErrorMessage, zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	orderID := chi.URLParam(r, "id")
	err = h.service.Cancel(r.Context(), userID, orderID)
	if err != nil {
		var upstreamErr *upstream.Error
		switch {
		case errors.Is(err, data.ErrOrderNotFound):
			writeMessage(r.Context(), w, http.StatusNotFound, "not found", h.logger)
			return
		case errors.Is(err, service.ErrOrderNotPending):
			writeMessage(r.Context(), w, http.StatusBadRequest, "Tidak bisa cancel, sudah bukan pending", h.logger)
			return
		case errors.As(err, &upstreamErr):
			writeMessage(r.Context(), w, http.StatusBadRequest, upstreamErr.Message, h.logger)
			return
		default:
			h.logger.ErrorCtx(r.Context(), "Error cancelling order", zap.Error(err))
			writeMessage(r.Context(), w, http.StatusInternalServerError, err.Error(), h.logger)
			return
		}
	}

	writeJSON(r.Context(), w, http.StatusOK, clientprotocol.MessageResponse{
		OK:      true,
		Message: "dibatalkan & refund",
	}, h.logger)
}
