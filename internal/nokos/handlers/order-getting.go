package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/clientprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type OrderGettingHandler struct {
	service OrderGettingService
	logger  *logging.ZapLogger
}

type OrderGettingService interface {
	Get(ctx context.Context, userID, orderID string) (data.Order, error)
}

func NewOrderGettingHandler(service OrderGettingService, logger *logging.ZapLogger) *OrderGettingHandler {
	return &OrderGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), failedToRecoverUserIDErrorMessage, zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	orderID := chi.URLParam(r, "id")
	order, err := h.service.Get(r.Context(), userID, orderID)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrOrderNotFound):
			writeMessage(r.Context(), w, http.StatusNotFound, "not found", h.logger)
			return
		default:
			h.logger.ErrorCtx(r.Context(), "Error getting order", zap.Error(err))
			writeMessage(r.Context(), w, http.StatusInternalServerError, err.Error(), h.logger)
			return
		}
	}

	writeJSON(r.Context(), w, http.StatusOK, clientprotocol.OrderResponse{
		OK:   true,
		Data: toProtocolOrder(order),
	}, h.logger)
}
