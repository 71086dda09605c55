package handlers

import (
	"context"
	"net/http"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/clientprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"go.uber.org/zap"
)

type OrdersGettingHandler struct {
	service OrdersGettingService
	logger  *logging.ZapLogger
}

type OrdersGettingService interface {
	List(ctx context.Context, userID string) ([]data.Order, error)
}

func NewOrdersGettingHandler(service OrdersGettingService, logger *logging.ZapLogger) *OrdersGettingHandler {
	return &OrdersGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrdersGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), failedToRecoverUserIDErrorMessage, zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	orders, err := h.service.List(r.Context(), userID)
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "Error getting orders", zap.Error(err))
		writeMessage(r.Context(), w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	result := make([]clientprotocol.Order, len(orders))
	for i, order := range orders {
		result[i] = toProtocolOrder(order)
	}
	writeJSON(r.Context(), w, http.StatusOK, clientprotocol.OrdersResponse{
		OK:   true,
		Data: result,
	}, h.logger)
}
