package handlers

import (
	"context"
	"net/http"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/clientprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/common/jasaotpprotocol"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"go.uber.org/zap"
)

type ServicesGettingHandler struct {
	service ServicesGettingService
	logger  *logging.ZapLogger
}

type ServicesGettingService interface {
	Services(ctx context.Context, negara string) ([]jasaotpprotocol.ServiceItem, error)
}

func NewServicesGettingHandler(service ServicesGettingService, logger *logging.ZapLogger) *ServicesGettingHandler {
	return &ServicesGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ServicesGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	negara := r.URL.Query().Get("negara")
	if negara == "" {
		writeMessage(r.Context(), w, http.StatusBadRequest, "negara required", h.logger)
		return
	}
	services, err := h.service.Services(r.Context(), negara)
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "Error getting services", zap.Error(err))
		writeMessage(r.Context(), w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, clientprotocol.ServicesResponse{
		OK:   true,
		Data: services,
	}, h.logger)
}
