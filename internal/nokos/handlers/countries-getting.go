package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/clientprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/common/upstream"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"go.uber.org/zap"
)

type CountriesGettingHandler struct {
	service CountriesGettingService
	logger  *logging.ZapLogger
}

type CountriesGettingService interface {
	Countries(ctx context.Context) (json.RawMessage, error)
}

func NewCountriesGettingHandler(service CountriesGettingService, logger *logging.ZapLogger) *CountriesGettingHandler {
	return &CountriesGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *CountriesGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	countries, err := h.service.Countries(r.Context())
	if err != nil {
		var upstreamErr *upstream.Error
		switch {
		case errors.As(err, &upstreamErr):
			writeMessage(r.Context(), w, http.StatusBadRequest, upstreamErr.Message, h.logger)
			return
		default:
			h.logger.ErrorCtx(r.Context(), "Error getting countries", zap.Error(err))
			writeMessage(r.Context(), w, http.StatusInternalServerError, err.Error(), h.logger)
			return
		}
	}
	writeJSON(r.Context(), w, http.StatusOK, clientprotocol.CountriesResponse{
		OK:   true,
		Data: countries,
	}, h.logger)
}
