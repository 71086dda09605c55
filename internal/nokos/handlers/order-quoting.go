package handlers

import (
	"context"
	"net/http"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/clientprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/service"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"go.uber.org/zap"
)

type OrderQuotingHandler struct {
	service OrderQuotingService
	logger  *logging.ZapLogger
}

type OrderQuotingService interface {
	Quote(ctx context.Context, userID, negara, layanan string) (service.Quote, error)
}

type QuoteRequest struct {
	Negara  string `json:"negara"`
	Layanan string `json:"layanan"`
}

func NewOrderQuotingHandler(service OrderQuotingService, logger *logging.ZapLogger) *OrderQuotingHandler {
	return &OrderQuotingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderQuotingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), failedToRecoverUserIDErrorMessage, zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	request, err := decodeJSON[QuoteRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "input decoding error", zap.Error(err))
		writeMessage(r.Context(), w, http.StatusBadRequest, "negara & layanan wajib", h.logger)
		return
	}
	if request.Negara == "" || request.Layanan == "" {
		writeMessage(r.Context(), w, http.StatusBadRequest, "negara & layanan wajib", h.logger)
		return
	}

	quote, err := h.service.Quote(r.Context(), userID, request.Negara, request.Layanan)
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "Error quoting order", zap.Error(err))
		writeMessage(r.Context(), w, http.StatusInternalServerError, err.Error(), h.logger)
		return
	}

	price, _ := quote.Price.Float64()
	saldo, _ := quote.Balance.Float64()
	writeJSON(r.Context(), w, http.StatusOK, clientprotocol.QuoteResponse{
		OK:        true,
		Price:     price,
		Saldo:     saldo,
		NeedTopup: quote.NeedTopup,
	}, h.logger)
}
