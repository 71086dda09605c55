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
	"go.uber.org/zap"
)

const defaultOperator = "any"

type OrderCommittingHandler struct {
	service OrderCommittingService
	logger  *logging.ZapLogger
}

type OrderCommittingService interface {
	Commit(ctx context.Context, userID, negara, layanan, operator string) (data.Order, error)
}

type CommitRequest struct {
	Negara   string `json:"negara"`
	Layanan  string `json:"layanan"`
	Operator string `json:"operator,omitempty"`
}

func NewOrderCommittingHandler(service OrderCommittingService, logger *logging.ZapLogger) *OrderCommittingHandler {
	return &OrderCommittingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderCommittingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	userID, err := userIDFromCtx(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), failedToRecoverUserIDErrorMessage, zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	request, err := decodeJSON[CommitRequest](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "input decoding error", zap.Error(err))
		writeMessage(r.Context(), w, http.StatusBadRequest, "negara & layanan wajib", h.logger)
		return
	}
	if request.Negara == "" || request.Layanan == "" {
		writeMessage(r.Context(), w, http.StatusBadRequest, "negara & layanan wajib", h.logger)
		return
	}
	if request.Operator == "" {
		request.Operator = defaultOperator
	}

	order, err := h.service.Commit(r.Context(), userID, request.Negara, request.Layanan, request.Operator)
	if err != nil {
		var upstreamErr *upstream.Error
		switch {
		case errors.Is(err, service.ErrInsufficientFunds):
			h.logger.DebugCtx(r.Context(), "insufficient funds", zap.String("userID", userID))
			writeMessage(r.Context(), w, http.StatusBadRequest, "Saldo kurang", h.logger)
			return
		case errors.As(err, &upstreamErr):
			writeMessage(r.Context(), w, http.StatusBadRequest, upstreamErr.Message, h.logger)
			return
		default:
			h.logger.ErrorCtx(r.Context(), "Error committing order", zap.Error(err))
			writeMessage(r.Context(), w, http.StatusInternalServerError, err.Error(), h.logger)
			return
		}
	}

	writeJSON(r.Context(), w, http.StatusOK, clientprotocol.CommitResponse{
		OK:    true,
		Order: toProtocolOrder(order),
	}, h.logger)
}
