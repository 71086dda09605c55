package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/clientprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/middleware"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"go.uber.org/zap"
)

const failedToRecoverUserIDErrorMessage = "failed to recover user id from context"

func closeBody(ctx context.Context, body io.ReadCloser, logger *logging.ZapLogger) {
	err := body.Close()
	if err != nil {
		logger.ErrorCtx(ctx, "failed to close body", zap.Error(err))
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&out)
	return out, err
}

func userIDFromCtx(ctx context.Context) (string, error) {
	return middleware.UserIDFromContext(ctx) //nolint:wrapcheck // unnecessary
}

func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, payload any, logger *logging.ZapLogger) {
	res, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorCtx(ctx, "error marshalling response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if _, err = w.Write(res); err != nil {
		logger.ErrorCtx(ctx, "error writing response", zap.Error(err))
	}
}

func writeMessage(ctx context.Context, w http.ResponseWriter, statusCode int, message string, logger *logging.ZapLogger) {
	writeJSON(ctx, w, statusCode, clientprotocol.ErrorResponse{
		OK:      statusCode < http.StatusBadRequest,
		Message: message,
	}, logger)
}

func toProtocolOrder(order data.Order) clientprotocol.Order {
	price, _ := order.Price.Float64()
	return clientprotocol.Order{
		OrderID:   order.OrderID,
		UserID:    order.UserID,
		Negara:    order.Negara,
		Layanan:   order.Layanan,
		Operator:  order.Operator,
		Aplikasi:  order.Aplikasi,
		Nomor:     order.Nomor,
		Price:     price,
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt.UnixMilli(),
		OTP:       order.OTP,
		Raw:       order.Raw,
	}
}
