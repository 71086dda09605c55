package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"go.uber.org/zap"
)

type contextKey int

const userIDKey contextKey = iota

const (
	UserIDHeader  = "X-User-Id"
	defaultUserID = "demo-user"
)

var ErrNoUserID = errors.New("no user id in context")

type WalletInitializer interface {
	EnsureUser(ctx context.Context, userID string) error
}

// UserContext resolves the caller from the X-User-Id header (a demo
// default when absent) and lazily creates the wallet row.
type UserContext struct {
	wallet WalletInitializer
	logger *logging.ZapLogger
}

func NewUserContext(wallet WalletInitializer, logger *logging.ZapLogger) *UserContext {
	return &UserContext{
		wallet: wallet,
		logger: logger,
	}
}

func (uc *UserContext) CreateHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			userID = defaultUserID
		}
		if err := uc.wallet.EnsureUser(r.Context(), userID); err != nil {
			uc.logger.ErrorCtx(r.Context(), "failed to ensure user wallet",
				zap.String("userID", userID),
				zap.Error(err),
			)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = logging.WithContextFields(ctx, zap.String("userID", userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok {
		return "", ErrNoUserID
	}
	return userID, nil
}
