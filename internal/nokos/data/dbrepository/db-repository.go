package dbrepository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type DBStorage interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) (pgx.Row, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryValue(ctx context.Context, query string, args []any, dest []any) error
}

// DBRepository is the durable alternative to memrepository. Status checks
// against terminal orders rely on the caller running UpdateOrder inside a
// transaction.
type DBRepository struct {
	storage DBStorage
	logger  *logging.ZapLogger
}

func New(storage DBStorage, logger *logging.ZapLogger) *DBRepository {
	return &DBRepository{
		storage: storage,
		logger:  logger,
	}
}

//go:embed sql/select_wallet_balance.sql
var selectWalletBalanceQuery string

func (db *DBRepository) GetBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := db.storage.QueryValue(ctx, selectWalletBalanceQuery, []any{userID}, []any{&balance})
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return decimal.Zero, nil
		default:
			return decimal.Decimal{}, fmt.Errorf("failed to get balance: %w", err)
		}
	}
	return balance, nil
}

//go:embed sql/upsert_wallet_balance.sql
var upsertWalletBalanceQuery string

func (db *DBRepository) SetBalance(ctx context.Context, userID string, value decimal.Decimal) error {
	_, err := db.storage.Exec(ctx, upsertWalletBalanceQuery, userID, value)
	if err != nil {
		return fmt.Errorf("failed to set balance: %w", err)
	}
	return nil
}

//go:embed sql/ensure_wallet.sql
var ensureWalletQuery string

func (db *DBRepository) EnsureUser(ctx context.Context, userID string) error {
	_, err := db.storage.Exec(ctx, ensureWalletQuery, userID)
	if err != nil {
		return fmt.Errorf("failed to ensure wallet: %w", err)
	}
	return nil
}

//go:embed sql/insert_order.sql
var insertOrderQuery string

func (db *DBRepository) InsertOrder(ctx context.Context, order *data.Order) error {
	_, err := db.storage.Exec(
		ctx,
		insertOrderQuery,
		order.OrderID,
		order.UserID,
		order.Negara,
		order.Layanan,
		order.Operator,
		order.Aplikasi,
		order.Nomor,
		order.Price,
		string(order.Status),
		order.CreatedAt,
		order.OTP,
		order.Raw,
	)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

//go:embed sql/select_order.sql
var selectOrderQuery string

func (db *DBRepository) GetOrder(ctx context.Context, orderID string) (data.Order, error) {
	db.logger.DebugCtx(ctx, "getting order", zap.String("orderID", orderID))
	row, err := db.storage.QueryRow(ctx, selectOrderQuery, orderID)
	if err != nil {
		return data.Order{}, fmt.Errorf("failed to get order: %w", err)
	}
	order, err := scanOrder(row)
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return data.Order{}, data.ErrOrderNotFound
		default:
			return data.Order{}, fmt.Errorf("failed to scan order: %w", err)
		}
	}
	return order, nil
}

//go:embed sql/select_user_orders.sql
var selectUserOrdersQuery string

func (db *DBRepository) GetAllUserOrders(ctx context.Context, userID string) ([]data.Order, error) {
	rows, err := db.storage.Query(ctx, selectUserOrdersQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user orders: %w", err)
	}
	defer rows.Close()

	result := make([]data.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		result = append(result, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user orders: %w", err)
	}
	return result, nil
}

//go:embed sql/update_order.sql
var updateOrderQuery string

func (db *DBRepository) UpdateOrder(ctx context.Context, orderID string, patch data.OrderPatch) (data.Order, error) {
	order, err := db.GetOrder(ctx, orderID)
	if err != nil {
		return data.Order{}, err
	}
	if order.Status.IsTerminal() {
		return data.Order{}, data.ErrOrderFinalized
	}
	if patch.Status != nil {
		order.Status = *patch.Status
	}
	if patch.OTP != nil {
		order.OTP = patch.OTP
	}
	if patch.Raw != nil {
		order.Raw = *patch.Raw
	}
	_, err = db.storage.Exec(ctx, updateOrderQuery, orderID, string(order.Status), order.OTP, order.Raw)
	if err != nil {
		return data.Order{}, fmt.Errorf("failed to update order: %w", err)
	}
	return order, nil
}

func scanOrder(row pgx.Row) (data.Order, error) {
	var (
		order  data.Order
		status string
	)
	err := row.Scan(
		&order.OrderID,
		&order.UserID,
		&order.Negara,
		&order.Layanan,
		&order.Operator,
		&order.Aplikasi,
		&order.Nomor,
		&order.Price,
		&status,
		&order.CreatedAt,
		&order.OTP,
		&order.Raw,
	)
	if err != nil {
		return data.Order{}, err //nolint:wrapcheck // callers add context
	}
	order.Status = data.Status(status)
	return order, nil
}
