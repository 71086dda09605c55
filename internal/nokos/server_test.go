package nokos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/jasaotpprotocol"
	"github.com/RyuuXiaoo/nokoslagii/internal/common/upstream"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/data"
	"github.com/RyuuXiaoo/nokoslagii/internal/nokos/service"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWalletInitializer struct {
	mu    sync.Mutex
	seen  []string
	fails bool
}

func (f *fakeWalletInitializer) EnsureUser(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fails {
		return assert.AnError
	}
	f.seen = append(f.seen, userID)
	return nil
}

type fakeCatalogService struct {
	countries json.RawMessage
	services  []jasaotpprotocol.ServiceItem
	err       error
}

func (f *fakeCatalogService) Countries(context.Context) (json.RawMessage, error) {
	return f.countries, f.err
}

func (f *fakeCatalogService) Services(context.Context, string) ([]jasaotpprotocol.ServiceItem, error) {
	return f.services, f.err
}

type fakeOrdersService struct {
	quote     service.Quote
	quoteErr  error
	order     data.Order
	commitErr error
	orders    []data.Order
	getErr    error
	cancelErr error
}

func (f *fakeOrdersService) Quote(context.Context, string, string, string) (service.Quote, error) {
	return f.quote, f.quoteErr
}

func (f *fakeOrdersService) Commit(context.Context, string, string, string, string) (data.Order, error) {
	return f.order, f.commitErr
}

func (f *fakeOrdersService) List(context.Context, string) ([]data.Order, error) {
	return f.orders, nil
}

func (f *fakeOrdersService) Get(context.Context, string, string) (data.Order, error) {
	return f.order, f.getErr
}

func (f *fakeOrdersService) Cancel(context.Context, string, string) error {
	return f.cancelErr
}

type fakePaymentsService struct {
	deposit    service.Deposit
	depositErr error
	status     string
}

func (f *fakePaymentsService) CreateDeposit(context.Context, int64) (service.Deposit, error) {
	return f.deposit, f.depositErr
}

func (f *fakePaymentsService) DepositStatus(context.Context, string) (string, error) {
	return f.status, nil
}

type muxFixture struct {
	wallet   *fakeWalletInitializer
	catalog  *fakeCatalogService
	orders   *fakeOrdersService
	payments *fakePaymentsService
	server   *httptest.Server
}

func newMuxFixture(t *testing.T) *muxFixture {
	t.Helper()
	fixture := &muxFixture{
		wallet:   &fakeWalletInitializer{},
		catalog:  &fakeCatalogService{},
		orders:   &fakeOrdersService{},
		payments: &fakePaymentsService{},
	}
	mux := createMux(Services{
		Catalog:  fixture.catalog,
		Services: fixture.catalog,
		Quoting:  fixture.orders,
		Commit:   fixture.orders,
		Orders:   fixture.orders,
		Order:    fixture.orders,
		Cancel:   fixture.orders,
		Deposit:  fixture.payments,
		Status:   fixture.payments,
		Wallet:   fixture.wallet,
	}, logging.NewNopLogger())
	fixture.server = httptest.NewServer(mux)
	t.Cleanup(fixture.server.Close)
	return fixture
}

func (f *muxFixture) do(t *testing.T, method, path, body string, headers map[string]string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, f.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	resp, err := f.server.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	decoded := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestQuoteRequiresNegaraAndLayanan(t *testing.T) {
	fixture := newMuxFixture(t)

	resp, body := fixture.do(t, http.MethodPost, "/api/order/quote", `{"negara":"62"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "negara & layanan wajib", body["message"])
}

func TestQuoteReturnsPriceAndBalance(t *testing.T) {
	fixture := newMuxFixture(t)
	fixture.orders.quote = service.Quote{
		Price:     decimal.NewFromInt(17000),
		Balance:   decimal.NewFromInt(5000),
		NeedTopup: true,
	}

	resp, body := fixture.do(t, http.MethodPost, "/api/order/quote", `{"negara":"62","layanan":"wa"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.InDelta(t, 17000, body["price"], 0.001)
	assert.InDelta(t, 5000, body["saldo"], 0.001)
	assert.Equal(t, true, body["needTopup"])
}

func TestCommitInsufficientFunds(t *testing.T) {
	fixture := newMuxFixture(t)
	fixture.orders.commitErr = service.ErrInsufficientFunds

	resp, body := fixture.do(t, http.MethodPost, "/api/order/commit", `{"negara":"62","layanan":"wa"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Saldo kurang", body["message"])
}

func TestCommitUpstreamMessagePassthrough(t *testing.T) {
	fixture := newMuxFixture(t)
	fixture.orders.commitErr = &upstream.Error{Message: "stok habis"}

	resp, body := fixture.do(t, http.MethodPost, "/api/order/commit", `{"negara":"62","layanan":"wa"}`, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "stok habis", body["message"])
}

func TestGetOrderNotFound(t *testing.T) {
	fixture := newMuxFixture(t)
	fixture.orders.getErr = data.ErrOrderNotFound

	resp, body := fixture.do(t, http.MethodGet, "/api/order/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "not found", body["message"])
}

func TestCancelNotPending(t *testing.T) {
	fixture := newMuxFixture(t)
	fixture.orders.cancelErr = service.ErrOrderNotPending

	resp, body := fixture.do(t, http.MethodPost, "/api/order/order-1/cancel", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Tidak bisa cancel, sudah bukan pending", body["message"])
}

func TestCancelSuccessMessage(t *testing.T) {
	fixture := newMuxFixture(t)

	resp, body := fixture.do(t, http.MethodPost, "/api/order/order-1/cancel", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "dibatalkan & refund", body["message"])
}

func TestServicesRequireNegara(t *testing.T) {
	fixture := newMuxFixture(t)

	resp, body := fixture.do(t, http.MethodGet, "/api/services", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "negara required", body["message"])
}

func TestCountriesPayloadPassthrough(t *testing.T) {
	fixture := newMuxFixture(t)
	fixture.catalog.countries = json.RawMessage(`[{"id":"62","name":"Indonesia"}]`)

	resp, body := fixture.do(t, http.MethodGet, "/api/countries", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["ok"])
	require.IsType(t, []any{}, body["data"])
	assert.Len(t, body["data"], 1)
}

func TestPaymentCreateRejectsInvalidNominal(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "zero", body: `{"nominal":0}`},
		{name: "negative", body: `{"nominal":-5}`},
		{name: "not a number", body: `{"nominal":"abc"}`},
		{name: "empty body", body: ``},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			fixture := newMuxFixture(t)

			resp, body := fixture.do(t, http.MethodPost, "/api/payment/create", test.body, nil)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "nominal invalid", body["message"])
		})
	}
}

func TestPaymentCreateReturnsDeposit(t *testing.T) {
	fixture := newMuxFixture(t)
	expiredAt := time.Now().Add(15 * time.Minute)
	fixture.payments.deposit = service.Deposit{
		PaymentID: "42001",
		ReffID:    "A1B2C3D4",
		QRImage:   "data:image/png;base64,xxx",
		ExpiredAt: expiredAt,
	}

	resp, body := fixture.do(t, http.MethodPost, "/api/payment/create", `{"nominal":15000}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "42001", body["paymentId"])
	assert.Equal(t, "A1B2C3D4", body["reffId"])
	assert.Equal(t, "data:image/png;base64,xxx", body["qrImage"])
}

func TestPaymentStatusRequiresID(t *testing.T) {
	fixture := newMuxFixture(t)

	resp, body := fixture.do(t, http.MethodGet, "/api/payment/status", "", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "id required", body["message"])
}

func TestPaymentStatusReportsGatewayStatus(t *testing.T) {
	fixture := newMuxFixture(t)
	fixture.payments.status = "success"

	resp, body := fixture.do(t, http.MethodGet, "/api/payment/status?id=42001", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", body["status"])
}

func TestUserResolutionFromHeader(t *testing.T) {
	fixture := newMuxFixture(t)

	fixture.do(t, http.MethodGet, "/api/orders", "", map[string]string{"X-User-Id": "alice"})
	fixture.do(t, http.MethodGet, "/api/orders", "", nil)

	fixture.wallet.mu.Lock()
	defer fixture.wallet.mu.Unlock()
	assert.Equal(t, []string{"alice", "demo-user"}, fixture.wallet.seen)
}

func TestWalletInitFailureIsServerError(t *testing.T) {
	fixture := newMuxFixture(t)
	fixture.wallet.fails = true

	resp, _ := fixture.do(t, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestOrderListSerialization(t *testing.T) {
	fixture := newMuxFixture(t)
	otp := "482913"
	fixture.orders.orders = []data.Order{
		{
			CreatedAt: time.UnixMilli(1700000000000),
			OrderID:   "order-1",
			UserID:    "demo-user",
			Negara:    "62",
			Layanan:   "wa",
			Operator:  "any",
			Aplikasi:  "WhatsApp",
			Nomor:     "6281234567890",
			Price:     decimal.NewFromInt(17000),
			Status:    data.SuccessStatus,
			OTP:       &otp,
		},
	}

	resp, body := fixture.do(t, http.MethodGet, "/api/orders", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	order, ok := list[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "order-1", order["orderId"])
	assert.InDelta(t, 17000, order["price"], 0.001)
	assert.InDelta(t, 1700000000000, order["createdAt"], 0.5)
	assert.Equal(t, "482913", order["otp"])
}
