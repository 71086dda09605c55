package atlantic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/RyuuXiaoo/nokoslagii/internal/common/upstream"
	"github.com/RyuuXiaoo/nokoslagii/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewClient(Config{BaseURL: server.URL, APIKey: "test-key"}, logging.NewNopLogger())
	return client, server
}

func TestCreateDepositSendsFormFields(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/deposit/create", r.URL.Path)
		assert.Equal(t, "test-key", r.FormValue("api_key"))
		assert.Equal(t, "A1B2C3D4", r.FormValue("reff_id"))
		assert.Equal(t, "15000", r.FormValue("nominal"))
		assert.Equal(t, "ewallet", r.FormValue("type"))
		assert.Equal(t, "qrisfast", r.FormValue("metode"))
		_, _ = w.Write([]byte(`{"status":true,"data":{"id":42001,"qr_string":"00020101qris-payload"}}`))
	})
	defer server.Close()

	deposit, err := client.CreateDeposit(context.Background(), "A1B2C3D4", 15000)
	require.NoError(t, err)
	assert.Equal(t, "42001", deposit.ID, "numeric payment ids must come back as strings")
	assert.Equal(t, "00020101qris-payload", deposit.QRString)
}

func TestCreateDepositGatewayFailure(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":false,"message":"nominal minimum 1000"}`))
	})
	defer server.Close()

	_, err := client.CreateDeposit(context.Background(), "A1B2C3D4", 500)
	var upstreamErr *upstream.Error
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, "nominal minimum 1000", upstreamErr.Message)
}

func TestDepositStatus(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{name: "reported status", payload: `{"status":true,"data":{"status":"success"}}`, want: "success"},
		{name: "missing status falls back to unknown", payload: `{"status":true,"data":{}}`, want: "unknown"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/deposit/status", r.URL.Path)
				assert.Equal(t, "pay-1", r.FormValue("id"))
				_, _ = w.Write([]byte(test.payload))
			})
			defer server.Close()

			status, err := client.DepositStatus(context.Background(), "pay-1")
			require.NoError(t, err)
			assert.Equal(t, test.want, status)
		})
	}
}

func TestDepositStatusMalformedBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	defer server.Close()

	_, err := client.DepositStatus(context.Background(), "pay-1")
	require.Error(t, err)
}
