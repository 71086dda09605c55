package jasaotpprotocol

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ServiceItem is one entry of layanan.php. The provider does not document
// a fixed schema, so unknown fields are preserved as-is.
type ServiceItem map[string]any

// Harga returns the catalog price of the item, zero when absent or
// unparsable. The provider has been seen sending both numbers and strings.
func (s ServiceItem) Harga() decimal.Decimal {
	switch v := s["harga"].(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case string:
		d, err := decimal.NewFromString(v)
		if err == nil {
			return d
		}
	case json.Number:
		d, err := decimal.NewFromString(v.String())
		if err == nil {
			return d
		}
	}
	return decimal.Zero
}

// Kode returns the service code injected when the layanan.php map is
// flattened into a list.
func (s ServiceItem) Kode() string {
	kode, _ := s["kode"].(string)
	return kode
}

type PlacedOrder struct {
	OrderID string
	Number  string
	App     string
}

type CountriesResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type OrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		OrderID json.Number `json:"order_id"`
		Number  string      `json:"number"`
		App     string      `json:"app"`
	} `json:"data"`
}

type CancelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type SMSResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		OTP string `json:"otp"`
	} `json:"data"`
}
