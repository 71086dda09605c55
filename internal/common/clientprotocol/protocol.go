package clientprotocol

import (
	"encoding/json"
	"time"
)

const (
	PendingStatus = "pending"
	SuccessStatus = "success"
	FailedStatus  = "failed"
)

type Order struct {
	OrderID   string  `json:"orderId"`
	UserID    string  `json:"userId"`
	Negara    string  `json:"negara"`
	Layanan   string  `json:"layanan"`
	Operator  string  `json:"operator"`
	Aplikasi  string  `json:"aplikasi"`
	Nomor     string  `json:"nomor"`
	Price     float64 `json:"price"`
	Status    string  `json:"status"`
	CreatedAt int64   `json:"createdAt"`
	OTP       *string `json:"otp"`
	Raw       string  `json:"raw,omitempty"`
}

type ErrorResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type MessageResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type CountriesResponse struct {
	OK   bool            `json:"ok"`
	Data json.RawMessage `json:"data"`
}

type ServicesResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data"`
}

type QuoteResponse struct {
	OK        bool    `json:"ok"`
	Price     float64 `json:"price"`
	Saldo     float64 `json:"saldo"`
	NeedTopup bool    `json:"needTopup"`
}

type DepositResponse struct {
	OK        bool      `json:"ok"`
	PaymentID string    `json:"paymentId"`
	ReffID    string    `json:"reffId"`
	QRImage   string    `json:"qrImage"`
	ExpiredAt time.Time `json:"expiredAt"`
}

type DepositStatusResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

type CommitResponse struct {
	OK    bool  `json:"ok"`
	Order Order `json:"order"`
}

type OrdersResponse struct {
	OK   bool    `json:"ok"`
	Data []Order `json:"data"`
}

type OrderResponse struct {
	OK   bool  `json:"ok"`
	Data Order `json:"data"`
}
