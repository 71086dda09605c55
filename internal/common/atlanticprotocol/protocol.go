package atlanticprotocol

import "encoding/json"

type Deposit struct {
	ID       string
	QRString string
}

type CreateResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID       json.Number `json:"id"`
		QRString string      `json:"qr_string"`
	} `json:"data"`
}

type StatusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status string `json:"status"`
	} `json:"data"`
}
