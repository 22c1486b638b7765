package request_models

import "encoding/json"

type RelayRequest struct {
	Endpoint string          `json:"endpoint" binding:"required"`
	Payload  json.RawMessage `json:"payload"`
}
