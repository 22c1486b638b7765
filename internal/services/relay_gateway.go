package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"adwiz/internal/wizard"
)

// RelayGateway routes wizard calls through the relay so the wizard never
// sees the provider credential.
type RelayGateway struct {
	relay RelayServiceInterface
}

func NewRelayGateway(relay RelayServiceInterface) *RelayGateway {
	return &RelayGateway{relay: relay}
}

var _ wizard.Gateway = (*RelayGateway)(nil)

func (g *RelayGateway) Call(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", endpoint, err)
	}

	raw, err := g.relay.Forward(ctx, endpoint, body)
	if err != nil {
		// Same shape a remote client gets from the relay route: {error: text}.
		return &wizard.ProviderError{Message: err.Error()}
	}
	return DecodeProviderResponse(raw, out)
}

// DecodeProviderResponse decodes raw into out unless it carries an error
// envelope, which becomes a *wizard.ProviderError.
func DecodeProviderResponse(raw json.RawMessage, out any) error {
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	if hasError(envelope.Error) {
		return providerError(envelope.Error)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}

func hasError(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) && !bytes.Equal(trimmed, []byte(`""`))
}

// providerError accepts both the relay's {"error": "text"} and the
// provider's {"error": {"message": ..., "type": ...}}.
func providerError(raw json.RawMessage) error {
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return &wizard.ProviderError{Message: text}
	}

	var apiErr openai.APIError
	if err := json.Unmarshal(raw, &apiErr); err == nil {
		return &wizard.ProviderError{Message: apiErr.Message, Type: apiErr.Type}
	}
	return &wizard.ProviderError{}
}
