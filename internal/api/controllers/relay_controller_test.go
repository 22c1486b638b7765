package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adwiz/internal/api/controllers"
	"adwiz/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRelayService struct {
	endpoint string
	payload  json.RawMessage
	body     json.RawMessage
	err      error
}

func (s *stubRelayService) Forward(_ context.Context, endpoint string, payload json.RawMessage) (json.RawMessage, error) {
	s.endpoint = endpoint
	s.payload = payload
	return s.body, s.err
}

func relayRouter(svc services.RelayServiceInterface) *gin.Engine {
	r := gin.New()
	r.POST("/api/openai", controllers.NewRelayController(svc).ForwardHandler)
	return r
}

func postRelay(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/openai", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestForwardHandler(t *testing.T) {
	t.Run("ReturnsProviderBodyVerbatim", func(t *testing.T) {
		providerBody := `{"created":1,"data":[{"url":"https://img/1.png"}]}`
		svc := &stubRelayService{body: json.RawMessage(providerBody)}

		w := postRelay(relayRouter(svc), `{"endpoint":"images/generations","payload":{"prompt":"a sweatshirt","n":1}}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, providerBody, w.Body.String())
		assert.Equal(t, "images/generations", svc.endpoint)
		assert.JSONEq(t, `{"prompt":"a sweatshirt","n":1}`, string(svc.payload))
	})

	t.Run("ProviderErrorEnvelopeIsStill200", func(t *testing.T) {
		providerBody := `{"error":{"message":"Rate limit reached","type":"requests"}}`
		w := postRelay(relayRouter(&stubRelayService{body: json.RawMessage(providerBody)}),
			`{"endpoint":"chat/completions","payload":{}}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, providerBody, w.Body.String())
	})

	t.Run("TransportFailure", func(t *testing.T) {
		svc := &stubRelayService{err: services.ErrRelayTransport}
		w := postRelay(relayRouter(svc), `{"endpoint":"chat/completions","payload":{}}`)
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":"relay transport failure"}`, w.Body.String())
	})

	t.Run("MissingEndpoint", func(t *testing.T) {
		svc := &stubRelayService{}
		w := postRelay(relayRouter(svc), `{"payload":{}}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"invalid relay request"}`, w.Body.String())
		assert.Empty(t, svc.endpoint)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		w := postRelay(relayRouter(&stubRelayService{}), `{not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
