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
	"adwiz/internal/models/response_models"
	"adwiz/pkg/utils"
)

// stubWizardService records the arguments of the last call and returns err
// when set.
type stubWizardService struct {
	id      string
	prompt  string
	index   int
	value   string
	answers map[int]string
	err     error
}

func (s *stubWizardService) view(step string) (*response_models.SessionView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.SessionView{ID: s.id, Step: step}, nil
}

func (s *stubWizardService) CreateSession(context.Context) (*response_models.SessionCreated, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &response_models.SessionCreated{
		Token:   "tok",
		Session: response_models.SessionView{ID: "s1", Step: "prompt", CanSubmit: true},
	}, nil
}

func (s *stubWizardService) GetSession(_ context.Context, id string) (*response_models.SessionView, error) {
	s.id = id
	return s.view("prompt")
}

func (s *stubWizardService) SubmitPrompt(_ context.Context, id string, prompt string) (*response_models.SessionView, error) {
	s.id, s.prompt = id, prompt
	return s.view("questions")
}

func (s *stubWizardService) SetAnswer(_ context.Context, id string, index int, value string) (*response_models.SessionView, error) {
	s.id, s.index, s.value = id, index, value
	return s.view("questions")
}

func (s *stubWizardService) Generate(_ context.Context, id string, answers map[int]string) (*response_models.SessionView, error) {
	s.id, s.answers = id, answers
	return s.view("result")
}

func (s *stubWizardService) Reset(_ context.Context, id string) (*response_models.SessionView, error) {
	s.id = id
	return s.view("prompt")
}

func wizardRouter(svc *stubWizardService) *gin.Engine {
	wc := controllers.NewWizardController(svc)
	r := gin.New()
	sessions := r.Group("/api/wizard/sessions")
	sessions.POST("", wc.CreateSessionHandler)
	sessions.GET("/:id", wc.GetSessionHandler)
	sessions.POST("/:id/prompt", wc.SubmitPromptHandler)
	sessions.PUT("/:id/answers/:index", wc.SetAnswerHandler)
	sessions.POST("/:id/generate", wc.GenerateHandler)
	sessions.POST("/:id/reset", wc.ResetHandler)
	return r
}

func serve(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWizardHandlers(t *testing.T) {
	t.Run("CreateSession", func(t *testing.T) {
		w := serve(wizardRouter(&stubWizardService{}), http.MethodPost, "/api/wizard/sessions", "")
		require.Equal(t, http.StatusCreated, w.Code)
		resp := decodeEnvelope(t, w)
		assert.Equal(t, "success", resp.Status)
		data := resp.Data.(map[string]any)
		assert.Equal(t, "tok", data["token"])
	})

	t.Run("SubmitPrompt", func(t *testing.T) {
		svc := &stubWizardService{}
		w := serve(wizardRouter(svc), http.MethodPost, "/api/wizard/sessions/s1/prompt", `{"prompt":"make an ad for sweatshirts"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "s1", svc.id)
		assert.Equal(t, "make an ad for sweatshirts", svc.prompt)
	})

	t.Run("SubmitPromptBadBody", func(t *testing.T) {
		w := serve(wizardRouter(&stubWizardService{}), http.MethodPost, "/api/wizard/sessions/s1/prompt", `[1,2]`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("SetAnswer", func(t *testing.T) {
		svc := &stubWizardService{}
		w := serve(wizardRouter(svc), http.MethodPut, "/api/wizard/sessions/s1/answers/2", `{"value":"Warm"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, svc.index)
		assert.Equal(t, "Warm", svc.value)
	})

	t.Run("SetAnswerNonNumericIndex", func(t *testing.T) {
		w := serve(wizardRouter(&stubWizardService{}), http.MethodPut, "/api/wizard/sessions/s1/answers/two", `{"value":"Warm"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GenerateWithAnswers", func(t *testing.T) {
		svc := &stubWizardService{}
		w := serve(wizardRouter(svc), http.MethodPost, "/api/wizard/sessions/s1/generate", `{"answers":{"0":"Teens","2":"Warm"}}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, map[int]string{0: "Teens", 2: "Warm"}, svc.answers)
	})

	t.Run("GenerateWithoutBody", func(t *testing.T) {
		svc := &stubWizardService{}
		w := serve(wizardRouter(svc), http.MethodPost, "/api/wizard/sessions/s1/generate", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, svc.answers)
	})

	t.Run("Reset", func(t *testing.T) {
		svc := &stubWizardService{}
		w := serve(wizardRouter(svc), http.MethodPost, "/api/wizard/sessions/s1/reset", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "s1", svc.id)
	})
}

func TestWizardHandlerErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"NotFound", utils.ErrSessionNotFound, http.StatusNotFound},
		{"Busy", utils.ErrSessionBusy, http.StatusConflict},
		{"WrongStep", utils.ErrInvalidStep, http.StatusBadRequest},
		{"EmptyPrompt", utils.ErrEmptyPrompt, http.StatusBadRequest},
		{"AnswerIndex", utils.ErrInvalidAnswerIndex, http.StatusBadRequest},
		{"Unexpected", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(wizardRouter(&stubWizardService{err: tc.err}), http.MethodPost, "/api/wizard/sessions/s1/prompt", `{"prompt":"x"}`)
			require.Equal(t, tc.code, w.Code)
			resp := decodeEnvelope(t, w)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tc.code, resp.Code)
		})
	}
}
