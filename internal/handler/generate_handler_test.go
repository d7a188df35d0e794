package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ai-assistant-go/internal/middleware"
	"ai-assistant-go/internal/service"
	"ai-assistant-go/pkg/llm"
)

type mockGenerateService struct{ mock.Mock }

func (m *mockGenerateService) Generate(ctx context.Context, req *service.GenerateRequest) (*service.GenerateResult, error) {
	args := m.Called(ctx, req)
	if r := args.Get(0); r != nil {
		return r.(*service.GenerateResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func newGenerateRouter(svc service.GenerateService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CORS())
	h := NewGenerateHandler(svc)
	r.POST("/api/v1/generate", h.Generate)
	r.OPTIONS("/api/v1/generate", func(c *gin.Context) {})
	return r
}

func postGenerate(t *testing.T, router *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestGenerate_Success(t *testing.T) {
	svc := &mockGenerateService{}
	svc.On("Generate", mock.Anything, mock.MatchedBy(func(req *service.GenerateRequest) bool {
		return req.ChatID == "c1" && req.UserMessage == "Hi" && req.AssistantID == "a1"
	})).Return(&service.GenerateResult{AIResponse: "Hello!", MessageID: "m1"}, nil).Once()

	w := postGenerate(t, newGenerateRouter(svc), `{"chatId":"c1","userMessage":"Hi","assistantId":"a1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Hello!", body["aiResponse"])
	assert.Equal(t, "m1", body["messageId"])
	svc.AssertExpectations(t)
}

func TestGenerate_PassesModelSettings(t *testing.T) {
	svc := &mockGenerateService{}
	svc.On("Generate", mock.Anything, mock.MatchedBy(func(req *service.GenerateRequest) bool {
		return req.ModelSettings != nil &&
			req.ModelSettings.ModelName == "gpt-4-turbo" &&
			req.ModelSettings.Temperature != nil && *req.ModelSettings.Temperature == 0.2 &&
			req.ModelSettings.MaxTokens != nil && *req.ModelSettings.MaxTokens == 512
	})).Return(&service.GenerateResult{AIResponse: "ok", MessageID: "m1"}, nil).Once()

	body := `{"chatId":"c1","userMessage":"Hi","assistantId":"a1",` +
		`"modelSettings":{"model_name":"gpt-4-turbo","temperature":0.2,"max_tokens":512}}`
	w := postGenerate(t, newGenerateRouter(svc), body)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestGenerate_MalformedJSON(t *testing.T) {
	svc := &mockGenerateService{}
	w := postGenerate(t, newGenerateRouter(svc), `{"chatId": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request body", decodeBody(t, w)["error"])
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerate_MissingFields(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"no chatId", `{"userMessage":"Hi","assistantId":"a1"}`},
		{"no userMessage", `{"chatId":"c1","assistantId":"a1"}`},
		{"no assistantId", `{"chatId":"c1","userMessage":"Hi"}`},
		{"empty object", `{}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockGenerateService{}
			w := postGenerate(t, newGenerateRouter(svc), tc.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Missing required fields", decodeBody(t, w)["error"])
			svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		})
	}
}

func TestGenerate_NotFoundMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"assistant", service.ErrAssistantNotFound, "Assistant not found"},
		{"chat", service.ErrChatNotFound, "Chat not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockGenerateService{}
			svc.On("Generate", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			w := postGenerate(t, newGenerateRouter(svc), `{"chatId":"c1","userMessage":"Hi","assistantId":"a1"}`)

			assert.Equal(t, http.StatusNotFound, w.Code)
			body := decodeBody(t, w)
			assert.Equal(t, tc.message, body["error"])
			assert.NotContains(t, body, "details")
		})
	}
}

func TestGenerate_MissingCredentialHidesDetails(t *testing.T) {
	svc := &mockGenerateService{}
	svc.On("Generate", mock.Anything, mock.Anything).Return(nil, llm.ErrMissingCredential).Once()

	w := postGenerate(t, newGenerateRouter(svc), `{"chatId":"c1","userMessage":"Hi","assistantId":"a1"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Server configuration error", body["error"])
	assert.NotContains(t, body, "details")
}

func TestGenerate_StorageErrorNamesFailedStep(t *testing.T) {
	svc := &mockGenerateService{}
	svc.On("Generate", mock.Anything, mock.Anything).
		Return(nil, &service.StorageError{Op: "fetching chat history", Err: assert.AnError}).Once()

	w := postGenerate(t, newGenerateRouter(svc), `{"chatId":"c1","userMessage":"Hi","assistantId":"a1"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error fetching chat history", decodeBody(t, w)["error"])
}

func TestGenerate_UpstreamFailureExposesDetails(t *testing.T) {
	svc := &mockGenerateService{}
	svc.On("Generate", mock.Anything, mock.Anything).Return(nil, llm.ErrAttemptsExhausted).Once()

	w := postGenerate(t, newGenerateRouter(svc), `{"chatId":"c1","userMessage":"Hi","assistantId":"a1"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Internal server error", body["error"])
	assert.Contains(t, body["details"], "attempts exhausted")
}

func TestGenerate_CORSHeadersOnEveryResponse(t *testing.T) {
	svc := &mockGenerateService{}
	svc.On("Generate", mock.Anything, mock.Anything).
		Return(&service.GenerateResult{AIResponse: "ok", MessageID: "m1"}, nil).Once()

	w := postGenerate(t, newGenerateRouter(svc), `{"chatId":"c1","userMessage":"Hi","assistantId":"a1"}`)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "authorization, x-client-info, apikey, content-type", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestGenerate_PreflightShortCircuits(t *testing.T) {
	svc := &mockGenerateService{}
	router := newGenerateRouter(svc)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/generate", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}
