package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/siblingk/chatbot-sub001/internal/domain"
	"github.com/siblingk/chatbot-sub001/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyLeadStore struct{}

func (emptyLeadStore) GetBySessionID(context.Context, string) (*domain.ChatLead, error) {
	return nil, domain.ErrLeadNotFound
}
func (emptyLeadStore) ListByUser(context.Context, string) ([]domain.ChatLead, error) {
	return nil, nil
}
func (emptyLeadStore) Insert(context.Context, *domain.ChatLead) error { return nil }
func (emptyLeadStore) Update(context.Context, *domain.ChatLead) error { return nil }

// openLimiter never trips.
type openLimiter struct{}

func (openLimiter) Hit(context.Context, string) (int, error) { return 1, nil }

func newChatRouter(webhookURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	sessions := service.NewSessionService()
	h := New(Deps{
		Sessions:  sessions,
		Relay:     service.NewRelayService(webhookURL),
		Leads:     service.NewLeadService(emptyLeadStore{}, nil),
		Limits:    openLimiter{},
		JWTSecret: "test-secret",
	})

	r := gin.New()
	h.Register(r)
	return r
}

func doJSON(r *gin.Engine, method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSendMessageAppendsBothTurns(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"output":"happy to help"}`))
	}))
	defer webhook.Close()

	r := newChatRouter(webhook.URL)

	w := doJSON(r, http.MethodPost, "/api/chat/message", `{"message":"hi"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp sendMessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "happy to help", resp.Message)

	// Replay the cookies the server set and read the log back.
	w2 := doJSON(r, http.MethodGet, "/api/chat/messages", "", w.Result().Cookies())
	require.Equal(t, http.StatusOK, w2.Code)

	var listing struct {
		Messages []domain.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &listing))
	require.Len(t, listing.Messages, 2)
	assert.Equal(t, "hi", listing.Messages[0].Text)
	assert.True(t, listing.Messages[0].IsUser)
	assert.Equal(t, "happy to help", listing.Messages[1].Text)
	assert.False(t, listing.Messages[1].IsUser)
}

func TestSendMessageRelayFailureAppendsNothing(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	webhook.Close()

	r := newChatRouter(webhook.URL)

	w := doJSON(r, http.MethodPost, "/api/chat/message", `{"message":"hi"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp sendMessageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, fallbackReply, resp.Message)

	for _, ck := range w.Result().Cookies() {
		assert.NotEqual(t, "sk_messages", ck.Name, "relay failure must not touch the log")
	}
}

func TestClearMessages(t *testing.T) {
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`ok`))
	}))
	defer webhook.Close()

	r := newChatRouter(webhook.URL)

	w := doJSON(r, http.MethodPost, "/api/chat/message", `{"message":"hi"}`, nil)
	w2 := doJSON(r, http.MethodDelete, "/api/chat/messages", "", w.Result().Cookies())
	require.Equal(t, http.StatusOK, w2.Code)

	w3 := doJSON(r, http.MethodGet, "/api/chat/messages", "", w2.Result().Cookies())
	var listing struct {
		Messages []domain.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w3.Body.Bytes(), &listing))
	assert.Empty(t, listing.Messages)
}

func TestAnonymousLeadMutationIsSilentNoOp(t *testing.T) {
	r := newChatRouter("")

	w := doJSON(r, http.MethodPost, "/api/chat/lead/prequote", `{"data":{"service":"oil change"}}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"skipped"}`, w.Body.String())
}

func TestHealthMintsNoSessionCookie(t *testing.T) {
	r := newChatRouter("")

	w := doJSON(r, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())

	// API routes still resolve a session.
	w2 := doJSON(r, http.MethodGet, "/api/chat/messages", "", nil)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.NotEmpty(t, w2.Result().Cookies())
}
