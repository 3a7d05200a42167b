package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashService/pkg/logger"
)

func TestClient_Send(t *testing.T) {
	var got sendMessageRequest
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "123:abc", time.Second, logger.NewNop())
	require.NoError(t, c.Send(context.Background(), 42, "Ваша машина готова"))

	assert.Equal(t, "/bot123:abc/sendMessage", path)
	assert.Equal(t, int64(42), got.ChatID)
	assert.Equal(t, "Ваша машина готова", got.Text)
}

func TestClient_Send_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"chat not found", http.StatusBadRequest, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`, ErrChatNotFound},
		{"bot blocked", http.StatusForbidden, `{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`, ErrChatNotFound},
		{"server error", http.StatusBadGateway, `{}`, ErrInvalidResponse},
		{"not ok", http.StatusOK, `{"ok":false,"description":"strange"}`, ErrInvalidResponse},
		{"broken body", http.StatusOK, `not json`, ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "token", time.Second, logger.NewNop())
			err := c.Send(context.Background(), 1, "text")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_Send_EmptyTokenOnlyLogs(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second, logger.NewNop())
	require.NoError(t, c.Send(context.Background(), 1, "text"))
	assert.False(t, called)
}

func TestClient_Send_RedactsToken(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "secret-token", 200*time.Millisecond, logger.NewNop())

	err := c.Send(context.Background(), 1, "text")
	require.ErrorIs(t, err, ErrInternal)
	assert.NotContains(t, err.Error(), "secret-token")
}
