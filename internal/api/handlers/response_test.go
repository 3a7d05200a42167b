package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"Комплекс"}`},
		{name: "unknown field", body: `{"name":"x","extra":1}`, wantErr: true},
		{name: "two objects", body: `{"name":"x"}{"name":"y"}`, wantErr: true},
		{name: "empty", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := DecodeJSON(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body)), &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Комплекс", p.Name)
		})
	}
}

func TestPathInt64(t *testing.T) {
	tests := []struct {
		value   string
		want    int64
		wantErr bool
	}{
		{value: "42", want: 42},
		{value: "0", wantErr: true},
		{value: "-3", wantErr: true},
		{value: "x", wantErr: true},
	}

	for _, tt := range tests {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/", nil), map[string]string{"id": tt.value})
		got, err := PathInt64(req, "id")
		if tt.wantErr {
			assert.Error(t, err, tt.value)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestQueryString(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?date=2026-10-20&car=", nil)

	assert.Equal(t, "2026-10-20", *QueryString(req, "date"))
	assert.Equal(t, "", *QueryString(req, "car"))
	assert.Nil(t, QueryString(req, "userId"))
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondConflict(rec, "зайнято")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":409,"message":"зайнято"}`, rec.Body.String())
}
