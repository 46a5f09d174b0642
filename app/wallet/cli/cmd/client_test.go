package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Internal Server Error"}`))
			return
		}
		w.Write([]byte(`{"isValid":true}`))
	}))
	defer srv.Close()

	var resp struct {
		IsValid bool `json:"isValid"`
	}
	err := newClient(srv.URL).get(context.Background(), "/v1/chain/validate", &resp)
	require.NoError(t, err)
	assert.True(t, resp.IsValid)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClientClientErrors(t *testing.T) {
	tests := map[string]struct {
		status int
		body   string
		want   string
		fields map[string]string
	}{
		"field errors": {
			status: http.StatusBadRequest,
			body:   `{"error":"data validation error","fields":{"amount":"amount must be greater than 0"}}`,
			want:   "data validation error",
			fields: map[string]string{"amount": "amount must be greater than 0"},
		},
		"not found": {
			status: http.StatusNotFound,
			body:   `{"error":"record \"x\" not found"}`,
			want:   `record "x" not found`,
		},
		"plain text": {
			status: http.StatusMethodNotAllowed,
			body:   "Method Not Allowed",
			want:   "Method Not Allowed",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := newClient(srv.URL).post(context.Background(), "/v1/tx/submit", map[string]string{"from": "a"}, nil)
			require.Error(t, err)

			var ae *apiError
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, tt.status, ae.Status)
			assert.Equal(t, tt.want, ae.Err)
			assert.Equal(t, tt.fields, ae.Fields)
			assert.EqualValues(t, 1, calls.Load(), "client errors are not retried")
		})
	}
}

func TestClientSendsPostOnce(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"Internal Server Error"}`))
		},
		"dropped connection": func(w http.ResponseWriter, r *http.Request) {
			conn, _, err := http.NewResponseController(w).Hijack()
			if err != nil {
				return
			}
			conn.Close()
		},
	}

	for name, fn := range tests {
		t.Run(name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				fn(w, r)
			}))
			defer srv.Close()

			err := newClient(srv.URL).post(context.Background(), "/v1/tx/submit", map[string]string{"from": "a"}, nil)
			require.Error(t, err)
			assert.EqualValues(t, 1, calls.Load(), "a submitted record must not be sent twice")
		})
	}
}

func TestClientHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := newClient(srv.URL).get(ctx, "/v1/blocks/list", nil)
	require.Error(t, err)
}

func TestSendCommand(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/tx/submit", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"record_id":"rec-1","message":"record submitted"}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"send", "--url", srv.URL, "--account", "alice@email.com", "--to", "bob@email.com", "--amount", "100"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, "alice@email.com", got["from"])
	assert.Equal(t, "bob@email.com", got["to"])
	assert.Equal(t, "100", got["amount"])
	assert.Equal(t, "USD", got["currency"])
	assert.Contains(t, out.String(), "rec-1")
	assert.Contains(t, out.String(), "0.1")
}

func TestChainCommand(t *testing.T) {
	const doc = `[{"prev_block_hash":"0000000000000000000000000000000000000000000000000000000000000000","timestamp":1704067200000,"nonce":7,"hash":"00ab","records":[` +
		`{"id":"rec-1","from":"alice@email.com","to":"bob@email.com","amount":"40","currency":"USD","timestamp":1704067200000,` +
		`"hash":"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08","status":"completed","fee":"0.04"}]}]`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/blocks/list", r.URL.Path)
		w.Write([]byte(doc))
	}))
	defer srv.Close()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"chain", "--url", srv.URL})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "#0 00ab")
	assert.Contains(t, out.String(), "hash[9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08]")
	assert.Contains(t, out.String(), "fee[0.04] completed")
}
