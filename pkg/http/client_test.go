package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendAndParseBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-store", r.Header.Get("Cache-Control"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := NewClient(WithTimeout(5 * time.Second))

	var body []byte
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method:  http.MethodGet,
		URL:     srv.URL,
		Headers: map[string]string{"Cache-Control": "no-store"},
	}, &body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestClientSendAndParseJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"btc"}`))
	}))
	defer srv.Close()

	c := NewClient()

	var dest struct {
		Name string `json:"name"`
	}
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method: http.MethodGet,
		URL:    srv.URL,
	}, &dest)
	require.NoError(t, err)
	assert.Equal(t, "btc", dest.Name)
}

func TestClientSendAndParseBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient()

	var body []byte
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method: http.MethodGet,
		URL:    srv.URL,
	}, &body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}
