package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Rates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"usd":{"average":36.55,"buy":36.50,"sell":36.60},"eur":{"average":39.10,"buy":39.00,"sell":39.20}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	rates, err := client.Rates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 36.55, rates.USD.Average)
	assert.Equal(t, 36.5, rates.USD.Buy)
	assert.Equal(t, 39.1, rates.EUR.Average)
}

func TestClient_Rates_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Rates(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestClient_Rates_MissingUSDQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"eur":{"average":39.10}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Rates(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestClient_Rates_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	_, err := client.Rates(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))
}
