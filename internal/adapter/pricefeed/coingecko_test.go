package pricefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotes_ParsesMarketsResponse(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/coins/markets", r.URL.Path)
		gotQuery = map[string]string{
			"vs_currency": r.URL.Query().Get("vs_currency"),
			"ids":         r.URL.Query().Get("ids"),
			"per_page":    r.URL.Query().Get("per_page"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":50123.45,"price_change_percentage_24h":-1.5}
		]`))
	}))
	defer server.Close()

	client := NewCoinGecko(server.URL, 5*time.Second, zerolog.Nop())
	quotes, err := client.Quotes(context.Background(), []string{"bitcoin", "ethereum"})

	require.NoError(t, err)
	assert.Equal(t, "usd", gotQuery["vs_currency"])
	assert.Equal(t, "bitcoin,ethereum", gotQuery["ids"])
	assert.Equal(t, "2", gotQuery["per_page"])

	require.Contains(t, quotes, "bitcoin")
	assert.True(t, decimal.NewFromFloat(50123.45).Equal(quotes["bitcoin"].Price))
	require.NotNil(t, quotes["bitcoin"].Change24h)
	assert.InDelta(t, -1.5, *quotes["bitcoin"].Change24h, 1e-9)
	// ethereum was requested but not returned: absent, not an error
	assert.NotContains(t, quotes, "ethereum")
}

func TestQuotes_EmptyIDs(t *testing.T) {
	client := NewCoinGecko("http://127.0.0.1:1", time.Second, zerolog.Nop())

	quotes, err := client.Quotes(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestQuotes_ServerErrorPropagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewCoinGecko(server.URL, time.Second, zerolog.Nop())
	_, err := client.Quotes(context.Background(), []string{"bitcoin"})

	assert.Error(t, err)
}

func TestChange_SevenDayWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7d", r.URL.Query().Get("price_change_percentage"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"bitcoin","name":"Bitcoin","current_price":50000,"price_change_percentage_7d_in_currency":8.25}
		]`))
	}))
	defer server.Close()

	client := NewCoinGecko(server.URL, time.Second, zerolog.Nop())
	delta, err := client.Change(context.Background(), "bitcoin", 7)

	require.NoError(t, err)
	require.NotNil(t, delta)
	assert.Equal(t, "Bitcoin", delta.Name)
	require.NotNil(t, delta.ChangePct)
	assert.InDelta(t, 8.25, *delta.ChangePct, 1e-9)
}

func TestChange_UnknownCoin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewCoinGecko(server.URL, time.Second, zerolog.Nop())
	delta, err := client.Change(context.Background(), "doesnotexist", 7)

	require.NoError(t, err)
	assert.Nil(t, delta)
}

func TestSearch_MergesMarketData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/search":
			_, _ = w.Write([]byte(`{"coins":[{"id":"bitcoin","name":"Bitcoin","symbol":"btc"},{"id":"bitcoin-cash","name":"Bitcoin Cash","symbol":"bch"}]}`))
		case "/coins/markets":
			_, _ = w.Write([]byte(`[{"id":"bitcoin","name":"Bitcoin","current_price":50000,"price_change_percentage_24h":2.0}]`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewCoinGecko(server.URL, time.Second, zerolog.Nop())
	results, err := client.Search(context.Background(), "bit", 8)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "BTC", results[0].Symbol)
	require.NotNil(t, results[0].Price)
	assert.True(t, decimal.NewFromInt(50000).Equal(*results[0].Price))
	assert.Nil(t, results[1].Price)
}

func TestChangeWindow(t *testing.T) {
	assert.Equal(t, "24h", changeWindow(1))
	assert.Equal(t, "7d", changeWindow(7))
	assert.Equal(t, "14d", changeWindow(10))
	assert.Equal(t, "30d", changeWindow(30))
	assert.Equal(t, "1y", changeWindow(365))
}
