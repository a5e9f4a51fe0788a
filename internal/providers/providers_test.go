package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFXRates(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch r.URL.Query().Get("base") {
		case "USD":
			w.Write([]byte(`{"rates":{"BRL":5.12}}`))
		case "EUR":
			w.Write([]byte(`{"rates":{"BRL":5.55}}`))
		default:
			http.Error(w, "bad base", http.StatusBadRequest)
		}
	}))
	defer srv.Close()

	c := New(time.Second)
	c.FXBaseURL = srv.URL

	fx := c.FXRates(context.Background())
	require.True(t, fx.USD.Valid)
	require.True(t, fx.EUR.Valid)
	assert.Equal(t, 5.12, fx.USD.Value)
	assert.Equal(t, 5.55, fx.EUR.Value)

	// Second call is served from cache.
	c.FXRates(context.Background())
	assert.Equal(t, 2, calls)
}

func TestFXRatesPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("base") == "USD" {
			w.Write([]byte(`{"rates":{"BRL":5.12}}`))
			return
		}
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(time.Second)
	c.FXBaseURL = srv.URL

	fx := c.FXRates(context.Background())
	assert.True(t, fx.USD.Valid)
	assert.False(t, fx.EUR.Valid)
}

func TestCryptoRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		w.Write([]byte(`{"bitcoin":{"brl":350000},"ethereum":{"brl":18000}}`))
	}))
	defer srv.Close()

	c := New(time.Second)
	c.CryptoBaseURL = srv.URL

	cc := c.CryptoRates(context.Background())
	require.True(t, cc.BTC.Valid)
	require.True(t, cc.ETH.Valid)
	assert.Equal(t, 350000.0, cc.BTC.Value)
	assert.Equal(t, 18000.0, cc.ETH.Value)
}

func TestCryptoRatesUnreachable(t *testing.T) {
	c := New(200 * time.Millisecond)
	c.CryptoBaseURL = "http://127.0.0.1:1"

	cc := c.CryptoRates(context.Background())
	assert.False(t, cc.BTC.Valid)
	assert.False(t, cc.ETH.Valid)
}

func TestWeather(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		w.Write([]byte(`{
			"current_weather":{"temperature":23.4},
			"daily":{"temperature_2m_max":[28.1],"temperature_2m_min":[17.0]}
		}`))
	}))
	defer srv.Close()

	c := New(time.Second)
	c.WeatherBaseURL = srv.URL

	f := c.Weather(context.Background(), -23.55, -46.63)
	require.True(t, f.Valid)
	assert.Equal(t, 23.4, f.Temp)
	assert.Equal(t, 28.1, f.TMax)
	assert.Equal(t, 17.0, f.TMin)
}

func TestWeatherFailureNotCached(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "down", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"current_weather":{"temperature":20},"daily":{"temperature_2m_max":[25],"temperature_2m_min":[15]}}`))
	}))
	defer srv.Close()

	c := New(time.Second)
	c.WeatherBaseURL = srv.URL

	f := c.Weather(context.Background(), 1, 2)
	assert.False(t, f.Valid)

	f = c.Weather(context.Background(), 1, 2)
	assert.True(t, f.Valid)
	assert.Equal(t, 2, calls)
}

func TestLocalTime(t *testing.T) {
	assert.Regexp(t, `^\d{2}:\d{2}$`, LocalTime("America/Sao_Paulo"))
	assert.Equal(t, "--:--", LocalTime("Not/AZone"))
	assert.Equal(t, "--:--", LocalTime(""))
}
