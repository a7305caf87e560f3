package collector

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFMPFetcher_FetchHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/api/v3/historical-price-full/AAPL")
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		// Newest first, as the real API responds.
		w.Write([]byte(`{"symbol":"AAPL","historical":[
			{"date":"2024-01-04","close":103.5},
			{"date":"2024-01-03","close":102.0},
			{"date":"2024-01-02","close":101.0}]}`))
	}))
	defer srv.Close()

	f := NewFMPFetcher(srv.URL, "test-key", "")
	series, err := f.FetchHistory("AAPL")
	require.NoError(t, err)

	require.Equal(t, 3, series.Len())
	assert.Equal(t, "AAPL", series.Symbol)
	// Reordered to ascending dates.
	assert.Equal(t, 101.0, series.At(0).Close)
	assert.Equal(t, 103.5, series.At(2).Close)
}

func TestFMPFetcher_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFMPFetcher(srv.URL, "k", "")
	_, err := f.FetchHistory("NOPE")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFMPFetcher_EmptyHistoryIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"symbol":"GHST","historical":[]}`))
	}))
	defer srv.Close()

	f := NewFMPFetcher(srv.URL, "k", "")
	_, err := f.FetchHistory("GHST")
	require.ErrorIs(t, err, ErrNotFound)
}
