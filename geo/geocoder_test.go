package geo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/postcodes/SO17%201BJ", r.URL.EscapedPath())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":200,"result":{"latitude":50.935,"longitude":-1.396}}`))
	}))
	defer srv.Close()

	client := NewClientWithBase(srv.URL)
	lat, lng := client.Lookup("SO17 1BJ")

	require.InDelta(t, 50.935, lat, 1e-9)
	require.InDelta(t, -1.396, lng, 1e-9)
}

func TestLookupFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`not json`))
			},
		},
		{
			name: "null coordinates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":200,"result":{"latitude":null,"longitude":null}}`))
			},
		},
		{
			name: "missing result",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"status":200}`))
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			lat, lng := NewClientWithBase(srv.URL).Lookup("XX1 1XX")
			assert.Equal(t, FallbackLatitude, lat)
			assert.Equal(t, FallbackLongitude, lng)
		})
	}
}

func TestLookupUnreachableServer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	lat, lng := NewClientWithBase(srv.URL).Lookup("SO17 1BJ")
	assert.Equal(t, FallbackLatitude, lat)
	assert.Equal(t, FallbackLongitude, lng)
}
