package routing_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shipquote/internal/adapters/out/routing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestORSProvider_Quote(t *testing.T) {
	newServer := func(t *testing.T, matrix string) *httptest.Server {
		t.Helper()

		mux := http.NewServeMux()
		mux.HandleFunc("/geocode/search", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "key", r.Header.Get("Authorization"))
			assert.Equal(t, "1", r.URL.Query().Get("size"))
			switch r.URL.Query().Get("text") {
			case "Kyiv":
				_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[30.52,50.45]}}]}`))
			case "Lviv":
				_, _ = w.Write([]byte(`{"features":[{"geometry":{"coordinates":[24.03,49.84]}}]}`))
			default:
				_, _ = w.Write([]byte(`{"features":[]}`))
			}
		})
		mux.HandleFunc("/v2/matrix/driving-car", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Len(t, body["locations"], 2)

			_, _ = w.Write([]byte(matrix))
		})
		return httptest.NewServer(mux)
	}

	t.Run("should geocode both ends and read the matrix cell", func(t *testing.T) {
		srv := newServer(t, `{"distances":[[540000.4]],"durations":[[21600.2]]}`)
		defer srv.Close()

		p, err := routing.NewORSProvider("key", routing.WithBaseURL(srv.URL))
		require.NoError(t, err)

		q, err := p.Quote(t.Context(), "Kyiv", "Lviv")

		require.NoError(t, err)
		assert.Equal(t, "540 km", q.DistanceText())
		assert.Equal(t, 6*time.Hour, q.Duration())
	})

	t.Run("should fail when an address is unknown", func(t *testing.T) {
		srv := newServer(t, `{}`)
		defer srv.Close()

		p, _ := routing.NewORSProvider("key", routing.WithBaseURL(srv.URL))
		_, err := p.Quote(t.Context(), "Kyiv", "Nowhere")

		require.ErrorContains(t, err, "no geocode results")
	})

	t.Run("should fail when the matrix has no route", func(t *testing.T) {
		srv := newServer(t, `{"distances":[[null]],"durations":[[null]]}`)
		defer srv.Close()

		p, _ := routing.NewORSProvider("key", routing.WithBaseURL(srv.URL))
		_, err := p.Quote(t.Context(), "Kyiv", "Lviv")

		require.ErrorContains(t, err, "no route")
	})
}
