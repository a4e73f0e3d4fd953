package guestconfig

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchValidConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/get-guest-config", r.URL.Path)
		assert.Equal(t, "LILI01", r.URL.Query().Get("rid"))
		w.Write([]byte(`{
			"success": true,
			"data": {
				"config": {
					"rid": "LILI01",
					"guestName": "Ana Souza",
					"property": "flat_lili",
					"checkInDate": "2024-03-01",
					"checkoutDate": "2024-03-05",
					"wifiPassword": "welcome-home"
				}
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	cfg, err := c.Fetch(context.Background(), "LILI01")

	require.NoError(t, err)
	assert.Equal(t, "LILI01", cfg.RID)
	assert.Equal(t, "Ana Souza", cfg.GuestName)
	assert.Equal(t, "welcome-home", cfg.WifiPassword)
}

func TestClient_FetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Fetch(context.Background(), "NOPE00")

	assert.ErrorIs(t, err, ErrNotFound)
}

// A schema-invalid 200 must read as transient, not as not-found, so the
// resolver keeps retrying instead of blocking the guest.
func TestClient_InvalidBodyIsNotTreatedAsNotFound(t *testing.T) {
	cases := map[string]string{
		"not json":        `<html>maintenance</html>`,
		"empty data":      `{"success": true, "data": null}`,
		"missing rid":     `{"success": true, "data": {"config": {"guestName": "Ana", "property": "flat_lili"}}}`,
		"inverted window": `{"success": true, "data": {"config": {"rid": "LILI01", "guestName": "Ana", "property": "flat_lili", "checkInDate": "2024-03-05", "checkoutDate": "2024-03-01"}}}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, time.Second)
			_, err := c.Fetch(context.Background(), "LILI01")

			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestClient_ServerErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	_, err := c.Fetch(context.Background(), "LILI01")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
