package clock

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type pinnedClock struct {
	t time.Time
}

func (p pinnedClock) Now(context.Context) time.Time { return p.t }

func TestAuthoritative_UsesRemoteTime(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"datetime":"2024-03-03T15:04:05.123456-03:00"}`))
	}))
	defer srv.Close()

	clk := NewAuthoritative(srv.URL)
	got := clk.Now(context.Background())

	want := time.Date(2024, time.March, 3, 15, 4, 5, 123456000, time.FixedZone("", -3*3600))
	assert.True(t, got.Equal(want), "got %v", got)
}

func TestAuthoritative_FallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	local := pinnedClock{t: time.Date(2024, time.March, 3, 12, 0, 0, 0, time.Local)}
	clk := NewAuthoritative(srv.URL, WithLocal(local))

	assert.Equal(t, local.t, clk.Now(context.Background()))
}

func TestAuthoritative_FallsBackOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"datetime":"not a timestamp"}`))
	}))
	defer srv.Close()

	local := pinnedClock{t: time.Date(2024, time.March, 3, 12, 0, 0, 0, time.Local)}
	clk := NewAuthoritative(srv.URL, WithLocal(local))

	assert.Equal(t, local.t, clk.Now(context.Background()))
}

func TestAuthoritative_FallsBackOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	local := pinnedClock{t: time.Date(2024, time.March, 3, 12, 0, 0, 0, time.Local)}
	clk := NewAuthoritative(srv.URL, WithLocal(local), WithTimeout(10*time.Millisecond))

	started := time.Now()
	got := clk.Now(context.Background())

	assert.Equal(t, local.t, got)
	assert.Less(t, time.Since(started), 150*time.Millisecond)
}
