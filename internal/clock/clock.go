package clock

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"
)

const (
	// DefaultTimeURL is a worldtimeapi-style endpoint returning a JSON body
	// with a "datetime" field. The flats are in São Paulo, so that zone is
	// the reference.
	DefaultTimeURL = "https://worldtimeapi.org/api/timezone/America/Sao_Paulo"

	// DefaultFetchTimeout bounds the worst-case latency of one time fetch.
	DefaultFetchTimeout = 3 * time.Second
)

// Clock is the single shared time collaborator. Both resolvers take a Clock
// instead of reading the device clock directly, so tests can pin "now" and
// guests cannot reveal codes early by winding their device clock forward.
type Clock interface {
	Now(ctx context.Context) time.Time
}

// System reads the local device clock.
type System struct{}

func (System) Now(context.Context) time.Time { return time.Now() }

// Authoritative fetches official time from a remote service and falls back
// to the local clock on any failure. Failures are warnings, never errors:
// mode resolution must not block on time-service availability.
type Authoritative struct {
	url     string
	timeout time.Duration
	client  *http.Client
	local   Clock
}

type AuthoritativeOption func(*Authoritative)

func WithTimeout(d time.Duration) AuthoritativeOption {
	return func(a *Authoritative) { a.timeout = d }
}

func WithLocal(local Clock) AuthoritativeOption {
	return func(a *Authoritative) { a.local = local }
}

func NewAuthoritative(url string, opts ...AuthoritativeOption) *Authoritative {
	if url == "" {
		url = DefaultTimeURL
	}
	a := &Authoritative{
		url:     url,
		timeout: DefaultFetchTimeout,
		client:  &http.Client{},
		local:   System{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type timeResponse struct {
	Datetime string `json:"datetime"`
}

func (a *Authoritative) Now(ctx context.Context) time.Time {
	t, err := a.fetch(ctx)
	if err != nil {
		log.Printf("warn: official time fetch failed, using device clock: %v", err)
		return a.local.Now(ctx)
	}
	return t
}

func (a *Authoritative) fetch(ctx context.Context) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.url, nil)
	if err != nil {
		return time.Time{}, err
	}
	resp, err := a.client.Do(req)
	if err != nil {
		return time.Time{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, &statusError{code: resp.StatusCode}
	}

	var body timeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, body.Datetime)
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return http.StatusText(e.code)
}
