package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(e *echo.Echo, handler echo.HandlerFunc, setup func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/transaksi", nil)
	req.RemoteAddr = "192.168.1.100:12345"
	if setup != nil {
		setup(req)
	}
	rec := httptest.NewRecorder()
	_ = handler(e.NewContext(req, rec))
	return rec
}

func okHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func TestRateLimiter_AllowsBurstThenRejects(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter(1, 3)
	handler := limiter.Middleware()(okHandler)

	for i := 0; i < 3; i++ {
		rec := doRequest(e, handler, nil)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := doRequest(e, handler, nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "SYSTEM_004")
}

func TestRateLimiter_SeparateBucketsPerIP(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter(1, 1)
	handler := limiter.Middleware()(okHandler)

	assert.Equal(t, http.StatusOK, doRequest(e, handler, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(e, handler, nil).Code)

	other := doRequest(e, handler, func(r *http.Request) {
		r.RemoteAddr = "10.0.0.7:5555"
	})
	assert.Equal(t, http.StatusOK, other.Code)
	assert.Equal(t, 2, limiter.visitorCount())
}

func TestRateLimiter_BurstFloor(t *testing.T) {
	limiter := NewRateLimiter(5, 0)
	assert.Equal(t, 1, limiter.burst)
}

func TestClientIPExtractor(t *testing.T) {
	testCases := []struct {
		name       string
		trustProxy bool
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "forwarded chain ignored",
			remoteAddr: "192.168.1.100:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"},
			expected:   "192.168.1.100",
		},
		{
			name:       "real ip ignored",
			remoteAddr: "192.168.1.100:12345",
			headers:    map[string]string{"X-Real-IP": "198.51.100.2"},
			expected:   "192.168.1.100",
		},
		{
			name:       "remote addr",
			remoteAddr: "192.168.1.100:12345",
			expected:   "192.168.1.100",
		},
		{
			name:       "trusted proxy forwards client",
			trustProxy: true,
			remoteAddr: "10.0.0.5:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.1"},
			expected:   "203.0.113.1",
		},
		{
			name:       "public peer cannot forward",
			trustProxy: true,
			remoteAddr: "198.51.100.9:12345",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1"},
			expected:   "198.51.100.9",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			e.IPExtractor = ClientIPExtractor(tc.trustProxy)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remoteAddr
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tc.expected, e.NewContext(req, httptest.NewRecorder()).RealIP())
		})
	}
}

func TestRateLimiter_SpoofedForwardedForSharesBucket(t *testing.T) {
	e := echo.New()
	e.IPExtractor = ClientIPExtractor(false)
	limiter := NewRateLimiter(1, 1)
	handler := limiter.Middleware()(okHandler)

	assert.Equal(t, http.StatusOK, doRequest(e, handler, nil).Code)

	spoofed := doRequest(e, handler, func(r *http.Request) {
		r.Header.Set("X-Forwarded-For", "203.0.113.77")
		r.Header.Set("X-Real-IP", "203.0.113.78")
	})
	assert.Equal(t, http.StatusTooManyRequests, spoofed.Code)
	assert.Equal(t, 1, limiter.visitorCount())
}

func TestRateLimiter_CleanupEvictsIdleVisitors(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(5, 5)
	limiter.now = func() time.Time { return now }

	limiter.allow("10.0.0.1")
	now = now.Add(2 * time.Minute)
	limiter.allow("10.0.0.2")
	now = now.Add(2 * time.Minute)

	limiter.cleanup(visitorIdleTimeout)

	assert.Equal(t, 1, limiter.visitorCount())
}

func TestRateLimiter_RunStopsOnCancel(t *testing.T) {
	limiter := NewRateLimiter(5, 5)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		limiter.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRateLimiter_Concurrency(t *testing.T) {
	e := echo.New()
	limiter := NewRateLimiter(1, 10)
	handler := limiter.Middleware()(okHandler)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := doRequest(e, handler, nil)
			if rec.Code == http.StatusOK {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.GreaterOrEqual(t, allowed, 10)
	assert.LessOrEqual(t, allowed, 12)
}
