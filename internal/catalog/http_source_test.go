package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(baseURL string) HTTPSourceConfig {
	return HTTPSourceConfig{
		BaseURL:           baseURL,
		APIKey:            "secret",
		Timeout:           2 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             10,
		MaxRetries:        2,
		InitialBackoff:    time.Millisecond,
		MaxBackoff:        5 * time.Millisecond,
	}
}

func TestHTTPSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		switch r.URL.Path {
		case "/entrance-fees":
			w.Write([]byte(`[{"id":1,"siteName":"Topkapi","currency":"TRY","adultPrice":100}]`))
		case "/hotels":
			w.Write([]byte(`{"data":[{"id":1},{"id":2}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	src := NewHTTPSource(fastConfig(server.URL + "/"))
	ctx := context.Background()

	records, err := src.Fetch(ctx, ServiceEntranceFee)
	require.NoError(t, err)
	require.Len(t, records, 1)

	records, err = src.Fetch(ctx, ServiceHotel)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	_, err = src.Fetch(ctx, ServiceGuide)
	var retryErr *FetchRetryError
	require.True(t, errors.As(err, &retryErr))
	assert.Equal(t, http.StatusNotFound, retryErr.LastStatus)
	assert.Equal(t, 1, retryErr.Attempts, "4xx is not retried")
}

func TestHTTPSource_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	records, err := NewHTTPSource(fastConfig(server.URL)).Fetch(context.Background(), ServiceExtra)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPSource_GivesUp(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	_, err := NewHTTPSource(fastConfig(server.URL)).Fetch(context.Background(), ServiceExtra)
	var retryErr *FetchRetryError
	require.True(t, errors.As(err, &retryErr))
	assert.Equal(t, 3, retryErr.Attempts)
	assert.Equal(t, http.StatusTooManyRequests, retryErr.LastStatus)
	assert.Equal(t, int32(3), calls.Load())
}

func TestIsRetryableStatus(t *testing.T) {
	assert.True(t, IsRetryableStatus(429))
	assert.True(t, IsRetryableStatus(500))
	assert.True(t, IsRetryableStatus(504))
	assert.False(t, IsRetryableStatus(404))
	assert.False(t, IsRetryableStatus(200))
}

func TestRetryDelay(t *testing.T) {
	cfg := fastConfig("")
	d := retryDelay(0, http.StatusTooManyRequests, "2", cfg)
	assert.GreaterOrEqual(t, d, 2*time.Second)
	assert.Less(t, d, 3*time.Second)

	d = retryDelay(10, http.StatusInternalServerError, "", cfg)
	assert.LessOrEqual(t, d, cfg.MaxBackoff+cfg.MaxBackoff/4)
}

func TestDecodeCollection(t *testing.T) {
	records, err := decodeCollection([]byte(`  `))
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = decodeCollection([]byte(`{"meta":{}}`))
	require.NoError(t, err)
	assert.NotNil(t, records)

	_, err = decodeCollection([]byte(`{`))
	assert.Error(t, err)
}
