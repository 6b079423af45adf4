package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// collectionPaths maps service types to the supplier API collection names.
var collectionPaths = map[ServiceType]string{
	ServiceHotel:           "hotels",
	ServiceGuide:           "guides",
	ServiceRestaurant:      "restaurants",
	ServiceEntranceFee:     "entrance-fees",
	ServiceExtra:           "extras",
	ServiceVehicleTransfer: "vehicle-transfers",
	ServiceVehicleRental:   "vehicle-rentals",
	ServiceTourCompany:     "tour-companies",
}

// HTTPSourceConfig configures the supplier API client.
type HTTPSourceConfig struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
}

// DefaultHTTPSourceConfig returns conservative client defaults.
func DefaultHTTPSourceConfig() HTTPSourceConfig {
	return HTTPSourceConfig{
		Timeout:           30 * time.Second,
		RequestsPerSecond: 2,
		Burst:             1,
		MaxRetries:        3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        30 * time.Second,
	}
}

func (c HTTPSourceConfig) withDefaults() HTTPSourceConfig {
	def := DefaultHTTPSourceConfig()
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = def.RequestsPerSecond
	}
	if c.Burst <= 0 {
		c.Burst = def.Burst
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.InitialBackoff <= 0 {
		c.InitialBackoff = def.InitialBackoff
	}
	if c.MaxBackoff <= 0 {
		c.MaxBackoff = def.MaxBackoff
	}
	return c
}

// HTTPSource reads supplier collections from the catalog backend REST API.
type HTTPSource struct {
	cfg     HTTPSourceConfig
	client  *http.Client
	limiter *rate.Limiter
	logger  zerolog.Logger
}

// NewHTTPSource creates a rate-limited, retrying API source.
func NewHTTPSource(cfg HTTPSourceConfig) *HTTPSource {
	cfg = cfg.withDefaults()
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HTTPSource{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		logger:  log.With().Str("component", "catalog_http").Logger(),
	}
}

// Name implements Source.
func (s *HTTPSource) Name() string { return "http" }

// Fetch implements Source. The API may answer with a bare array or {"data": [...]}.
func (s *HTTPSource) Fetch(ctx context.Context, st ServiceType) ([]json.RawMessage, error) {
	path, ok := collectionPaths[st]
	if !ok {
		return nil, fmt.Errorf("no collection for service type %q", st)
	}

	body, err := s.get(ctx, s.cfg.BaseURL+"/"+path)
	if err != nil {
		return nil, err
	}
	return decodeCollection(body)
}

func (s *HTTPSource) get(ctx context.Context, url string) ([]byte, error) {
	var lastStatus int
	var lastErr error

	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "TourDesk-QuoteService/1.0")
		if s.cfg.APIKey != "" {
			req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			lastStatus = 0
			if attempt < s.cfg.MaxRetries {
				if err := sleep(ctx, retryDelay(attempt, 0, "", s.cfg)); err != nil {
					return nil, err
				}
			}
			continue
		}

		lastStatus = resp.StatusCode
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			data, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, fmt.Errorf("read response body: %w", err)
			}
			return data, nil
		}

		retryAfter := resp.Header.Get("Retry-After")
		resp.Body.Close()
		lastErr = nil

		if !IsRetryableStatus(resp.StatusCode) {
			return nil, &FetchRetryError{URL: url, Attempts: attempt + 1, LastStatus: resp.StatusCode}
		}
		if attempt == s.cfg.MaxRetries {
			break
		}

		delay := retryDelay(attempt, resp.StatusCode, retryAfter, s.cfg)
		s.logger.Debug().Str("url", url).Int("status", resp.StatusCode).Dur("delay", delay).Int("attempt", attempt+1).Msg("Retrying supplier request")
		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, &FetchRetryError{
		URL:        url,
		Attempts:   s.cfg.MaxRetries + 1,
		LastStatus: lastStatus,
		LastError:  lastErr,
	}
}

func decodeCollection(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []json.RawMessage{}, nil
	}

	var records []json.RawMessage
	if body[0] == '[' {
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, fmt.Errorf("decode collection: %w", err)
		}
		return records, nil
	}

	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	if envelope.Data == nil {
		return []json.RawMessage{}, nil
	}
	return envelope.Data, nil
}
