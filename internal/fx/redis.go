package fx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// RedisSource reads rates stored as decimal strings under <prefix>:<FROM>:<TO>.
// On a miss it asks Fallback, when set, and caches the answer for TTL.
type RedisSource struct {
	client   redis.Cmdable
	prefix   string
	ttl      time.Duration
	fallback RateSource
	logger   zerolog.Logger
}

// RedisOptions configures a RedisSource.
type RedisOptions struct {
	Prefix   string
	TTL      time.Duration
	Fallback RateSource
}

// NewRedisSource wraps an existing client.
func NewRedisSource(client redis.Cmdable, opts RedisOptions) *RedisSource {
	if opts.Prefix == "" {
		opts.Prefix = "fx"
	}
	return &RedisSource{
		client:   client,
		prefix:   opts.Prefix,
		ttl:      opts.TTL,
		fallback: opts.Fallback,
		logger:   log.With().Str("component", "fx_redis").Logger(),
	}
}

// NewRedisClient parses a redis:// URL, or a bare host:port.
func NewRedisClient(url string) (*redis.Client, error) {
	if !strings.Contains(url, "://") {
		return redis.NewClient(&redis.Options{Addr: url}), nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (s *RedisSource) key(from, to string) string {
	return s.prefix + ":" + strings.ToUpper(from) + ":" + strings.ToUpper(to)
}

// Rate implements RateSource.
func (s *RedisSource) Rate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if strings.EqualFold(from, to) {
		return decimal.NewFromInt(1), nil
	}

	val, err := s.client.Get(ctx, s.key(from, to)).Result()
	switch {
	case err == nil:
		rate, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("cached rate %s is not a decimal: %w", s.key(from, to), err)
		}
		return rate, nil
	case errors.Is(err, redis.Nil):
	default:
		return decimal.Decimal{}, fmt.Errorf("redis get %s: %w", s.key(from, to), err)
	}

	if s.fallback == nil {
		return decimal.Decimal{}, fmt.Errorf("%s: %w", PairKey(from, to), ErrRateNotFound)
	}
	rate, err := s.fallback.Rate(ctx, from, to)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if err := s.Set(ctx, from, to, rate); err != nil {
		s.logger.Warn().Err(err).Str("pair", PairKey(from, to)).Msg("Failed to cache exchange rate")
	}
	return rate, nil
}

// Set stores a rate with the configured TTL (zero keeps it forever).
func (s *RedisSource) Set(ctx context.Context, from, to string, rate decimal.Decimal) error {
	if err := s.client.Set(ctx, s.key(from, to), rate.String(), s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key(from, to), err)
	}
	return nil
}

// Ping checks connectivity.
func (s *RedisSource) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
