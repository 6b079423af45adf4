// Package database holds the Postgres pool, schema and the quotation and
// exchange-rate repositories.
package database

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ErrNotConnected is returned by Status before Connect succeeds or after Close.
var ErrNotConnected = errors.New("database not connected")

// PoolOptions configures the shared pool.
type PoolOptions struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	// Migrate applies the embedded schema right after connecting.
	Migrate bool
}

// PoolStats is the health view of the pool.
type PoolStats struct {
	Max      int32 `json:"max"`
	Total    int32 `json:"total"`
	Acquired int32 `json:"acquired"`
	Idle     int32 `json:"idle"`
}

var (
	pool   *pgxpool.Pool
	poolMu sync.RWMutex
)

// Connect opens the shared pool once. Calling it again while connected is a no-op.
func Connect(ctx context.Context, opts PoolOptions) error {
	poolMu.Lock()
	defer poolMu.Unlock()
	if pool != nil {
		return nil
	}

	p, err := newPool(ctx, opts)
	if err != nil {
		return err
	}
	if opts.Migrate {
		if err := Migrate(ctx, p); err != nil {
			p.Close()
			return err
		}
	}

	pool = p
	log.Info().Str("component", "database").Int32("max_conns", p.Config().MaxConns).Bool("migrated", opts.Migrate).Msg("Database pool ready")
	return nil
}

func newPool(ctx context.Context, opts PoolOptions) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.MaxConns > 0 {
		config.MaxConns = int32(opts.MaxConns)
	}
	if opts.MinConns > 0 {
		config.MinConns = int32(opts.MinConns)
	}
	if opts.MaxConnLifetime > 0 {
		config.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.MaxConnIdleTime > 0 {
		config.MaxConnIdleTime = opts.MaxConnIdleTime
	}
	config.HealthCheckPeriod = time.Minute

	p, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return p, nil
}

// Close releases the shared pool so Connect can open a new one.
func Close() {
	poolMu.Lock()
	defer poolMu.Unlock()
	if pool != nil {
		pool.Close()
		pool = nil
	}
}

// Pool returns the shared pool, nil when not connected.
func Pool() *pgxpool.Pool {
	poolMu.RLock()
	defer poolMu.RUnlock()
	return pool
}

// Status pings the shared pool.
func Status(ctx context.Context) error {
	p := Pool()
	if p == nil {
		return ErrNotConnected
	}
	return p.Ping(ctx)
}

// Stats reports pool usage; ok is false when not connected.
func Stats() (stats PoolStats, ok bool) {
	p := Pool()
	if p == nil {
		return PoolStats{}, false
	}
	return statsOf(p), true
}

func statsOf(p *pgxpool.Pool) PoolStats {
	s := p.Stat()
	return PoolStats{
		Max:      s.MaxConns(),
		Total:    s.TotalConns(),
		Acquired: s.AcquiredConns(),
		Idle:     s.IdleConns(),
	}
}
