// Package database manages the PostgreSQL connection pool shared by the
// application's repositories. It wraps pgxpool behind a small interface so
// callers never touch the pool type directly.
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Service defines the database operations used by the stores
type Service interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)

	// Health reports pool statistics and connectivity status
	Health(ctx context.Context) map[string]string

	Close()
}

type service struct {
	pool *pgxpool.Pool
}

// New creates a connection pool from the given DATABASE_URL-style DSN
func New(ctx context.Context, dsn string) (Service, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	log.Printf("[Database] Connected (max conns: %d)", cfg.MaxConns)
	return &service{pool: pool}, nil
}

func (s *service) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return s.pool.Query(ctx, sql, args...)
}

func (s *service) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return s.pool.QueryRow(ctx, sql, args...)
}

func (s *service) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return s.pool.Exec(ctx, sql, args...)
}

func (s *service) Health(ctx context.Context) map[string]string {
	status := make(map[string]string)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.pool.Ping(pingCtx); err != nil {
		status["status"] = "down"
		status["error"] = err.Error()
		return status
	}

	stat := s.pool.Stat()
	status["status"] = "up"
	status["total_conns"] = fmt.Sprintf("%d", stat.TotalConns())
	status["idle_conns"] = fmt.Sprintf("%d", stat.IdleConns())
	status["acquired_conns"] = fmt.Sprintf("%d", stat.AcquiredConns())
	return status
}

func (s *service) Close() {
	s.pool.Close()
}
