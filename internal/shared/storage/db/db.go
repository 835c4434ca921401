package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"srtm-backend/internal/shared/telemetry"
)

// Pool names the process shape a connection pool is sized for.
type Pool string

const (
	ServerPool  Pool = "server"
	LambdaPool  Pool = "lambda"
	MigratePool Pool = "migrate"
)

// Options controls database pool and connectivity behavior.
type Options struct {
	Pool            Pool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

var openDB = sql.Open

var poolDefaults = map[Pool]Options{
	ServerPool:  {MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxIdleTime: 2 * time.Minute, ConnMaxLifetime: time.Hour, PingTimeout: 5 * time.Second},
	LambdaPool:  {MaxOpenConns: 2, MaxIdleConns: 1, ConnMaxIdleTime: 30 * time.Second, ConnMaxLifetime: 15 * time.Minute, PingTimeout: 3 * time.Second},
	MigratePool: {MaxOpenConns: 1, MaxIdleConns: 1, ConnMaxIdleTime: 2 * time.Minute, ConnMaxLifetime: time.Hour, PingTimeout: 5 * time.Second},
}

// PoolForRuntime returns LambdaPool inside AWS Lambda and ServerPool elsewhere.
func PoolForRuntime() Pool {
	if strings.TrimSpace(os.Getenv("AWS_LAMBDA_FUNCTION_NAME")) != "" {
		return LambdaPool
	}
	return ServerPool
}

// OptionsFor returns the defaults for p with any DB_* environment overrides applied.
// Unknown pools fall back to the server defaults.
func OptionsFor(p Pool) Options {
	opts, ok := poolDefaults[p]
	if !ok {
		opts = poolDefaults[ServerPool]
	}
	opts.Pool = p
	for _, o := range envOverrides {
		raw := strings.TrimSpace(os.Getenv(o.key))
		if raw == "" {
			continue
		}
		if err := o.apply(&opts, raw); err != nil {
			telemetry.Warn("db.env_invalid", map[string]any{"key": o.key, "error": err.Error()})
		}
	}
	return opts
}

type envOverride struct {
	key   string
	apply func(*Options, string) error
}

var envOverrides = []envOverride{
	{"DB_MAX_OPEN_CONNS", intField(func(o *Options, v int) { o.MaxOpenConns = v })},
	{"DB_MAX_IDLE_CONNS", intField(func(o *Options, v int) { o.MaxIdleConns = v })},
	{"DB_CONN_MAX_LIFETIME", durationField(func(o *Options, v time.Duration) { o.ConnMaxLifetime = v })},
	{"DB_CONN_MAX_IDLE_TIME", durationField(func(o *Options, v time.Duration) { o.ConnMaxIdleTime = v })},
	{"DB_PING_TIMEOUT", durationField(func(o *Options, v time.Duration) { o.PingTimeout = v })},
}

func intField(set func(*Options, int)) func(*Options, string) error {
	return func(o *Options, raw string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		set(o, v)
		return nil
	}
}

func durationField(set func(*Options, time.Duration)) func(*Options, string) error {
	return func(o *Options, raw string) error {
		v, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		set(o, v)
		return nil
	}
}

// Connect opens a pgx-backed *sql.DB and pings it before returning.
// Callers share the returned pool.
func Connect(ctx context.Context, databaseURL string, opts Options) (*sql.DB, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := openDB("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	configurePool(db, opts)

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	telemetry.Info("db.init", map[string]any{
		"pool":     string(opts.Pool),
		"max_open": db.Stats().MaxOpenConnections,
	})
	return db, nil
}

func configurePool(db *sql.DB, opts Options) {
	db.SetMaxOpenConns(max(opts.MaxOpenConns, 1))
	db.SetMaxIdleConns(max(opts.MaxIdleConns, 0))
	if opts.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	if opts.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(opts.ConnMaxIdleTime)
	}
}
