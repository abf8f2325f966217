package postgres

import (
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PsqlConnectionStrategy func(Config) (*pgxpool.Pool, error)

type PostgresRetrier struct {
	countRetries   int
	delay          time.Duration
	connectionFunc PsqlConnectionStrategy
	logger         *slog.Logger
}

func NewPostgresRetrier(countRetries int, delay time.Duration, connectionFunc PsqlConnectionStrategy, logger *slog.Logger) *PostgresRetrier {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRetrier{
		countRetries:   countRetries,
		delay:          delay,
		connectionFunc: connectionFunc,
		logger:         logger,
	}
}

func (r *PostgresRetrier) newConnection(cfg Config) (*pgxpool.Pool, error) {
	db, err := r.connectionFunc(cfg)

	for attempt := 1; err != nil && attempt <= r.countRetries; attempt++ {
		r.logger.Warn("database connection failed, retrying",
			"attempt", attempt,
			"retries", r.countRetries,
			"error", err,
		)
		time.Sleep(r.delay)
		db, err = r.connectionFunc(cfg)
	}

	return db, err
}

func NewPsqlConnectionWithRetrier(cfg Config, retrier *PostgresRetrier) (*pgxpool.Pool, error) {
	return retrier.newConnection(cfg)
}
