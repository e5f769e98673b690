package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

const (
	defaultMaxAttempts   uint = 30
	defaultRetryInterval      = 3 * time.Second
	retryJitter               = 0.15
)

type ConnectArgs struct {
	DSN           string
	MigrationsDir string
	// MaxAttempts число попыток подключения, 0 означает значение по умолчанию.
	MaxAttempts   uint
	RetryInterval time.Duration
}

// Connect открывает пул соединений и применяет миграции.
// Алгоритм работы:
//  1. Пытается подключиться и выполнить Ping, при ошибке ждет RetryInterval (±15%) и повторяет.
//  2. После MaxAttempts неудачных попыток возвращает последнюю ошибку.
//  3. Отмена ctx прерывает ожидание.
//  4. После успешного подключения накатывает миграции из MigrationsDir.
func Connect(ctx context.Context, args ConnectArgs, l *logrus.Logger) (*pgxpool.Pool, error) {
	maxAttempts := args.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = defaultMaxAttempts
	}
	retryInterval := args.RetryInterval
	if retryInterval <= 0 {
		retryInterval = defaultRetryInterval
	}

	var (
		conn    *pgxpool.Pool
		connErr error
	)
	for attempt := uint(1); ; attempt++ {
		conn, connErr = newPostgresConnection(ctx, args.DSN)
		if connErr == nil {
			break
		}
		if attempt >= maxAttempts {
			return nil, fmt.Errorf("init postgres connection after %d attempts: %w", maxAttempts, connErr)
		}

		wait := jitter(retryInterval, retryJitter)
		l.WithError(connErr).
			WithField("CurrentAttempt", fmt.Sprintf("#%d / %d", attempt, maxAttempts)).
			Warnf("init postgres connection error, retrying in %.1f seconds", wait.Seconds())

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("init postgres connection: %w", ctx.Err())
		case <-timer.C:
		}
	}

	if err := postgresMigrate(args.MigrationsDir, args.DSN); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

func newPostgresConnection(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	poolConfig, confErr := pgxpool.ParseConfig(dsn)
	if confErr != nil {
		return nil, fmt.Errorf("parse postgres config: %s", confErr.Error())
	}
	pool, poolErr := pgxpool.NewWithConfig(ctx, poolConfig)
	if poolErr != nil {
		return nil, fmt.Errorf("failed to create pool: %s", poolErr.Error())
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %s", pingErr.Error())
	}

	return pool, nil
}

func postgresMigrate(dir string, dsn string) error {
	m, mErr := migrate.New("file://"+dir, dsn)
	if mErr != nil {
		return fmt.Errorf("failed to create migrate instance: %w", mErr)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
