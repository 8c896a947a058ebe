package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), "test", time.Second, func() error {
		attempts++
		if attempts < 3 {
			return errors.New("not ready")
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryGivesUp(t *testing.T) {
	boom := errors.New("connection refused")
	err := Retry(context.Background(), "test", 50*time.Millisecond, func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestRetryContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Retry(ctx, "test", time.Minute, func() error { return errors.New("down") })
	assert.Error(t, err)
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "postgres://u:p@db:5432/savings?sslmode=disable", PostgresURL("db", "5432", "u", "p", "savings"))
	assert.Contains(t, PostgresDSN("db", "5432", "u", "p", "savings"), "dbname=savings")
}
