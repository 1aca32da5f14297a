package ratelimiter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisLimiter_Allow(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	l := NewRedisLimiter(db, 2, time.Minute, "optimise")
	ctx := context.Background()
	key := "optimise:10.0.0.1"

	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	mock.ExpectIncr(key).SetVal(2)
	mock.ExpectIncr(key).SetVal(3)
	mock.ExpectTTL(key).SetVal(45 * time.Second)

	for _, want := range []bool{true, true, false} {
		ok, err := l.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.Equal(t, want, ok)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLimiter_Errors(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	l := NewRedisLimiter(db, 5, time.Minute, "")
	ctx := context.Background()
	key := "ratelimit:__1"

	mock.ExpectIncr(key).SetErr(errors.New("connection refused"))
	_, err := l.Allow(ctx, "::1")
	assert.ErrorContains(t, err, "rate limit incr")

	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetErr(errors.New("readonly"))
	_, err = l.Allow(ctx, "::1")
	assert.ErrorContains(t, err, "rate limit expire")

	// a later call over budget must set the missing expiry again
	mock.ExpectIncr(key).SetVal(6)
	mock.ExpectTTL(key).SetErr(errors.New("connection reset"))
	_, err = l.Allow(ctx, "::1")
	assert.ErrorContains(t, err, "rate limit ttl")

	mock.ExpectIncr(key).SetVal(7)
	mock.ExpectTTL(key).SetVal(time.Duration(-1))
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	ok, err := l.Allow(ctx, "::1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLimiter_RepairsMissingExpiry(t *testing.T) {
	t.Parallel()

	db, mock := redismock.NewClientMock()
	l := NewRedisLimiter(db, 2, time.Minute, "optimise")
	ctx := context.Background()
	key := "optimise:10.0.0.9"

	// first hit: the expiry cannot be set
	mock.ExpectIncr(key).SetVal(1)
	mock.ExpectExpire(key, time.Minute).SetErr(errors.New("transient"))
	// second hit: still within budget
	mock.ExpectIncr(key).SetVal(2)
	// third hit: over budget, key found without expiry and repaired
	mock.ExpectIncr(key).SetVal(3)
	mock.ExpectTTL(key).SetVal(time.Duration(-1))
	mock.ExpectExpire(key, time.Minute).SetVal(true)
	// fourth hit: expiry in place, nothing to repair
	mock.ExpectIncr(key).SetVal(4)
	mock.ExpectTTL(key).SetVal(59 * time.Second)

	_, err := l.Allow(ctx, "10.0.0.9")
	assert.ErrorContains(t, err, "rate limit expire")

	ok, err := l.Allow(ctx, "10.0.0.9")
	require.NoError(t, err)
	assert.True(t, ok)

	for i := 0; i < 2; i++ {
		ok, err = l.Allow(ctx, "10.0.0.9")
		require.NoError(t, err)
		assert.False(t, ok)
	}

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSafe(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "2001_db8__1", safe("2001:db8::1"))
	assert.Equal(t, "a_b", safe("a b"))
	assert.Equal(t, "10.0.0.1", safe("10.0.0.1"))
}
