package app

import (
	"context"
	"fmt"
)

// Pinger is the minimal interface for a database pool capable of Ping.
type Pinger interface{ Ping(ctx context.Context) error }

// RedisPingResult is the minimal return type of a Redis client's Ping.
type RedisPingResult interface{ Err() error }

// RedisPinger is the minimal Redis client surface readiness needs.
type RedisPinger interface{ Ping(ctx context.Context) RedisPingResult }

// BuildReadinessChecks returns the db and cache readiness checks. The db
// check gates readiness; the cache check is informational only.
func BuildReadinessChecks(pool Pinger, rdb RedisPinger) (
	func(ctx context.Context) error,
	func(ctx context.Context) error,
) {
	dbCheck := func(ctx context.Context) error {
		if pool == nil {
			return fmt.Errorf("db not configured")
		}
		return pool.Ping(ctx)
	}
	cacheCheck := func(ctx context.Context) error {
		if rdb == nil {
			return fmt.Errorf("cache not configured")
		}
		return rdb.Ping(ctx).Err()
	}
	return dbCheck, cacheCheck
}
