// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sessiongate

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/pacer/internal/authstore"
	"github.com/taibuivan/pacer/internal/platform/constants"
)

// CullerInterval is how often a replica attempts to sweep expired
// session keys.
const CullerInterval = 1 * time.Minute

// cullerLockTTL bounds how long one replica's lock acquisition is
// honored, so a crashed leader doesn't wedge culling forever.
const cullerLockTTL = 50 * time.Second

/*
RunCuller periodically calls [authstore.Store.CullOldKeys], but only on
the replica that wins the Redis `SETNX`-style lock for that tick — every
other replica observes the lock held and skips. This avoids every
replica hammering the auth store with the same sweep on every tick.

It blocks until ctx is cancelled; run it in its own goroutine.
*/
func RunCuller(ctx context.Context, auth authstore.Store, redisClient *redis.Client, logger *slog.Logger) {
	ticker := time.NewTicker(CullerInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			acquired, err := redisClient.SetNX(ctx, constants.RedisKeyCullerLock, "1", cullerLockTTL).Result()
			if err != nil {
				logger.Warn("culler_lock_acquire_failed", slog.Any("error", err))
				continue
			}
			if !acquired {
				continue
			}

			n, err := auth.CullOldKeys(ctx)
			if err != nil {
				logger.Warn("culler_sweep_failed", slog.Any("error", err))
				continue
			}
			if n > 0 {
				logger.Info("culler_sweep_completed", slog.Int("keys_removed", n))
			}
		}
	}
}
