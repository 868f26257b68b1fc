package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest probe result for hively's external dependencies.
type HealthStatus struct {
	ReservationStore bool      `json:"reservationStore"`
	Cache            bool      `json:"cache"`
	AuthCache        bool      `json:"authCache"`
	CheckedAt        time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// CheckHealth probes the reservation store and both Redis caches once. A nil
// client reports unhealthy rather than panicking, so partial wiring during
// startup stays visible on the health endpoint.
func CheckHealth(ctx context.Context, store *mongo.Client, cache, authCache *redis.Client) HealthStatus {
	s := HealthStatus{CheckedAt: time.Now()}
	if store != nil {
		s.ReservationStore = store.Ping(ctx, nil) == nil
	}
	if cache != nil {
		s.Cache = cache.Ping(ctx).Err() == nil
	}
	if authCache != nil {
		s.AuthCache = authCache.Ping(ctx).Err() == nil
	}
	return s
}

// StartHealthMonitor refreshes the health snapshot every minute.
func StartHealthMonitor(store *mongo.Client, cache, authCache *redis.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			s := CheckHealth(ctx, store, cache, authCache)
			cancel()

			healthMu.Lock()
			currentHealth = s
			healthMu.Unlock()
		}
	}()
}
