package caching

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DashboardTTL bounds how stale the cached dashboard aggregate may get.
const DashboardTTL = 60 * time.Second

const dashboardKey = "agora:dashboard"

// CacheService caches the dashboard aggregate. Every error path
// degrades to a cache miss; the API never fails because redis is down.
type CacheService interface {
	// GetDashboard returns the cached payload or nil on a miss.
	GetDashboard(ctx context.Context) (json.RawMessage, error)
	SetDashboard(ctx context.Context, payload json.RawMessage, ttl time.Duration) error
	// InvalidateDashboard drops the cached aggregate; called after any
	// customer or service write.
	InvalidateDashboard(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

// NewRedisCacheService connects to redis at addr. Accepts redis:// and
// rediss:// prefixed addresses as well as bare host:port.
func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "rediss://"), "redis://")

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: redis ping failed on initialization: %v (address: %s)", err, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetDashboard(ctx context.Context) (json.RawMessage, error) {
	data, err := r.client.Get(ctx, dashboardKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return json.RawMessage(data), nil
}

func (r *redisCacheService) SetDashboard(ctx context.Context, payload json.RawMessage, ttl time.Duration) error {
	return r.client.Set(ctx, dashboardKey, []byte(payload), ttl).Err()
}

func (r *redisCacheService) InvalidateDashboard(ctx context.Context) error {
	return r.client.Del(ctx, dashboardKey).Err()
}
