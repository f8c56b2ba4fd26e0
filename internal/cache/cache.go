package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripweaver/layover-engine/internal/models"
)

// Cache holds merged candidate sets for a short TTL, keyed by origin,
// date, and preferences. Scoring always re-runs; only the upstream
// fetch is saved.
type Cache interface {
	Get(ctx context.Context, req models.DiscoveryRequest) ([]models.Candidate, bool)
	Set(ctx context.Context, req models.DiscoveryRequest, candidates []models.Candidate) error
	Close() error
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Host:     "localhost",
		Port:     "6379",
		Password: "",
		DB:       0,
		TTL:      2 * time.Minute,
	}
}

func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
		ttl:    cfg.TTL,
	}, nil
}

func (c *RedisCache) Get(ctx context.Context, req models.DiscoveryRequest) ([]models.Candidate, bool) {
	key := generateKey(req)

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var candidates []models.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, false
	}

	return candidates, true
}

func (c *RedisCache) Set(ctx context.Context, req models.DiscoveryRequest, candidates []models.Candidate) error {
	key := generateKey(req)

	data, err := json.Marshal(candidates)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, c.ttl).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) Get(ctx context.Context, req models.DiscoveryRequest) ([]models.Candidate, bool) {
	return nil, false
}

func (c *NoOpCache) Set(ctx context.Context, req models.DiscoveryRequest, candidates []models.Candidate) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}

func generateKey(req models.DiscoveryRequest) string {
	keyData := struct {
		Origin        string
		DepartureDate string
		Preferences   models.Preferences
	}{
		Origin:        req.Origin,
		DepartureDate: req.DepartureDate,
		Preferences:   req.Preferences,
	}

	data, _ := json.Marshal(keyData)
	hash := sha256.Sum256(data)
	return "layover:" + hex.EncodeToString(hash[:])
}
