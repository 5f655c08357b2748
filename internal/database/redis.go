package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/EgehanKilicarslan/notekeeper/internal/config"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/models"
	"github.com/EgehanKilicarslan/notekeeper/internal/database/repository"
)

// RedisClient stores sessions in Redis, letting key TTLs expire them
type RedisClient struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(cfg *config.Config, logger *slog.Logger) (*RedisClient, error) {
	logger.Info("🔌 [Redis] Connecting to Redis...",
		"host", cfg.RedisHost,
		"port", cfg.RedisPort,
		"db", cfg.RedisDatabase,
	)

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       int(cfg.RedisDatabase),
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("✅ [Redis] Redis connection established")

	return &RedisClient{
		client: client,
		logger: logger,
	}, nil
}

// NewRedisClientForTesting creates a Redis client with a provided redis.Client (for testing)
func NewRedisClientForTesting(client *redis.Client, logger *slog.Logger) *RedisClient {
	return &RedisClient{
		client: client,
		logger: logger,
	}
}

// Close closes the Redis connection
func (r *RedisClient) Close() error {
	return r.client.Close()
}

// PingContext checks that Redis still answers
func (r *RedisClient) PingContext(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// sessionKey generates a Redis key for a session token
func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Save stores the session until its ExpiresAt
func (r *RedisClient) Save(ctx context.Context, session *models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return repository.ErrSessionExpired
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, sessionKey(session.Token), data, ttl).Err(); err != nil {
		r.logger.Error("❌ [Redis] Failed to store session",
			"user_id", session.UserID,
			"error", err,
		)
		return err
	}

	r.logger.Debug("💾 [Redis] Stored session",
		"user_id", session.UserID,
		"ttl", ttl,
	)

	return nil
}

// Find loads the session stored under token
func (r *RedisClient) Find(ctx context.Context, token string) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrSessionNotFound
		}
		r.logger.Error("❌ [Redis] Failed to load session", "error", err)
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		r.logger.Warn("⚠️ [Redis] Corrupt session payload, discarding", "error", err)
		r.client.Del(ctx, sessionKey(token))
		return nil, repository.ErrSessionNotFound
	}

	if session.Expired(time.Now()) {
		return nil, repository.ErrSessionNotFound
	}

	return &session, nil
}

// Delete removes the session stored under token
func (r *RedisClient) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		r.logger.Error("❌ [Redis] Failed to delete session", "error", err)
		return err
	}

	r.logger.Debug("🗑️ [Redis] Deleted session")

	return nil
}
