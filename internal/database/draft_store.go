package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/azurestay/booking-backend/internal/config"
	"github.com/azurestay/booking-backend/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DraftStore persists the single active booking draft per user. There is
// exactly one writer per draft (the owning user's session), so writes are
// plain last-writer-wins overwrites.
type DraftStore interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.BookingDraft, error)
	Save(ctx context.Context, userID uuid.UUID, draft *models.BookingDraft) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// RedisDraftStore implements DraftStore on Redis. Drafts are JSON documents
// keyed by user ID with a TTL so abandoned drafts eventually disappear.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient instantiates a Redis client and verifies connectivity
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

// NewRedisDraftStore creates a draft store backed by the given client
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{
		client: client,
		ttl:    ttl,
	}
}

func draftKey(userID uuid.UUID) string {
	return "booking:draft:" + userID.String()
}

// Get loads the user's draft. A missing draft is not an error: the initial
// empty draft is returned, matching the implicit creation on first use.
func (s *RedisDraftStore) Get(ctx context.Context, userID uuid.UUID) (*models.BookingDraft, error) {
	data, err := s.client.Get(ctx, draftKey(userID)).Bytes()
	if err == redis.Nil {
		return models.NewBookingDraft(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft: %w", err)
	}
	var draft models.BookingDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft, nil
}

// Save overwrites the user's draft and refreshes its TTL
func (s *RedisDraftStore) Save(ctx context.Context, userID uuid.UUID, draft *models.BookingDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(userID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// Delete removes the user's draft
func (s *RedisDraftStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
