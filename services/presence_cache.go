package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/utils"

	"github.com/redis/go-redis/v9"
)

// PresenceCache keeps a Redis snapshot of who was last seen and on which
// device, surviving process restarts. The in-process registry stays the
// authority for "online right now"; the cache answers last-seen queries.
type PresenceCache struct {
	client *redis.Client
	ttl    time.Duration
}

type PresenceStatus struct {
	Online   bool      `json:"online"`
	Device   string    `json:"device,omitempty"`
	LastSeen time.Time `json:"last_seen"`
}

func NewPresenceCache(redisURL string) (*PresenceCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &PresenceCache{
		client: client,
		ttl:    utils.GetEnvAsDuration("PRESENCE_TTL", 24*time.Hour),
	}, nil
}

func presenceKey(userID string) string {
	return fmt.Sprintf("presence:%s", userID)
}

// MarkOnline records that userID connected on the given device.
func (pc *PresenceCache) MarkOnline(ctx context.Context, userID, device string) error {
	return pc.set(ctx, userID, PresenceStatus{
		Online:   true,
		Device:   device,
		LastSeen: time.Now(),
	})
}

// MarkOffline records the moment userID disconnected.
func (pc *PresenceCache) MarkOffline(ctx context.Context, userID string) error {
	status, err := pc.GetStatus(ctx, userID)
	if err != nil {
		return err
	}

	device := ""
	if status != nil {
		device = status.Device
	}

	return pc.set(ctx, userID, PresenceStatus{
		Online:   false,
		Device:   device,
		LastSeen: time.Now(),
	})
}

// GetStatus returns the cached presence for userID, or nil on a cache miss.
func (pc *PresenceCache) GetStatus(ctx context.Context, userID string) (*PresenceStatus, error) {
	data, err := pc.client.Get(ctx, presenceKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get presence from cache: %v", err)
	}

	var status PresenceStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("failed to unmarshal presence: %v", err)
	}

	return &status, nil
}

func (pc *PresenceCache) set(ctx context.Context, userID string, status PresenceStatus) error {
	data, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("failed to marshal presence: %v", err)
	}

	if err := pc.client.Set(ctx, presenceKey(userID), data, pc.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache presence: %v", err)
	}

	return nil
}
