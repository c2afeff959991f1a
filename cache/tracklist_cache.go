package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"trackbase/db"

	"github.com/go-redis/redis/v8"
)

// listTTL bounds staleness; the cache is rebuilt from MySQL on miss.
const listTTL = 24 * time.Hour

// ListItem is one cached track list entry.
type ListItem struct {
	TrackID       int64  `json:"trackId"`
	PublicID      string `json:"publicId"`
	Type          string `json:"type"`
	Kind          string `json:"kind,omitempty"`
	Label         string `json:"label"`
	ValidLanguage string `json:"validLanguage,omitempty"`
	Position      int    `json:"position"`
}

// ListKey builds the Redis key for a track list.
func ListKey(listID string) string {
	return fmt.Sprintf("tracklist:%s", listID)
}

// PutList replaces the cached contents of a list with items, scored by
// position.
func PutList(ctx context.Context, listID string, items []ListItem) error {
	if db.RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}

	key := ListKey(listID)
	pipe := db.RedisClient.TxPipeline()
	pipe.Del(ctx, key)
	for _, item := range items {
		itemJSON, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal list item: %w", err)
		}
		pipe.ZAdd(ctx, key, &redis.Z{
			Score:  float64(item.Position),
			Member: itemJSON,
		})
	}
	pipe.Expire(ctx, key, listTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store track list in cache: %w", err)
	}
	return nil
}

// GetList returns the cached contents of a list in position order. A missing
// key returns an empty slice and found=false.
func GetList(ctx context.Context, listID string) ([]ListItem, bool, error) {
	if db.RedisClient == nil {
		return nil, false, fmt.Errorf("Redis client not initialized")
	}

	key := ListKey(listID)
	exists, err := db.RedisClient.Exists(ctx, key).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to check track list cache: %w", err)
	}
	if exists == 0 {
		return nil, false, nil
	}

	raw, err := db.RedisClient.ZRange(ctx, key, 0, -1).Result()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read track list cache: %w", err)
	}

	items := make([]ListItem, 0, len(raw))
	for _, member := range raw {
		var item ListItem
		if err := json.Unmarshal([]byte(member), &item); err != nil {
			return nil, false, fmt.Errorf("failed to unmarshal list item: %w", err)
		}
		items = append(items, item)
	}
	return items, true, nil
}

// InvalidateList drops the cached contents of a list.
func InvalidateList(ctx context.Context, listID string) error {
	if db.RedisClient == nil {
		return fmt.Errorf("Redis client not initialized")
	}
	if err := db.RedisClient.Del(ctx, ListKey(listID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate track list cache: %w", err)
	}
	return nil
}
