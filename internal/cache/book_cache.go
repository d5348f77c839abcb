package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookhive/internal/http-api/models"

	"github.com/redis/go-redis/v9"
)

// BookCache is a read-through cache for book details. Lifecycle operations
// invalidate entries because the availability counter lives on the book row.
type BookCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBookCache connects to Redis and verifies the connection. A nil
// *BookCache is a valid no-op cache, so callers can run without Redis.
func NewBookCache(redisURL, password string, ttl time.Duration) (*BookCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &BookCache{client: rdb, ttl: ttl}, nil
}

func bookKey(bookID int64) string {
	return fmt.Sprintf("book:%d", bookID)
}

// Get returns the cached book or (nil, nil) on a miss.
func (c *BookCache) Get(ctx context.Context, bookID int64) (*models.Book, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, bookKey(bookID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var book models.Book
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

func (c *BookCache) Set(ctx context.Context, book *models.Book) error {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := json.Marshal(book)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, bookKey(book.ID), data, c.ttl).Err()
}

func (c *BookCache) Invalidate(ctx context.Context, bookID int64) {
	if c == nil || c.client == nil {
		return
	}
	// best effort; a stale entry only lives until its TTL anyway
	c.client.Del(ctx, bookKey(bookID))
}

func (c *BookCache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
