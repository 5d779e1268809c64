// Package session keeps recent chat turns per session in Redis.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Arhamsiaf65/CityInsights/internal/chatbot"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "chat:session:"

	DefaultMaxTurns = 12
	DefaultTTL      = 24 * time.Hour
	maxSessionIDLen = 128
)

// ErrInvalidSessionID is returned for ids that are too long.
var ErrInvalidSessionID = errors.New("invalid session id")

// Store is a capped Redis list of turns per session.
type Store struct {
	client   *redis.Client
	maxTurns int64
	ttl      time.Duration
}

// NewStore returns a store keeping at most maxTurns turns for ttl.
func NewStore(client *redis.Client, maxTurns int, ttl time.Duration) *Store {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, maxTurns: int64(maxTurns), ttl: ttl}
}

func key(id string) string {
	return keyPrefix + id
}

func validID(id string) error {
	if len(id) > maxSessionIDLen {
		return ErrInvalidSessionID
	}
	return nil
}

// Load returns the stored turns oldest first. An empty id has no history.
func (s *Store) Load(ctx context.Context, id string) ([]chatbot.Turn, error) {
	if id == "" {
		return nil, nil
	}
	if err := validID(id); err != nil {
		return nil, err
	}

	raw, err := s.client.LRange(ctx, key(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	turns := make([]chatbot.Turn, 0, len(raw))
	for _, item := range raw {
		var t chatbot.Turn
		if err := json.Unmarshal([]byte(item), &t); err != nil {
			continue
		}
		turns = append(turns, t)
	}
	return turns, nil
}

// Append adds turns, trims the list to the cap and refreshes the TTL.
func (s *Store) Append(ctx context.Context, id string, turns ...chatbot.Turn) error {
	if id == "" || len(turns) == 0 {
		return nil
	}
	if err := validID(id); err != nil {
		return err
	}

	values := make([]any, 0, len(turns))
	for _, t := range turns {
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("encode turn: %w", err)
		}
		values = append(values, b)
	}

	k := key(id)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, values...)
		pipe.LTrim(ctx, k, -s.maxTurns, -1)
		pipe.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}

// Clear deletes a session.
func (s *Store) Clear(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := validID(id); err != nil {
		return err
	}
	if err := s.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
