// Package statestore remembers the last observed status per application so
// watch mode can report changes instead of every poll.
package statestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/smerajiapply/submission/pkg/models"
)

// Store keeps per-application status in Redis.
type Store struct {
	client *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

// NewWithClient wraps an existing client, used by tests.
func NewWithClient(client *redis.Client) *Store {
	return &Store{client: client}
}

func key(portal, applicationID string) string {
	return fmt.Sprintf("submission:status:%s:%s", portal, applicationID)
}

// LastStatus returns the previously recorded status, or unknown when the
// application has never been checked.
func (s *Store) LastStatus(ctx context.Context, portal, applicationID string) (models.ApplicationStatus, error) {
	value, err := s.client.Get(ctx, key(portal, applicationID)).Result()
	if errors.Is(err, redis.Nil) {
		return models.StatusUnknown, nil
	}

	if err != nil {
		return models.StatusUnknown, fmt.Errorf("could not read last status: %w", err)
	}

	return models.ApplicationStatus(value), nil
}

// SetLastStatus records the status observed by the latest check.
func (s *Store) SetLastStatus(ctx context.Context, portal, applicationID string, status models.ApplicationStatus) error {
	if err := s.client.Set(ctx, key(portal, applicationID), string(status), 0).Err(); err != nil {
		return fmt.Errorf("could not record status: %w", err)
	}

	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
