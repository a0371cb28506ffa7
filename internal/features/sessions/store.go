package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	KeyCurrentWorkspaceID = "current_workspace_id"
	KeyCurrentProjectID   = "current_project_id"

	sessionKeyPrefix = "picktask:session:"
	flashKeyPrefix   = "picktask:flash:"
	revokedKeyPrefix = "picktask:revoked:"
	sessionTTL       = 14 * 24 * time.Hour
)

type FlashLevel string

const (
	FlashLevelSuccess FlashLevel = "success"
	FlashLevelWarning FlashLevel = "warning"
	FlashLevelError   FlashLevel = "error"
)

type FlashMessage struct {
	Level   FlashLevel `json:"level"`
	Message string     `json:"message"`
}

// SessionState is the per-browser-session selection of workspace and project.
type SessionState struct {
	CurrentWorkspaceID *uuid.UUID
	CurrentProjectID   *uuid.UUID
}

type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*SessionState, error) {
	values, err := s.client.HGetAll(ctx, s.sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	state := &SessionState{}
	var corrupted []string

	for _, key := range []string{KeyCurrentWorkspaceID, KeyCurrentProjectID} {
		raw, ok := values[key]
		if !ok {
			continue
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			corrupted = append(corrupted, key)
			continue
		}

		switch key {
		case KeyCurrentWorkspaceID:
			state.CurrentWorkspaceID = &id
		case KeyCurrentProjectID:
			state.CurrentProjectID = &id
		}
	}

	if len(corrupted) > 0 {
		if err := s.Delete(ctx, sessionID, corrupted...); err != nil {
			return nil, err
		}
	}

	return state, nil
}

func (s *SessionStore) Set(ctx context.Context, sessionID, key string, value uuid.UUID) error {
	sessionKey := s.sessionKey(sessionID)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, sessionKey, key, value.String())
	pipe.Expire(ctx, sessionKey, sessionTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write session key %s: %w", key, err)
	}

	return nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := s.client.HDel(ctx, s.sessionKey(sessionID), keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete session keys: %w", err)
	}

	return nil
}

// Revoke destroys the session and marks its id as signed out for ttl, so
// tokens issued for it stop authenticating.
func (s *SessionStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, s.sessionKey(sessionID), s.flashKey(sessionID))
	pipe.Set(ctx, s.revokedKey(sessionID), "1", ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

func (s *SessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	count, err := s.client.Exists(ctx, s.revokedKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session revocation: %w", err)
	}

	return count > 0, nil
}

func (s *SessionStore) PushFlash(
	ctx context.Context,
	sessionID string,
	level FlashLevel,
	message string,
) error {
	payload, err := json.Marshal(FlashMessage{Level: level, Message: message})
	if err != nil {
		return fmt.Errorf("failed to marshal flash message: %w", err)
	}

	flashKey := s.flashKey(sessionID)

	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, flashKey, payload)
	pipe.Expire(ctx, flashKey, sessionTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push flash message: %w", err)
	}

	return nil
}

// PopFlashes returns pending flash messages in insertion order and clears them.
func (s *SessionStore) PopFlashes(ctx context.Context, sessionID string) ([]FlashMessage, error) {
	flashKey := s.flashKey(sessionID)

	pipe := s.client.TxPipeline()
	rangeCmd := pipe.LRange(ctx, flashKey, 0, -1)
	pipe.Del(ctx, flashKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to pop flash messages: %w", err)
	}

	messages := make([]FlashMessage, 0, len(rangeCmd.Val()))
	for _, raw := range rangeCmd.Val() {
		var message FlashMessage
		if err := json.Unmarshal([]byte(raw), &message); err != nil {
			continue
		}
		messages = append(messages, message)
	}

	return messages, nil
}

func (s *SessionStore) sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func (s *SessionStore) flashKey(sessionID string) string {
	return flashKeyPrefix + sessionID
}

func (s *SessionStore) revokedKey(sessionID string) string {
	return revokedKeyPrefix + sessionID
}
