package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/researchhub/portal-api/internal/domain/model"
	apperrors "github.com/researchhub/portal-api/internal/errors"
	"github.com/researchhub/portal-api/internal/ports"
)

// messageBackend is the minimal backend surface the message service needs.
type messageBackend interface {
	ListConversations(ctx context.Context, token string) ([]*model.Conversation, error)
	ListMessages(ctx context.Context, token, otherUserID string) ([]*model.Message, error)
	SendMessage(ctx context.Context, token string, req *model.SendMessageRequest) (*model.Message, error)
	MarkConversationRead(ctx context.Context, token, otherUserID string) error
}

// MessageServiceOptions groups dependencies for MessageService.
type MessageServiceOptions struct {
	Backend messageBackend
	Cache   ports.ListCache
	Config  ProxyConfig
}

// MessageService proxies messaging to the backend. Conversation summaries
// and per-conversation histories are cached for offline fallback.
type MessageService struct {
	backend  messageBackend
	cache    ports.ListCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewMessageService constructs a new MessageService.
func NewMessageService(opts MessageServiceOptions) *MessageService {
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.Config.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &MessageService{
		backend:  opts.Backend,
		cache:    opts.Cache,
		cacheTTL: ttl,
		logger:   logger.With("component", "message_service"),
	}
}

func conversationsCacheKey(userID string) string { return userID + ":conversations" }
func messagesCacheKey(userID, otherID string) string {
	return userID + ":messages:" + otherID
}

// Conversations retrieves the caller's conversation summaries with cache
// fallback.
func (s *MessageService) Conversations(ctx context.Context, token, userID string) ([]*model.Conversation, error) {
	key := conversationsCacheKey(userID)

	convs, err := s.backend.ListConversations(ctx, token)
	if err != nil {
		raw, cacheErr := s.cache.Get(ctx, key)
		if cacheErr != nil || raw == nil {
			return nil, err
		}
		var cached []*model.Conversation
		if unmarshalErr := json.Unmarshal(raw, &cached); unmarshalErr != nil {
			return nil, err
		}
		s.logger.WarnContext(ctx, "serving conversations from cache", "user_id", userID, "err", err)
		return cached, nil
	}

	s.writeCache(ctx, key, convs)
	return convs, nil
}

// History retrieves the message history with another user, with cache
// fallback.
func (s *MessageService) History(ctx context.Context, token, userID, otherUserID string) ([]*model.Message, error) {
	if otherUserID == "" {
		return nil, apperrors.Validation("user ID is required")
	}
	key := messagesCacheKey(userID, otherUserID)

	msgs, err := s.backend.ListMessages(ctx, token, otherUserID)
	if err != nil {
		raw, cacheErr := s.cache.Get(ctx, key)
		if cacheErr != nil || raw == nil {
			return nil, err
		}
		var cached []*model.Message
		if unmarshalErr := json.Unmarshal(raw, &cached); unmarshalErr != nil {
			return nil, err
		}
		s.logger.WarnContext(ctx, "serving message history from cache", "user_id", userID, "err", err)
		return cached, nil
	}

	s.writeCache(ctx, key, msgs)
	return msgs, nil
}

// Send delivers a message and invalidates the cached history with the
// receiver so the next read reflects it.
func (s *MessageService) Send(ctx context.Context, token, userID string, req *model.SendMessageRequest) (*model.Message, error) {
	if req == nil {
		return nil, apperrors.Validation("send message request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	msg, err := s.backend.SendMessage(ctx, token, req)
	if err != nil {
		return nil, err
	}

	for _, key := range []string{messagesCacheKey(userID, req.ReceiverID), conversationsCacheKey(userID)} {
		if _, delErr := s.cache.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "list cache invalidation failed", "key", key, "err", delErr)
		}
	}
	return msg, nil
}

// MarkRead marks every message from the given sender as read.
func (s *MessageService) MarkRead(ctx context.Context, token, userID, otherUserID string) error {
	if otherUserID == "" {
		return apperrors.Validation("user ID is required")
	}
	if err := s.backend.MarkConversationRead(ctx, token, otherUserID); err != nil {
		return err
	}
	if _, delErr := s.cache.Delete(ctx, conversationsCacheKey(userID)); delErr != nil {
		s.logger.WarnContext(ctx, "list cache invalidation failed", "user_id", userID, "err", delErr)
	}
	return nil
}

func (s *MessageService) writeCache(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if setErr := s.cache.Set(ctx, key, raw, s.cacheTTL); setErr != nil {
		s.logger.WarnContext(ctx, "list cache write failed", "key", key, "err", setErr)
	}
}
