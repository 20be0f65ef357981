package services

import (
	"context"
	"errors"
	"time"

	"gocab/internal/utils"
	"gocab/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrSessionExpired is the signal the HTTP layer turns into a 401 with a
	// SESSION_EXPIRED code so clients clear credentials and re-login.
	ErrSessionExpired = errors.New("session expired")
)

type SessionService interface {
	IssueTokens(ctx context.Context, userID primitive.ObjectID, phone string) (*utils.TokenPair, error)
	ValidateAccessToken(ctx context.Context, token string) (*utils.JWTClaims, error)
	Logout(ctx context.Context, token string) error
}

type sessionService struct {
	cache     CacheService
	jwtSecret string
	logger    *logger.Logger
}

func NewSessionService(cache CacheService, jwtSecret string, log *logger.Logger) SessionService {
	return &sessionService{
		cache:     cache,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (s *sessionService) IssueTokens(ctx context.Context, userID primitive.ObjectID, phone string) (*utils.TokenPair, error) {
	pair, err := utils.GenerateTokenPair(userID, phone, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	s.logger.WithUserID(userID).Info("Session tokens issued")
	return pair, nil
}

func (s *sessionService) ValidateAccessToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := utils.ValidateToken(token, s.jwtSecret)
	if err != nil {
		return nil, ErrSessionExpired
	}

	// Logged-out tokens stay blacklisted until their natural expiry
	exists, err := s.cache.Exists(ctx, blacklistKey(claims.ID))
	if err == nil && exists {
		return nil, ErrSessionExpired
	}

	return claims, nil
}

func (s *sessionService) Logout(ctx context.Context, token string) error {
	claims, err := utils.ValidateToken(token, s.jwtSecret)
	if err != nil {
		// Already invalid; nothing to revoke.
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Set(ctx, blacklistKey(claims.ID), true, ttl); err != nil {
		return err
	}

	s.logger.WithUserID(claims.UserID).Info("Session revoked")
	return nil
}

func blacklistKey(tokenID string) string {
	return "blacklist:" + tokenID
}
