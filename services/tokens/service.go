package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/traintrack/traintrack/config"
	"github.com/traintrack/traintrack/services/jwt"
	"github.com/traintrack/traintrack/services/logging"
	"go.uber.org/zap"
)

var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenExpired  = errors.New("refresh token expired or revoked")
)

// Service is the token lifecycle manager. It orchestrates issuance,
// existence/expiry/revocation checks and invalidation uniformly across both
// token kinds. It holds no cached copies across calls; every check re-reads
// the store.
type Service struct {
	codec  *jwt.Service
	store  Store
	config *config.Config
	logger *logging.Service
}

func NewService(codec *jwt.Service, store Store, cfg *config.Config, logger *logging.Service) *Service {
	return &Service{
		codec:  codec,
		store:  store,
		config: cfg,
		logger: logger,
	}
}

func (s *Service) expiryFor(kind Kind) time.Duration {
	if kind == KindRefresh {
		return s.config.JWT.RefreshExpiry
	}
	return s.config.JWT.AccessExpiry
}

// Issue generates a signed token, persists its hash and metadata, and
// returns the raw string. The raw token is returned exactly once; the store
// only ever sees the hash.
func (s *Service) Issue(ctx context.Context, kind Kind, userID uint) (string, error) {
	ttl := s.expiryFor(kind)

	raw, err := s.codec.Generate(userID, ttl)
	if err != nil {
		return "", err
	}

	now := time.Now()
	rec := Record{
		UserID:    userID,
		Kind:      kind,
		TokenHash: HashToken(s.config.JWT.SecretKey, raw),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	if err := s.store.Save(ctx, rec); err != nil {
		return "", fmt.Errorf("failed to persist %s record: %w", kind, err)
	}

	s.logger.Debug("token issued",
		zap.Uint("user_id", userID),
		zap.String("token_type", string(kind)),
		zap.Time("expires_at", rec.ExpiresAt))

	return raw, nil
}

// Exists reports whether a record for the raw token is present in the store.
func (s *Service) Exists(ctx context.Context, kind Kind, raw string) (bool, error) {
	_, err := s.store.FindByHash(ctx, kind, HashToken(s.config.JWT.SecretKey, raw))
	if errors.Is(err, ErrTokenNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsExpiredOrRevoked reports whether the raw token must be rejected on the
// store side. It fails safe: a token absent from the store (never issued,
// evicted by TTL, or unreadable due to a backend error) is treated as
// invalid. This is a command-query: when the stored expiry has passed the
// record is lazily marked revoked before true is returned, so a second
// caller observes the same token already revoked.
func (s *Service) IsExpiredOrRevoked(ctx context.Context, kind Kind, raw string) bool {
	hash := HashToken(s.config.JWT.SecretKey, raw)

	rec, err := s.store.FindByHash(ctx, kind, hash)
	if err != nil {
		if !errors.Is(err, ErrTokenNotFound) {
			s.logger.Error("token store lookup failed, treating token as invalid",
				zap.String("token_type", string(kind)),
				zap.Error(err))
		}
		return true
	}

	if time.Now().After(rec.ExpiresAt) {
		if err := s.store.SetRevoked(ctx, kind, hash); err != nil && !errors.Is(err, ErrTokenNotFound) {
			s.logger.Warn("failed to lazily revoke expired token",
				zap.String("token_type", string(kind)),
				zap.Error(err))
		}
		return true
	}

	return rec.Revoked
}

// Invalidate explicitly revokes the raw token, e.g. on logout.
func (s *Service) Invalidate(ctx context.Context, kind Kind, raw string) error {
	err := s.store.SetRevoked(ctx, kind, HashToken(s.config.JWT.SecretKey, raw))
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return ErrTokenNotFound
		}
		return fmt.Errorf("failed to invalidate %s: %w", kind, err)
	}

	s.logger.Info("token invalidated", zap.String("token_type", string(kind)))
	return nil
}

// ExchangeRefreshForAccess validates the refresh token and mints a new
// access token for userID. It does not revoke the refresh token; rotation
// is the caller's responsibility.
func (s *Service) ExchangeRefreshForAccess(ctx context.Context, userID uint, refreshRaw string) (string, error) {
	exists, err := s.Exists(ctx, KindRefresh, refreshRaw)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrRefreshTokenNotFound
	}

	if s.IsExpiredOrRevoked(ctx, KindRefresh, refreshRaw) {
		return "", ErrRefreshTokenExpired
	}

	return s.Issue(ctx, KindAccess, userID)
}
