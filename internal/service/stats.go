package service

import (
	"context"
	"time"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/internal/dto"
	apperrors "github.com/fastcrm/fastcrm/internal/errors"
	"github.com/fastcrm/fastcrm/internal/model"
	ctxutil "github.com/fastcrm/fastcrm/pkg/context"
	"github.com/fastcrm/fastcrm/pkg/logger"
	"github.com/fastcrm/fastcrm/pkg/redis"
)

// statsCacheTTL bounds how stale the admin dashboard can be.
const statsCacheTTL = 60 * time.Second

// UserCounter aggregates user counters for the dashboard.
type UserCounter interface {
	Count(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context) (map[model.Role]int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// CustomerStatsCounter aggregates customer counters.
type CustomerStatsCounter interface {
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
}

// NoteCounter counts notes.
type NoteCounter interface {
	Count(ctx context.Context) (int64, error)
}

// SessionCounter counts live sessions.
type SessionCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

// StatsService computes the admin dashboard counters, cached in redis
// when available. The cache degrades to direct queries when redis is
// disabled or down.
type StatsService struct {
	users     UserCounter
	customers CustomerStatsCounter
	notes     NoteCounter
	sessions  SessionCounter
	cache     *redis.Client
}

func NewStatsService(users UserCounter, customers CustomerStatsCounter, notes NoteCounter, sessions SessionCounter, cache *redis.Client) *StatsService {
	return &StatsService{
		users:     users,
		customers: customers,
		notes:     notes,
		sessions:  sessions,
		cache:     cache,
	}
}

// Stats returns the system-wide counters.
func (s *StatsService) Stats(ctx context.Context) (*dto.AdminStatsResponse, error) {
	ctx = ctxutil.WithOperation(ctx, "stats_service", "Stats")

	var cached dto.AdminStatsResponse
	if err := s.cache.GetJSON(ctx, constants.CacheKeyAdminStats, &cached); err == nil {
		return &cached, nil
	} else if err != redis.ErrCacheMiss {
		logger.WarnWithContext(ctx, "stats cache read failed").
			Err(err).
			Log()
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.cache.SetJSON(ctx, constants.CacheKeyAdminStats, stats, statsCacheTTL); err != nil {
		logger.WarnWithContext(ctx, "stats cache write failed").
			Err(err).
			Log()
	}
	return stats, nil
}

// Invalidate drops the cached counters. Called after mutations an admin
// expects to see immediately.
func (s *StatsService) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, constants.CacheKeyAdminStats); err != nil {
		logger.WarnWithContext(ctx, "stats cache invalidation failed").
			Err(err).
			Log()
	}
}

func (s *StatsService) compute(ctx context.Context) (*dto.AdminStatsResponse, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.users.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	byRole, err := s.users.CountByRole(ctx)
	if err != nil {
		return nil, err
	}
	totalCustomers, err := s.customers.Count(ctx)
	if err != nil {
		return nil, err
	}
	byStatus, err := s.customers.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	totalNotes, err := s.notes.Count(ctx)
	if err != nil {
		return nil, err
	}
	activeSessions, err := s.sessions.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	dayAgo := time.Now().UTC().Add(-24 * time.Hour)
	newUsers, err := s.users.CountCreatedSince(ctx, dayAgo)
	if err != nil {
		return nil, err
	}
	newCustomers, err := s.customers.CountCreatedSince(ctx, dayAgo)
	if err != nil {
		return nil, err
	}

	usersByRole := make(map[string]int64, len(byRole))
	for role, count := range byRole {
		usersByRole[string(role)] = count
	}

	return &dto.AdminStatsResponse{
		TotalUsers:        totalUsers,
		ActiveUsers:       activeUsers,
		UsersByRole:       usersByRole,
		TotalCustomers:    totalCustomers,
		CustomersByStatus: byStatus,
		TotalNotes:        totalNotes,
		ActiveSessions:    activeSessions,
		NewUsers24h:       newUsers,
		NewCustomers24h:   newCustomers,
	}, nil
}
