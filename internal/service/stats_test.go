package service

import (
	"context"
	"testing"
	"time"

	"github.com/fastcrm/fastcrm/internal/model"
	"github.com/fastcrm/fastcrm/pkg/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedUserCounter struct{}

func (fixedUserCounter) Count(context.Context) (int64, error)       { return 10, nil }
func (fixedUserCounter) CountActive(context.Context) (int64, error) { return 8, nil }
func (fixedUserCounter) CountByRole(context.Context) (map[model.Role]int64, error) {
	return map[model.Role]int64{model.RoleBasic: 7, model.RolePremium: 2, model.RoleAdmin: 1}, nil
}
func (fixedUserCounter) CountCreatedSince(context.Context, time.Time) (int64, error) { return 3, nil }

type fixedCustomerStatsCounter struct{}

func (fixedCustomerStatsCounter) Count(context.Context) (int64, error) { return 25, nil }
func (fixedCustomerStatsCounter) CountByStatus(context.Context) (map[string]int64, error) {
	return map[string]int64{"Active": 20, "Lead": 5}, nil
}
func (fixedCustomerStatsCounter) CountCreatedSince(context.Context, time.Time) (int64, error) {
	return 4, nil
}

type fixedNoteCounter struct{}

func (fixedNoteCounter) Count(context.Context) (int64, error) { return 100, nil }

type fixedSessionCounter struct{}

func (fixedSessionCounter) CountActive(context.Context) (int64, error) { return 6, nil }

func TestStatsWithoutCache(t *testing.T) {
	cache, err := redis.NewClient(redis.Config{Enabled: false})
	require.NoError(t, err)

	svc := NewStatsService(fixedUserCounter{}, fixedCustomerStatsCounter{}, fixedNoteCounter{}, fixedSessionCounter{}, cache)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(10), stats.TotalUsers)
	assert.Equal(t, int64(8), stats.ActiveUsers)
	assert.Equal(t, int64(7), stats.UsersByRole["basic"])
	assert.Equal(t, int64(1), stats.UsersByRole["admin"])
	assert.Equal(t, int64(25), stats.TotalCustomers)
	assert.Equal(t, int64(20), stats.CustomersByStatus["Active"])
	assert.Equal(t, int64(100), stats.TotalNotes)
	assert.Equal(t, int64(6), stats.ActiveSessions)
	assert.Equal(t, int64(3), stats.NewUsers24h)
	assert.Equal(t, int64(4), stats.NewCustomers24h)

	// Invalidation with a disabled cache is a no-op, not an error.
	svc.Invalidate(context.Background())
}
