package handler

import (
	"net/http"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/pkg/redis"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports service liveness and dependency status.
type HealthHandler struct {
	db    *gorm.DB
	cache *redis.Client
}

func NewHealthHandler(db *gorm.DB, cache *redis.Client) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check handles GET /api/health. The database is required; redis is
// reported but never fails the check.
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	dbStatus := "up"
	cacheStatus := "disabled"

	if sqlDB, err := h.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbStatus = "down"
		status = http.StatusServiceUnavailable
	}

	if h.cache.Enabled() {
		cacheStatus = "up"
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			cacheStatus = "down"
		}
	}

	c.JSON(status, gin.H{
		"service":  constants.AppName,
		"version":  constants.AppVersion,
		"database": dbStatus,
		"cache":    cacheStatus,
	})
}
