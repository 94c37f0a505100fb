package router

import (
	"github.com/fastcrm/fastcrm/internal/middleware"
	"github.com/fastcrm/fastcrm/internal/model"
	"github.com/gin-gonic/gin"
)

// setupAdminRoutes mounts the admin management surface.
func (r *Router) setupAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.Use(r.authMW.RequireAuth(), middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("/users", r.admin.ListUsers)
		admin.GET("/users/:id", r.admin.GetUser)
		admin.PUT("/users/:id", r.admin.UpdateUser)
		admin.POST("/users/:id/promote", r.admin.PromoteUser)
		admin.POST("/users/:id/toggle-status", r.admin.ToggleUserStatus)
		admin.DELETE("/users/:id", r.admin.DeleteUser)

		admin.GET("/customers", r.admin.ListAllCustomers)
		admin.GET("/stats", r.admin.Stats)
	}
}
