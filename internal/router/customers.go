package router

import (
	"github.com/fastcrm/fastcrm/internal/middleware"
	"github.com/fastcrm/fastcrm/internal/model"
	"github.com/gin-gonic/gin"
)

// setupCustomerRoutes mounts customer CRUD and the nested note routes.
// Creating customers is a premium feature; everything else only needs
// an authenticated, active account.
func (r *Router) setupCustomerRoutes(api *gin.RouterGroup) {
	customers := api.Group("/customers")
	customers.Use(r.authMW.RequireAuth())
	{
		customers.POST("", middleware.RequireRole(model.RolePremium), r.customers.Create)

		customers.GET("", r.customers.List)
		customers.GET("/:id", r.customers.Get)
		customers.PUT("/:id", r.customers.Update)
		customers.DELETE("/:id", r.customers.Delete)

		customers.GET("/:id/notes", r.customers.ListNotes)
		customers.POST("/:id/notes", r.customers.CreateNote)
		customers.GET("/:id/notes/:noteId", r.customers.GetNote)
		customers.PUT("/:id/notes/:noteId", r.customers.UpdateNote)
		customers.DELETE("/:id/notes/:noteId", r.customers.DeleteNote)
	}
}
