package handler

import (
	"net/http"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/internal/dto"
	"github.com/fastcrm/fastcrm/internal/middleware"
	"github.com/fastcrm/fastcrm/internal/service"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the admin-only management surface. Routes are
// gated by RequireRole(RoleAdmin) at the router.
type AdminHandler struct {
	users     *service.UserService
	customers *service.CustomerService
	stats     *service.StatsService
}

func NewAdminHandler(users *service.UserService, customers *service.CustomerService, stats *service.StatsService) *AdminHandler {
	return &AdminHandler{users: users, customers: customers, stats: stats}
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params := constants.ParsePaginationParams(c)

	users, total, err := h.users.ListUsers(c.Request.Context(), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildListResponse(total, params.Page, users))
}

// GetUser handles GET /api/admin/users/:id.
func (h *AdminHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateUser handles PUT /api/admin/users/:id.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.users.AdminUpdateUser(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.stats.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, resp)
}

// PromoteUser handles POST /api/admin/users/:id/promote.
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.users.PromoteUser(c.Request.Context(), id, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}

	h.stats.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, resp)
}

// ToggleUserStatus handles POST /api/admin/users/:id/toggle-status.
func (h *AdminHandler) ToggleUserStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.users.ToggleUserStatus(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	h.stats.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, resp)
}

// DeleteUser handles DELETE /api/admin/users/:id.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		respondError(c, err)
		return
	}

	h.stats.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("user deleted"))
}

// ListAllCustomers handles GET /api/admin/customers. Admin role makes
// the ownership scope a no-op, so this is the unscoped listing.
func (h *AdminHandler) ListAllCustomers(c *gin.Context) {
	params := constants.ParsePaginationParams(c)

	customers, total, err := h.customers.List(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		middleware.CurrentUserRole(c),
		params,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildListResponse(total, params.Page, customers))
}

// Stats handles GET /api/admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	resp, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
