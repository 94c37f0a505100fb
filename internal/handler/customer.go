package handler

import (
	"net/http"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/internal/dto"
	"github.com/fastcrm/fastcrm/internal/middleware"
	"github.com/fastcrm/fastcrm/internal/service"
	"github.com/gin-gonic/gin"
)

// CustomerHandler serves customer CRUD and the nested note routes.
type CustomerHandler struct {
	customers *service.CustomerService
	notes     *service.NoteService
}

func NewCustomerHandler(customers *service.CustomerService, notes *service.NoteService) *CustomerHandler {
	return &CustomerHandler{customers: customers, notes: notes}
}

// List handles GET /api/customers.
func (h *CustomerHandler) List(c *gin.Context) {
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

// Create handles POST /api/customers.
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.customers.Create(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /api/customers/:id.
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.customers.Get(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		middleware.CurrentUserRole(c),
		id,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update handles PUT /api/customers/:id.
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.customers.Update(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		middleware.CurrentUserRole(c),
		id,
		req,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete handles DELETE /api/customers/:id.
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	err := h.customers.Delete(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		middleware.CurrentUserRole(c),
		id,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("customer deleted"))
}

// ListNotes handles GET /api/customers/:id/notes.
func (h *CustomerHandler) ListNotes(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	params := constants.ParsePaginationParams(c)

	notes, total, err := h.notes.List(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		middleware.CurrentUserRole(c),
		customerID,
		params,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildListResponse(total, params.Page, notes))
}

// CreateNote handles POST /api/customers/:id/notes.
func (h *CustomerHandler) CreateNote(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.notes.Create(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		middleware.CurrentUserRole(c),
		customerID,
		req,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetNote handles GET /api/customers/:id/notes/:noteId.
func (h *CustomerHandler) GetNote(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	noteID, ok := pathID(c, "noteId")
	if !ok {
		return
	}

	resp, err := h.notes.Get(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		middleware.CurrentUserRole(c),
		customerID,
		noteID,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateNote handles PUT /api/customers/:id/notes/:noteId.
func (h *CustomerHandler) UpdateNote(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	noteID, ok := pathID(c, "noteId")
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	resp, err := h.notes.Update(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		middleware.CurrentUserRole(c),
		customerID,
		noteID,
		req,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteNote handles DELETE /api/customers/:id/notes/:noteId.
func (h *CustomerHandler) DeleteNote(c *gin.Context) {
	customerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	noteID, ok := pathID(c, "noteId")
	if !ok {
		return
	}

	err := h.notes.Delete(
		c.Request.Context(),
		middleware.CurrentUserID(c),
		middleware.CurrentUserRole(c),
		customerID,
		noteID,
	)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, constants.BuildSuccessResponse("note deleted"))
}
