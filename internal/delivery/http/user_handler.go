package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/validation"
)

func (h *Handler) registerUserRoutes(api *gin.RouterGroup) {
	api.GET("/users", h.handleListUsers)
	api.POST("/users", h.handleCreateUser)
	api.GET("/users/:id", h.handleGetUser)
	api.PUT("/users/:id", h.handleUpdateUser)
	api.DELETE("/users/:id", h.handleDeleteUser)
}

// handleListUsers also serves the natural-key lookups via ?email= and ?rut=.
func (h *Handler) handleListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	if email := c.Query("email"); email != "" {
		user, err := h.users.GetByEmail(ctx, email)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}
	if rut := c.Query("rut"); rut != "" {
		user, err := h.users.GetByRUT(ctx, rut)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
		return
	}

	users, err := h.users.List(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func userFromRequest(req validation.UserRequest) *entity.User {
	u := &entity.User{
		RUT:          req.RUT,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Age:          req.Age,
		Role:         req.Role,
		IsActive:     true,
		PasswordHash: req.PasswordHash,
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	return u
}

func (h *Handler) handleCreateUser(c *gin.Context) {
	var req validation.UserRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	user, err := h.users.Create(c.Request.Context(), userFromRequest(req))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) handleGetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) handleUpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req validation.UserRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	user, err := h.users.Update(c.Request.Context(), id, userFromRequest(req))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) handleDeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
