package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/repository"
	"github.com/vinylstore/backend/internal/service"
	"github.com/vinylstore/backend/internal/validation"
)

// Handler holds the HTTP handlers and their service dependencies.
type Handler struct {
	orders   *service.OrderService
	carts    *service.CartService
	catalog  *service.CatalogService
	users    *service.UserService
	validate *validatorv10.Validate
}

func NewHandler(
	orders *service.OrderService,
	carts *service.CartService,
	catalog *service.CatalogService,
	users *service.UserService,
) *Handler {
	return &Handler{
		orders:   orders,
		carts:    carts,
		catalog:  catalog,
		users:    users,
		validate: validation.New(),
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.GET("/orders", h.handleFilterOrders)
	api.POST("/orders", h.handleCreateOrder)
	api.GET("/orders/:id", h.handleGetOrder)
	api.PUT("/orders/:id", h.handleUpdateOrder)
	api.DELETE("/orders/:id", h.handleDeleteOrder)

	api.GET("/users/:id/cart", h.handleGetCart)
	api.DELETE("/users/:id/cart", h.handleClearCart)
	api.POST("/users/:id/cart/items", h.handleAddCartItem)
	api.PUT("/users/:id/cart/items/:itemID", h.handleUpdateCartItem)
	api.DELETE("/users/:id/cart/items/:itemID", h.handleRemoveCartItem)

	h.registerCatalogRoutes(api)
	h.registerUserRoutes(api)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "vinyl-store-backend"})
	})
}

// respondError maps the error taxonomy to transport status codes:
// NotFound to 404, DomainInvalid to 400, everything else to 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case entity.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case entity.IsDomainError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		slog.Error("Request failed", "path", c.Request.URL.Path, "request_id", c.GetString("request_id"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// --- Orders ---

func orderInput(req validation.OrderRequest) service.OrderInput {
	return service.OrderInput{
		CustomerID:    req.CustomerID,
		ProductSKU:    req.ProductID,
		Quantity:      req.Quantity,
		Status:        req.Status,
		ArtistID:      req.ArtistID,
		LabelID:       req.LabelID,
		ResponsibleID: req.ResponsibleUserID,
	}
}

func (h *Handler) handleCreateOrder(c *gin.Context) {
	var req validation.OrderRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	detail, err := h.orders.Create(c.Request.Context(), orderInput(req))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

func (h *Handler) handleGetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) handleUpdateOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req validation.OrderRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	detail, err := h.orders.Update(c.Request.Context(), id, orderInput(req))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *Handler) handleDeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleFilterOrders returns orders matching the conjunction of the
// start, end, status and responsible_id query parameters; with none
// supplied it returns all orders.
func (h *Handler) handleFilterOrders(c *gin.Context) {
	var filter repository.OrderFilter

	if v := c.Query("start"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected RFC3339"})
			return
		}
		filter.Start = &t
	}
	if v := c.Query("end"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end date, expected RFC3339"})
			return
		}
		filter.End = &t
	}
	if v := c.Query("status"); v != "" {
		filter.Status = &v
	}
	if v := c.Query("responsible_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid responsible_id"})
			return
		}
		filter.ResponsibleID = &id
	}

	orders, err := h.orders.Filter(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// --- Carts ---

func (h *Handler) handleGetCart(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cart, err := h.carts.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) handleAddCartItem(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req validation.AddCartItemRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	cart, err := h.carts.AddItem(c.Request.Context(), userID, req.ProductID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) handleUpdateCartItem(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}
	var req validation.UpdateCartItemRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	cart, err := h.carts.UpdateItemQuantity(c.Request.Context(), userID, itemID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) handleRemoveCartItem(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(c.Request.Context(), userID, itemID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) handleClearCart(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cart, err := h.carts.Clear(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}
