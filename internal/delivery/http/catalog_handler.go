package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vinylstore/backend/internal/entity"
	"github.com/vinylstore/backend/internal/validation"
)

func (h *Handler) registerCatalogRoutes(api *gin.RouterGroup) {
	api.GET("/artists", h.handleListArtists)
	api.POST("/artists", h.handleCreateArtist)
	api.GET("/artists/:id", h.handleGetArtist)
	api.PUT("/artists/:id", h.handleUpdateArtist)
	api.DELETE("/artists/:id", h.handleDeleteArtist)

	api.GET("/labels", h.handleListLabels)
	api.POST("/labels", h.handleCreateLabel)
	api.GET("/labels/:id", h.handleGetLabel)
	api.PUT("/labels/:id", h.handleUpdateLabel)
	api.DELETE("/labels/:id", h.handleDeleteLabel)

	api.GET("/products", h.handleListProducts)
	api.POST("/products", h.handleCreateProduct)
	api.GET("/products/:sku", h.handleGetProduct)
	api.PUT("/products/:sku", h.handleUpdateProduct)
	api.DELETE("/products/:sku", h.handleDeleteProduct)
}

// --- Artists ---

func (h *Handler) handleListArtists(c *gin.Context) {
	// ?name= switches to a substring search.
	if name := c.Query("name"); name != "" {
		artists, err := h.catalog.SearchArtists(c.Request.Context(), name)
		if err != nil {
			h.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, artists)
		return
	}

	artists, err := h.catalog.ListArtists(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artists)
}

func (h *Handler) handleCreateArtist(c *gin.Context) {
	var req validation.NameRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	artist, err := h.catalog.CreateArtist(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, artist)
}

func (h *Handler) handleGetArtist(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	artist, err := h.catalog.GetArtist(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artist)
}

func (h *Handler) handleUpdateArtist(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req validation.NameRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	artist, err := h.catalog.UpdateArtist(c.Request.Context(), id, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, artist)
}

func (h *Handler) handleDeleteArtist(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteArtist(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Labels ---

func (h *Handler) handleListLabels(c *gin.Context) {
	labels, err := h.catalog.ListLabels(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, labels)
}

func (h *Handler) handleCreateLabel(c *gin.Context) {
	var req validation.NameRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	label, err := h.catalog.CreateLabel(c.Request.Context(), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, label)
}

func (h *Handler) handleGetLabel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	label, err := h.catalog.GetLabel(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

func (h *Handler) handleUpdateLabel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req validation.NameRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	label, err := h.catalog.UpdateLabel(c.Request.Context(), id, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, label)
}

func (h *Handler) handleDeleteLabel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteLabel(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Products ---

// handleListProducts supports the derived lookups as query parameters:
// ?available=true, ?artist_id=, ?format=, ?title=, ?artist_name=.
func (h *Handler) handleListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		products []entity.Product
		err      error
	)
	switch {
	case c.Query("available") == "true":
		products, err = h.catalog.AvailableProducts(ctx)
	case c.Query("artist_id") != "":
		var artistID int64
		artistID, err = strconv.ParseInt(c.Query("artist_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid artist_id"})
			return
		}
		products, err = h.catalog.ProductsByArtist(ctx, artistID)
	case c.Query("format") != "":
		products, err = h.catalog.ProductsByFormat(ctx, c.Query("format"))
	case c.Query("title") != "":
		products, err = h.catalog.SearchProductsByTitle(ctx, c.Query("title"))
	case c.Query("artist_name") != "":
		products, err = h.catalog.SearchProductsByArtistName(ctx, c.Query("artist_name"))
	default:
		products, err = h.catalog.ListProducts(ctx)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func productFromRequest(req validation.ProductRequest) *entity.Product {
	p := &entity.Product{
		SKU:           req.ProductID,
		Title:         req.Title,
		ArtistID:      req.ArtistID,
		LabelID:       req.LabelID,
		FormatName:    req.FormatName,
		FormatType:    req.FormatType,
		ImageURL:      req.ImageURL,
		ReleaseYear:   req.ReleaseYear,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		AvgRating:     req.AvgRating,
		RatingCount:   req.RatingCount,
		IsAvailable:   true,
	}
	if req.IsAvailable != nil {
		p.IsAvailable = *req.IsAvailable
	}
	return p
}

func (h *Handler) handleCreateProduct(c *gin.Context) {
	var req validation.ProductRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	product, err := h.catalog.CreateProduct(c.Request.Context(), productFromRequest(req))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) handleGetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("sku"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) handleUpdateProduct(c *gin.Context) {
	var req validation.ProductRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}
	product, err := h.catalog.UpdateProduct(c.Request.Context(), c.Param("sku"), productFromRequest(req))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) handleDeleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Request.Context(), c.Param("sku")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
