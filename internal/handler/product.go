package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"catalog-app/internal/catalog"
	"catalog-app/pkg/media"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	Catalog *catalog.Service
	Media   media.Store
}

type AddProductRequest struct {
	catalog.CreateInput
	Base64Images []string `json:"base64_images"`
}

func (h *ProductHandler) AddProduct(c *gin.Context) {
	var req AddProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Base64 payloads are stored before the record transaction begins;
	// a failed item is logged and skipped, never aborting the create.
	for i, data := range req.Base64Images {
		if h.Media == nil {
			log.Println("Media store not configured, skipping base64 images")
			break
		}
		url, err := h.Media.UploadBase64(c.Request.Context(), data)
		if err != nil {
			log.Printf("Failed to store base64 image %d: %v", i, err)
			continue
		}
		req.ProductImageURLs = append(req.ProductImageURLs, url)
	}

	product, err := h.Catalog.Create(req.CreateInput)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product added", "product_id": product.ID})
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	filters := catalog.ListFilters{
		Category:    c.Query("category"),
		Brand:       c.Query("brand"),
		InStock:     parseBoolQuery(c, "in_stock"),
		ShowInStore: parseBoolQuery(c, "show_in_store"),
	}

	page, perPage := parsePagination(c)
	result, err := h.Catalog.List(filters, page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginatedResponse(result))
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	product, err := h.Catalog.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req catalog.UpdateInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.Catalog.Update(id, req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Catalog.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *ProductHandler) SearchProducts(c *gin.Context) {
	page, perPage := parsePagination(c)
	result, err := h.Catalog.Search(c.Query("q"), page, perPage)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, paginatedResponse(result))
}

func paginatedResponse(result *catalog.Page) gin.H {
	return gin.H{
		"products":     result.Products,
		"total_items":  result.TotalItems,
		"total_pages":  result.TotalPages,
		"current_page": result.CurrentPage,
		"per_page":     result.PerPage,
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
		return 0, false
	}
	return uint(id), true
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	return page, perPage
}

func parseBoolQuery(c *gin.Context, name string) *bool {
	raw, exists := c.GetQuery(name)
	if !exists {
		return nil
	}
	v := raw == "on" || raw == "true" || raw == "1"
	return &v
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, catalog.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Catalog operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
