package handler

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"catalog-app/internal/catalog"
	"catalog-app/pkg/media"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the management UI boundary: multipart create/edit
// forms, and bulk deletion. Checkbox fields arrive as the "on" marker,
// variants as parallel arrays, uploads as file parts.
type AdminHandler struct {
	Catalog *catalog.Service
	Media   media.Store
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f := &formReader{values: form.Value}
	in := catalog.CreateInput{
		Category:             f.str("category"),
		ProductName:          f.str("product_name"),
		Brand:                f.str("brand"),
		ShortDescription:     f.str("short_description"),
		LongDescription:      f.str("long_description"),
		DetailedDescription:  f.str("detailed_description"),
		MRP:                  f.float("mrp"),
		OfferPrice:           f.float("offer_price"),
		SKU:                  f.str("sku"),
		InStock:              f.checkbox("in_stock"),
		StockNumber:          f.int("stock_number"),
		YoutubeLinks:         f.list("youtube_links"),
		TechnicalInformation: f.str("technical_information"),
		Manufacturer:         f.str("manufacturer"),
		SpecialNote:          f.str("special_note"),
		WhatsappNumber:       f.str("whatsapp_number"),
		IsRubber:             checkboxValue(f.checkbox("is_rubber")),
		RubberDensity:        f.floatPtr("rubber_density"),
		RubberHeight:         f.floatPtr("rubber_height"),
		RubberLength:         f.floatPtr("rubber_length"),
		RubberThickness:      f.floatPtr("rubber_thickness"),
		RubberDescription:    f.str("rubber_description"),
		ShowInStore:          f.checkbox("show_in_store"),
		Variants:             f.variants(),
	}
	if f.err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": f.err.Error()})
		return
	}

	ctx := c.Request.Context()
	in.ProductImageURLs = h.uploadFiles(ctx, fileParts(form, "images"))
	in.DownloadPDFs = h.uploadFiles(ctx, fileParts(form, "pdfs"))
	in.AdditionalMediaURLs = h.uploadFiles(ctx, fileParts(form, "media_files"))
	in.ProductImageURLs = append(in.ProductImageURLs, h.uploadBase64List(ctx, f.list("base64_images"))...)

	product, err := h.Catalog.Create(in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Product added", "product_id": product.ID})
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The edit form merges like the API: only submitted keys overwrite.
	f := &formReader{values: form.Value}
	in := catalog.UpdateInput{
		Category:             f.strPtr("category"),
		ProductName:          f.strPtr("product_name"),
		Brand:                f.strPtr("brand"),
		ShortDescription:     f.strPtr("short_description"),
		LongDescription:      f.strPtr("long_description"),
		DetailedDescription:  f.strPtr("detailed_description"),
		MRP:                  f.floatPtr("mrp"),
		OfferPrice:           f.floatPtr("offer_price"),
		SKU:                  f.strPtr("sku"),
		InStock:              f.checkbox("in_stock"),
		StockNumber:          f.intPtr("stock_number"),
		TechnicalInformation: f.strPtr("technical_information"),
		Manufacturer:         f.strPtr("manufacturer"),
		SpecialNote:          f.strPtr("special_note"),
		WhatsappNumber:       f.strPtr("whatsapp_number"),
		IsRubber:             f.checkbox("is_rubber"),
		RubberDensity:        f.floatPtr("rubber_density"),
		RubberHeight:         f.floatPtr("rubber_height"),
		RubberLength:         f.floatPtr("rubber_length"),
		RubberThickness:      f.floatPtr("rubber_thickness"),
		RubberDescription:    f.strPtr("rubber_description"),
		ShowInStore:          f.checkbox("show_in_store"),
	}
	if links, present := f.listPresent("youtube_links"); present {
		in.YoutubeLinks = &links
	}
	if v := f.variants(); f.has("variant_name") {
		in.Variants = &v
	}
	if f.err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": f.err.Error()})
		return
	}

	images, changed, err := h.mergeImages(c.Request.Context(), id, form, f)
	if err != nil {
		respondError(c, err)
		return
	}
	if changed {
		in.ProductImageURLs = &images
	}
	if pdfs := h.uploadFiles(c.Request.Context(), fileParts(form, "pdfs")); len(pdfs) > 0 {
		current, err := h.Catalog.Get(id)
		if err != nil {
			respondError(c, err)
			return
		}
		merged := append([]string(current.DownloadPDFs), pdfs...)
		in.DownloadPDFs = &merged
	}
	if mediaFiles := h.uploadFiles(c.Request.Context(), fileParts(form, "media_files")); len(mediaFiles) > 0 {
		current, err := h.Catalog.Get(id)
		if err != nil {
			respondError(c, err)
			return
		}
		merged := append([]string(current.AdditionalMediaURLs), mediaFiles...)
		in.AdditionalMediaURLs = &merged
	}

	if _, err := h.Catalog.Update(id, in); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// mergeImages resolves the edit form's image state: freshly uploaded
// files and base64 payloads are appended, delete_images entries removed,
// and image_order, when present, dictates the final ordering.
func (h *AdminHandler) mergeImages(ctx context.Context, id uint, form *multipart.Form, f *formReader) ([]string, bool, error) {
	uploads := h.uploadFiles(ctx, fileParts(form, "images"))
	uploads = append(uploads, h.uploadBase64List(ctx, f.list("base64_images"))...)
	deletions, hasDeletions := f.listPresent("delete_images")
	order, hasOrder := f.listPresent("image_order")

	if len(uploads) == 0 && !hasDeletions && !hasOrder {
		return nil, false, nil
	}

	product, err := h.Catalog.Get(id)
	if err != nil {
		return nil, false, err
	}

	images := append([]string(product.ProductImageURLs), uploads...)

	if hasDeletions {
		drop := map[string]bool{}
		for _, url := range deletions {
			drop[url] = true
		}
		kept := images[:0]
		for _, url := range images {
			if !drop[url] {
				kept = append(kept, url)
			}
		}
		images = kept
	}

	if hasOrder {
		present := map[string]bool{}
		for _, url := range images {
			present[url] = true
		}
		ordered := make([]string, 0, len(images))
		for _, url := range order {
			if present[url] {
				ordered = append(ordered, url)
				present[url] = false
			}
		}
		for _, url := range images {
			if present[url] {
				ordered = append(ordered, url)
			}
		}
		images = ordered
	}

	return images, true, nil
}

type BulkDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required"`
}

func (h *AdminHandler) BulkDelete(c *gin.Context) {
	var req BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	deleted, err := h.Catalog.BulkDelete(req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Products deleted", "deleted": deleted})
}

// uploadFiles stores each part best-effort: a failed upload is logged
// and skipped so the record transaction still proceeds.
func (h *AdminHandler) uploadFiles(ctx context.Context, files []*multipart.FileHeader) []string {
	var urls []string
	for _, fh := range files {
		if h.Media == nil {
			log.Println("Media store not configured, skipping file uploads")
			break
		}
		file, err := fh.Open()
		if err != nil {
			log.Printf("Failed to open upload %s: %v", fh.Filename, err)
			continue
		}
		url, err := h.Media.Upload(ctx, file)
		file.Close()
		if err != nil {
			log.Printf("Failed to store upload %s: %v", fh.Filename, err)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

// uploadBase64List stores each payload best-effort, like uploadFiles.
func (h *AdminHandler) uploadBase64List(ctx context.Context, payloads []string) []string {
	var urls []string
	for i, data := range payloads {
		if h.Media == nil {
			log.Println("Media store not configured, skipping base64 images")
			break
		}
		url, err := h.Media.UploadBase64(ctx, data)
		if err != nil {
			log.Printf("Failed to store base64 image %d: %v", i, err)
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

// fileParts accepts both bare and bracketed field names, matching what
// the form markup submits.
func fileParts(form *multipart.Form, key string) []*multipart.FileHeader {
	if files, ok := form.File[key]; ok {
		return files
	}
	return form.File[key+"[]"]
}

// formReader reads multipart values with presence tracking and records
// the first malformed numeric it hits, so a bad value rejects the whole
// submission instead of being silently zeroed.
type formReader struct {
	values map[string][]string
	err    error
}

func (f *formReader) lookup(key string) ([]string, bool) {
	if vals, ok := f.values[key]; ok {
		return vals, true
	}
	if vals, ok := f.values[key+"[]"]; ok {
		return vals, true
	}
	return nil, false
}

func (f *formReader) has(key string) bool {
	_, ok := f.lookup(key)
	return ok
}

func (f *formReader) str(key string) string {
	if vals, ok := f.lookup(key); ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

func (f *formReader) strPtr(key string) *string {
	vals, ok := f.lookup(key)
	if !ok || len(vals) == 0 {
		return nil
	}
	return &vals[0]
}

func (f *formReader) float(key string) float64 {
	v := f.floatPtr(key)
	if v == nil {
		return 0
	}
	return *v
}

func (f *formReader) floatPtr(key string) *float64 {
	vals, ok := f.lookup(key)
	if !ok || len(vals) == 0 || vals[0] == "" {
		return nil
	}
	n, err := strconv.ParseFloat(vals[0], 64)
	if err != nil {
		f.fail(key, vals[0])
		return nil
	}
	return &n
}

func (f *formReader) int(key string) int {
	v := f.intPtr(key)
	if v == nil {
		return 0
	}
	return *v
}

func (f *formReader) intPtr(key string) *int {
	vals, ok := f.lookup(key)
	if !ok || len(vals) == 0 || vals[0] == "" {
		return nil
	}
	n, err := strconv.Atoi(vals[0])
	if err != nil {
		f.fail(key, vals[0])
		return nil
	}
	return &n
}

// checkbox treats an absent key as explicitly unchecked: the form always
// renders its checkboxes, so absence means the box was cleared.
func (f *formReader) checkbox(key string) *catalog.FlexBool {
	v := catalog.FlexBool(f.str(key) == "on")
	return &v
}

func (f *formReader) list(key string) []string {
	vals, _ := f.lookup(key)
	return vals
}

func (f *formReader) listPresent(key string) ([]string, bool) {
	return f.lookup(key)
}

func (f *formReader) variants() []catalog.VariantInput {
	names := f.list("variant_name")
	prices := f.list("variant_price")
	ids := f.list("variant_id")

	variants := make([]catalog.VariantInput, 0, len(names))
	for i, name := range names {
		v := catalog.VariantInput{VariantName: name}
		if i < len(prices) && prices[i] != "" {
			price, err := strconv.ParseFloat(prices[i], 64)
			if err != nil {
				f.fail("variant_price", prices[i])
				return nil
			}
			v.VariantPrice = price
		}
		if i < len(ids) && ids[i] != "" {
			id, err := strconv.ParseUint(ids[i], 10, 32)
			if err != nil {
				f.fail("variant_id", ids[i])
				return nil
			}
			v.ID = uint(id)
		}
		variants = append(variants, v)
	}
	return variants
}

func (f *formReader) fail(key, value string) {
	if f.err == nil {
		f.err = fmt.Errorf("invalid value %q for field %s", value, key)
	}
}

func checkboxValue(v *catalog.FlexBool) catalog.FlexBool {
	if v == nil {
		return false
	}
	return *v
}
