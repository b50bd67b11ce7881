package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-app/internal/catalog"
	"catalog-app/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) (*gin.Engine, *catalog.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Variant{}, &models.Order{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	svc := catalog.NewService(db)
	h := &ProductHandler{Catalog: svc}

	r := gin.New()
	r.POST("/add-product", h.AddProduct)
	r.GET("/products", h.ListProducts)
	r.GET("/product/:id", h.GetProduct)
	r.PUT("/product/:id", h.UpdateProduct)
	r.DELETE("/product/:id", h.DeleteProduct)
	r.GET("/search", h.SearchProducts)
	return r, svc
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return body
}

func TestAddProductEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/add-product", map[string]interface{}{
		"product_name":  "Hydraulic Pump",
		"category":      "Pumps",
		"mrp":           1999.5,
		"in_stock":      "on",
		"download_pdfs": []string{"https://cdn.example.com/a.pdf"},
		"variants": []map[string]interface{}{
			{"variant_name": "Small", "variant_price": 1499},
		},
		"unrecognized_key": "ignored",
	})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["message"] != "Product added" {
		t.Errorf("message = %v", body["message"])
	}
	id := uint(body["product_id"].(float64))

	product, err := svc.Get(id)
	if err != nil {
		t.Fatalf("get created product: %v", err)
	}
	if !product.InStock {
		t.Error(`"on" checkbox marker should normalize to true`)
	}
	if len(product.Variants) != 1 {
		t.Errorf("variants = %d, want 1", len(product.Variants))
	}
}

func TestGetProductEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)

	created, err := svc.Create(catalog.CreateInput{ProductName: "Widget"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/product/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["product_name"] != "Widget" {
		t.Errorf("product_name = %v", body["product_name"])
	}
	if _, ok := body["download_pdfs"].([]interface{}); !ok {
		t.Errorf("download_pdfs should be an array, got %T", body["download_pdfs"])
	}

	w = doJSON(t, r, http.MethodGet, "/product/9999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing product: status = %d, want 404", w.Code)
	}
}

func TestListProductsEnvelope(t *testing.T) {
	r, svc := newTestRouter(t)

	for i := 0; i < 12; i++ {
		if _, err := svc.Create(catalog.CreateInput{ProductName: fmt.Sprintf("Item %d", i)}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/products?page=2&per_page=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["total_items"].(float64) != 12 || body["total_pages"].(float64) != 2 {
		t.Errorf("envelope = %v", body)
	}
	if body["current_page"].(float64) != 2 || body["per_page"].(float64) != 10 {
		t.Errorf("envelope = %v", body)
	}
	products := body["products"].([]interface{})
	if len(products) != 2 {
		t.Errorf("page 2 len = %d, want 2", len(products))
	}
}

func TestListProductsFilterQuery(t *testing.T) {
	r, svc := newTestRouter(t)

	if _, err := svc.Create(catalog.CreateInput{ProductName: "Visible", Category: "Pumps"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	hidden := catalog.FlexBool(false)
	if _, err := svc.Create(catalog.CreateInput{ProductName: "Hidden", Category: "Pumps", ShowInStore: &hidden}); err != nil {
		t.Fatalf("create: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/products?category=Pumps&show_in_store=true", nil)
	body := decodeBody(t, w)
	if body["total_items"].(float64) != 1 {
		t.Errorf("filtered total = %v, want 1", body["total_items"])
	}
}

func TestUpdateProductEndpointMerges(t *testing.T) {
	r, svc := newTestRouter(t)

	created, err := svc.Create(catalog.CreateInput{ProductName: "Widget", Brand: "Acme", MRP: 100})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/product/%d", created.ID), map[string]interface{}{
		"category": "Gadgets",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	got, _ := svc.Get(created.ID)
	if got.Category != "Gadgets" || got.Brand != "Acme" || got.MRP != 100 {
		t.Errorf("merge semantics violated: %+v", got)
	}

	w = doJSON(t, r, http.MethodPut, "/product/9999", map[string]interface{}{"category": "X"})
	if w.Code != http.StatusNotFound {
		t.Errorf("missing product: status = %d, want 404", w.Code)
	}
}

func TestDeleteProductEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)

	created, err := svc.Create(catalog.CreateInput{ProductName: "Doomed"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/product/%d", created.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/product/%d", created.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete: status = %d, want 404", w.Code)
	}
}

func TestSearchEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)

	if _, err := svc.Create(catalog.CreateInput{ProductName: "Hydraulic Pump"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(catalog.CreateInput{ProductName: "Cable Tie"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	w := doJSON(t, r, http.MethodGet, "/search?q=pump", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["total_items"].(float64) != 1 {
		t.Errorf("search total = %v, want 1", body["total_items"])
	}

	w = doJSON(t, r, http.MethodGet, "/search?q=", nil)
	body = decodeBody(t, w)
	if body["total_items"].(float64) != 2 {
		t.Errorf("empty search total = %v, want 2", body["total_items"])
	}
}
