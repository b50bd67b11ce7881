package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-app/internal/middleware"
	"catalog-app/internal/models"
	"catalog-app/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.ConfigureJWT("test-secret", 1)

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

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	h := &AuthHandler{DB: db}
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/admin/protected", middleware.AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint("userID")})
	})
	return r
}

func newRequestWithToken(t *testing.T, method, path, authHeader string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	return req
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	r := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", map[string]string{
		"username": "admin",
		"password": "secret",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", w.Code, w.Body.String())
	}

	// Duplicate username is a client error
	w = doJSON(t, r, http.MethodPost, "/auth/register", map[string]string{
		"username": "admin",
		"password": "other",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate register status = %d, want 400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"username": "admin",
		"password": "secret",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("login should return a token")
	}

	w = doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareGating(t *testing.T) {
	r := newAuthRouter(t)

	doJSON(t, r, http.MethodPost, "/auth/register", map[string]string{
		"username": "admin",
		"password": "secret",
	})
	w := doJSON(t, r, http.MethodPost, "/auth/login", map[string]string{
		"username": "admin",
		"password": "secret",
	})
	token := decodeBody(t, w)["token"].(string)

	w = doJSON(t, r, http.MethodGet, "/admin/protected", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want 401", w.Code)
	}

	req := newRequestWithToken(t, http.MethodGet, "/admin/protected", "Bearer "+token)
	w = serve(r, req)
	if w.Code != http.StatusOK {
		t.Errorf("bearer token status = %d, body = %s", w.Code, w.Body.String())
	}

	req = newRequestWithToken(t, http.MethodGet, "/admin/protected", "")
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w = serve(r, req)
	if w.Code != http.StatusOK {
		t.Errorf("cookie token status = %d, body = %s", w.Code, w.Body.String())
	}
}
