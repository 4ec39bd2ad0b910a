package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/shafvantalat/ecom/internal/middleware"
)

const testSecret = "test-secret"

func loginRouter(adminEmail, adminPassword string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/login", AdminLogin(adminEmail, adminPassword, testSecret, 7*24*time.Hour))
	return r
}

func postLogin(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminLoginMissingConfig(t *testing.T) {
	r := loginRouter("", "")
	w := postLogin(t, r, `{"email":"admin@shop.test","password":"pw"}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when credentials unconfigured, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Admin credentials not configured") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestAdminLoginInvalidCredentials(t *testing.T) {
	r := loginRouter("admin@shop.test", "hunter2")

	tests := []string{
		`{"email":"admin@shop.test","password":"wrong"}`,
		`{"email":"someone@shop.test","password":"hunter2"}`,
	}
	for _, body := range tests {
		w := postLogin(t, r, body)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("body %s: expected 401, got %d", body, w.Code)
		}
	}
}

func TestAdminLoginSuccessIssuesToken(t *testing.T) {
	r := loginRouter("admin@shop.test", "hunter2")
	w := postLogin(t, r, `{"email":"Admin@Shop.Test","password":"hunter2"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !resp.Success || resp.Token == "" {
		t.Fatalf("expected a token, got %+v", resp)
	}
}

func TestAdminLoginBcryptHashedPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt hash failed: %v", err)
	}

	r := loginRouter("admin@shop.test", string(hash))

	w := postLogin(t, r, `{"email":"admin@shop.test","password":"hunter2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for bcrypt match, got %d", w.Code)
	}

	w = postLogin(t, r, `{"email":"admin@shop.test","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bcrypt mismatch, got %d", w.Code)
	}
}

func TestIssuedTokenPassesAdminAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/auth/login", AdminLogin("admin@shop.test", "hunter2", testSecret, 7*24*time.Hour))

	protected := r.Group("", middleware.AdminAuth(testSecret))
	protected.DELETE("/products/:id", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := postLogin(t, r, `{"email":"admin@shop.test","password":"hunter2"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d", w.Code)
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	req := httptest.NewRequest("DELETE", "/products/abc123", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected token to authorize delete, got %d: %s", w.Code, w.Body.String())
	}

	// Same request without the header must be rejected.
	req = httptest.NewRequest("DELETE", "/products/abc123", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without Authorization header, got %d", w.Code)
	}
}

func TestAdminAuthRejectsGarbageTokens(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/ping", middleware.AdminAuth(testSecret), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	headers := []string{
		"Bearer not-a-token",
		"Basic abc",
		"Bearer",
	}
	for _, header := range headers {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}
