package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/shafvantalat/ecom/internal/models"
)

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLogin checks the submitted credentials against the configured admin
// pair and mints a time-limited bearer token with an admin role claim.
func AdminLogin(adminEmail, adminPassword, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /auth/login"
		defer handlePanic(c, route)

		var req AdminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}

		if strings.TrimSpace(adminEmail) == "" || adminPassword == "" {
			log.Printf("[%s] admin credentials not configured", route)
			respondWithError(c, http.StatusInternalServerError, route, "Admin credentials not configured")
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !credentialsMatch(email, req.Password, strings.ToLower(strings.TrimSpace(adminEmail)), adminPassword) {
			respondWithError(c, http.StatusUnauthorized, route, "Invalid credentials")
			return
		}

		claims := jwt.MapClaims{
			"role":  string(models.RoleAdmin),
			"email": email,
			"exp":   time.Now().Add(tokenTTL).Unix(),
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			log.Printf("[%s] sign error: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "token generation failed")
			return
		}

		log.Printf("[%s] admin login success", route)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"token":   signed,
		})
	}
}

// credentialsMatch compares the submitted pair against the configured one.
// A bcrypt-hashed ADMIN_PASSWORD is honored, plaintext values are compared in
// constant time.
func credentialsMatch(email, password, adminEmail, adminPassword string) bool {
	if subtle.ConstantTimeCompare([]byte(email), []byte(adminEmail)) != 1 {
		return false
	}

	if strings.HasPrefix(adminPassword, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(adminPassword), []byte(password)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(password), []byte(adminPassword)) == 1
}
