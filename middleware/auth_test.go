package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	os.Setenv("GO_ENV", "test")
	gin.SetMode(gin.TestMode)
	utils.InitJWT()
}

func setupAuthRouter() *gin.Engine {
	router := gin.New()
	router.Use(AuthMiddleware())
	router.GET("/whoami", func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return router
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(utils.JWTSecretKey))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

func TestAuthMiddleware(t *testing.T) {
	validToken, err := utils.GenerateAccessToken("user-a")
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	expiredToken := signToken(t, jwt.MapClaims{
		"user_id": "user-a",
		"exp":     time.Now().Add(-time.Hour).Unix(),
	})
	refreshToken := signToken(t, jwt.MapClaims{
		"user_id": "user-a",
		"type":    "refresh",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	missingUserToken := signToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	tests := []struct {
		name         string
		header       string
		query        string
		expectedCode int
	}{
		{name: "Valid Bearer Token", header: "Bearer " + validToken, expectedCode: http.StatusOK},
		{name: "Valid Query Token", query: validToken, expectedCode: http.StatusOK},
		{name: "Missing Token", expectedCode: http.StatusUnauthorized},
		{name: "Malformed Token", header: "Bearer garbage", expectedCode: http.StatusUnauthorized},
		{name: "Wrong Scheme", header: "Basic " + validToken, expectedCode: http.StatusUnauthorized},
		{name: "Expired Token", header: "Bearer " + expiredToken, expectedCode: http.StatusUnauthorized},
		{name: "Refresh Token Rejected", header: "Bearer " + refreshToken, expectedCode: http.StatusUnauthorized},
		{name: "Missing User Claim", header: "Bearer " + missingUserToken, expectedCode: http.StatusUnauthorized},
	}

	router := setupAuthRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/whoami"
			if tt.query != "" {
				path += "?token=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedCode {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedCode, w.Code, w.Body.String())
			}
		})
	}
}
