package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"fintrack/internal/logger"
	"fintrack/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	os.Exit(m.Run())
}

func newAuthRouter() *gin.Engine {
	router := gin.New()
	router.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("userID"), "email": c.GetString("email")})
	})
	return router
}

func request(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestAuthMiddleware(t *testing.T) {
	router := newAuthRouter()

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		userID := testutil.TestUserID()
		token, err := GenerateToken(userID, "user@example.com")
		testutil.AssertNoError(t, err)

		recorder := request(router, "Bearer "+token)

		if recorder.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
		}
	})

	t.Run("rejects a missing header", func(t *testing.T) {
		recorder := request(router, "")

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		recorder := request(router, "Token abc")

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("rejects a garbage token", func(t *testing.T) {
		recorder := request(router, "Bearer not.a.token")

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", recorder.Code)
		}
	})

	t.Run("rejects a token without a subject", func(t *testing.T) {
		token, err := GenerateToken("", "user@example.com")
		testutil.AssertNoError(t, err)

		recorder := request(router, "Bearer "+token)

		if recorder.Code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", recorder.Code)
		}
	})
}
