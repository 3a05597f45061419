package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stackit/stackit/internal/app/models"
	"github.com/stackit/stackit/internal/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestRouter(t *testing.T, accessExp time.Duration) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  accessExp,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "stackit-test",
	})
	m := NewAuthMiddleware(jwtService)

	router := gin.New()
	protected := router.Group("", m.JWTAuth())
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": CurrentUserID(c), "isAdmin": CurrentUserIsAdmin(c)})
	})
	protected.GET("/admin-only", m.AdminRequired(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	return router, jwtService
}

func accessTokenFor(t *testing.T, svc *auth.JWTService, user *models.User) string {
	t.Helper()
	access, _, _, _, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	return access
}

func TestJWTAuthValidToken(t *testing.T) {
	router, svc := newAuthTestRouter(t, time.Hour)
	token := accessTokenFor(t, svc, &models.User{ID: 7, Username: "jane_doe"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userID":7`)
}

func TestJWTAuthQueryTokenFallback(t *testing.T) {
	router, svc := newAuthTestRouter(t, time.Hour)
	token := accessTokenFor(t, svc, &models.User{ID: 7, Username: "jane_doe"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me?token="+token, nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMissingToken(t *testing.T) {
	router, _ := newAuthTestRouter(t, time.Hour)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/me", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	router, svc := newAuthTestRouter(t, -time.Minute)
	token := accessTokenFor(t, svc, &models.User{ID: 7, Username: "jane_doe"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestJWTAuthGarbageToken(t *testing.T) {
	router, _ := newAuthTestRouter(t, time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminRequired(t *testing.T) {
	router, svc := newAuthTestRouter(t, time.Hour)

	adminToken := accessTokenFor(t, svc, &models.User{ID: 1, Username: "admin", IsAdmin: true})
	userToken := accessTokenFor(t, svc, &models.User{ID: 2, Username: "jane_doe"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
