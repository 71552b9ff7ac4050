package middlewares

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func perform(r http.Handler, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Token abc", "abc", true},
		{"token   abc ", "abc", true},
		{"Basic abc", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		token, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}

func TestAuthAndRoleCheck(t *testing.T) {
	utils.InitJWT("middleware-test-secret", time.Hour)
	db := setupTestDB(t)

	manager := models.User{Username: "adrian", Password: "x"}
	require.NoError(t, db.Create(&manager).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: manager.ID, Role: models.RoleManager}).Error)
	customer := models.User{Username: "mario", Password: "x"}
	require.NoError(t, db.Create(&customer).Error)
	admin := models.User{Username: "root", Password: "x", IsAdmin: true}
	require.NoError(t, db.Create(&admin).Error)

	r := gin.New()
	r.GET("/me", AuthMiddleware(db), func(c *gin.Context) {
		p, _ := CurrentPrincipal(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID})
	})
	r.GET("/managers-only", AuthMiddleware(db), RoleCheck(models.RoleManager), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tokenFor := func(u models.User) string {
		tok, err := utils.GenerateToken(u.ID, u.Username)
		require.NoError(t, err)
		return tok
	}

	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/me", "Bearer not-a-jwt").Code)
	assert.Equal(t, http.StatusOK, perform(r, "GET", "/me", "Token "+tokenFor(customer)).Code)

	w := perform(r, "GET", "/managers-only", "Bearer "+tokenFor(customer))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "You are not authorized to perform this action.")

	assert.Equal(t, http.StatusNoContent, perform(r, "GET", "/managers-only", "Bearer "+tokenFor(manager)).Code)
	assert.Equal(t, http.StatusNoContent, perform(r, "GET", "/managers-only", "Bearer "+tokenFor(admin)).Code)
}

func TestRoleRevocationTakesEffectImmediately(t *testing.T) {
	utils.InitJWT("middleware-test-secret", time.Hour)
	db := setupTestDB(t)

	user := models.User{Username: "adrian", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	membership := models.UserRole{UserID: user.ID, Role: models.RoleManager}
	require.NoError(t, db.Create(&membership).Error)

	r := gin.New()
	r.GET("/m", AuthMiddleware(db), RoleCheck(models.RoleManager), func(c *gin.Context) { c.Status(http.StatusOK) })

	token, err := utils.GenerateToken(user.ID, user.Username)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, perform(r, "GET", "/m", "Bearer "+token).Code)

	require.NoError(t, db.Delete(&membership).Error)
	assert.Equal(t, http.StatusForbidden, perform(r, "GET", "/m", "Bearer "+token).Code)
}

func TestRateLimiterPerKey(t *testing.T) {
	rl := PerMinute(2)

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	r := gin.New()
	r.GET("/probe", PerMinute(1).RateLimit(ByClientIP), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, "GET", "/probe", "").Code)
	w := perform(r, "GET", "/probe", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "throttled")
}

func TestRequestIDHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), LoggerMiddleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := perform(r, "GET", "/ping", "")
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(RequestIDHeader, "fixed-id")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "fixed-id", w.Header().Get(RequestIDHeader))
}

func TestWebSocketAuthMiddlewareRequiresToken(t *testing.T) {
	db := setupTestDB(t)
	r := gin.New()
	r.GET("/ws", WebSocketAuthMiddleware(db), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/ws", "").Code)
	assert.Equal(t, http.StatusUnauthorized, perform(r, "GET", "/ws?token=junk", "").Code)
}
