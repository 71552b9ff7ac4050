package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yeremiapane/little-lemon-api/config"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/router"
	"github.com/yeremiapane/little-lemon-api/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.InitLogger("error", "text")
	utils.InitJWT("controller-test-secret", time.Hour)
}

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:                 "test",
		DBDriver:               config.DriverSQLite,
		JWTSecret:              "controller-test-secret",
		JWTTTL:                 time.Hour,
		RateLimitRPS:           1000,
		RateLimitBurst:         1000,
		AuthRateLimitPerMinute: 1000,
		AnonThrottlePerMinute:  5,
		UserThrottlePerMinute:  10,
		TaxRate:                decimal.RequireFromString("0.10"),
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(models.All()...))

	return &testEnv{t: t, db: db, router: router.SetupRouter(db, testConfig())}
}

// user creates an account holding roles and returns it with a valid token.
func (e *testEnv) user(username string, roles ...models.Role) (models.User, string) {
	e.t.Helper()
	u := models.User{Username: username, Email: username + "@littlelemon.test", Password: "x"}
	require.NoError(e.t, e.db.Create(&u).Error)
	for _, r := range roles {
		require.NoError(e.t, e.db.Create(&models.UserRole{UserID: u.ID, Role: r}).Error)
	}
	token, err := utils.GenerateToken(u.ID, u.Username)
	require.NoError(e.t, err)
	return u, token
}

func (e *testEnv) category(slug, title string) models.Category {
	e.t.Helper()
	c := models.Category{Slug: slug, Title: title}
	require.NoError(e.t, e.db.Create(&c).Error)
	return c
}

func (e *testEnv) menuItem(title, price string, inventory int, categoryID uint) models.MenuItem {
	e.t.Helper()
	item := models.MenuItem{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		Inventory:  inventory,
		CategoryID: categoryID,
	}
	require.NoError(e.t, e.db.Create(&item).Error)
	return item
}

func (e *testEnv) inventory(id uint) int {
	e.t.Helper()
	var item models.MenuItem
	require.NoError(e.t, e.db.First(&item, id).Error)
	return item.Inventory
}

func (e *testEnv) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(e.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}
