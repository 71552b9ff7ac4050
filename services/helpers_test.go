package services_test

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/little-lemon-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, roles ...models.Role) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@littlelemon.test", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	for _, r := range roles {
		require.NoError(t, db.Create(&models.UserRole{UserID: user.ID, Role: r}).Error)
	}
	require.NoError(t, db.Preload("Roles").First(&user, user.ID).Error)
	return user
}

var categoryMu sync.Mutex

func seedMenuItem(t *testing.T, db *gorm.DB, title, price string, inventory int) models.MenuItem {
	t.Helper()
	categoryMu.Lock()
	defer categoryMu.Unlock()

	var category models.Category
	require.NoError(t, db.Where(models.Category{Slug: "mains"}).
		Attrs(models.Category{Title: "Mains"}).
		FirstOrCreate(&category).Error)

	item := models.MenuItem{
		Title:      title,
		Price:      decimal.RequireFromString(price),
		Inventory:  inventory,
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func inventoryOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var item models.MenuItem
	require.NoError(t, db.First(&item, id).Error)
	return item.Inventory
}

func cartCount(t *testing.T, db *gorm.DB, userID uint) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.CartLine{}).Where("user_id = ?", userID).Count(&n).Error)
	return n
}

type recordedEvents struct {
	mu      sync.Mutex
	created []models.Order
	updated []models.Order
}

func (r *recordedEvents) OrderCreated(o models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, o)
}

func (r *recordedEvents) OrderUpdated(o models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, o)
}

var errInjected = errors.New("injected failure")

// failOnNth makes the nth create, update or query statement against table
// fail. Callbacks stay registered for the lifetime of db.
func failOnNth(t *testing.T, db *gorm.DB, op, table string, n int32) {
	t.Helper()
	var seen int32
	fn := func(tx *gorm.DB) {
		if tx.Statement.Table == table && atomic.AddInt32(&seen, 1) == n {
			tx.AddError(errInjected)
		}
	}

	name := "test:fail_" + op + "_" + table
	var err error
	switch op {
	case "create":
		err = db.Callback().Create().Before("gorm:create").Register(name, fn)
	case "update":
		err = db.Callback().Update().Before("gorm:update").Register(name, fn)
	case "query":
		err = db.Callback().Query().Before("gorm:query").Register(name, fn)
	default:
		t.Fatalf("unknown callback op %q", op)
	}
	require.NoError(t, err)
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
