package database

import (
	"errors"

	"github.com/yeremiapane/little-lemon-api/config"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the admin account named by ADMIN_USERNAME when it does
// not exist yet. The admin also joins the manager role.
func SeedAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		utils.InfoLogger.Info("admin seed skipped: ADMIN_USERNAME/ADMIN_PASSWORD not set")
		return nil
	}

	var existing models.User
	err := db.Where("username = ?", cfg.AdminUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Username: cfg.AdminUsername,
			Email:    cfg.AdminEmail,
			Password: string(hashed),
			IsAdmin:  true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.UserRole{UserID: admin.ID, Role: models.RoleManager}).Error; err != nil {
			return err
		}
		utils.InfoLogger.WithField("username", admin.Username).Info("admin user seeded")
		return nil
	})
}
