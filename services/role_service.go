package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
	"gorm.io/gorm"
)

type RoleService struct {
	DB *gorm.DB
}

func NewRoleService(db *gorm.DB) *RoleService {
	return &RoleService{DB: db}
}

func (s *RoleService) Members(role models.Role) ([]models.User, error) {
	users := []models.User{}
	err := s.DB.
		Where("id IN (?)", s.DB.Model(&models.UserRole{}).Select("user_id").Where("role = ?", role)).
		Order("id").
		Find(&users).Error
	return users, err
}

// Add puts the named user into role. Adding an existing member is a no-op.
func (s *RoleService) Add(role models.Role, username string) (*models.User, error) {
	if username == "" {
		return nil, utils.FieldError("username", "Username not provided.")
	}

	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found.")
		}
		return nil, err
	}

	membership := models.UserRole{UserID: user.ID, Role: role}
	err := s.DB.Where(models.UserRole{UserID: user.ID, Role: role}).FirstOrCreate(&membership).Error
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"user_id": user.ID, "role": role}).Info("role granted")
	return &user, nil
}

func (s *RoleService) Remove(role models.Role, userID uint) error {
	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("User not found.")
		}
		return err
	}

	res := s.DB.Where("user_id = ? AND role = ?", userID, role).Delete(&models.UserRole{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return utils.Validation("User is not a " + notMemberLabel(role) + ".")
	}
	utils.InfoLogger.WithFields(logrus.Fields{"user_id": userID, "role": role}).Info("role revoked")
	return nil
}

func notMemberLabel(role models.Role) string {
	switch role {
	case models.RoleManager:
		return "manager"
	case models.RoleDeliveryCrew:
		return "delivery crew member"
	}
	return string(role)
}
