package services

import (
	"errors"
	"strings"

	"github.com/yeremiapane/little-lemon-api/models"
	"github.com/yeremiapane/little-lemon-api/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrBadCredentials = utils.Validation("Unable to log in with provided credentials.")

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

func (s *UserService) Register(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)

	var n int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, utils.FieldError("username", "A user with that username already exists.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{Username: username, Email: email, Password: string(hashed)}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	utils.InfoLogger.WithField("user_id", user.ID).Info("user registered")
	return &user, nil
}

// Login checks the password and issues a signed token.
func (s *UserService) Login(username, password string) (string, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrBadCredentials
		}
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrBadCredentials
	}
	return utils.GenerateToken(user.ID, user.Username)
}

// Get loads a user together with their role memberships.
func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.Preload("Roles").First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found.")
		}
		return nil, err
	}
	return &user, nil
}

// Principal reloads the user's roles. The order feed calls it per event.
func (s *UserService) Principal(userID uint) (models.Principal, error) {
	user, err := s.Get(userID)
	if err != nil {
		return models.Principal{}, err
	}
	return user.Principal(), nil
}
