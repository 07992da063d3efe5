// Package stores holds the gorm-backed implementations of the collaborator
// interfaces the core services depend on.
package stores

import (
	"errors"

	"github.com/fomenta-dev/fomenta/internal/apperr"
	"github.com/fomenta-dev/fomenta/internal/models"
	"gorm.io/gorm"
)

type Users struct {
	DB *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{DB: db}
}

func (s *Users) Create(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Users) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (s *Users) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (s *Users) FindByTaxID(taxID string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("tax_id = ? AND type = ?", taxID, models.UserTypePerson).First(&user).Error; err != nil {
		return nil, translate(err, "user")
	}
	return &user, nil
}

func (s *Users) Update(id string, fields map[string]interface{}) error {
	return s.DB.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
}

func translate(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what)
	}
	return err
}
