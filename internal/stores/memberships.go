package stores

import (
	"github.com/fomenta-dev/fomenta/internal/models"
	"gorm.io/gorm"
)

type Memberships struct {
	DB *gorm.DB
}

func NewMemberships(db *gorm.DB) *Memberships {
	return &Memberships{DB: db}
}

func (s *Memberships) Add(companyID, userID string) error {
	link := models.CompanyMembership{
		CompanyID: companyID,
		UserID:    userID,
	}
	return s.DB.Create(&link).Error
}

// ListUsers returns the member user records for a company. Duplicate links
// produce duplicate rows here; callers dedupe where it matters.
func (s *Memberships) ListUsers(companyID string) ([]models.User, error) {
	var links []models.CompanyMembership

	if err := s.DB.Where("company_id = ?", companyID).Find(&links).Error; err != nil {
		return nil, err
	}

	if len(links) == 0 {
		return []models.User{}, nil
	}

	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.UserID
	}

	var users []models.User
	if err := s.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (s *Memberships) IsMember(companyID, userID string) (bool, error) {
	var count int64

	err := s.DB.Model(&models.CompanyMembership{}).
		Where("company_id = ? AND user_id = ?", companyID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
