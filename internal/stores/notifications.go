package stores

import (
	"github.com/fomenta-dev/fomenta/internal/models"
	"gorm.io/gorm"
)

type Notifications struct {
	DB *gorm.DB
}

func NewNotifications(db *gorm.DB) *Notifications {
	return &Notifications{DB: db}
}

func (s *Notifications) Append(userID, message string) (*models.Notification, error) {
	notice := models.Notification{
		UserID:  userID,
		Message: message,
	}

	if err := s.DB.Create(&notice).Error; err != nil {
		return nil, err
	}

	return &notice, nil
}

func (s *Notifications) ListByUser(userID string) ([]models.Notification, error) {
	var notices []models.Notification

	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notices).Error
	if err != nil {
		return nil, err
	}

	return notices, nil
}
