package stores

import (
	"github.com/fomenta-dev/fomenta/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResetCodes struct {
	DB *gorm.DB
}

func NewResetCodes(db *gorm.DB) *ResetCodes {
	return &ResetCodes{DB: db}
}

// Save upserts: one active code per email.
func (s *ResetCodes) Save(code models.ResetCode) error {
	return s.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at"}),
	}).Create(&code).Error
}

func (s *ResetCodes) Get(email string) (*models.ResetCode, error) {
	var code models.ResetCode
	if err := s.DB.Where("email = ?", email).First(&code).Error; err != nil {
		return nil, translate(err, "reset code")
	}
	return &code, nil
}

func (s *ResetCodes) Delete(email string) error {
	return s.DB.Where("email = ?", email).Delete(&models.ResetCode{}).Error
}
