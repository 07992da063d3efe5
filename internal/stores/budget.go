package stores

import (
	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/fomenta-dev/fomenta/internal/services"
	"gorm.io/gorm"
)

type Budget struct {
	DB *gorm.DB
}

func NewBudget(db *gorm.DB) *Budget {
	return &Budget{DB: db}
}

func (s *Budget) DeleteAllForProject(projectID string) error {
	return s.DB.Where("project_id = ?", projectID).Delete(&models.BudgetItem{}).Error
}

func (s *Budget) InsertMany(items []models.BudgetItem) error {
	return s.DB.Create(&items).Error
}

func (s *Budget) ListForProject(projectID string) ([]models.BudgetItem, error) {
	var items []models.BudgetItem
	if err := s.DB.Where("project_id = ?", projectID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Budget) SetProjectSpent(projectID string, total float64) error {
	return s.DB.Model(&models.Project{}).
		Where("id = ?", projectID).
		Update("budget_spent", total).Error
}

func (s *Budget) InTransaction(fn func(services.BudgetRepository) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Budget{DB: tx})
	})
}
