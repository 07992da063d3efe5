package stores

import (
	"time"

	"github.com/fomenta-dev/fomenta/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Projects struct {
	DB *gorm.DB
}

func NewProjects(db *gorm.DB) *Projects {
	return &Projects{DB: db}
}

func (s *Projects) Create(project *models.Project) error {
	return s.DB.Create(project).Error
}

func (s *Projects) FindByID(id string) (*models.Project, error) {
	var project models.Project
	if err := s.DB.Where("id = ?", id).First(&project).Error; err != nil {
		return nil, translate(err, "project")
	}
	return &project, nil
}

// Update applies a partial patch. Fields absent from the map are untouched, so
// a patch that omits the schedule or attachments never clears them.
func (s *Projects) Update(id string, fields map[string]interface{}) error {
	return s.DB.Model(&models.Project{}).Where("id = ?", id).Updates(fields).Error
}

func (s *Projects) UpdateSchedule(id string, activities []models.ScheduleActivity) error {
	return s.Update(id, map[string]interface{}{
		"schedule_activities": datatypes.NewJSONSlice(activities),
	})
}

func (s *Projects) Delete(id string) error {
	return s.DB.Where("id = ?", id).Delete(&models.Project{}).Error
}

func (s *Projects) ListAll() ([]models.Project, error) {
	var projects []models.Project
	if err := s.DB.Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *Projects) ListCreatedBefore(status string, cutoff time.Time) ([]models.Project, error) {
	var projects []models.Project

	err := s.DB.Where("status = ? AND created_at < ?", status, cutoff).Find(&projects).Error
	if err != nil {
		return nil, err
	}

	return projects, nil
}

func (s *Projects) CountByStatus() (int64, map[string]int64, error) {
	var total int64
	if err := s.DB.Model(&models.Project{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var rows []struct {
		Status string
		Count  int64
	}

	err := s.DB.Model(&models.Project{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return 0, nil, err
	}

	byStatus := make(map[string]int64, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row.Count
	}

	return total, byStatus, nil
}
