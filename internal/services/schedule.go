package services

import (
	"strconv"

	"github.com/fomenta-dev/fomenta/internal/apperr"
	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/google/uuid"
)

// ScheduleTracker owns the ordered activity list embedded in a project.
type ScheduleTracker struct {
	Projects ProjectRepository
}

func NewScheduleTracker(projects ProjectRepository) *ScheduleTracker {
	return &ScheduleTracker{Projects: projects}
}

// ReplaceSchedule installs a new activity list. Activities keep the id they
// already carry; new entries get one assigned, so external references stay
// valid across reorders. An empty list clears the schedule.
func (t *ScheduleTracker) ReplaceSchedule(projectID string, activities []models.ScheduleActivity) ([]models.ScheduleActivity, error) {
	if _, err := t.Projects.FindByID(projectID); err != nil {
		return nil, err
	}

	stored := AssignActivityIDs(activities)

	if err := t.Projects.UpdateSchedule(projectID, stored); err != nil {
		return nil, err
	}

	return stored, nil
}

// AppendEvidence attaches a file URL to one activity and persists the whole
// schedule back. The activity is addressed by its stable id, or by list index
// for older clients.
func (t *ScheduleTracker) AppendEvidence(projectID, activityRef, fileURL string) (*models.ScheduleActivity, error) {
	project, err := t.Projects.FindByID(projectID)
	if err != nil {
		return nil, err
	}

	activities := []models.ScheduleActivity(project.ScheduleActivities)

	idx := t.findActivity(activities, activityRef)
	if idx < 0 {
		return nil, apperr.NotFound("activity")
	}

	activities[idx].EvidenceURLs = append(activities[idx].EvidenceURLs, fileURL)

	if err := t.Projects.UpdateSchedule(projectID, activities); err != nil {
		return nil, err
	}

	return &activities[idx], nil
}

// HasActivity reports whether ref resolves to one of the project's schedule
// activities. Lets callers reject a bad reference before doing work whose
// side effects would outlive the failed request, like a blob upload.
func (t *ScheduleTracker) HasActivity(project *models.Project, ref string) bool {
	return t.findActivity([]models.ScheduleActivity(project.ScheduleActivities), ref) >= 0
}

// AssignActivityIDs fills in missing activity ids without touching existing
// ones.
func AssignActivityIDs(activities []models.ScheduleActivity) []models.ScheduleActivity {
	stored := make([]models.ScheduleActivity, len(activities))
	for i, activity := range activities {
		if activity.ID == "" {
			activity.ID = uuid.NewString()
		}
		stored[i] = activity
	}
	return stored
}

func (t *ScheduleTracker) findActivity(activities []models.ScheduleActivity, ref string) int {
	for i, activity := range activities {
		if activity.ID != "" && activity.ID == ref {
			return i
		}
	}

	if idx, err := strconv.Atoi(ref); err == nil && idx >= 0 && idx < len(activities) {
		return idx
	}

	return -1
}
