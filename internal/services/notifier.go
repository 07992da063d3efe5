package services

import (
	"fmt"
	"log"
	"time"

	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/fomenta-dev/fomenta/internal/types"
)

const upcomingWindow = 3 * 24 * time.Hour

// NotificationEngine reacts to project lifecycle events and time-based sweeps,
// emitting an email plus a persisted in-app notice per interested user.
// Delivery is best-effort: one bad recipient never blocks the rest.
type NotificationEngine struct {
	Projects ProjectRepository
	Members  CompanyMembershipStore
	Users    UserDirectory
	Mailer   Mailer
	Notices  NotificationStore

	// Push, when set, receives each persisted notice for live delivery.
	Push func(userID string, notice models.Notification)
}

func NewNotificationEngine(projects ProjectRepository, members CompanyMembershipStore, users UserDirectory, mailer Mailer, notices NotificationStore) *NotificationEngine {
	return &NotificationEngine{
		Projects: projects,
		Members:  members,
		Users:    users,
		Mailer:   mailer,
		Notices:  notices,
	}
}

// ResolveInterestedUsers returns who should hear about a project: the owning
// company's membership when there is one, otherwise the responsible users.
// The result carries no duplicates even when membership rows are duplicated.
func (e *NotificationEngine) ResolveInterestedUsers(project *models.Project) ([]models.User, error) {
	if project.OwnerCompanyID != nil {
		members, err := e.Members.ListUsers(*project.OwnerCompanyID)
		if err != nil {
			return nil, err
		}
		return dedupeUsers(members), nil
	}

	ids := make([]string, 0, 2)
	if project.PrimaryResponsibleID != nil {
		ids = append(ids, *project.PrimaryResponsibleID)
	}
	if project.LegalResponsibleID != nil && !contains(ids, *project.LegalResponsibleID) {
		ids = append(ids, *project.LegalResponsibleID)
	}

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		user, err := e.Users.FindByID(id)
		if err != nil {
			continue
		}
		users = append(users, *user)
	}

	return users, nil
}

// OnStatusChanged notifies every interested user that the project moved to its
// current status.
func (e *NotificationEngine) OnStatusChanged(project *models.Project) {
	message := fmt.Sprintf("Project %s changed status to %s.", project.Name, project.Status)
	e.fanOut(project, "Project status updated", message)
}

// OnBudgetUpdated notifies every interested user that the project's budget was
// replaced.
func (e *NotificationEngine) OnBudgetUpdated(project *models.Project) {
	message := fmt.Sprintf("Project %s had its budget updated.", project.Name)
	e.fanOut(project, "Project budget updated", message)
}

// SweepUpcoming notifies about projects starting or ending within the next
// three days of now. Repeated daily runs inside the window re-notify; there is
// no de-duplication across runs.
func (e *NotificationEngine) SweepUpcoming(now time.Time) error {
	projects, err := e.Projects.ListAll()
	if err != nil {
		return err
	}

	soon := now.Add(upcomingWindow)

	for i := range projects {
		project := &projects[i]

		if withinWindow(project.StartDate, now, soon) {
			e.fanOut(project, "Project starting soon",
				fmt.Sprintf("Project %s is starting soon.", project.Name))
		}

		if withinWindow(project.EndDate, now, soon) {
			e.fanOut(project, "Project ending soon",
				fmt.Sprintf("Project %s is ending soon.", project.Name))
		}
	}

	return nil
}

// SweepStale deletes projects still in "new" status after maxAgeDays and tells
// interested users about the removal. The delete is authoritative: it happens
// first and is not rolled back when a notification fails.
func (e *NotificationEngine) SweepStale(now time.Time, maxAgeDays int) error {
	cutoff := now.AddDate(0, 0, -maxAgeDays)

	stale, err := e.Projects.ListCreatedBefore(types.StatusNew, cutoff)
	if err != nil {
		return err
	}

	for i := range stale {
		project := &stale[i]

		if err := e.Projects.Delete(project.ID); err != nil {
			log.Printf("Failed to delete stale project %s: %v", project.ID, err)
			continue
		}

		e.fanOut(project, "Project removed",
			fmt.Sprintf("Project %s was removed after %d days without activity.", project.Name, maxAgeDays))
	}

	return nil
}

func (e *NotificationEngine) fanOut(project *models.Project, subject, message string) {
	users, err := e.ResolveInterestedUsers(project)
	if err != nil {
		log.Printf("Failed to resolve recipients for project %s: %v", project.ID, err)
		return
	}

	for _, user := range users {
		if err := e.Mailer.Send(user.Email, subject, message); err != nil {
			log.Printf("Failed to email %s: %v", user.Email, err)
		}

		notice, err := e.Notices.Append(user.ID, message)
		if err != nil {
			log.Printf("Failed to store notice for user %s: %v", user.ID, err)
			continue
		}

		if e.Push != nil {
			e.Push(user.ID, *notice)
		}
	}
}

func withinWindow(date *time.Time, now, soon time.Time) bool {
	return date != nil && date.After(now) && !date.After(soon)
}

func dedupeUsers(users []models.User) []models.User {
	seen := make(map[string]bool, len(users))
	distinct := make([]models.User, 0, len(users))

	for _, user := range users {
		if seen[user.ID] {
			continue
		}
		seen[user.ID] = true
		distinct = append(distinct, user)
	}

	return distinct
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
