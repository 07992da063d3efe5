package services

import (
	"fmt"
	"time"

	"github.com/fomenta-dev/fomenta/internal/apperr"
	"github.com/fomenta-dev/fomenta/internal/models"
)

// In-memory stand-ins for the collaborator interfaces.

type fakeProjects struct {
	projects map[string]*models.Project
	deleted  []string
}

func newFakeProjects(projects ...*models.Project) *fakeProjects {
	f := &fakeProjects{projects: make(map[string]*models.Project)}
	for _, p := range projects {
		f.projects[p.ID] = p
	}
	return f
}

func (f *fakeProjects) FindByID(id string) (*models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return nil, apperr.NotFound("project")
	}
	return project, nil
}

func (f *fakeProjects) ListAll() ([]models.Project, error) {
	all := make([]models.Project, 0, len(f.projects))
	for _, p := range f.projects {
		all = append(all, *p)
	}
	return all, nil
}

func (f *fakeProjects) ListCreatedBefore(status string, cutoff time.Time) ([]models.Project, error) {
	var matched []models.Project
	for _, p := range f.projects {
		if p.Status == status && p.CreatedAt.Before(cutoff) {
			matched = append(matched, *p)
		}
	}
	return matched, nil
}

func (f *fakeProjects) UpdateSchedule(id string, activities []models.ScheduleActivity) error {
	project, ok := f.projects[id]
	if !ok {
		return apperr.NotFound("project")
	}
	project.ScheduleActivities = activities
	return nil
}

func (f *fakeProjects) Delete(id string) error {
	delete(f.projects, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeMembers struct {
	byCompany map[string][]models.User
}

func (f *fakeMembers) ListUsers(companyID string) ([]models.User, error) {
	return f.byCompany[companyID], nil
}

type fakeUsers struct {
	byID map[string]models.User
}

func (f *fakeUsers) FindByID(id string) (*models.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, apperr.NotFound("user")
	}
	return &user, nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent    []sentMail
	failFor map[string]bool
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	if f.failFor[to] {
		return fmt.Errorf("smtp send: connection refused")
	}
	return nil
}

type fakeNotices struct {
	byUser map[string][]models.Notification
}

func newFakeNotices() *fakeNotices {
	return &fakeNotices{byUser: make(map[string][]models.Notification)}
}

func (f *fakeNotices) Append(userID, message string) (*models.Notification, error) {
	notice := models.Notification{
		ID:        fmt.Sprintf("n%d", len(f.byUser[userID])+1),
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	f.byUser[userID] = append(f.byUser[userID], notice)
	return &notice, nil
}

type fakeBudget struct {
	items  map[string][]models.BudgetItem
	spent  map[string]float64
	nextID int
}

func newFakeBudget() *fakeBudget {
	return &fakeBudget{
		items: make(map[string][]models.BudgetItem),
		spent: make(map[string]float64),
	}
}

func (f *fakeBudget) DeleteAllForProject(projectID string) error {
	delete(f.items, projectID)
	return nil
}

func (f *fakeBudget) InsertMany(items []models.BudgetItem) error {
	// Mirror gorm: ids are generated into the caller's slice on insert.
	for i := range items {
		f.nextID++
		items[i].ID = fmt.Sprintf("item-%d", f.nextID)
		f.items[items[i].ProjectID] = append(f.items[items[i].ProjectID], items[i])
	}
	return nil
}

func (f *fakeBudget) ListForProject(projectID string) ([]models.BudgetItem, error) {
	return f.items[projectID], nil
}

func (f *fakeBudget) SetProjectSpent(projectID string, total float64) error {
	f.spent[projectID] = total
	return nil
}

func (f *fakeBudget) InTransaction(fn func(BudgetRepository) error) error {
	return fn(f)
}
