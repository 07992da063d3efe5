package services

import (
	"testing"
	"time"

	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/fomenta-dev/fomenta/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func person(id, email string) models.User {
	user := models.User{Type: models.UserTypePerson, Email: email}
	user.ID = id
	return user
}

func companyProject(id, name, companyID string) *models.Project {
	project := &models.Project{Name: name, Status: types.StatusNew, OwnerCompanyID: &companyID}
	project.ID = id
	return project
}

func personProject(id, name string, primary, legal *string) *models.Project {
	project := &models.Project{Name: name, Status: types.StatusNew, PrimaryResponsibleID: primary, LegalResponsibleID: legal}
	project.ID = id
	return project
}

func newEngine(projects *fakeProjects, members *fakeMembers, users *fakeUsers, mailer *fakeMailer, notices *fakeNotices) *NotificationEngine {
	if members == nil {
		members = &fakeMembers{byCompany: map[string][]models.User{}}
	}
	if users == nil {
		users = &fakeUsers{byID: map[string]models.User{}}
	}
	return NewNotificationEngine(projects, members, users, mailer, notices)
}

func TestOnStatusChangedNotifiesEveryMemberDespiteMailFailure(t *testing.T) {
	u1 := person("u1", "u1@example.com")
	u2 := person("u2", "u2@example.com")

	project := companyProject("p1", "Mural Festival", "c1")
	project.Status = types.StatusInProgress

	members := &fakeMembers{byCompany: map[string][]models.User{
		"c1": {u1, u2},
	}}
	mailer := &fakeMailer{failFor: map[string]bool{"u1@example.com": true}}
	notices := newFakeNotices()

	engine := newEngine(newFakeProjects(project), members, nil, mailer, notices)
	engine.OnStatusChanged(project)

	require.Len(t, mailer.sent, 2)

	require.Len(t, notices.byUser["u1"], 1)
	require.Len(t, notices.byUser["u2"], 1)
	assert.Contains(t, notices.byUser["u1"][0].Message, types.StatusInProgress)
	assert.Contains(t, notices.byUser["u2"][0].Message, types.StatusInProgress)
}

func TestResolveInterestedUsersDeduplicatesMembership(t *testing.T) {
	u1 := person("u1", "u1@example.com")

	// Duplicate membership rows are tolerated on write.
	members := &fakeMembers{byCompany: map[string][]models.User{
		"c1": {u1, u1, u1},
	}}

	engine := newEngine(newFakeProjects(), members, nil, &fakeMailer{}, newFakeNotices())

	users, err := engine.ResolveInterestedUsers(companyProject("p1", "Mural Festival", "c1"))
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestResolveInterestedUsersPersonOwned(t *testing.T) {
	u3 := "u3"
	u4 := "u4"

	users := &fakeUsers{byID: map[string]models.User{
		"u3": person("u3", "u3@example.com"),
		"u4": person("u4", "u4@example.com"),
	}}

	engine := newEngine(newFakeProjects(), nil, users, &fakeMailer{}, newFakeNotices())

	resolved, err := engine.ResolveInterestedUsers(personProject("p1", "Solo Exhibit", &u3, &u4))
	require.NoError(t, err)
	assert.Len(t, resolved, 2)

	// Same person in both roles resolves once.
	resolved, err = engine.ResolveInterestedUsers(personProject("p2", "Solo Exhibit", &u3, &u3))
	require.NoError(t, err)
	assert.Len(t, resolved, 1)

	// A dangling responsible id is skipped, not fatal.
	gone := "deleted-user"
	resolved, err = engine.ResolveInterestedUsers(personProject("p3", "Solo Exhibit", &u3, &gone))
	require.NoError(t, err)
	assert.Len(t, resolved, 1)
}

func TestSweepUpcomingWindow(t *testing.T) {
	now := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)

	in2days := now.Add(48 * time.Hour)
	in4days := now.Add(96 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)

	starting := companyProject("p1", "Starting Soon", "c1")
	starting.StartDate = &in2days

	ending := companyProject("p2", "Ending Soon", "c1")
	ending.EndDate = &in2days

	farOut := companyProject("p3", "Far Out", "c1")
	farOut.StartDate = &in4days

	past := companyProject("p4", "Already Started", "c1")
	past.StartDate = &yesterday

	u1 := person("u1", "u1@example.com")
	members := &fakeMembers{byCompany: map[string][]models.User{"c1": {u1}}}
	notices := newFakeNotices()

	engine := newEngine(newFakeProjects(starting, ending, farOut, past), members, nil, &fakeMailer{}, notices)

	require.NoError(t, engine.SweepUpcoming(now))

	require.Len(t, notices.byUser["u1"], 2)

	messages := []string{notices.byUser["u1"][0].Message, notices.byUser["u1"][1].Message}
	assert.Contains(t, messages, "Project Starting Soon is starting soon.")
	assert.Contains(t, messages, "Project Ending Soon is ending soon.")
}

func TestSweepUpcomingRepeatsWithinWindow(t *testing.T) {
	now := time.Date(2026, 8, 1, 8, 0, 0, 0, time.UTC)
	in2days := now.Add(48 * time.Hour)

	project := companyProject("p1", "Recurring", "c1")
	project.StartDate = &in2days

	u1 := person("u1", "u1@example.com")
	members := &fakeMembers{byCompany: map[string][]models.User{"c1": {u1}}}
	notices := newFakeNotices()

	engine := newEngine(newFakeProjects(project), members, nil, &fakeMailer{}, notices)

	// Two daily runs inside the window both notify; no de-duplication.
	require.NoError(t, engine.SweepUpcoming(now))
	require.NoError(t, engine.SweepUpcoming(now.Add(24*time.Hour)))

	assert.Len(t, notices.byUser["u1"], 2)
}

func TestSweepStaleSelection(t *testing.T) {
	now := time.Date(2026, 8, 1, 3, 0, 0, 0, time.UTC)

	stale := companyProject("p1", "Stale Draft", "c1")
	stale.CreatedAt = now.AddDate(0, 0, -31)

	fresh := companyProject("p2", "Fresh Draft", "c1")
	fresh.CreatedAt = now.AddDate(0, 0, -29)

	active := companyProject("p3", "Old But Active", "c1")
	active.CreatedAt = now.AddDate(0, 0, -90)
	active.Status = types.StatusInProgress

	u1 := person("u1", "u1@example.com")
	members := &fakeMembers{byCompany: map[string][]models.User{"c1": {u1}}}
	notices := newFakeNotices()
	projects := newFakeProjects(stale, fresh, active)

	engine := newEngine(projects, members, nil, &fakeMailer{}, notices)

	require.NoError(t, engine.SweepStale(now, 30))

	assert.Equal(t, []string{"p1"}, projects.deleted)
	require.Len(t, notices.byUser["u1"], 1)
	assert.Contains(t, notices.byUser["u1"][0].Message, "Stale Draft")
}

func TestSweepStaleDeletesEvenWhenMailFails(t *testing.T) {
	now := time.Now()

	stale := companyProject("p1", "Stale Draft", "c1")
	stale.CreatedAt = now.AddDate(0, 0, -40)

	u1 := person("u1", "u1@example.com")
	members := &fakeMembers{byCompany: map[string][]models.User{"c1": {u1}}}
	mailer := &fakeMailer{failFor: map[string]bool{"u1@example.com": true}}
	projects := newFakeProjects(stale)
	notices := newFakeNotices()

	engine := newEngine(projects, members, nil, mailer, notices)

	require.NoError(t, engine.SweepStale(now, 30))

	// Deletion is authoritative; the failed email does not roll it back.
	assert.Equal(t, []string{"p1"}, projects.deleted)
	assert.Len(t, notices.byUser["u1"], 1)
}

func TestPushHookReceivesPersistedNotices(t *testing.T) {
	u1 := person("u1", "u1@example.com")
	members := &fakeMembers{byCompany: map[string][]models.User{"c1": {u1}}}

	project := companyProject("p1", "Mural Festival", "c1")
	project.Status = types.StatusCompleted

	engine := newEngine(newFakeProjects(project), members, nil, &fakeMailer{}, newFakeNotices())

	var pushed []models.Notification
	engine.Push = func(userID string, notice models.Notification) {
		pushed = append(pushed, notice)
	}

	engine.OnStatusChanged(project)

	require.Len(t, pushed, 1)
	assert.Equal(t, "u1", pushed[0].UserID)
	assert.Contains(t, pushed[0].Message, types.StatusCompleted)
}
