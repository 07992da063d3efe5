package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fomenta-dev/fomenta/db"
	"github.com/fomenta-dev/fomenta/internal/middleware"
	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/fomenta-dev/fomenta/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type stubMailer struct{}

func (stubMailer) Send(to, subject, body string) error { return nil }

type stubBlobs struct {
	uploads []string
}

func (b *stubBlobs) Upload(ctx context.Context, data []byte, key, contentType string) (string, error) {
	b.uploads = append(b.uploads, key)
	return "https://cdn.test/" + key, nil
}

// setupHandlerTest points the shared database handle at a throwaway sqlite
// file and rewires the handler globals over it.
func setupHandlerTest(t *testing.T) *stubBlobs {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gormDB, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gormDB.AutoMigrate(
		&models.User{},
		&models.CompanyMembership{},
		&models.Project{},
		&models.BudgetItem{},
		&models.Notification{},
		&models.ResetCode{},
	))

	db.DB = gormDB

	blobStore := &stubBlobs{}
	Init(stubMailer{}, blobStore)
	return blobStore
}

func perform(t *testing.T, handler gin.HandlerFunc, method, body string, actor *models.User, params ...gin.Param) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, "/", reader)
	req.Header.Set("Content-Type", "application/json")
	ctx.Request = req
	ctx.Params = params

	if actor != nil {
		name := actor.FullName
		if actor.Type == models.UserTypeCompany {
			name = actor.LegalName
		}
		ctx.Set(types.ContextUserKey, middleware.AuthenticatedUser{
			ID:    actor.ID,
			Type:  actor.Type,
			Name:  name,
			Email: actor.Email,
		})
	}

	handler(ctx)
	return w
}

func seedPerson(t *testing.T, email, taxID string) models.User {
	t.Helper()

	user := models.User{
		Type:         models.UserTypePerson,
		Email:        email,
		PasswordHash: "irrelevant",
		FullName:     "Test Person",
		TaxID:        taxID,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return user
}

func seedProject(t *testing.T, owner models.User, activities []models.ScheduleActivity, attachments []models.Attachment) models.Project {
	t.Helper()

	project := models.Project{
		Name:                 "Mural Festival",
		Status:               types.StatusNew,
		PrimaryResponsibleID: &owner.ID,
		LegalResponsibleID:   &owner.ID,
		ScheduleActivities:   datatypes.NewJSONSlice(activities),
		Attachments:          datatypes.NewJSONSlice(attachments),
	}
	require.NoError(t, db.DB.Create(&project).Error)
	return project
}
