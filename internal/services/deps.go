package services

import (
	"context"
	"time"

	"github.com/fomenta-dev/fomenta/internal/models"
)

// Collaborator interfaces consumed by the core services. The gorm-backed
// implementations live in internal/stores; tests use in-memory fakes.

type UserDirectory interface {
	FindByID(id string) (*models.User, error)
}

// AdminAccounts is the slice of the user store admin seeding needs.
type AdminAccounts interface {
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
}

type CompanyMembershipStore interface {
	ListUsers(companyID string) ([]models.User, error)
}

type ProjectRepository interface {
	FindByID(id string) (*models.Project, error)
	ListAll() ([]models.Project, error)
	ListCreatedBefore(status string, cutoff time.Time) ([]models.Project, error)
	UpdateSchedule(id string, activities []models.ScheduleActivity) error
	Delete(id string) error
}

// BudgetRepository persists budget line items. InTransaction runs fn against a
// repository bound to a single storage transaction so a replace is atomic.
type BudgetRepository interface {
	DeleteAllForProject(projectID string) error
	InsertMany(items []models.BudgetItem) error
	ListForProject(projectID string) ([]models.BudgetItem, error)
	SetProjectSpent(projectID string, total float64) error
	InTransaction(fn func(BudgetRepository) error) error
}

// Mailer delivery failures must never propagate as fatal out of notification
// fan-out.
type Mailer interface {
	Send(to, subject, body string) error
}

type NotificationStore interface {
	Append(userID, message string) (*models.Notification, error)
}

// BlobStore turns uploaded bytes into an opaque URL.
type BlobStore interface {
	Upload(ctx context.Context, data []byte, key, contentType string) (string, error)
}
