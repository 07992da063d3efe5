package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/fomenta-dev/fomenta/db"
	"github.com/fomenta-dev/fomenta/internal/access"
	"github.com/fomenta-dev/fomenta/internal/apperr"
	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/fomenta-dev/fomenta/internal/services"
	"github.com/fomenta-dev/fomenta/internal/stores"
	"github.com/fomenta-dev/fomenta/internal/utils"
	"github.com/gin-gonic/gin"
)

var (
	userStore       *stores.Users
	membershipStore *stores.Memberships
	projectStore    *stores.Projects
	budgetStore     *stores.Budget
	noticeStore     *stores.Notifications
	resetStore      *stores.ResetCodes

	policy   *access.Policy
	ledger   *services.BudgetLedger
	tracker  *services.ScheduleTracker
	notifier *services.NotificationEngine
	blobs    services.BlobStore
	mailer   services.Mailer
)

// Init wires the stores and core services over the shared database handle.
// Must be called after db.ConnectDatabase and before the router starts.
func Init(mail services.Mailer, blobStore services.BlobStore) {
	userStore = stores.NewUsers(db.DB)
	membershipStore = stores.NewMemberships(db.DB)
	projectStore = stores.NewProjects(db.DB)
	budgetStore = stores.NewBudget(db.DB)
	noticeStore = stores.NewNotifications(db.DB)
	resetStore = stores.NewResetCodes(db.DB)

	policy = access.NewPolicy(membershipStore)
	ledger = services.NewBudgetLedger(budgetStore)
	tracker = services.NewScheduleTracker(projectStore)

	notifier = services.NewNotificationEngine(projectStore, membershipStore, userStore, mail, noticeStore)
	notifier.Push = PushNotice

	blobs = blobStore
	mailer = mail
}

// Notifier exposes the engine so the sweep scheduler can drive it.
func Notifier() *services.NotificationEngine {
	return notifier
}

// respondError maps the service error taxonomy onto HTTP status codes. Access
// denials arrive as not-found and stay that way.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, apperr.ErrConflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrDependency):
		log.Printf("Dependency failure: %v", err)
		ctx.JSON(http.StatusBadGateway, gin.H{"error": "Upstream dependency failed"})
	default:
		log.Printf("Internal error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// actorFromContext rebuilds the minimal user the access policy needs. Returns
// nil for unauthenticated callers.
func actorFromContext(ctx *gin.Context) *models.User {
	current, err := utils.GetCurrentUser(ctx)
	if err != nil {
		return nil
	}

	actor := models.User{Type: current.Type, Email: current.Email}
	actor.ID = current.ID
	return &actor
}
