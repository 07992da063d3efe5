package handlers

import (
	"net/http"
	"testing"

	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestUploadEvidenceUnknownActivityUploadsNothing(t *testing.T) {
	blobStore := setupHandlerTest(t)

	owner := seedPerson(t, "owner@example.com", "11122233344")
	project := seedProject(t, owner,
		[]models.ScheduleActivity{{ID: "a1", Title: "Rehearsal"}},
		nil,
	)

	w := perform(t, UploadEvidence, http.MethodPost, "", &owner,
		gin.Param{Key: "id", Value: project.ID},
		gin.Param{Key: "activity", Value: "missing"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, blobStore.uploads, "a rejected reference must not leave an object behind")
}
