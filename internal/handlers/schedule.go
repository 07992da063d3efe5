package handlers

import (
	"log"
	"net/http"

	"github.com/fomenta-dev/fomenta/internal/apperr"
	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/gin-gonic/gin"
)

// UpdateSchedule replaces the whole activity list. Partial project patches
// that omit the schedule go through UpdateProject and leave it untouched.
func UpdateSchedule(ctx *gin.Context) {
	project, ok := editableProject(ctx)
	if !ok {
		return
	}

	var activities []models.ScheduleActivity

	if err := ctx.BindJSON(&activities); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid schedule"})
		return
	}

	stored, err := tracker.ReplaceSchedule(project.ID, activities)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, stored)
}

func ListSchedule(ctx *gin.Context) {
	project, ok := viewableProject(ctx)
	if !ok {
		return
	}

	activities := []models.ScheduleActivity(project.ScheduleActivities)
	if activities == nil {
		activities = []models.ScheduleActivity{}
	}

	ctx.JSON(http.StatusOK, activities)
}

// UploadEvidence attaches a file to one schedule activity, addressed by its
// stable id or by list index.
func UploadEvidence(ctx *gin.Context) {
	project, ok := editableProject(ctx)
	if !ok {
		return
	}

	// Resolve the activity before touching the blob store so a bad reference
	// never leaves an orphaned object behind.
	activityRef := ctx.Param("activity")

	if !tracker.HasActivity(project, activityRef) {
		respondError(ctx, apperr.NotFound("activity"))
		return
	}

	data, header, err := readUpload(ctx, "file")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	key := fileKey("projects/"+project.ID+"/activities/"+activityRef, header.Filename)

	url, err := blobs.Upload(ctx.Request.Context(), data, key, uploadContentType(header))
	if err != nil {
		respondError(ctx, err)
		return
	}

	activity, err := tracker.AppendEvidence(project.ID, activityRef, url)

	if err != nil {
		respondError(ctx, err)
		return
	}

	log.Printf("Evidence attached to project %s activity %s", project.ID, activity.ID)

	ctx.JSON(http.StatusCreated, gin.H{"url": url, "activity": activity})
}
