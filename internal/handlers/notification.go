package handlers

import (
	"log"
	"net/http"

	"github.com/fomenta-dev/fomenta/internal/utils"
	"github.com/gin-gonic/gin"
)

// ListNotifications returns the caller's in-app notices, newest first.
func ListNotifications(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	notices, err := noticeStore.ListByUser(userID)

	if err != nil {
		log.Printf("Failed to list notifications: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	ctx.JSON(http.StatusOK, notices)
}
