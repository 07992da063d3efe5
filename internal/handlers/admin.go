package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type MetricsResponse struct {
	TotalProjects    int64         `json:"total_projects"`
	ProjectsByStatus []StatusCount `json:"projects_by_status"`
}

func Metrics(ctx *gin.Context) {
	total, byStatus, err := projectStore.CountByStatus()

	if err != nil {
		log.Printf("Failed to compute metrics: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute metrics"})
		return
	}

	counts := make([]StatusCount, 0, len(byStatus))
	for status, count := range byStatus {
		counts = append(counts, StatusCount{Status: status, Count: count})
	}

	ctx.JSON(http.StatusOK, MetricsResponse{
		TotalProjects:    total,
		ProjectsByStatus: counts,
	})
}
