package handlers

import (
	"log"
	"net/http"

	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/gin-gonic/gin"
)

type BudgetItemRequest struct {
	Description  string  `json:"description"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitQuantity float64 `json:"unit_quantity"`
	UnitValue    float64 `json:"unit_value"`
	AdjustTotal  bool    `json:"adjust_total"`
}

// UpdateBudget replaces the project's whole line-item set. There are no
// partial line updates.
func UpdateBudget(ctx *gin.Context) {
	project, ok := editableProject(ctx)
	if !ok {
		return
	}

	var body []BudgetItemRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item list"})
		return
	}

	items := make([]models.BudgetItem, len(body))
	for i, req := range body {
		items[i] = models.BudgetItem{
			Description:  req.Description,
			Quantity:     req.Quantity,
			Unit:         req.Unit,
			UnitQuantity: req.UnitQuantity,
			UnitValue:    req.UnitValue,
			AdjustTotal:  req.AdjustTotal,
		}
	}

	stored, err := ledger.ReplaceItems(project.ID, items)

	if err != nil {
		log.Printf("Failed to replace budget items: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update budget"})
		return
	}

	notifier.OnBudgetUpdated(project)

	ctx.JSON(http.StatusOK, stored)
}

func ListBudget(ctx *gin.Context) {
	project, ok := viewableProject(ctx)
	if !ok {
		return
	}

	items, err := ledger.GetItems(project.ID)

	if err != nil {
		log.Printf("Failed to list budget items: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve budget"})
		return
	}

	ctx.JSON(http.StatusOK, items)
}
