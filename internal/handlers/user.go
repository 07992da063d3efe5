package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SearchPersonByTaxID lets companies look up a person to attach to their
// roster.
func SearchPersonByTaxID(ctx *gin.Context) {
	taxID := ctx.Query("tax_id")

	if taxID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "tax_id query parameter is required"})
		return
	}

	user, err := userStore.FindByTaxID(taxID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":     user.ID,
		"name":   user.FullName,
		"tax_id": user.TaxID,
		"email":  user.Email,
	})
}
