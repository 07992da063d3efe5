package handlers

import (
	"net/http"

	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/fomenta-dev/fomenta/internal/types"
	"github.com/fomenta-dev/fomenta/internal/utils"
	"github.com/gin-gonic/gin"
)

type AddCompanyUserRequest struct {
	TaxID string `json:"tax_id" binding:"required"`
}

func AddCompanyUser(ctx *gin.Context) {
	companyID := ctx.Param("id")

	if !canManageCompany(ctx, companyID) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	var req AddCompanyUserRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	person, err := userStore.FindByTaxID(req.TaxID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if err := membershipStore.Add(companyID, person.ID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "User linked to company"})
}

func ListCompanyUsers(ctx *gin.Context) {
	companyID := ctx.Param("id")

	current, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	allowed := canManageCompany(ctx, companyID)

	if !allowed {
		member, err := membershipStore.IsMember(companyID, current.ID)
		if err != nil {
			respondError(ctx, err)
			return
		}
		allowed = member
	}

	if !allowed {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	users, err := membershipStore.ListUsers(companyID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	response := make([]types.UserResponse, 0, len(users))
	seen := make(map[string]bool, len(users))

	for _, user := range users {
		if seen[user.ID] {
			continue
		}
		seen[user.ID] = true
		response = append(response, types.NewUserResponse(user))
	}

	ctx.JSON(http.StatusOK, response)
}

func canManageCompany(ctx *gin.Context, companyID string) bool {
	current, err := utils.GetCurrentUser(ctx)

	if err != nil {
		return false
	}

	if current.Type == models.UserTypeAdmin {
		return true
	}

	return current.Type == models.UserTypeCompany && current.ID == companyID
}
