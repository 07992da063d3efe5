package handlers

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fomenta-dev/fomenta/db"
	"github.com/fomenta-dev/fomenta/internal/apperr"
	"github.com/fomenta-dev/fomenta/internal/auth"
	"github.com/fomenta-dev/fomenta/internal/models"
	"github.com/fomenta-dev/fomenta/internal/types"
	"github.com/fomenta-dev/fomenta/internal/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterPersonRequest struct {
	FullName string `json:"full_name" binding:"required"`
	TaxID    string `json:"tax_id" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type RegisterCompanyRequest struct {
	LegalName             string   `json:"legal_name" binding:"required"`
	CompanyTaxID          string   `json:"company_tax_id" binding:"required"`
	IsMicroEnterprise     *bool    `json:"is_micro_enterprise" binding:"required"`
	StateRegistration     string   `json:"state_registration" binding:"required"`
	MunicipalRegistration string   `json:"municipal_registration" binding:"required"`
	Phone                 string   `json:"phone" binding:"required"`
	Email                 string   `json:"email" binding:"required,email"`
	Password              string   `json:"password" binding:"required,min=8"`
	MemberTaxIDs          []string `json:"member_tax_ids"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

var (
	Domain = os.Getenv("DOMAIN")
)

func RegisterPerson(ctx *gin.Context) {
	var req RegisterPersonRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if taken, err := emailTaken(email); err != nil {
		respondError(ctx, err)
		return
	} else if taken {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	newUser := models.User{
		Type:         models.UserTypePerson,
		Email:        email,
		PasswordHash: string(passwordHash),
		Phone:        req.Phone,
		FullName:     req.FullName,
		TaxID:        req.TaxID,
	}

	if err := db.DB.Create(&newUser).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	issueSession(ctx, newUser, http.StatusCreated)
}

func RegisterCompany(ctx *gin.Context) {
	var req RegisterCompanyRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if taken, err := emailTaken(email); err != nil {
		respondError(ctx, err)
		return
	} else if taken {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}

	// Resolve every member tax id up front so a bad one fails the whole
	// registration instead of leaving a half-linked roster.
	members := make([]models.User, 0, len(req.MemberTaxIDs))
	for _, taxID := range req.MemberTaxIDs {
		person, err := userStore.FindByTaxID(taxID)
		if err != nil {
			respondError(ctx, err)
			return
		}
		members = append(members, *person)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	newUser := models.User{
		Type:                  models.UserTypeCompany,
		Email:                 email,
		PasswordHash:          string(passwordHash),
		Phone:                 req.Phone,
		LegalName:             req.LegalName,
		CompanyTaxID:          req.CompanyTaxID,
		IsMicroEnterprise:     *req.IsMicroEnterprise,
		StateRegistration:     req.StateRegistration,
		MunicipalRegistration: req.MunicipalRegistration,
	}

	// Company row and membership links land together or not at all.
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}

		for _, member := range members {
			link := models.CompanyMembership{CompanyID: newUser.ID, UserID: member.ID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to create company: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	issueSession(ctx, newUser, http.StatusCreated)
}

func Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.BindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := userStore.FindByEmail(email)

	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		respondError(ctx, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	issueSession(ctx, *user, http.StatusOK)
}

func Profile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := userStore.FindByID(currentUser.ID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": types.NewUserResponse(*user)})
}

func UpdateProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, err := userStore.FindByID(currentUser.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	updates := make(map[string]interface{})

	if fullName := ctx.PostForm("full_name"); fullName != "" && user.Type == models.UserTypePerson {
		updates["full_name"] = strings.TrimSpace(fullName)
	}

	if phone := ctx.PostForm("phone"); phone != "" {
		updates["phone"] = strings.TrimSpace(phone)
	}

	if newPassword := ctx.PostForm("new_password"); newPassword != "" {
		currentPassword := ctx.PostForm("current_password")

		if currentPassword == "" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Current password is required to change password"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Current password is incorrect"})
			return
		}

		passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("Failed to hash new password: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		updates["password_hash"] = string(passwordHash)
	}

	if data, header, err := readUpload(ctx, "avatar"); err == nil {
		key := fileKey("users/"+user.ID, header.Filename)

		url, err := blobs.Upload(ctx.Request.Context(), data, key, uploadContentType(header))
		if err != nil {
			respondError(ctx, err)
			return
		}

		updates["avatar_url"] = url
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := userStore.Update(user.ID, updates); err != nil {
		log.Printf("Failed to update user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	updated, err := userStore.FindByID(user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": types.NewUserResponse(*updated)})
}

type RecoverPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type CheckResetCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

func RecoverPassword(ctx *gin.Context) {
	var req RecoverPasswordRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := userStore.FindByEmail(email)
	if err != nil {
		respondError(ctx, err)
		return
	}

	now := time.Now()
	code := ""

	if existing, err := resetStore.Get(email); err == nil && existing.ExpiresAt.After(now) {
		code = existing.Code
	} else {
		code = fmt.Sprintf("%06d", rand.Intn(900000)+100000)

		saved := models.ResetCode{
			Email:     email,
			Code:      code,
			ExpiresAt: now.Add(time.Hour),
		}

		if err := resetStore.Save(saved); err != nil {
			log.Printf("Failed to save reset code: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
	}

	if err := mailer.Send(user.Email, "Password recovery", fmt.Sprintf("Your recovery code: %s", code)); err != nil {
		respondError(ctx, apperr.Dependency("send recovery email", err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Recovery code sent"})
}

func ResetPassword(ctx *gin.Context) {
	var req ResetPasswordRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !resetCodeValid(email, req.Code) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code"})
		return
	}

	user, err := userStore.FindByEmail(email)
	if err != nil {
		respondError(ctx, err)
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := userStore.Update(user.ID, map[string]interface{}{"password_hash": string(passwordHash)}); err != nil {
		log.Printf("Failed to update password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := resetStore.Delete(email); err != nil {
		log.Printf("Failed to delete reset code: %v", err)
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

func CheckResetCode(ctx *gin.Context) {
	var req CheckResetCodeRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !resetCodeValid(email, req.Code) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired code"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"valid": true})
}

func resetCodeValid(email, code string) bool {
	saved, err := resetStore.Get(email)
	if err != nil {
		return false
	}
	return saved.Code == code && saved.ExpiresAt.After(time.Now())
}

func emailTaken(email string) (bool, error) {
	_, err := userStore.FindByEmail(email)

	if err == nil {
		return true, nil
	}

	if errors.Is(err, apperr.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	return false, err
}

func issueSession(ctx *gin.Context, user models.User, status int) {
	token, err := auth.GenerateJWT(user.ID, user.Type)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   60 * 60 * 24 * 7,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	ctx.JSON(status, gin.H{
		"token": token,
		"user":  types.NewUserResponse(user),
	})
}
