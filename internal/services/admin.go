package services

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fomenta-dev/fomenta/internal/apperr"
	"github.com/fomenta-dev/fomenta/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// EnsureAdminUser creates the admin account for email when none exists.
// Idempotent: an existing account with that email is returned untouched, so
// re-running startup never resets a password.
func EnsureAdminUser(users AdminAccounts, email, password, name string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, apperr.Validation("admin email and password are required")
	}

	existing, err := users.FindByEmail(email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	admin := &models.User{
		Type:         models.UserTypeAdmin,
		Email:        email,
		PasswordHash: string(hash),
		FullName:     name,
	}

	if err := users.Create(admin); err != nil {
		return nil, err
	}

	log.Printf("Admin account created for %s", email)
	return admin, nil
}

// EnsureAdminUserFromEnv seeds the admin named by ADMIN_EMAIL and
// ADMIN_PASSWORD. Both unset skips seeding entirely, for deployments that
// manage admin accounts out of band.
func EnsureAdminUserFromEnv(users AdminAccounts) error {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")

	if email == "" && password == "" {
		log.Println("ADMIN_EMAIL not set, skipping admin seeding")
		return nil
	}

	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Master Admin"
	}

	_, err := EnsureAdminUser(users, email, password, name)
	return err
}
