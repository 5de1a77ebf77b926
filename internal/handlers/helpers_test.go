package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/campus-buzz/campus-events-api/internal/auth"
	"github.com/campus-buzz/campus-events-api/internal/config"
	"github.com/campus-buzz/campus-events-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.User{}, &models.Event{}, &models.Registration{}, &models.Feedback{}, &models.APIKey{})
	if err != nil {
		t.Fatalf("failed to auto migrate: %v", err)
	}
	return db
}

func newAuthHandler(db *gorm.DB) *auth.AuthHandler {
	return auth.NewAuthHandler(&config.Config{JWTSecret: "test-secret"}, db)
}

func seedUser(t *testing.T, db *gorm.DB, email string, role models.Role) models.User {
	t.Helper()
	user := models.User{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Phone:     "555-0100",
		Role:      role,
		StudentID: "S-" + email,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func seedEvent(t *testing.T, db *gorm.DB, title string, maxParticipants int, price float64) models.Event {
	t.Helper()
	event := models.Event{
		Title:           title,
		Description:     "An event",
		Category:        "general",
		Date:            "2099-05-01",
		StartTime:       "10:00",
		EndTime:         "12:00",
		Venue:           "Main Hall",
		Price:           price,
		MaxParticipants: maxParticipants,
		Published:       true,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("failed to create event %s: %v", title, err)
	}
	return event
}

func bearer(t *testing.T, authHandler *auth.AuthHandler, user models.User) auth.AuthInput {
	t.Helper()
	token, err := authHandler.GenerateToken(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return auth.AuthInput{Authorization: "Bearer " + token}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected a status error, got %v", err)
	}
	return se.GetStatus()
}

func uniqueEmail(i int) string {
	return fmt.Sprintf("user%d@campus.edu", i)
}
