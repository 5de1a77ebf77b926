package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/campus-buzz/campus-events-api/internal/models"
)

func TestHandleList_Filters(t *testing.T) {
	db := setupTestDB(t)
	authHandler := newAuthHandler(db)
	handler := NewEventsHandler(db, authHandler)

	now := time.Now()
	events := []models.Event{
		{Title: "Intro to Python", Description: "Beginner session", Category: "workshop", Published: true},
		{Title: "Advanced Python", Description: "Deep dive", Category: "workshop", Published: true},
		{Title: "Python Social", Description: "Meetup", Category: "social", Published: true},
		{Title: "Python Secrets", Description: "Hidden", Category: "workshop", Published: false},
		{Title: "Go Workshop", Description: "No snakes here", Category: "workshop", Published: true},
	}
	for i := range events {
		events[i].Date = "2099-01-01"
		events[i].MaxParticipants = 10
		events[i].CreatedAt = now.Add(time.Duration(i) * time.Minute)
		if err := db.Create(&events[i]).Error; err != nil {
			t.Fatalf("failed to create event: %v", err)
		}
	}

	t.Run("CategoryAndSearch", func(t *testing.T) {
		resp, err := handler.HandleList(context.Background(), &ListEventsRequest{
			Category: "workshop",
			Search:   "python",
			Limit:    5,
		})
		if err != nil {
			t.Fatalf("HandleList failed: %v", err)
		}
		if len(resp.Body) != 2 {
			t.Fatalf("expected 2 events, got %d", len(resp.Body))
		}
		// Newest first
		if resp.Body[0].Title != "Advanced Python" || resp.Body[1].Title != "Intro to Python" {
			t.Errorf("unexpected order: %q, %q", resp.Body[0].Title, resp.Body[1].Title)
		}
		for _, e := range resp.Body {
			if !e.Published {
				t.Errorf("unpublished event %q leaked into listing", e.Title)
			}
		}
	})

	t.Run("Limit", func(t *testing.T) {
		resp, err := handler.HandleList(context.Background(), &ListEventsRequest{Limit: 2})
		if err != nil {
			t.Fatalf("HandleList failed: %v", err)
		}
		if len(resp.Body) != 2 {
			t.Errorf("expected 2 events with limit=2, got %d", len(resp.Body))
		}
	})

	t.Run("CategoryAll", func(t *testing.T) {
		resp, err := handler.HandleList(context.Background(), &ListEventsRequest{Category: "all", Limit: 50})
		if err != nil {
			t.Fatalf("HandleList failed: %v", err)
		}
		if len(resp.Body) != 4 {
			t.Errorf("expected all 4 published events, got %d", len(resp.Body))
		}
	})
}

func TestHandleGet(t *testing.T) {
	db := setupTestDB(t)
	authHandler := newAuthHandler(db)
	handler := NewEventsHandler(db, authHandler)

	event := seedEvent(t, db, "Open Day", 100, 0)

	resp, err := handler.HandleGet(context.Background(), &GetEventRequest{ID: event.ID})
	if err != nil {
		t.Fatalf("HandleGet failed: %v", err)
	}
	if resp.Body.Title != "Open Day" {
		t.Errorf("expected title 'Open Day', got %q", resp.Body.Title)
	}

	t.Run("NotFound", func(t *testing.T) {
		_, err := handler.HandleGet(context.Background(), &GetEventRequest{ID: 4242})
		if err == nil {
			t.Fatal("expected error for missing event")
		}
		if got := statusOf(t, err); got != 404 {
			t.Errorf("expected 404, got %d", got)
		}
	})
}

func TestHandleCreate(t *testing.T) {
	db := setupTestDB(t)
	authHandler := newAuthHandler(db)
	handler := NewEventsHandler(db, authHandler)

	admin := seedUser(t, db, "admin@campus.edu", models.RoleAdmin)
	student := seedUser(t, db, "student@campus.edu", models.RoleStudent)

	req := &CreateEventRequest{}
	req.Body.Title = "Robotics Demo"
	req.Body.Category = "tech"
	req.Body.Date = "2099-03-15"
	req.Body.Price = 12.5
	req.Body.MaxParticipants = 30
	req.Body.Published = true

	t.Run("StudentForbidden", func(t *testing.T) {
		req.AuthInput = bearer(t, authHandler, student)
		_, err := handler.HandleCreate(context.Background(), req)
		if err == nil {
			t.Fatal("expected error for non-admin caller")
		}
		if got := statusOf(t, err); got != 403 {
			t.Errorf("expected 403, got %d", got)
		}
	})

	t.Run("AdminCreates", func(t *testing.T) {
		req.AuthInput = bearer(t, authHandler, admin)
		resp, err := handler.HandleCreate(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleCreate failed: %v", err)
		}
		if resp.Body.Event.CreatedBy != admin.ID {
			t.Errorf("expected created_by %d, got %d", admin.ID, resp.Body.Event.CreatedBy)
		}
		if resp.Body.Event.MaxParticipants != 30 {
			t.Errorf("expected max participants 30, got %d", resp.Body.Event.MaxParticipants)
		}
	})
}

func TestHandleFeedback(t *testing.T) {
	db := setupTestDB(t)
	authHandler := newAuthHandler(db)
	handler := NewEventsHandler(db, authHandler)

	event := seedEvent(t, db, "Guest Lecture", 50, 0)
	registered := seedUser(t, db, "attendee@campus.edu", models.RoleStudent)
	stranger := seedUser(t, db, "stranger@campus.edu", models.RoleStudent)

	reg := models.Registration{EventID: event.ID, UserID: registered.ID, Quantity: 1, Status: models.StatusConfirmed}
	if err := db.Create(&reg).Error; err != nil {
		t.Fatalf("failed to create registration: %v", err)
	}

	req := &SubmitFeedbackRequest{ID: event.ID}
	req.Body.Rating = 5
	req.Body.Comment = "Great talk"

	t.Run("RequiresRegistration", func(t *testing.T) {
		req.AuthInput = bearer(t, authHandler, stranger)
		_, err := handler.HandleFeedback(context.Background(), req)
		if err == nil {
			t.Fatal("expected error for unregistered caller")
		}
		if got := statusOf(t, err); got != 400 {
			t.Errorf("expected 400, got %d", got)
		}
		if !strings.Contains(err.Error(), "must be registered") {
			t.Errorf("unexpected error message: %v", err)
		}
	})

	t.Run("RegisteredUser", func(t *testing.T) {
		req.AuthInput = bearer(t, authHandler, registered)
		resp, err := handler.HandleFeedback(context.Background(), req)
		if err != nil {
			t.Fatalf("HandleFeedback failed: %v", err)
		}
		if resp.Body.Feedback.Rating != 5 {
			t.Errorf("expected rating 5, got %d", resp.Body.Feedback.Rating)
		}
		if resp.Body.Feedback.UserID != registered.ID {
			t.Errorf("expected user id %d, got %d", registered.ID, resp.Body.Feedback.UserID)
		}
	})
}
