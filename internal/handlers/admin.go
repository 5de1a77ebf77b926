package handlers

import (
	"context"
	"time"

	"github.com/campus-buzz/campus-events-api/internal/auth"
	"github.com/campus-buzz/campus-events-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type AdminHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewAdminHandler(db *gorm.DB, authHandler *auth.AuthHandler) *AdminHandler {
	return &AdminHandler{db: db, authHandler: authHandler}
}

// RosterEntry is a registration row joined with the attendee's contact fields.
type RosterEntry struct {
	ID          uint      `json:"id"`
	EventID     uint      `json:"event_id"`
	UserID      uint      `json:"user_id"`
	Quantity    int       `json:"quantity"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	StudentID string `json:"student_id"`
}

type EventRegistrationsRequest struct {
	auth.AuthInput
	ID uint `path:"id"`
}

type EventRegistrationsResponse struct {
	Body []RosterEntry
}

func (h *AdminHandler) HandleEventRegistrations(ctx context.Context, input *EventRegistrationsRequest) (*EventRegistrationsResponse, error) {
	if _, err := h.authHandler.AuthorizeAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	var rows []RosterEntry
	err := h.db.Table("registrations").
		Select("registrations.id, registrations.event_id, registrations.user_id, registrations.quantity, registrations.total_amount, registrations.status, registrations.created_at, users.first_name, users.last_name, users.email, users.phone, users.student_id").
		Joins("JOIN users ON users.id = registrations.user_id").
		Where("registrations.event_id = ?", input.ID).
		Order("registrations.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	if rows == nil {
		rows = []RosterEntry{}
	}
	return &EventRegistrationsResponse{Body: rows}, nil
}

type DashboardRequest struct {
	auth.AuthInput
}

type DashboardResponse struct {
	Body struct {
		TotalEvents        int64   `json:"totalEvents"`
		TotalRegistrations int64   `json:"totalRegistrations"`
		TotalRevenue       float64 `json:"totalRevenue"`
		UpcomingEvents     int64   `json:"upcomingEvents"`
	}
}

// HandleDashboard recomputes the four aggregates on every request; nothing is
// cached.
func (h *AdminHandler) HandleDashboard(ctx context.Context, input *DashboardRequest) (*DashboardResponse, error) {
	if _, err := h.authHandler.AuthorizeAdmin(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	res := &DashboardResponse{}

	if err := h.db.Model(&models.Event{}).Count(&res.Body.TotalEvents).Error; err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}
	if err := h.db.Model(&models.Registration{}).Count(&res.Body.TotalRegistrations).Error; err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	err := h.db.Model(&models.Registration{}).
		Where("status = ?", models.StatusConfirmed).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&res.Body.TotalRevenue).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	today := time.Now().Format("2006-01-02")
	err = h.db.Model(&models.Event{}).Where("date >= ?", today).Count(&res.Body.UpcomingEvents).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	return res, nil
}
