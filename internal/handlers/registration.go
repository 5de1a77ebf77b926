package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/campus-buzz/campus-events-api/internal/auth"
	"github.com/campus-buzz/campus-events-api/internal/models"
	"github.com/campus-buzz/campus-events-api/internal/notifier"
	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrCapacityExceeded  = errors.New("not enough seats available")
	ErrAlreadyRegistered = errors.New("already registered for this event")
)

type RegistrationHandler struct {
	db          *gorm.DB
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
}

func NewRegistrationHandler(db *gorm.DB, notifier notifier.Notifier, authHandler *auth.AuthHandler) *RegistrationHandler {
	return &RegistrationHandler{db: db, notifier: notifier, authHandler: authHandler}
}

type RegisterForEventRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Quantity int `json:"quantity,omitempty" minimum:"1" default:"1" doc:"Number of seats to reserve"`
	}
}

type RegisterForEventResponse struct {
	Body struct {
		Message      string              `json:"message"`
		Registration models.Registration `json:"registration"`
	}
}

// HandleRegister reserves seats for the caller. The availability check, the
// duplicate check and the insert run in one transaction, and the
// (event_id, user_id) unique index backs the duplicate check even outside it,
// so concurrent requests cannot overbook an event or double-register a user.
func (h *RegistrationHandler) HandleRegister(ctx context.Context, input *RegisterForEventRequest) (*RegisterForEventResponse, error) {
	claims, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	quantity := input.Body.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	var registration models.Registration
	var event models.Event
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, input.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		var taken int64
		err := tx.Model(&models.Registration{}).
			Where("event_id = ? AND status = ?", event.ID, models.StatusConfirmed).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&taken).Error
		if err != nil {
			return err
		}

		if taken+int64(quantity) > int64(event.MaxParticipants) {
			return ErrCapacityExceeded
		}

		// One row per (event, user), regardless of status.
		var existing models.Registration
		err = tx.Where("event_id = ? AND user_id = ?", event.ID, claims.UserID).First(&existing).Error
		if err == nil {
			return ErrAlreadyRegistered
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		registration = models.Registration{
			EventID:     event.ID,
			UserID:      claims.UserID,
			Quantity:    quantity,
			TotalAmount: event.Price * float64(quantity),
			Status:      models.StatusConfirmed,
		}
		return tx.Create(&registration).Error
	})

	switch {
	case err == nil:
	case errors.Is(err, ErrEventNotFound):
		return nil, huma.Error404NotFound("Event not found")
	case errors.Is(err, ErrCapacityExceeded):
		return nil, huma.Error400BadRequest("Not enough seats available")
	case errors.Is(err, ErrAlreadyRegistered), errors.Is(err, gorm.ErrDuplicatedKey):
		return nil, huma.Error400BadRequest("Already registered for this event")
	default:
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	if h.notifier != nil {
		var user models.User
		if err := h.db.First(&user, claims.UserID).Error; err == nil {
			if err := h.notifier.NotifyRegistration(user, event, registration); err != nil {
				log.Warn().Err(err).Uint("event_id", event.ID).Msg("registration announcement failed")
			}
		}
	}

	res := &RegisterForEventResponse{}
	res.Body.Message = "Registration successful"
	res.Body.Registration = registration
	return res, nil
}

// UserRegistration is a registration row joined with the event fields the
// frontend needs to render a ticket.
type UserRegistration struct {
	ID          uint      `json:"id"`
	EventID     uint      `json:"event_id"`
	UserID      uint      `json:"user_id"`
	Quantity    int       `json:"quantity"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
	Venue        string  `json:"venue"`
	Price        float64 `json:"price"`
	ContactEmail string  `json:"contact_email"`
	ContactPhone string  `json:"contact_phone"`
}

type MyRegistrationsRequest struct {
	auth.AuthInput
}

type MyRegistrationsResponse struct {
	Body []UserRegistration
}

func (h *RegistrationHandler) HandleMyRegistrations(ctx context.Context, input *MyRegistrationsRequest) (*MyRegistrationsResponse, error) {
	claims, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var rows []UserRegistration
	err = h.db.Table("registrations").
		Select("registrations.id, registrations.event_id, registrations.user_id, registrations.quantity, registrations.total_amount, registrations.status, registrations.created_at, events.title, events.description, events.category, events.date, events.start_time, events.end_time, events.venue, events.price, events.contact_email, events.contact_phone").
		Joins("JOIN events ON events.id = registrations.event_id").
		Where("registrations.user_id = ?", claims.UserID).
		Order("registrations.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	if rows == nil {
		rows = []UserRegistration{}
	}
	return &MyRegistrationsResponse{Body: rows}, nil
}
