package handlers

import (
	"context"
	"errors"

	"github.com/campus-buzz/campus-events-api/internal/auth"
	"github.com/campus-buzz/campus-events-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

type EventsHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewEventsHandler(db *gorm.DB, authHandler *auth.AuthHandler) *EventsHandler {
	return &EventsHandler{db: db, authHandler: authHandler}
}

type ListEventsRequest struct {
	Category string `query:"category" doc:"Filter by category; 'all' disables the filter"`
	Search   string `query:"search" doc:"Case-insensitive substring match on title or description"`
	Limit    int    `query:"limit" default:"50" minimum:"1" maximum:"200" doc:"Maximum number of events returned"`
}

type ListEventsResponse struct {
	Body []models.Event
}

func (h *EventsHandler) HandleList(ctx context.Context, input *ListEventsRequest) (*ListEventsResponse, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	query := h.db.Model(&models.Event{}).Where("published = ?", true)

	if input.Category != "" && input.Category != "all" {
		query = query.Where("category = ?", input.Category)
	}
	if input.Search != "" {
		pattern := "%" + input.Search + "%"
		query = query.Where("(title LIKE ? OR description LIKE ?)", pattern, pattern)
	}

	var events []models.Event
	if err := query.Order("created_at DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	if events == nil {
		events = []models.Event{}
	}
	return &ListEventsResponse{Body: events}, nil
}

type GetEventRequest struct {
	ID uint `path:"id"`
}

type GetEventResponse struct {
	Body models.Event
}

func (h *EventsHandler) HandleGet(ctx context.Context, input *GetEventRequest) (*GetEventResponse, error) {
	var event models.Event
	if err := h.db.First(&event, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error404NotFound("Event not found")
		}
		return nil, huma.Error500InternalServerError("Internal server error")
	}
	return &GetEventResponse{Body: event}, nil
}

type CreateEventRequest struct {
	auth.AuthInput
	Body struct {
		Title           string  `json:"title" required:"true"`
		Description     string  `json:"description,omitempty"`
		Category        string  `json:"category,omitempty"`
		Date            string  `json:"date" required:"true" doc:"Event date, YYYY-MM-DD"`
		StartTime       string  `json:"startTime,omitempty"`
		EndTime         string  `json:"endTime,omitempty"`
		Venue           string  `json:"venue,omitempty"`
		Price           float64 `json:"price,omitempty" minimum:"0"`
		MaxParticipants int     `json:"maxParticipants" required:"true" minimum:"1" doc:"Hard ceiling on summed registration quantities"`
		ContactEmail    string  `json:"contactEmail,omitempty"`
		ContactPhone    string  `json:"contactPhone,omitempty"`
		Published       bool    `json:"published,omitempty"`
		FeaturedEvent   bool    `json:"featuredEvent,omitempty"`
	}
}

type CreateEventResponse struct {
	Body struct {
		Message string       `json:"message"`
		Event   models.Event `json:"event"`
	}
}

func (h *EventsHandler) HandleCreate(ctx context.Context, input *CreateEventRequest) (*CreateEventResponse, error) {
	claims, err := h.authHandler.AuthorizeAdmin(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	event := models.Event{
		Title:           input.Body.Title,
		Description:     input.Body.Description,
		Category:        input.Body.Category,
		Date:            input.Body.Date,
		StartTime:       input.Body.StartTime,
		EndTime:         input.Body.EndTime,
		Venue:           input.Body.Venue,
		Price:           input.Body.Price,
		MaxParticipants: input.Body.MaxParticipants,
		ContactEmail:    input.Body.ContactEmail,
		ContactPhone:    input.Body.ContactPhone,
		Published:       input.Body.Published,
		FeaturedEvent:   input.Body.FeaturedEvent,
		CreatedBy:       claims.UserID,
	}

	if err := h.db.Create(&event).Error; err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	res := &CreateEventResponse{}
	res.Body.Message = "Event created successfully"
	res.Body.Event = event
	return res, nil
}

type SubmitFeedbackRequest struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Rating  int    `json:"rating" required:"true" minimum:"1" maximum:"5"`
		Comment string `json:"comment,omitempty"`
	}
}

type SubmitFeedbackResponse struct {
	Body struct {
		Message  string          `json:"message"`
		Feedback models.Feedback `json:"feedback"`
	}
}

func (h *EventsHandler) HandleFeedback(ctx context.Context, input *SubmitFeedbackRequest) (*SubmitFeedbackResponse, error) {
	claims, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var registration models.Registration
	err = h.db.Where("event_id = ? AND user_id = ? AND status = ?",
		input.ID, claims.UserID, models.StatusConfirmed).First(&registration).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, huma.Error400BadRequest("You must be registered for this event to leave feedback")
		}
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	feedback := models.Feedback{
		EventID: input.ID,
		UserID:  claims.UserID,
		Rating:  input.Body.Rating,
		Comment: input.Body.Comment,
	}
	if err := h.db.Create(&feedback).Error; err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	res := &SubmitFeedbackResponse{}
	res.Body.Message = "Feedback submitted successfully"
	res.Body.Feedback = feedback
	return res, nil
}
