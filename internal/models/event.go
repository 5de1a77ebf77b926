package models

import (
	"gorm.io/gorm"
)

// Event is a campus event created by an administrator. Date is stored as an
// ISO date string (YYYY-MM-DD) so "upcoming" comparisons work lexicographically.
type Event struct {
	gorm.Model
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	Venue           string  `json:"venue"`
	Price           float64 `json:"price"`
	MaxParticipants int     `json:"max_participants"`
	ContactEmail    string  `json:"contact_email"`
	ContactPhone    string  `json:"contact_phone"`
	Published       bool    `json:"published"`
	FeaturedEvent   bool    `json:"featured_event"`
	CreatedBy       uint    `json:"created_by"`
}
