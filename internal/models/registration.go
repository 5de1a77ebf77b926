package models

import (
	"gorm.io/gorm"
)

type RegistrationStatus string

const (
	// StatusConfirmed is the only status the registration workflow writes.
	StatusConfirmed RegistrationStatus = "confirmed"
)

// Registration is one user's seat reservation for one event. The composite
// unique index makes "one registration per (event, user)" a database
// guarantee, not just an application-level check.
type Registration struct {
	gorm.Model
	EventID     uint               `json:"event_id" gorm:"uniqueIndex:idx_event_user"`
	UserID      uint               `json:"user_id" gorm:"uniqueIndex:idx_event_user"`
	Event       Event              `json:"-" gorm:"foreignKey:EventID"`
	User        User               `json:"-" gorm:"foreignKey:UserID"`
	Quantity    int                `json:"quantity"`
	TotalAmount float64            `json:"total_amount"`
	Status      RegistrationStatus `json:"status" gorm:"type:varchar(20);not null;default:'confirmed'"`
}
