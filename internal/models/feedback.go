package models

import (
	"gorm.io/gorm"
)

// Feedback may only be left by users holding a confirmed registration for the
// event; the handler enforces that before creating a row.
type Feedback struct {
	gorm.Model
	EventID uint   `json:"event_id"`
	UserID  uint   `json:"user_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
