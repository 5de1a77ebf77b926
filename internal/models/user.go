package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Role is the closed set of account roles. Authorization checks switch on it
// exhaustively rather than comparing raw strings.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// ParseRole rejects anything outside the known role set.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type User struct {
	gorm.Model
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email" gorm:"uniqueIndex"`
	Password   string `json:"-"` // bcrypt hash, never serialized
	Phone      string `json:"phone"`
	Role       Role   `json:"role" gorm:"type:varchar(20);not null;default:'student'"`
	Department string `json:"department"`
	Year       string `json:"year"`
	StudentID  string `json:"student_id"`
	AdminID    string `json:"admin_id"`
}

// FullName is the display name used in API responses and rosters.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}
