package models

import (
	"gorm.io/gorm"
)

// User roles. The role to permission mapping is fixed at compile time.
const (
	RoleAdmin     = "admin"
	RoleAuditor   = "auditor"
	RoleReviewer  = "reviewer"
	RoleCorporate = "corporate"
	RoleHotelGM   = "hotel_gm"
)

type User struct {
	gorm.Model
	Username string `gorm:"unique;not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"default:'auditor'" json:"role"`
	Name     string `gorm:"default:''" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
}

// IsValidRole reports whether role is one of the known user roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAuditor, RoleReviewer, RoleCorporate, RoleHotelGM:
		return true
	}
	return false
}
