package models

import (
	"gorm.io/gorm"
)

type HotelGroup struct {
	gorm.Model
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"default:''" json:"description"`
	Properties  []Property `json:"properties,omitempty"`
}
