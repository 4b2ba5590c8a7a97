package models

import (
	"time"

	"gorm.io/gorm"
)

type Property struct {
	gorm.Model
	Name          string     `gorm:"not null" json:"name"`
	Location      string     `gorm:"not null" json:"location"`
	HotelGroupID  uint       `gorm:"not null;index" json:"hotelGroupId"`
	ManagerName   string     `gorm:"default:''" json:"managerName"`
	ManagerEmail  string     `gorm:"default:''" json:"managerEmail"`
	Status        string     `gorm:"default:'active'" json:"status"`
	OverallScore  *float64   `json:"overallScore"`
	LastAuditDate *time.Time `json:"lastAuditDate"`
}
