package models

import "time"

// Carousel is one image of the login page carousel
type Carousel struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Picture  string    `gorm:"type:varchar(255);not null" json:"picture"`
	Position int       `gorm:"not null;default:1" json:"position"`
	PostedAt time.Time `gorm:"autoCreateTime" json:"posted_at"`
}

// TableName keeps the singular table name
func (Carousel) TableName() string {
	return "carousel"
}
