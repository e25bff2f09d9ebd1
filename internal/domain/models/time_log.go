package models

import "time"

// TimeLog records one working session of a user
type TimeLog struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	LoggedIn  time.Time  `gorm:"not null" json:"logged_in"`
	LoggedOut *time.Time `json:"logged_out"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the singular table name
func (TimeLog) TableName() string {
	return "time_log"
}

// TimeLogEntry is a time log joined with the user
type TimeLogEntry struct {
	TimeLog
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	EmployeeID string `json:"employee_id"`
}
