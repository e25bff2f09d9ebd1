package models

import "time"

// History is an append-only record of a mutation made by a user
type History struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      *uint     `gorm:"index" json:"user_id"`
	ResidentID  *uint     `json:"resident_id"`
	HouseholdID *uint     `json:"household_id"`
	IncidentID  *uint     `json:"incident_id"`
	ServiceID   *uint     `json:"service_id"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Timestamp   time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

// TableName keeps the singular table name
func (History) TableName() string {
	return "history"
}

// HistoryEntry is a history row enriched for display
type HistoryEntry struct {
	History
	UserFirstName   *string `json:"user_first_name"`
	UserLastName    *string `json:"user_last_name"`
	ResidentFName   *string `gorm:"column:resident_f_name" json:"resident_f_name"`
	ResidentMName   *string `gorm:"column:resident_m_name" json:"resident_m_name"`
	ResidentLName   *string `gorm:"column:resident_l_name" json:"resident_l_name"`
	ResidentSuffix  *string `json:"resident_suffix"`
	HouseholdName   *string `json:"household_name"`
	ReferenceNumber *string `json:"reference_number"`
	ServiceName     *string `json:"service_name"`
}
