package models

import "time"

// Service statuses
const (
	ServiceScheduled = "scheduled"
	ServiceOngoing   = "ongoing"
	ServiceCompleted = "completed"
)

// ServiceStatuses lists the valid service statuses
var ServiceStatuses = []string{ServiceScheduled, ServiceOngoing, ServiceCompleted}

// Service is a community program delivered to residents
type Service struct {
	BaseModel
	ServiceName string `gorm:"type:varchar(150);not null" json:"service_name"`
	Location    string `gorm:"type:varchar(255);not null" json:"location"`
	Date        string `gorm:"type:varchar(10);not null" json:"date"`
	Time        string `gorm:"type:varchar(8);not null" json:"time"`
	Status      string `gorm:"type:varchar(20);not null;default:'scheduled'" json:"status"`
	Description string `gorm:"type:text;not null" json:"description"`

	// BeneficiaryCount is filled by list queries only
	BeneficiaryCount int64 `gorm:"->;-:migration" json:"beneficiary_count"`
}

// ServiceBeneficiary links a resident to a service at most once
type ServiceBeneficiary struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ServiceID  uint      `gorm:"not null;uniqueIndex:idx_service_resident" json:"service_id"`
	ResidentID uint      `gorm:"not null;uniqueIndex:idx_service_resident;index" json:"resident_id"`
	AddedAt    time.Time `gorm:"autoCreateTime" json:"added_at"`

	Service  *Service  `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"-"`
	Resident *Resident `gorm:"foreignKey:ResidentID;constraint:OnDelete:CASCADE" json:"-"`
}

// BeneficiaryDetail is a beneficiary row joined with the resident
type BeneficiaryDetail struct {
	ID         uint      `json:"id"`
	ServiceID  uint      `json:"service_id"`
	ResidentID uint      `json:"resident_id"`
	AddedAt    time.Time `json:"added_at"`
	FName      string    `gorm:"column:f_name" json:"f_name"`
	MName      *string   `gorm:"column:m_name" json:"m_name"`
	LName      string    `gorm:"column:l_name" json:"l_name"`
	Suffix     string    `json:"suffix"`
	Sex        string    `json:"sex"`
	Birthdate  string    `json:"birthdate"`
	ContactNo  *string   `json:"contact_no"`
	Email      *string   `json:"email"`
	Address    *string   `json:"address"`
}
