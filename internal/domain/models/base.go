package models

import "time"

// BaseModel carries the id and timestamps shared by most tables
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Resident{},
		&Household{},
		&HouseholdMember{},
		&Incident{},
		&IncidentSequence{},
		&Service{},
		&ServiceBeneficiary{},
		&History{},
		&TimeLog{},
		&Personalisation{},
		&Carousel{},
	}
}

// TableNames lists tables in the reverse of migration order, for dropping
func TableNames() []string {
	return []string{
		"carousel", "personalisation", "time_log", "history",
		"service_beneficiaries", "services", "incident_sequences", "incidents",
		"household_members", "households", "residents", "users",
	}
}
