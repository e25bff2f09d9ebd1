package models

// Incident statuses
const (
	IncidentPending   = "pending"
	IncidentOngoing   = "ongoing"
	IncidentResolved  = "resolved"
	IncidentDismissed = "dismissed"
)

// IncidentStatuses lists the valid incident statuses
var IncidentStatuses = []string{IncidentPending, IncidentOngoing, IncidentResolved, IncidentDismissed}

// Incident is a blotter record
type Incident struct {
	BaseModel
	ReferenceNumber string `gorm:"type:varchar(50);not null;uniqueIndex" json:"reference_number"`
	IncidentType    string `gorm:"type:varchar(100);not null" json:"incident_type"`
	Location        string `gorm:"type:varchar(255);not null" json:"location"`
	Date            string `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	Time            string `gorm:"type:varchar(8);not null" json:"time"`        // HH:MM
	Complainant     string `gorm:"type:varchar(150);not null" json:"complainant"`
	Respondent      string `gorm:"type:varchar(150);not null" json:"respondent"`
	Description     string `gorm:"type:text;not null" json:"description"`
	Status          string `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
}

// IncidentSequence is the per-year counter behind reference numbers
type IncidentSequence struct {
	Year      int `gorm:"primaryKey;autoIncrement:false"`
	LastValue int `gorm:"not null;default:0"`
}
