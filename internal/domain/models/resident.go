package models

import "strings"

// Allowed resident values
var (
	ResidentSuffixes      = []string{"NA", "Jr.", "Sr.", "II", "III", "IV"}
	ResidentSexes         = []string{"male", "female"}
	ResidentCivilStatuses = []string{"single", "married", "widowed", "separated", "divorced"}
)

// Resident is a person living in the barangay
type Resident struct {
	BaseModel
	FName       string  `gorm:"column:f_name;type:varchar(100);not null" json:"f_name"`
	MName       *string `gorm:"column:m_name;type:varchar(100)" json:"m_name"`
	LName       string  `gorm:"column:l_name;type:varchar(100);not null;index" json:"l_name"`
	Suffix      string  `gorm:"type:varchar(10);not null;default:'NA'" json:"suffix"`
	Sex         string  `gorm:"type:varchar(10);not null" json:"sex"`
	Birthdate   string  `gorm:"type:varchar(10);not null" json:"birthdate"` // YYYY-MM-DD
	CivilStatus string  `gorm:"type:varchar(20);not null" json:"civil_status"`
	ContactNo   *string `gorm:"type:varchar(20);uniqueIndex" json:"contact_no"` // NULL when absent so the index allows many
	Email       *string `gorm:"type:varchar(150);uniqueIndex" json:"email"`
	Address     *string `gorm:"type:text" json:"address"`
}

// DisplayName formats "Last, First Middle Suffix", leaving out empty parts and the NA suffix
func (r *Resident) DisplayName() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(r.LName))
	b.WriteString(", ")
	b.WriteString(strings.TrimSpace(r.FName))
	if r.MName != nil && strings.TrimSpace(*r.MName) != "" {
		b.WriteString(" " + strings.TrimSpace(*r.MName))
	}
	if r.Suffix != "" && r.Suffix != "NA" {
		b.WriteString(" " + r.Suffix)
	}
	return b.String()
}
