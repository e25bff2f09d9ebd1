package models

import "time"

// Household member roles, in display order
const (
	RoleHead      = "head"
	RoleMember    = "member"
	RoleDependent = "dependent"
)

// HouseholdRoles lists the valid member roles
var HouseholdRoles = []string{RoleHead, RoleMember, RoleDependent}

// Household groups residents living at one address
type Household struct {
	BaseModel
	HouseholdName string `gorm:"type:varchar(150);not null;uniqueIndex" json:"household_name"`
	Address       string `gorm:"type:text;not null" json:"address"`

	// MemberCount is filled by list queries only
	MemberCount int64 `gorm:"->;-:migration" json:"member_count"`
}

// HouseholdMember links one resident to one household. The unique index on
// resident_id keeps a resident in at most one household.
type HouseholdMember struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	HouseholdID uint      `gorm:"not null;index" json:"household_id"`
	ResidentID  uint      `gorm:"not null;uniqueIndex" json:"resident_id"`
	Role        string    `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	AddedAt     time.Time `gorm:"autoCreateTime" json:"added_at"`

	Household *Household `gorm:"foreignKey:HouseholdID;constraint:OnDelete:CASCADE" json:"-"`
	Resident  *Resident  `gorm:"foreignKey:ResidentID;constraint:OnDelete:CASCADE" json:"-"`
}

// HouseholdMemberDetail is a roster row joined with the resident
type HouseholdMemberDetail struct {
	ID         uint      `json:"id"`
	ResidentID uint      `json:"resident_id"`
	Role       string    `json:"role"`
	AddedAt    time.Time `json:"added_at"`
	FName      string    `gorm:"column:f_name" json:"f_name"`
	MName      *string   `gorm:"column:m_name" json:"m_name"`
	LName      string    `gorm:"column:l_name" json:"l_name"`
	Suffix     string    `json:"suffix"`
	Sex        string    `json:"sex"`
	Birthdate  string    `json:"birthdate"`
	ContactNo  *string   `json:"contact_no"`
}

// HouseholdDetail is a household with its roster
type HouseholdDetail struct {
	Household
	Members []HouseholdMemberDetail `json:"members"`
}
