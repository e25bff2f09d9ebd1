package models

// User positions
const (
	PositionAdmin = "admin"
	PositionStaff = "staff"
)

// User statuses
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// User is a staff or admin account of the panel
type User struct {
	BaseModel
	EmployeeID         string  `gorm:"type:varchar(50);not null;uniqueIndex" json:"employee_id"`
	Password           string  `gorm:"type:varchar(100);not null" json:"-"` // bcrypt hash, never serialised
	FirstName          string  `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName           string  `gorm:"type:varchar(100);not null" json:"last_name"`
	Email              string  `gorm:"type:varchar(150);not null;uniqueIndex" json:"email"`
	ContactNumber      *string `gorm:"type:varchar(20)" json:"contact_number"`
	ProfilePicture     *string `gorm:"type:varchar(255)" json:"profile_picture"`
	Position           string  `gorm:"type:varchar(20);not null;default:'staff'" json:"position"`
	Status             string  `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	MustChangePassword bool    `gorm:"not null;default:false" json:"must_change_password"`
}

// IsAdmin reports whether the account holds the admin position
func (u *User) IsAdmin() bool {
	return u.Position == PositionAdmin
}
