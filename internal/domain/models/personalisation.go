package models

// PersonalisationID is the id of the only personalisation row
const PersonalisationID = 1

// Personalisation holds the branding of the panel
type Personalisation struct {
	ID             uint    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Logo           *string `gorm:"type:varchar(255)" json:"logo"`
	MainBg         *string `gorm:"column:main_bg;type:varchar(255)" json:"main_bg"`
	HeaderTitle    *string `gorm:"type:varchar(150)" json:"header_title"`
	HeaderColor    *string `gorm:"type:varchar(20)" json:"header_color"`
	FooterTitle    *string `gorm:"type:varchar(150)" json:"footer_title"`
	FooterColor    *string `gorm:"type:varchar(20)" json:"footer_color"`
	LoginColor     *string `gorm:"type:varchar(20)" json:"login_color"`
	ProfileBg      *string `gorm:"type:varchar(20)" json:"profile_bg"`
	ActiveNavColor *string `gorm:"type:varchar(20)" json:"active_nav_color"`
	ButtonColor    *string `gorm:"type:varchar(20)" json:"button_color"`
}

// TableName keeps the singular table name
func (Personalisation) TableName() string {
	return "personalisation"
}

// PersonalisationColorFields are the columns that must hold hex colours
var PersonalisationColorFields = []string{
	"header_color", "footer_color", "login_color", "profile_bg", "active_nav_color", "button_color",
}

// PersonalisationTextFields are the free-text columns
var PersonalisationTextFields = []string{"header_title", "footer_title"}
