package models

const (
	UserTypePerson  = "person"
	UserTypeCompany = "company"
	UserTypeAdmin   = "admin"
)

type User struct {
	BaseModel

	Type         string `gorm:"not null;index"` // "person", "company", "admin"
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Phone        string
	AvatarURL    string

	// Person accounts
	FullName string
	TaxID    string `gorm:"index"`

	// Company accounts
	LegalName             string
	CompanyTaxID          string `gorm:"index"`
	IsMicroEnterprise     bool
	StateRegistration     string
	MunicipalRegistration string

	// Relationships
	Memberships   []CompanyMembership `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notifications []Notification     `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
