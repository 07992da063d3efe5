package models

// CompanyMembership links a person account to a company account. Duplicate
// links are tolerated; membership is treated as a set at read time.
type CompanyMembership struct {
	BaseModel

	CompanyID string `gorm:"type:uuid;not null;index"`
	UserID    string `gorm:"type:uuid;not null;index"`

	// Relationships
	Company User `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User    User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
