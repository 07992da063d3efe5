package models

import (
	"time"

	"gorm.io/datatypes"
)

type Project struct {
	BaseModel

	Name          string `gorm:"not null" json:"name"`
	OfficialTitle string `json:"official_title"`
	Segment       string `json:"segment"`
	ImageURL      string `json:"image_url"`
	Status        string `gorm:"not null;default:new;index" json:"status"`
	IsPublic      bool   `json:"is_public"`

	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`

	// Set when the project was created by a company account.
	OwnerCompanyID *string `gorm:"type:uuid;index" json:"owner_company_id"`

	// Both default to the creator when the creator is a person.
	PrimaryResponsibleID *string `gorm:"type:uuid" json:"primary_responsible_id"`
	LegalResponsibleID   *string `gorm:"type:uuid" json:"legal_responsible_id"`

	BudgetPlanned float64 `json:"budget_planned"`
	// Derived from budget line items; never set directly by callers.
	BudgetSpent float64 `json:"budget_spent"`

	Summary                string `gorm:"type:text" json:"summary"`
	GeneralObjectives      string `gorm:"type:text" json:"general_objectives"`
	Goals                  string `gorm:"type:text" json:"goals"`
	Presentation           string `gorm:"type:text" json:"presentation"`
	History                string `gorm:"type:text" json:"history"`
	Remarks                string `gorm:"type:text" json:"remarks"`
	ProposalDescription    string `gorm:"type:text" json:"proposal_description"`
	CounterpartDescription string `gorm:"type:text" json:"counterpart_description"`
	Justification          string `gorm:"type:text" json:"justification"`

	ScheduleActivities datatypes.JSONSlice[ScheduleActivity] `gorm:"type:jsonb" json:"schedule_activities"`
	Attachments        datatypes.JSONSlice[Attachment]       `gorm:"type:jsonb" json:"attachments"`
	Team               datatypes.JSONSlice[TeamMember]       `gorm:"type:jsonb" json:"team"`
	ExecutionAreas     datatypes.JSONSlice[string]           `gorm:"type:jsonb" json:"execution_areas"`

	// Relationships
	BudgetItems []BudgetItem `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

type BudgetItem struct {
	BaseModel

	ProjectID    string  `gorm:"type:uuid;not null;index" json:"project_id"`
	Description  string  `json:"description"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitQuantity float64 `json:"unit_quantity"`
	UnitValue    float64 `json:"unit_value"`
	// Whether this line contributes to the project's derived BudgetSpent.
	AdjustTotal bool `json:"adjust_total"`
}
