package types

import "github.com/fomenta-dev/fomenta/internal/models"

type UserResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`

	TaxID string `json:"tax_id,omitempty"`

	CompanyTaxID          string `json:"company_tax_id,omitempty"`
	IsMicroEnterprise     bool   `json:"is_micro_enterprise,omitempty"`
	StateRegistration     string `json:"state_registration,omitempty"`
	MunicipalRegistration string `json:"municipal_registration,omitempty"`
}

func NewUserResponse(u models.User) UserResponse {
	name := u.FullName
	if u.Type == models.UserTypeCompany {
		name = u.LegalName
	}

	return UserResponse{
		ID:                    u.ID,
		Type:                  u.Type,
		Name:                  name,
		Email:                 u.Email,
		Phone:                 u.Phone,
		AvatarURL:             u.AvatarURL,
		TaxID:                 u.TaxID,
		CompanyTaxID:          u.CompanyTaxID,
		IsMicroEnterprise:     u.IsMicroEnterprise,
		StateRegistration:     u.StateRegistration,
		MunicipalRegistration: u.MunicipalRegistration,
	}
}
