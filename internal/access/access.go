// Package access decides who may view or edit a project. The predicates are
// pure over already-fetched data except for membership lookups. Callers that
// fail a check must surface the project as not found, never as forbidden.
package access

import "github.com/fomenta-dev/fomenta/internal/models"

// MembershipChecker answers whether a person belongs to a company.
type MembershipChecker interface {
	IsMember(companyID, userID string) (bool, error)
}

type Policy struct {
	Members MembershipChecker
}

func NewPolicy(members MembershipChecker) *Policy {
	return &Policy{Members: members}
}

// CanView reports whether actor may see the project. A nil actor is an
// unauthenticated caller.
func (p *Policy) CanView(project *models.Project, actor *models.User) (bool, error) {
	if project.IsPublic {
		return true, nil
	}

	if actor == nil {
		return false, nil
	}

	if project.OwnerCompanyID != nil {
		if actor.ID == *project.OwnerCompanyID {
			return true, nil
		}
		return p.Members.IsMember(*project.OwnerCompanyID, actor.ID)
	}

	return isResponsible(project, actor.ID), nil
}

// CanEdit is stricter than CanView: visibility of a public project never
// implies edit rights.
func (p *Policy) CanEdit(project *models.Project, actor *models.User) (bool, error) {
	if actor == nil {
		return false, nil
	}

	if actor.Type == models.UserTypeCompany {
		return project.OwnerCompanyID != nil && *project.OwnerCompanyID == actor.ID, nil
	}

	if isResponsible(project, actor.ID) {
		return true, nil
	}

	if project.OwnerCompanyID != nil {
		return p.Members.IsMember(*project.OwnerCompanyID, actor.ID)
	}

	return false, nil
}

func isResponsible(project *models.Project, userID string) bool {
	if project.PrimaryResponsibleID != nil && *project.PrimaryResponsibleID == userID {
		return true
	}
	return project.LegalResponsibleID != nil && *project.LegalResponsibleID == userID
}
