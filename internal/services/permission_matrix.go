package services

import "github.com/veldwijk/crewplan/internal/models"

// The matrix is the authorization source for ticket, schedule, training,
// submission and company access: handlers shape PermissionData and ask.
//
// Tenant isolation is the dominant invariant: every company-scoped predicate
// compares the actor's company against the resource's, and admins only reach
// company-less resources.
var permissionMatrix = map[string]map[Resource]map[Action]Rule{
	models.RoleAdmin: {
		ResourceTickets: {
			ActionView:    when(companyLess),
			ActionRespond: when(companyLess),
			ActionClose:   when(companyLess),
			ActionDelete:  when(companyLess),
		},
	},
	models.RoleEmployee: {
		ResourceTickets: {
			ActionView:    when(ownResource),
			ActionCreate:  allow(),
			ActionRespond: when(ownResource),
		},
		ResourceSchedule: {
			ActionView:   when(sameCompany),
			ActionCreate: when(ownInCompany),
			ActionUpdate: when(ownEditableShift),
			ActionDelete: when(ownEditableShift),
		},
		ResourceTraining: {
			ActionView: when(sameCompanySameAudience),
		},
		ResourceSubmission: {
			ActionView:   when(ownResource),
			ActionCreate: when(ownSubmissionForAudience),
		},
		ResourceCompany: {
			ActionView: when(sameCompany),
		},
	},
	models.RoleLeader: {
		ResourceTickets: {
			ActionView:    when(sameCompany),
			ActionCreate:  allow(),
			ActionRespond: when(sameCompany),
			ActionClose:   when(sameCompany),
			ActionDelete:  when(sameCompany),
		},
		ResourceSchedule: {
			ActionView:     when(sameCompany),
			ActionCreate:   when(sameCompany),
			ActionUpdate:   when(sameCompany),
			ActionDelete:   when(sameCompany),
			ActionFinalize: when(sameCompany),
		},
		ResourceTraining: {
			ActionView:   when(sameCompany),
			ActionCreate: when(sameCompany),
			ActionUpdate: when(sameCompany),
			ActionDelete: when(sameCompany),
		},
		ResourceSubmission: {
			ActionView:   when(sameCompany),
			ActionCreate: when(ownInCompany),
		},
		ResourceCompany: {
			ActionView: when(sameCompany),
		},
	},
	models.RoleOwner: {
		ResourceTickets: {
			ActionView:    when(sameCompany),
			ActionCreate:  allow(),
			ActionRespond: when(sameCompany),
			ActionClose:   when(sameCompany),
			ActionDelete:  when(sameCompany),
		},
		ResourceSchedule: {
			ActionView:     when(sameCompany),
			ActionCreate:   when(sameCompany),
			ActionUpdate:   when(sameCompany),
			ActionDelete:   when(sameCompany),
			ActionFinalize: when(sameCompany),
		},
		ResourceTraining: {
			ActionView:   when(sameCompany),
			ActionCreate: when(sameCompany),
			ActionUpdate: when(sameCompany),
			ActionDelete: when(sameCompany),
		},
		ResourceSubmission: {
			ActionView:   when(sameCompany),
			ActionCreate: when(ownInCompany),
		},
		ResourceCompany: {
			ActionView:   when(sameCompany),
			ActionUpdate: when(sameCompany),
		},
	},
}

func sameCompany(user *models.User, data *PermissionData) bool {
	return user.SameCompany(data.CompanyID)
}

func companyLess(user *models.User, data *PermissionData) bool {
	return data.CompanyID == nil
}

func ownResource(user *models.User, data *PermissionData) bool {
	return user.ID == data.UserID
}

func ownInCompany(user *models.User, data *PermissionData) bool {
	return user.ID == data.UserID && user.SameCompany(data.CompanyID)
}

// ownEditableShift keeps employees off finalized shifts; leaders and owners
// bypass this through their own matrix rows.
func ownEditableShift(user *models.User, data *PermissionData) bool {
	return ownInCompany(user, data) && !data.Finalized
}

func sameCompanySameAudience(user *models.User, data *PermissionData) bool {
	return sameCompany(user, data) && data.Role == user.Role
}

func ownSubmissionForAudience(user *models.User, data *PermissionData) bool {
	return ownInCompany(user, data) && data.Role == user.Role
}
