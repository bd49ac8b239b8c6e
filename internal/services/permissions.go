package services

import "github.com/veldwijk/crewplan/internal/models"

type Resource string

const (
	ResourceTickets    Resource = "tickets"
	ResourceSchedule   Resource = "schedule"
	ResourceTraining   Resource = "training"
	ResourceSubmission Resource = "submission"
	ResourceCompany    Resource = "company"
)

type Action string

const (
	ActionView     Action = "view"
	ActionCreate   Action = "create"
	ActionUpdate   Action = "update"
	ActionDelete   Action = "delete"
	ActionClose    Action = "close"
	ActionRespond  Action = "respond"
	ActionFinalize Action = "finalize"
)

// PermissionData is the caller-shaped snapshot of the target resource.
// Handlers fetch the resource and copy the attributes a predicate needs;
// predicates never touch the database themselves.
type PermissionData struct {
	UserID    uint
	CompanyID *uint
	Role      string
	Finalized bool
	Closed    bool
}

type PermissionPredicate func(user *models.User, data *PermissionData) bool

type ruleKind int

const (
	ruleAllow ruleKind = iota
	rulePredicate
)

// Rule is either an unconditional grant or a predicate over the acting user
// and the target resource's data. Absence of a rule means deny.
type Rule struct {
	kind  ruleKind
	check PermissionPredicate
}

func allow() Rule {
	return Rule{kind: ruleAllow}
}

func when(check PermissionPredicate) Rule {
	return Rule{kind: rulePredicate, check: check}
}

// HasPermission resolves the matrix entry for the user's role and evaluates
// it. Every missing piece resolves to deny: unknown role, unknown resource,
// unknown action, and a predicate invoked without data.
func HasPermission(user *models.User, resource Resource, action Action, data *PermissionData) bool {
	if user == nil {
		return false
	}

	byResource, ok := permissionMatrix[user.Role]
	if !ok {
		return false
	}
	byAction, ok := byResource[resource]
	if !ok {
		return false
	}
	rule, ok := byAction[action]
	if !ok {
		return false
	}

	switch rule.kind {
	case ruleAllow:
		return true
	case rulePredicate:
		if data == nil {
			return false
		}
		return rule.check(user, data)
	default:
		return false
	}
}
