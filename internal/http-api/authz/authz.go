package authz

import "reviewhub/internal/http-api/models"

// Actor is the identity a decision is made for. The zero value is the
// anonymous actor.
type Actor struct {
	ID            string
	Username      string
	Role          models.Role
	Superuser     bool
	Authenticated bool
}

// Anonymous is the actor used for requests without a credential.
var Anonymous = Actor{}

type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionUpdate
	ActionDelete
)

type Resource int

const (
	ResourceCategory Resource = iota
	ResourceGenre
	ResourceTitle
	ResourceReview
	ResourceComment
	ResourceUser
)

// CanAct is the single authorization predicate. ownerID is the author of the
// concrete resource instance for instance-level actions; pass "" for
// collection-level actions (create, list) and for resources without an owner.
//
// Pure function: no store or transport access, so the full
// actor x action x resource matrix is unit-testable.
func CanAct(actor Actor, action Action, res Resource, ownerID string) bool {
	switch res {
	case ResourceCategory, ResourceGenre, ResourceTitle:
		if action == ActionRead {
			return true
		}
		return actor.IsAdmin()

	case ResourceReview, ResourceComment:
		switch action {
		case ActionRead:
			return true
		case ActionCreate:
			return actor.Authenticated
		default: // update, delete of a specific instance
			if !actor.Authenticated {
				return false
			}
			return actor.ID == ownerID || actor.Role.Moderates() || actor.Superuser
		}

	case ResourceUser:
		// account management, reads included, is admin territory
		return actor.IsAdmin()
	}
	return false
}

// IsAdmin reports whether the actor holds the admin role or the superuser
// override. Matches the only rule that grants catalog writes.
func (a Actor) IsAdmin() bool {
	return a.Authenticated && (a.Role == models.RoleAdmin || a.Superuser)
}
