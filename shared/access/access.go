// Package access decides whether a caller may perform an action on a resource.
//
// The decision depends only on the caller's role, whether the caller authored
// the resource and the requested action. It holds no state and must be
// evaluated on every request.
package access

import (
	"github.com/yamdb-dev/yamdb/shared/domain"
	"github.com/yamdb-dev/yamdb/shared/errors"
)

type Action string

const (
	Read   Action = "read"
	Create Action = "create"
	Update Action = "update"
	Delete Action = "delete"
	// user role mutation and category/genre/title management
	AdminManage Action = "admin_manage"
)

var Actions = []Action{Read, Create, Update, Delete, AdminManage}

type Decision bool

const (
	Allow Decision = true
	Deny  Decision = false
)

func (d Decision) Allowed() bool {
	return bool(d)
}

// Decide evaluates the role matrix:
//
//	role       read  create  write own  write others'  admin manage
//	anonymous  yes   no      no         no             no
//	user       yes   yes     yes        no             no
//	moderator  yes   yes     yes        yes            no
//	admin      yes   yes     yes        yes            yes
//
// Unknown roles get read access only.
func Decide(role domain.Role, isOwner bool, action Action) Decision {
	switch action {
	case Read:
		return Allow
	case Create:
		return Decision(role.Persisted())
	case Update, Delete:
		switch role {
		case domain.RoleAdmin, domain.RoleModerator:
			return Allow
		case domain.RoleUser:
			return Decision(isOwner)
		}
	case AdminManage:
		return Decision(role == domain.RoleAdmin)
	}
	return Deny
}

// Require returns nil when actor may perform action. A denied anonymous caller
// gets Unauthorized (it should present a token), anyone else Forbidden.
func Require(actor domain.Actor, isOwner bool, action Action) error {
	role := actor.Role
	if actor.IsAnonymous() {
		role = domain.RoleAnonymous
		isOwner = false
	}
	if Decide(role, isOwner, action).Allowed() {
		return nil
	}
	if role == domain.RoleAnonymous {
		return errors.Unauthorized("Authentication credentials were not provided")
	}
	return errors.Forbidden("You do not have permission to perform this action")
}

// RequireOnResource is Require for a resource written by authorId.
func RequireOnResource(actor domain.Actor, authorId domain.UserId, action Action) error {
	return Require(actor, actor.Owns(authorId), action)
}
