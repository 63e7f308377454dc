// Package access decides whether an authenticated account may perform an
// operation on a resource. It is pure: callers resolve the actor and the
// resource owner, this package only evaluates the rules.
package access

import "go.mongodb.org/mongo-driver/bson/primitive"

type Role string

const (
	RoleCitizen    Role = "citizen"
	RoleDepartment Role = "department"
	RoleAdmin      Role = "admin"
)

// ValidRole reports whether the string names a known role.
func ValidRole(r Role) bool {
	switch r {
	case RoleCitizen, RoleDepartment, RoleAdmin:
		return true
	}
	return false
}

type Operation string

const (
	OpRead         Operation = "read"
	OpUpdate       Operation = "update"        // core fields of the resource
	OpDelete       Operation = "delete"
	OpChangeStatus Operation = "change_status" // issue lifecycle transitions
	OpAssign       Operation = "assign"
	OpVote         Operation = "vote"
	OpComment      Operation = "comment"
	OpVerifyClose  Operation = "verify_close" // reporter-confirmed disposal
)

// Actor is the authenticated identity performing the request.
type Actor struct {
	ID   primitive.ObjectID
	Role Role
}

// Resource carries the ownership facts the rules need. OwnerID is the
// reporter for issues, the author for comments and the account itself for
// profiles.
type Resource struct {
	OwnerID primitive.ObjectID
}

// Allowed evaluates the rules in precedence order:
//
//  1. admin may do anything
//  2. the owner may read, update and delete their own resource
//  3. department accounts may read everything and drive status/assignment
//  4. any authenticated account may read, vote and comment
//
// Verify-and-close stays with the reporter (or an admin): a department
// account is denied even when it reported the issue itself.
func Allowed(actor Actor, res Resource, op Operation) bool {
	if actor.Role == RoleAdmin {
		return true
	}

	owner := !actor.ID.IsZero() && actor.ID == res.OwnerID

	if op == OpVerifyClose {
		return owner && actor.Role != RoleDepartment
	}

	if owner {
		switch op {
		case OpRead, OpUpdate, OpDelete, OpVote, OpComment:
			return true
		}
	}

	if actor.Role == RoleDepartment {
		switch op {
		case OpRead, OpChangeStatus, OpAssign:
			return true
		}
	}

	switch op {
	case OpRead, OpVote, OpComment:
		return true
	}

	return false
}
