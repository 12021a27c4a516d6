// Package access decides whether a caller may act on a specific
// resource instance. The predicate is uniform across resource types:
// the caller must match the resource's owner key, or hold an elevated
// role. The package is pure; callers log decisions and map Deny to
// HTTP responses, and must resolve not-found before evaluating.
package access

import "github.com/equiledger/backend/internal/model"

// Caller is the identity of the requester, always taken from a verified
// session token and never from the request body.
type Caller struct {
	ID    int64
	Email string
	Role  model.Role
}

// Owner is the resource's owner key. Expenses are owned by account id;
// account self-records are keyed by email, since the account mutation
// routes address users by email.
type Owner interface {
	matches(c Caller) bool
}

type idOwner int64

func (o idOwner) matches(c Caller) bool { return int64(o) == c.ID }

type emailOwner string

func (o emailOwner) matches(c Caller) bool { return string(o) == c.Email }

// ByID keys ownership on the account id stored on the resource.
func ByID(id int64) Owner { return idOwner(id) }

// ByEmail keys ownership on the account's email address.
func ByEmail(email string) Owner { return emailOwner(email) }

// CanMutate reports whether the caller may read, update or delete the
// resource owned by owner. One rule for every single-resource
// operation: owner match, or elevated role.
func CanMutate(c Caller, owner Owner) bool {
	return owner.matches(c) || c.Role.Elevated()
}

// CanListAll reports whether a role may list a whole collection. No
// ownership exception exists here: a collection has no single owner.
func CanListAll(role model.Role) bool {
	return role.Elevated()
}
