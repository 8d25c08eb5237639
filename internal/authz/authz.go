// Package authz decides whether a resolved principal may act on an owned
// record.
//
// Every read, update, and delete path runs the same decision over freshly
// fetched state; only the action taken after an allow differs. Create
// paths use CanCreate, since no record exists yet to check.
package authz

import (
	apperrors "github.com/louisbranch/charkeep/internal/platform/errors"
)

// Decision is the outcome of an ownership check.
type Decision string

const (
	// DecisionAllow grants the operation.
	DecisionAllow Decision = "allow"
	// DecisionUnauthenticated rejects callers with no resolved identity.
	DecisionUnauthenticated Decision = "unauthenticated"
	// DecisionForbidden rejects authenticated callers who do not own the record.
	DecisionForbidden Decision = "forbidden"
	// DecisionNotFound rejects operations on records that do not exist.
	DecisionNotFound Decision = "not_found"
)

// Resource describes the fetched state of an owned record.
type Resource struct {
	Exists  bool
	OwnerID string
}

// Found describes an existing record by its owner.
func Found(ownerID string) Resource {
	return Resource{Exists: true, OwnerID: ownerID}
}

// Missing describes a record that was not found.
func Missing() Resource {
	return Resource{}
}

// Authorize evaluates the ownership decision table top to bottom; the
// first matching row wins. An unauthenticated caller is rejected before
// record existence is considered, so the same request gets the same
// answer whether or not the record exists.
func Authorize(principalID string, resource Resource) Decision {
	switch {
	case principalID == "":
		return DecisionUnauthenticated
	case !resource.Exists:
		return DecisionNotFound
	case resource.OwnerID != principalID:
		return DecisionForbidden
	default:
		return DecisionAllow
	}
}

// CanCreate is the degenerate guard for create operations: only the
// identity check applies, and the caller becomes the owner.
func CanCreate(principalID string) Decision {
	if principalID == "" {
		return DecisionUnauthenticated
	}
	return DecisionAllow
}

// Err maps a decision to its domain error; allow maps to nil.
func (d Decision) Err() error {
	switch d {
	case DecisionAllow:
		return nil
	case DecisionUnauthenticated:
		return apperrors.New(apperrors.CodeUnauthenticated, "authentication required")
	case DecisionForbidden:
		return apperrors.New(apperrors.CodePermissionDenied, "caller does not own this record")
	case DecisionNotFound:
		return apperrors.New(apperrors.CodeNotFound, "record not found")
	default:
		return apperrors.New(apperrors.CodeUnknown, "unknown authorization decision")
	}
}
