package service

import "errors"

// Errors surfaced by the service layer. The API layer maps these to HTTP
// status codes.
var (
	// ErrCounterpartNotFound is returned when the requested counterpart
	// user does not resolve. A missing counterpart is a rejection, never a
	// silent zero balance.
	ErrCounterpartNotFound = errors.New("counterpart user not found")

	// ErrGroupNotFound is returned when the requested group does not exist.
	ErrGroupNotFound = errors.New("group not found")

	// ErrNotAMember is returned when the requesting user is not a member
	// of the referenced group. Checked before any aggregation runs.
	ErrNotAMember = errors.New("not a member of this group")

	// ErrInvalidSettlement is returned by the write path when a settlement
	// fails validation: amount not positive, payer equals receiver, or a
	// party outside the group. Nothing is persisted.
	ErrInvalidSettlement = errors.New("invalid settlement")

	// ErrInvalidExpense is returned by the write path when an expense
	// fails validation.
	ErrInvalidExpense = errors.New("invalid expense")

	// ErrNotAuthorized is returned when the caller lacks the role required
	// for a group operation.
	ErrNotAuthorized = errors.New("not authorized")
)
