package service

import "errors"

var (
	// ErrSelfReference is returned when a study is linked to itself.
	ErrSelfReference = errors.New("a study cannot reference itself")
	// ErrDuplicateReference is returned when a forward link for the same ordered pair already exists.
	ErrDuplicateReference = errors.New("reference already exists")
	// ErrTargetNotFound is returned when the target study does not exist for this owner.
	ErrTargetNotFound = errors.New("target study not found")
	// ErrStudyNotFound is returned when the source study does not exist for this owner.
	ErrStudyNotFound = errors.New("study not found")
	// ErrLinkNotFound is returned when a reference id does not resolve for this owner.
	ErrLinkNotFound = errors.New("reference not found")
	// ErrInvalidURL is returned when an external link is not an absolute http(s) URL.
	ErrInvalidURL = errors.New("invalid url, expected an absolute http(s) url")
	// ErrOrderBoundary is returned when a reference is reordered past the start or end of its list.
	ErrOrderBoundary = errors.New("reference is already at the list boundary")
	// ErrCrossStudySwap is returned when an order swap is attempted across two different studies.
	ErrCrossStudySwap = errors.New("references are attached to different studies")
	// ErrInvalidDirection is returned when a reorder direction is neither up nor down.
	ErrInvalidDirection = errors.New("invalid direction, expected up or down")
)
