// Package service provides business logic services for cinelog.
package service

import "errors"

// Common service errors. Rule violations are reported with the sentinel
// errors in internal/domain; the services add only the infrastructure
// catch-all.
var (
	// ErrInternalError wraps storage or I/O failures that the caller
	// cannot act on beyond reporting them.
	ErrInternalError = errors.New("internal error")
)
