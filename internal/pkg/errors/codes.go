package errors

import (
	"fmt"
	"net/http"
)

// Error code constants. Errors carry code + message; transports map
// HTTPStatus directly onto the response.

// Lookup error codes.
const (
	CodeOrderNotFound    = "ORDER_NOT_FOUND"
	CodeJobNotFound      = "JOB_NOT_FOUND"
	CodeResourceNotFound = "RESOURCE_NOT_FOUND"
	CodeUserNotFound     = "USER_NOT_FOUND"
)

// State machine error codes.
const (
	// CodeInvalidStateTransition covers actions not permitted in the
	// entity's current status: shipping a non-completed order, cancelling
	// a shipped order, reading a job result before completion.
	CodeInvalidStateTransition = "INVALID_STATE_TRANSITION"

	// CodeResourceNotReady is the 503 variant for connecting to a
	// resource that has not reached ready.
	CodeResourceNotReady = "RESOURCE_NOT_READY"
)

// Eventual consistency error codes.
const (
	// CodeNotYetPropagated means the canonical entity exists but the
	// requested view's delay tier has not elapsed. Distinct from a plain
	// not-found so pollers can tell the two apart.
	CodeNotYetPropagated = "NOT_YET_PROPAGATED"
)

// Fault injection error codes.
const (
	CodeServiceFlaky = "SERVICE_TEMPORARILY_UNAVAILABLE"
	CodeRateLimited  = "RATE_LIMIT_EXCEEDED"
)

// Validation error codes.
const (
	CodeInvalidRequest = "INVALID_REQUEST"
)

// Convenience constructors using predefined codes.

// ErrOrderNotFound creates an order not found error.
func ErrOrderNotFound(orderID string) *AppError {
	return NotFound(CodeOrderNotFound, "Order not found")
}

// ErrJobNotFound creates a job not found error.
func ErrJobNotFound(jobID string) *AppError {
	return NotFound(CodeJobNotFound, "Job not found")
}

// ErrResourceNotFound creates a resource not found error.
func ErrResourceNotFound(resourceID string) *AppError {
	return NotFound(CodeResourceNotFound, "Resource not found")
}

// ErrUserNotFound creates a user not found error.
func ErrUserNotFound(userID string) *AppError {
	return NotFound(CodeUserNotFound, "User not found")
}

// ErrInvalidTransition creates a 409 error for an action that is not
// valid in the entity's current status.
func ErrInvalidTransition(message string) *AppError {
	return Conflict(CodeInvalidStateTransition, message)
}

// ErrResourceNotReady creates a 503 error for a resource that is not
// ready for connections.
func ErrResourceNotReady(status string) *AppError {
	return Unavailable(CodeResourceNotReady,
		fmt.Sprintf("Resource not ready. Current status: %s", status))
}

// ErrNotYetPropagated creates the view-miss error for a canonical entity
// whose projection has not arrived in the requested view.
func ErrNotYetPropagated(view string) *AppError {
	return &AppError{
		Code:       CodeNotYetPropagated,
		Message:    fmt.Sprintf("Not yet available in %s view", view),
		HTTPStatus: http.StatusNotFound,
	}
}
