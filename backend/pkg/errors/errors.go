package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeNetwork represents misuse of the in-memory match graph
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeStore represents match store (Neo4j) errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeContext represents context cancellation/timeout errors
	ErrorTypeContext ErrorType = "context"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// ErrType returns the error category
func (e *BaseError) ErrType() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Network Errors

// ErrDuplicateUser is returned when a user identity is added to a network twice
type ErrDuplicateUser struct {
	*BaseError
	UserID int64
}

func NewDuplicateUser(userID int64) *ErrDuplicateUser {
	return &ErrDuplicateUser{
		BaseError: NewBaseError(ErrorTypeNetwork, fmt.Sprintf("user already in network: %d", userID), nil),
		UserID:    userID,
	}
}

// ErrInvalidConnection is returned when a user is connected to itself
type ErrInvalidConnection struct {
	*BaseError
	UserID int64
}

func NewInvalidConnection(userID int64) *ErrInvalidConnection {
	return &ErrInvalidConnection{
		BaseError: NewBaseError(ErrorTypeNetwork, fmt.Sprintf("cannot connect user to itself: %d", userID), nil),
		UserID:    userID,
	}
}

// ErrUserNotFound is returned when a user identity is not present in the network
type ErrUserNotFound struct {
	*BaseError
	UserID int64
}

func NewUserNotFound(userID int64) *ErrUserNotFound {
	return &ErrUserNotFound{
		BaseError: NewBaseError(ErrorTypeNetwork, fmt.Sprintf("user not found: %d", userID), nil),
		UserID:    userID,
	}
}

// ErrInvalidUser is returned when a nil user reference is passed to the network
var ErrInvalidUser = NewBaseError(ErrorTypeNetwork, "user reference is nil", nil)

// Store Errors

// ErrStoreConnectionFailed is returned when the Neo4j connection fails
type ErrStoreConnectionFailed struct {
	*BaseError
	URI string
}

func NewStoreConnectionFailed(uri string, err error) *ErrStoreConnectionFailed {
	return &ErrStoreConnectionFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("failed to connect to Neo4j: %s", uri), err),
		URI:       uri,
	}
}

// ErrStoreQueryFailed is returned when a store query fails
type ErrStoreQueryFailed struct {
	*BaseError
	Query string
}

func NewStoreQueryFailed(query string, err error) *ErrStoreQueryFailed {
	return &ErrStoreQueryFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("query failed: %s", query), err),
		Query:     query,
	}
}

// Context Errors

// ErrContextCancelled is returned when context is cancelled
type ErrContextCancelled struct {
	*BaseError
	Operation string
}

func NewContextCancelled(operation string, err error) *ErrContextCancelled {
	return &ErrContextCancelled{
		BaseError: NewBaseError(ErrorTypeContext, fmt.Sprintf("context cancelled: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error, or any error it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if typed, ok := err.(interface{ ErrType() ErrorType }); ok && typed.ErrType() == errType {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	// Caller misuse of the graph never heals on retry
	if IsErrorType(err, ErrorTypeNetwork) {
		return false
	}
	if IsErrorType(err, ErrorTypeContext) {
		return false
	}
	// Store connection errors are retryable
	if IsErrorType(err, ErrorTypeStore) {
		return true
	}
	return false
}
