package vosfactures

import (
	"errors"
	"fmt"
	"strings"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired    = errors.New("config is required")
	ErrHostRequired      = errors.New("host is required")
	ErrAPITokenRequired  = errors.New("API token is required")
	ErrTransportRequired = errors.New("transport is required")
	ErrUnknownField      = errors.New("unknown field")
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrUnknownEntity     = errors.New("unknown entity")
	ErrDetachedRecord    = errors.New("record is not bound to a repository")
	ErrMissingIdentifier = errors.New("record has no identifier")
	ErrInvalidDescriptor = errors.New("invalid entity descriptor")
	ErrInvalidPositions  = errors.New("positions must be a list of objects")
	ErrNotDecimal        = errors.New("value is not a decimal")
)

// ValidationError is returned before any network call when create input is
// incomplete or breaks an entity rule.
type ValidationError struct {
	Entity  string
	Missing []string
	Reason  string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: some fields (%s) are required to create this object",
			e.Entity, strings.Join(e.Missing, ", "))
	}

	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

// CommandUnavailableError is returned when an operation is disabled for an
// entity, either by the entity itself or by the command table.
type CommandUnavailableError struct {
	Entity    string
	Operation Operation
	// Forbidden is true when the entity never supports the operation.
	Forbidden bool
}

// Error implements the error interface.
func (e *CommandUnavailableError) Error() string {
	if e.Forbidden {
		return fmt.Sprintf("the %q command does not exist for %s model", e.Operation, e.Entity)
	}

	return fmt.Sprintf("the %q command is not allowed for %s model", e.Operation, e.Entity)
}

// ObjectIsDeletedError is returned for any mutation of a deleted record.
type ObjectIsDeletedError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *ObjectIsDeletedError) Error() string {
	return fmt.Sprintf("%s %s: this object doesn't exist anymore", e.Entity, e.ID)
}

// FieldProtectionError is returned when a caller assigns a field that only the
// service may set.
type FieldProtectionError struct {
	Entity    string
	Field     string
	Protected []string
}

// Error implements the error interface.
func (e *FieldProtectionError) Error() string {
	return fmt.Sprintf("%s: field %q is set automatically and can't be edited (protected: %s)",
		e.Entity, e.Field, strings.Join(e.Protected, ", "))
}

// HTTPError is returned by the transport when the response status code is not
// one of the codes expected for the verb.
type HTTPError struct {
	StatusCode   int
	Method       string
	URL          string
	RequestBody  string
	ResponseBody []byte
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("error %d during the query process for %s (%s). Data: %s, response: %s",
		e.StatusCode, e.URL, e.Method, e.RequestBody, strings.TrimSpace(string(e.ResponseBody)))
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	target := &ValidationError{}

	return errors.As(err, &target)
}

// IsCommandUnavailable checks if the error is a command availability error.
func IsCommandUnavailable(err error) bool {
	target := &CommandUnavailableError{}

	return errors.As(err, &target)
}

// IsObjectDeleted checks if the error was caused by a deleted record.
func IsObjectDeleted(err error) bool {
	target := &ObjectIsDeletedError{}

	return errors.As(err, &target)
}

// IsFieldProtected checks if the error is a field protection error.
func IsFieldProtected(err error) bool {
	target := &FieldProtectionError{}

	return errors.As(err, &target)
}

// IsHTTPError checks if the error is an unexpected HTTP status, and returns the
// status code when it is.
func IsHTTPError(err error) (int, bool) {
	target := &HTTPError{}
	if errors.As(err, &target) {
		return target.StatusCode, true
	}

	return 0, false
}
