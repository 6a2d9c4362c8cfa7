package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound     = NewDomainError("NOT_FOUND", "Resource not found")
	ErrInvalidInput = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	// ErrSubsystemUnavailable signals an optional data source (working-hours
	// calendars, public holidays) that is not installed in the host system.
	// Callers substitute a documented default instead of failing.
	ErrSubsystemUnavailable = NewDomainError("SUBSYSTEM_UNAVAILABLE", "Optional subsystem is not available")
	// ErrHierarchyCycle signals a cycle in a location or category tree.
	// Hierarchies must be acyclic; a cycle is a configuration error that
	// terminates the run.
	ErrHierarchyCycle = NewDomainError("HIERARCHY_CYCLE", "Cycle detected in entity hierarchy")
)
