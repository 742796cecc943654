package order

import (
	"errors"
	"fmt"
)

// Error codes surfaced to handlers.
const (
	CodeSessionNotFound     = "sessionNotFound"
	CodeOperationInProgress = "operationInProgress"
	CodeStaleOperation      = "staleOperation"
	CodeValidation          = "validationError"
	CodeGateway             = "gatewayError"
)

// OrderError carries a machine-readable code alongside the human-readable
// message shown to the user.
type OrderError struct {
	Code    string
	Message string
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewSessionNotFoundError() error {
	return &OrderError{Code: CodeSessionNotFound, Message: "order session not found or expired"}
}

func NewBusyError() error {
	return &OrderError{Code: CodeOperationInProgress, Message: "another operation is already in progress"}
}

func NewStaleError() error {
	return &OrderError{Code: CodeStaleOperation, Message: "order was reset while the operation was in flight"}
}

func NewValidationError(msg string) error {
	return &OrderError{Code: CodeValidation, Message: msg}
}

func NewGatewayError(msg string) error {
	return &OrderError{Code: CodeGateway, Message: msg}
}

// CodeOf extracts the error code, or empty for non-OrderError values.
func CodeOf(err error) string {
	var oe *OrderError
	if errors.As(err, &oe) {
		return oe.Code
	}
	return ""
}
