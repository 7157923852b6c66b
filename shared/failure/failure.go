package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Checkout flow failures. All of them are recoverable in place.
var (
	IncompleteSelection    = &Failure{Code: http.StatusUnprocessableEntity, Message: "select valid check-in and check-out dates and at least one room"}
	AuthenticationRequired = &Failure{Code: http.StatusUnauthorized, Message: "please sign in to continue with your booking"}
	PaymentInputIncomplete = &Failure{Code: http.StatusUnprocessableEntity, Message: "payment details are incomplete"}
	TransitionInFlight     = &Failure{Code: http.StatusConflict, Message: "another checkout step is still in progress"}
	InvalidCredentials     = &Failure{Code: http.StatusUnauthorized, Message: "invalid email or password"}
)

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// PaymentDeclined returns a new Failure reported by the payment collaborator.
func PaymentDeclined(msg string) error {
	return &Failure{
		Code:    http.StatusPaymentRequired,
		Message: msg,
	}
}

// InvalidTransition returns a new Failure for a checkout step requested from the wrong state.
func InvalidTransition(from, event string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: fmt.Sprintf("cannot %s while checkout is %s", event, from),
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}
