package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Validation marks caller input as malformed or missing.
func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

// NotFound marks a referenced entity as absent.
func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

// Duplicate marks a create against an already existing key. It answers
// 400, matching how the original service reported these.
func Duplicate(message string) *AppError {
	return New(CodeDuplicate, message, http.StatusBadRequest)
}

// Store wraps a backing-store failure. The store's own message is kept
// verbatim so it survives to the API response for diagnosability.
func Store(err error) *AppError {
	return Wrap(err, CodeStoreFailure, err.Error(), http.StatusInternalServerError)
}

func RequiredField(field string) *AppError {
	return Validation(fmt.Sprintf("%s is required", field))
}

func InvalidField(field string) *AppError {
	return Validation(fmt.Sprintf("%s is invalid", field))
}

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP maps any error to the status code and payload the handlers write.
// Unknown errors never leak their internals to the client.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
}
