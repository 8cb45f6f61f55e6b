package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeLocked       ErrorType = "SYSTEM_LOCKED"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidStatus    ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidKey       ErrorCode = "INVALID_PERMISSION_KEY"
	ErrCodeInvalidField     ErrorCode = "INVALID_FIELD"

	ErrCodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	ErrCodeGroupNotFound      ErrorCode = "GROUP_NOT_FOUND"
	ErrCodePermissionNotFound ErrorCode = "PERMISSION_NOT_FOUND"
	ErrCodeChannelNotFound    ErrorCode = "CHANNEL_NOT_FOUND"
	ErrCodeLocationNotFound   ErrorCode = "LOCATION_NOT_FOUND"

	ErrCodeSystemGroup   ErrorCode = "SYSTEM_GROUP_PROTECTED"
	ErrCodeDuplicateUser ErrorCode = "DUPLICATE_USER"
	ErrCodeSystemLocked  ErrorCode = "SYSTEM_LOCKED"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	ErrCodeProviderUnavailable ErrorCode = "PROVIDER_UNAVAILABLE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok {
			if len(validationErrors.Errors) == 1 {
				return validationErrors.Errors[0].Message
			} else if len(validationErrors.Errors) > 1 {
				messages := make([]string, len(validationErrors.Errors))
				for i, err := range validationErrors.Errors {
					messages[i] = err.Message
				}
				return strings.Join(messages, "; ")
			}
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewExternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       ErrCodeProviderUnavailable,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Cause:      cause,
	}
}

var (
	ErrUserNotFound       = NewNotFoundError("user not found", ErrCodeUserNotFound)
	ErrGroupNotFound      = NewNotFoundError("group not found", ErrCodeGroupNotFound)
	ErrPermissionNotFound = NewNotFoundError("permission not found", ErrCodePermissionNotFound)
	ErrChannelNotFound    = NewNotFoundError("channel not found", ErrCodeChannelNotFound)
	ErrLocationNotFound   = NewNotFoundError("location not found", ErrCodeLocationNotFound)
	ErrSystemGroup        = NewForbiddenError("system groups cannot be renamed or deleted", ErrCodeSystemGroup)
	ErrDuplicateUser      = NewConflictError("a user with this email already exists", ErrCodeDuplicateUser)

	ErrInvalidCredentials = NewUnauthorizedError("invalid email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewForbiddenError("user account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewUnauthorizedError("invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("token has expired", ErrCodeTokenExpired)

	// ErrSystemLocked signals the bootstrap state: no superuser exists yet,
	// so every surface except the lockout screen is pre-empted.
	ErrSystemLocked = &AppError{
		Type:       ErrorTypeLocked,
		Code:       ErrCodeSystemLocked,
		Message:    "no superuser exists; complete initial provisioning first",
		StatusCode: http.StatusServiceUnavailable,
	}
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
