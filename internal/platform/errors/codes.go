// Package errors provides structured error handling with machine codes.
package errors

import "net/http"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidInput represents a request rejected before any store access.
	CodeInvalidInput Code = "INVALID_INPUT"

	// Auth errors
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodePermissionDenied   Code = "PERMISSION_DENIED"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"

	// User errors
	CodeUserEmptyUsername   Code = "USER_EMPTY_USERNAME"
	CodeUserInvalidUsername Code = "USER_INVALID_USERNAME"
	CodeUserAlreadyExists   Code = "USER_ALREADY_EXISTS"

	// Character errors
	CodeCharacterEmptyName      Code = "CHARACTER_EMPTY_NAME"
	CodeCharacterEmptyRace      Code = "CHARACTER_EMPTY_RACE"
	CodeCharacterEmptyClass     Code = "CHARACTER_EMPTY_CLASS"
	CodeCharacterInvalidLevel   Code = "CHARACTER_INVALID_LEVEL"
	CodeCharacterInvalidAbility Code = "CHARACTER_INVALID_ABILITY"
	CodeCharacterInvalidHp      Code = "CHARACTER_INVALID_HP"
	CodeCharacterInvalidArmor   Code = "CHARACTER_INVALID_ARMOR_CLASS"
	CodeCharacterInvalidXp      Code = "CHARACTER_INVALID_EXPERIENCE"

	// Storage errors
	CodeNotFound      Code = "NOT_FOUND"
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	CodeUnavailable   Code = "UNAVAILABLE"
)

// HTTPStatus maps the code to the HTTP status the transport layer reports.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidInput,
		CodeUserEmptyUsername, CodeUserInvalidUsername,
		CodeCharacterEmptyName, CodeCharacterEmptyRace, CodeCharacterEmptyClass,
		CodeCharacterInvalidLevel, CodeCharacterInvalidAbility,
		CodeCharacterInvalidHp, CodeCharacterInvalidArmor, CodeCharacterInvalidXp:
		return http.StatusBadRequest
	case CodeUnauthenticated, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeUserAlreadyExists, CodeAlreadyExists:
		return http.StatusConflict
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
