package domain

import "errors"

var (
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrBadRequest         = errors.New("bad request")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionNotFound    = errors.New("session not found")

	ErrCountryNotFound      = errors.New("country not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrNotificationNotFound = errors.New("notification not found")

	ErrDocumentNotFound = errors.New("document not found")
	ErrInvalidDocument  = errors.New("invalid document")
	ErrTooManyFiles     = errors.New("too many files")
	ErrFileTooLarge     = errors.New("file too large")

	ErrInvalidStep       = errors.New("invalid progress step")
	ErrInvalidPreference = errors.New("invalid preference value")
	ErrEmptyHistory      = errors.New("chat history is empty")
	ErrChatUnavailable   = errors.New("chat provider unreachable")
)
