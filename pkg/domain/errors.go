package domain

import "errors"

// ErrSessionNotFound is returned when a user ID has no stored session.
var ErrSessionNotFound = errors.New("session not found")
