package auth

import "errors"

// Token validation failures. The API maps each one to a 401 or 403.
var (
	ErrMissingToken      = errors.New("authentication token is missing")
	ErrInvalidToken      = errors.New("invalid authentication token")
	ErrExpiredToken      = errors.New("authentication token has expired")
	ErrTokenNotYetValid  = errors.New("authentication token not yet valid")
	ErrInsufficientScope = errors.New("authentication token lacks the reports:read scope")
)
