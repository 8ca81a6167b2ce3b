package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrWeakPassword        = errors.New("password does not meet strength requirements")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrInvalidDisclosureToken = errors.New("disclosure token is invalid, expired or already used")
	ErrUnmaskRateLimited      = errors.New("too many reveal requests")

	ErrRecoveryDenied = errors.New("recovery verification failed")

	ErrFieldNotFound = errors.New("field not found in record")
)
